package model

// Account types used by the users screen filter
var AccountTypes = []string{"Admin", "Owner", "Staff", "User"}

// User is a platform account as listed on the users screen
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	UserID      string `json:"user_id"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	AccountType string `json:"account_type"`
	Active      bool   `json:"active"`
}

// UserPage is one page of the users table
type UserPage = Page[User]

// IsAccountType reports whether filter names a known account type
func IsAccountType(filter string) bool {
	for _, t := range AccountTypes {
		if t == filter {
			return true
		}
	}
	return false
}

// DefaultUserQuery returns the users table's initial query
func DefaultUserQuery() ListQuery {
	return ListQuery{
		Page:  1,
		Limit: 5,
		Sort:  "name",
		Order: SortAsc,
	}
}
