package model

// DashboardStats holds the headline counts on the admin dashboard.
// A nil count means the collaborator could not be reached.
type DashboardStats struct {
	Users  *int `json:"users"`
	Buses  *int `json:"buses"`
	Cities *int `json:"cities"`
}
