package upstream

import (
	"bytes"
	"strconv"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
)

// Wire shapes of the booking backend. Field names follow its JSON.

type busDoc struct {
	ID            string   `json:"_id"`
	BusID         string   `json:"busId"`
	OwnerID       string   `json:"ownerId"`
	Source        string   `json:"source"`
	Destination   string   `json:"destination"`
	RestStops     []string `json:"restStops"`
	BusCapacity   int      `json:"busCapacity"`
	EarningPerDay float64  `json:"earningPerDay"`
	BusNumber     string   `json:"busNumber"`
}

func (b busDoc) toModel() model.BusRecord {
	restStops := b.RestStops
	if restStops == nil {
		restStops = []string{}
	}
	return model.BusRecord{
		ID:            b.ID,
		BusID:         b.BusID,
		OwnerID:       b.OwnerID,
		Source:        b.Source,
		Destination:   b.Destination,
		RestStops:     restStops,
		BusCapacity:   b.BusCapacity,
		EarningPerDay: b.EarningPerDay,
		BusNumber:     b.BusNumber,
	}
}

type userDoc struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	UserID      string `json:"userId"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
	Active      bool   `json:"active"`
}

func (u userDoc) toModel() model.User {
	return model.User{
		ID:          u.ID,
		Username:    u.Username,
		UserID:      u.UserID,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Name:        u.Name,
		AccountType: u.AccountType,
		Active:      u.Active,
	}
}

// minutes decodes a duration stored either as a JSON number or a numeric string
type minutes int

func (m *minutes) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*m = 0
		return nil
	}
	// unparseable durations read as zero rather than failing the whole listing
	n, _ := strconv.ParseFloat(string(data), 64)
	*m = minutes(n)
	return nil
}

type stopDoc struct {
	StopID       string  `json:"stopId"`
	StopName     string  `json:"stopName"`
	StopTimings  string  `json:"stopTimings"`
	StopDuration minutes `json:"stopDuration"`
}

// stopPayload is the add-stops body; the backend expects the duration as a string
type stopPayload struct {
	StopID       string `json:"stopId"`
	StopName     string `json:"stopName"`
	StopTimings  string `json:"stopTimings"`
	StopDuration string `json:"stopDuration"`
}

type cityDoc struct {
	ID          string    `json:"_id"`
	CityName    string    `json:"cityName"`
	CityPincode string    `json:"cityPincode"`
	Stops       []stopDoc `json:"stops"`
}

func (c cityDoc) toModel() model.City {
	stops := make([]model.Stop, len(c.Stops))
	for i, s := range c.Stops {
		stops[i] = model.Stop{
			StopID:       s.StopID,
			StopName:     s.StopName,
			StopTimings:  s.StopTimings,
			StopDuration: int(s.StopDuration),
		}
	}
	return model.City{
		ID:          c.ID,
		CityName:    c.CityName,
		CityPincode: c.CityPincode,
		Stops:       stops,
	}
}
