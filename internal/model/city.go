package model

import (
	"regexp"
	"strings"
)

var stopTimingsPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Stop is a halt within a city
type Stop struct {
	StopID       string `json:"stop_id"`
	StopName     string `json:"stop_name"`
	StopTimings  string `json:"stop_timings"`
	StopDuration int    `json:"stop_duration"`
}

// City is a city with its stops as listed on the city screen
type City struct {
	ID          string `json:"id"`
	CityName    string `json:"city_name"`
	CityPincode string `json:"city_pincode"`
	Stops       []Stop `json:"stops"`
}

// CityPage is one page of the city table
type CityPage = Page[City]

// Sort keys offered by the city table
var CitySortKeys = map[string]bool{
	"createdAt": true,
	"cityName":  true,
}

// DefaultCityQuery returns the city table's initial query
func DefaultCityQuery() ListQuery {
	return ListQuery{
		Page:  1,
		Limit: 10,
		Sort:  "createdAt",
	}
}

// AddStopRequest represents the request body for adding a stop to a city
type AddStopRequest struct {
	StopName     string `json:"stop_name"`
	StopTimings  string `json:"stop_timings"`
	StopDuration int    `json:"stop_duration"`
}

// Validate checks if the request is valid and returns field errors
func (r *AddStopRequest) Validate() map[string]string {
	errors := make(map[string]string)

	r.StopName = strings.TrimSpace(r.StopName)
	r.StopTimings = strings.TrimSpace(r.StopTimings)

	if r.StopName == "" {
		errors["stop_name"] = "stop_name is required"
	} else if len(r.StopName) > 100 {
		errors["stop_name"] = "stop_name must be 100 characters or less"
	}

	if r.StopTimings == "" {
		errors["stop_timings"] = "stop_timings is required"
	} else if !stopTimingsPattern.MatchString(r.StopTimings) {
		errors["stop_timings"] = "stop_timings must be HH:MM"
	}

	if r.StopDuration < 0 {
		errors["stop_duration"] = "stop_duration must be non-negative"
	}

	return errors
}
