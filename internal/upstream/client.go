// Package upstream talks to the booking backend that owns buses, users and cities.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/config"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
)

// ErrNameMissing is returned by lookups whose response carries no display name
var ErrNameMissing = errors.New("name missing from response")

// ErrListingMissing is returned by listings whose response carries no item array
var ErrListingMissing = errors.New("listing missing from response")

// StatusError is returned when the backend answers with a non-success status
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Client is an HTTP client for the booking backend
type Client struct {
	httpClient *http.Client
	endpoints  config.Upstream
}

// NewClient creates a new Client. A nil httpClient uses http.DefaultClient.
func NewClient(endpoints config.Upstream, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		endpoints:  endpoints,
	}
}

// BusListing is a page of raw bus records
type BusListing struct {
	Buses      []model.BusRecord
	TotalPages int
}

// UserListing is a page of users
type UserListing struct {
	Users      []model.User
	TotalPages int
}

// CityListing is a page of cities
type CityListing struct {
	Cities     []model.City
	TotalPages int
}

// ListBuses fetches a page of bus records
func (c *Client) ListBuses(ctx context.Context, q model.ListQuery) (*BusListing, error) {
	var body struct {
		Buses      *[]busDoc `json:"buses"`
		TotalPages int       `json:"totalPages"`
	}
	if err := c.getJSON(ctx, withQuery(c.endpoints.BusListingURL, q), &body); err != nil {
		return nil, fmt.Errorf("list buses: %w", err)
	}
	if body.Buses == nil {
		return nil, fmt.Errorf("list buses: %w", ErrListingMissing)
	}

	buses := make([]model.BusRecord, len(*body.Buses))
	for i, b := range *body.Buses {
		buses[i] = b.toModel()
	}
	return &BusListing{Buses: buses, TotalPages: body.TotalPages}, nil
}

// ListUsers fetches a page of users
func (c *Client) ListUsers(ctx context.Context, q model.ListQuery) (*UserListing, error) {
	var body struct {
		Users      *[]userDoc `json:"users"`
		TotalPages int        `json:"totalPages"`
	}
	if err := c.getJSON(ctx, withQuery(c.endpoints.UserListingURL, q), &body); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if body.Users == nil {
		return nil, fmt.Errorf("list users: %w", ErrListingMissing)
	}

	users := make([]model.User, len(*body.Users))
	for i, u := range *body.Users {
		users[i] = u.toModel()
	}
	return &UserListing{Users: users, TotalPages: body.TotalPages}, nil
}

// ListCities fetches a page of cities with their stops
func (c *Client) ListCities(ctx context.Context, q model.ListQuery) (*CityListing, error) {
	var body struct {
		Cities     *[]cityDoc `json:"cities"`
		TotalPages int        `json:"totalPages"`
	}
	if err := c.getJSON(ctx, withQuery(joinPath(c.endpoints.CityAdminURL, "list"), q), &body); err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	if body.Cities == nil {
		return nil, fmt.Errorf("list cities: %w", ErrListingMissing)
	}

	cities := make([]model.City, len(*body.Cities))
	for i, city := range *body.Cities {
		cities[i] = city.toModel()
	}
	return &CityListing{Cities: cities, TotalPages: body.TotalPages}, nil
}

// GetOwnerName resolves an owner ID to the owner's display name
func (c *Client) GetOwnerName(ctx context.Context, ownerID string) (string, error) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, joinPath(c.endpoints.OwnerLookupURL, ownerID), &body); err != nil {
		return "", fmt.Errorf("owner %s: %w", ownerID, err)
	}
	if body.Name == "" {
		return "", fmt.Errorf("owner %s: %w", ownerID, ErrNameMissing)
	}
	return body.Name, nil
}

// GetCityName resolves a city ID to the city's display name
func (c *Client) GetCityName(ctx context.Context, cityID string) (string, error) {
	var body struct {
		City *struct {
			CityName string `json:"cityName"`
		} `json:"city"`
	}
	if err := c.getJSON(ctx, joinPath(c.endpoints.CityLookupURL, cityID), &body); err != nil {
		return "", fmt.Errorf("city %s: %w", cityID, err)
	}
	if body.City == nil || body.City.CityName == "" {
		return "", fmt.Errorf("city %s: %w", cityID, ErrNameMissing)
	}
	return body.City.CityName, nil
}

// AddStop adds a stop to the city identified by pincode
func (c *Client) AddStop(ctx context.Context, pincode string, stop model.Stop) error {
	payload := struct {
		Stops []stopPayload `json:"stops"`
	}{
		Stops: []stopPayload{{
			StopID:       stop.StopID,
			StopName:     stop.StopName,
			StopTimings:  stop.StopTimings,
			StopDuration: strconv.Itoa(stop.StopDuration),
		}},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("add stop: %w", err)
	}

	target := joinPath(c.endpoints.CityAdminURL, "add-stops", pincode)
	if err := c.send(ctx, http.MethodPatch, target, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("add stop: %w", err)
	}
	return nil
}

// DeleteStop removes a stop from the city identified by pincode
func (c *Client) DeleteStop(ctx context.Context, pincode, stopID string) error {
	target := joinPath(c.endpoints.CityAdminURL, "delete-stop", pincode, stopID)
	if err := c.send(ctx, http.MethodDelete, target, nil); err != nil {
		return fmt.Errorf("delete stop: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, target string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", target, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, target string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: target, StatusCode: resp.StatusCode}
	}
	return nil
}

// withQuery appends the listing parameters. Empty values are omitted.
func withQuery(base string, q model.ListQuery) string {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Filter != "" {
		v.Set("filter", q.Filter)
	}

	if len(v) == 0 {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + v.Encode()
}

func joinPath(base string, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(escaped, "/")
}
