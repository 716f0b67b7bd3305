package model

// Sentinels substituted when a resolution lookup yields no name
const (
	UnknownOwner = "Unknown Owner"
	UnknownCity  = "Unknown City"
)

// BusRecord is a bus as stored by the booking backend, with foreign keys unresolved
type BusRecord struct {
	ID            string   `json:"id"`
	BusID         string   `json:"bus_id"`
	OwnerID       string   `json:"owner_id"`
	Source        string   `json:"source"`
	Destination   string   `json:"destination"`
	RestStops     []string `json:"rest_stops"`
	BusCapacity   int      `json:"bus_capacity"`
	EarningPerDay float64  `json:"earning_per_day"`
	BusNumber     string   `json:"bus_number"`
}

// DenormalizedBusRow is a BusRecord with every foreign key resolved to a display name.
// RestStopsCities is positionally aligned with RestStops.
type DenormalizedBusRow struct {
	BusRecord
	OwnerName       string   `json:"owner_name"`
	SourceCity      string   `json:"source_city"`
	DestinationCity string   `json:"destination_city"`
	RestStopsCities []string `json:"rest_stops_cities"`
}

// BusPage is one page of the bus table
type BusPage = Page[DenormalizedBusRow]

// Seat filters offered by the bus table
const (
	SeatsAll     = "all"
	SeatsZero    = "zero"
	SeatsNonZero = "non-zero"
)

// SeatsFilter returns the listing filter for a seat selection, or "" for all buses
func SeatsFilter(seats string) string {
	switch seats {
	case SeatsZero:
		return `{"key":"seats","value":0}`
	case SeatsNonZero:
		return `{"key":"seats","value":{"$gt":0}}`
	default:
		return ""
	}
}

// DefaultBusQuery returns the bus table's initial query
func DefaultBusQuery() ListQuery {
	return ListQuery{
		Page:  1,
		Limit: 5,
		Sort:  "busNumber",
		Order: SortAsc,
	}
}
