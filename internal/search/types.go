package search

import "touravail/internal/ota"

type ErrorCode string

const (
	ErrorCodeValidation       ErrorCode = "VALIDATION"
	ErrorCodeMissingDest      ErrorCode = "MISSING_DESTINATION"
	ErrorCodeMissingStartDate ErrorCode = "MISSING_START_DATE"
	ErrorCodeInvalidNights    ErrorCode = "INVALID_NIGHTS"
	ErrorCodeIncompleteConfig ErrorCode = "SUPPLIER_CONFIG_INCOMPLETE"
	ErrorCodeNoDeparture      ErrorCode = "NO_DEPARTURE_POINT"
	ErrorCodeUpstream         ErrorCode = "UPSTREAM_FAILURE"
	ErrorCodeInternalFailure  ErrorCode = "INTERNAL_FAILURE"
)

// MiscGroupCode collects offers whose booking code has no recognizable
// product part, so they still show up instead of being dropped.
const MiscGroupCode = "__MISC__"

type SearchRequest struct {
	Destination      string `json:"destination"`
	DepartureAirport string `json:"aptfrom"`
	ProductCode      string `json:"product_code"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Nights           int    `json:"nights"`
	Rooms            int    `json:"rooms"`
	Adults           int    `json:"adults"`
	ChildrenAges     []int  `json:"children_ages"`
}

// FlightSolution is one departure variant of a product group: the same
// package sold with a different flight, priced independently.
type FlightSolution struct {
	PackageCode string              `json:"package_code"`
	Variant     string              `json:"variant"`
	MinPrice    string              `json:"min_price"`
	Currency    string              `json:"currency"`
	Direction   string              `json:"flight_direction,omitempty"`
	Flights     []ota.FlightSegment `json:"flights,omitempty"`

	minPrice float64
}

// OfferGroup aggregates all offers that share a product core across the
// queried departure airports.
type OfferGroup struct {
	ProductCore   string           `json:"product_core"`
	Name          string           `json:"name"`
	Image         string           `json:"image,omitempty"`
	ShortDesc     string           `json:"short_desc,omitempty"`
	IsRecommended bool             `json:"is_recommended"`
	MinPrice      string           `json:"min_price"`
	Currency      string           `json:"currency"`
	Solutions     []FlightSolution `json:"solutions"`
	Offers        []ota.Offer      `json:"offers"`

	minPrice float64
}

type Metadata struct {
	AirportsQueried   []string `json:"airports_queried"`
	AirportsSucceeded uint32   `json:"airports_succeeded"`
	AirportsFailed    uint32   `json:"airports_failed"`
	Warnings          []string `json:"warnings,omitempty"`
	TotalGroups       uint32   `json:"total_groups"`
	TotalOffers       uint32   `json:"total_offers"`
	SearchTimeMs      uint32   `json:"search_time_ms,omitempty"`
	CacheKey          string   `json:"cache_key,omitempty"`
	CacheHit          bool     `json:"cache_hit"`
}

type SearchResponse struct {
	Metadata Metadata     `json:"metadata"`
	Groups   []OfferGroup `json:"groups"`
}

type DetailRequest struct {
	PackageCode  string `json:"package_code"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Nights       int    `json:"nights"`
	Rooms        int    `json:"rooms"`
	Adults       int    `json:"adults"`
	ChildrenAges []int  `json:"children_ages"`
	Image        string `json:"image"`
}

type DetailResponse struct {
	PackageCode     string           `json:"package_code"`
	ProductName     string           `json:"product_name"`
	Gallery         []string         `json:"gallery"`
	DefaultRoomCode string           `json:"default_room_code"`
	Options         []ota.RoomOption `json:"options"`
}

type QuoteRequest struct {
	BookingCode      string `json:"booking_code"`
	RatePlanCode     string `json:"rate_plan"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Nights           int    `json:"nights"`
	DepartureAirport string `json:"aptfrom"`
	Adults           int    `json:"adults"`
	ChildrenAges     []int  `json:"children_ages"`
	Image            string `json:"image"`
}

type QuoteResponse struct {
	ota.QuoteResult
	Image string `json:"image,omitempty"`
}
