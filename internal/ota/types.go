package ota

import "strings"

// ProductRecord is one entry of the supplier product catalog.
type ProductRecord struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	CityCode        string `json:"city_code"`
	AreaID          string `json:"area_id"`
	CountryISO      string `json:"country_iso"`
	CountryName     string `json:"country_name"`
	ProductType     string `json:"product_type"`
	ProductTypeCode string `json:"product_type_code"`
	ProductTypeName string `json:"product_type_name"`
	CategoryCode    string `json:"category_code"`
	CategoryDetail  string `json:"category_detail"`
}

// DescriptiveDetail is the normalized descriptive payload for a product.
// All slice fields are non-nil so downstream merge logic never has to
// guard against missing lists.
type DescriptiveDetail struct {
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	City         string   `json:"city"`
	Country      string   `json:"country"`
	Duration     string   `json:"duration"`
	Descriptions []string `json:"descriptions"`
	Categories   []string `json:"categories"`
	Types        []string `json:"types"`
	PickupNotes  []string `json:"pickup_notes"`
	ImageURLs    []string `json:"image_urls"`
	Included     []string `json:"included"`
	Excluded     []string `json:"excluded"`
	Notes        string   `json:"notes"`
}

// Meaningful reports whether the payload carries enough content to show
// on its own, without merging in the cached catalog record.
func (d *DescriptiveDetail) Meaningful() bool {
	if d == nil {
		return false
	}
	if d.Name != "" {
		return true
	}
	for _, s := range d.Descriptions {
		if s != "" {
			return true
		}
	}
	for _, u := range d.ImageURLs {
		if u != "" {
			return true
		}
	}
	return false
}

type CodeName struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type AgeBand struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

type FlightSegment struct {
	ODRPH         string   `json:"od_rph"`
	DepartureTime string   `json:"departure_datetime"`
	ArrivalTime   string   `json:"arrival_datetime"`
	FlightNumber  string   `json:"flight_number"`
	BookingClass  string   `json:"booking_class"`
	Departure     CodeName `json:"departure"`
	Arrival       CodeName `json:"arrival"`
	Operating     CodeName `json:"operating"`
	Marketing     CodeName `json:"marketing"`
	BaggageKg     string   `json:"baggage_kg"`
}

type CancelPolicy struct {
	NonRefundable      bool   `json:"non_refundable"`
	DeadlineUnit       string `json:"deadline_unit"`
	DeadlineMultiplier string `json:"deadline_multiplier"`
	DeadlineDropTime   string `json:"deadline_drop_time"`
	PenaltyPercent     string `json:"penalty_percent"`
	PenaltyBasis       string `json:"penalty_basis"`
}

// Offer is one room/rate-plan/booking-code combination from an
// Availability response. BookingCode is the only reliable key to
// re-quote later and is carried verbatim, never re-derived.
type Offer struct {
	RoomCode          string          `json:"room_code"`
	RoomName          string          `json:"room_name"`
	ProductName       string          `json:"product_name"`
	TourActivityCode  string          `json:"tour_activity_code"`
	Status            string          `json:"status"`
	Start             string          `json:"start"`
	End               string          `json:"end"`
	RatePlanCode      string          `json:"rate_plan"`
	RatePlanName      string          `json:"rate_plan_name"`
	MealPlanCodes     string          `json:"meal_plan_codes"`
	Price             string          `json:"total_price"`
	Currency          string          `json:"currency"`
	BookingCode       string          `json:"booking_code"`
	Units             string          `json:"units"`
	Cancel            *CancelPolicy   `json:"cancel,omitempty"`
	Image             string          `json:"image,omitempty"`
	ShortDesc         string          `json:"short_desc,omitempty"`
	Services          []CodeName      `json:"services,omitempty"`
	Flights           []FlightSegment `json:"flights,omitempty"`
	FlightDirection   string          `json:"flight_direction,omitempty"`
	DepartureLocation string          `json:"departure_location,omitempty"`
}

// Bookable reports whether the availability status marks the offer as
// sellable. The status is free text and case-insensitive on the wire.
func (o Offer) Bookable() bool {
	switch strings.ToLower(strings.TrimSpace(o.Status)) {
	case "availableforsale", "available":
		return true
	}
	return false
}

// PropertyInfo mirrors the BasicPropertyInfo block of a response.
type PropertyInfo struct {
	ChainCode       string `json:"chain_code"`
	Code            string `json:"tour_activity_code"`
	Name            string `json:"tour_activity_name"`
	CityCode        string `json:"tour_activity_city_code"`
	ProductType     string `json:"product_type"`
	ProductTypeName string `json:"product_type_name"`
	CategoryCode    string `json:"category_code"`
	CategoryDetail  string `json:"category_detail"`
	City            string `json:"city"`
	State           string `json:"state"`
	Country         string `json:"country"`
	CountryCode     string `json:"country_code"`
}

// AvailabilityResult is a parsed Availability response. When OK is false
// the error fields are set and Offers is empty; partial data is never
// returned alongside an error.
type AvailabilityResult struct {
	OK                bool            `json:"ok"`
	ErrorCode         string          `json:"error_code,omitempty"`
	ErrorText         string          `json:"error_text,omitempty"`
	Start             string          `json:"start"`
	End               string          `json:"end"`
	Nights            int             `json:"nights"`
	MarketCode        string          `json:"market_code"`
	DepartureLocation CodeName        `json:"departure_location"`
	Property          PropertyInfo    `json:"property"`
	Images            []string        `json:"images"`
	MainImage         string          `json:"image_main"`
	Note              string          `json:"note"`
	AgeBands          []AgeBand       `json:"age_bands"`
	FlightDirection   string          `json:"flight_direction"`
	Flights           []FlightSegment `json:"flights"`
	Offers            []Offer         `json:"offers"`
	Warnings          []string        `json:"warnings,omitempty"`
}

type ReservationID struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type GuestEcho struct {
	RPH       string `json:"rph"`
	BirthDate string `json:"birth"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

type ItineraryEntry struct {
	Label       string   `json:"label"`
	Text        string   `json:"text"`
	Destination CodeName `json:"dest"`
}

type RatePlanInfo struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Meals string `json:"meals"`
}

type QuoteProduct struct {
	ChainCode      string `json:"chain_code"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	CityCode       string `json:"city_code"`
	ProductType    string `json:"type"`
	TypeCode       string `json:"type_code"`
	TypeName       string `json:"type_name"`
	CategoryCode   string `json:"category_code"`
	CategoryDetail string `json:"category_detail"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	CountryCode    string `json:"country_code"`
	Latitude       string `json:"lat"`
	Longitude      string `json:"lng"`
}

// QuoteResult is the parsed outcome of a Quote reservation call.
type QuoteResult struct {
	Success        bool             `json:"success"`
	Errors         []string         `json:"errors"`
	Total          string           `json:"total"`
	Currency       string           `json:"currency"`
	BookingCode    string           `json:"booking_code"`
	Product        QuoteProduct     `json:"product"`
	Room           CodeName         `json:"room"`
	RatePlan       RatePlanInfo     `json:"rateplan"`
	Start          string           `json:"start"`
	End            string           `json:"end"`
	Flights        []FlightSegment  `json:"flights"`
	Itinerary      []ItineraryEntry `json:"itinerary"`
	Images         []string         `json:"images"`
	Note           string           `json:"note"`
	AgeBands       []AgeBand        `json:"age_bands"`
	Cancel         *CancelPolicy    `json:"cancel_policy,omitempty"`
	ReservationIDs []ReservationID  `json:"res_ids"`
	Guests         []GuestEcho      `json:"guests"`
}
