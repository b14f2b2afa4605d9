package ota

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// ProductFilter narrows a catalog request down to a single product or a city.
type ProductFilter struct {
	TourActivityCode string
	CityCode         string
}

// AvailabilityParams carries everything a single availability probe needs.
// Start is an ISO date; LengthsOfStay lists every stay length to quote in
// one round trip.
type AvailabilityParams struct {
	CityCode          string
	DepartureLocation string
	TourActivityCode  string
	Start             string
	LengthsOfStay     []int
	Quantity          int
	Adults            int
	ChildrenAges      []int
}

// Guest is one traveller profile echoed into a quote request.
type Guest struct {
	RPH       string
	GivenName string
	Surname   string
	Email     string
	BirthDate string
}

// QuoteParams drives a Quote-status reservation request. The supplier prices
// the booking code without committing inventory.
type QuoteParams struct {
	BookingCode  string
	RatePlanCode string
	Start        string
	End          string
	Guests       []Guest
	ResIDValue   string
}

func (c Connection) pos() pos {
	return pos{Source: source{RequestorID: requestorID{
		ID:              c.RequestorID,
		MessagePassword: c.MessagePassword,
	}}}
}

func marshalDocument(doc any) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// BuildProductRequest renders the catalog listing request. An empty filter
// asks for the whole chain catalog.
func BuildProductRequest(c Connection, f ProductFilter) ([]byte, error) {
	return marshalDocument(productRQ{
		Xmlns:         Namespace,
		Target:        c.Target,
		PrimaryLangID: c.PrimaryLang,
		POS:           c.pos(),
		Products: productsFilter{
			ChainCode:            c.ChainCode,
			ProductType:          c.ProductType,
			CategoryCode:         c.CategoryCode,
			TourActivityCode:     f.TourActivityCode,
			TourActivityCityCode: f.CityCode,
		},
	})
}

// BuildSearchByCodeRequest renders a lookup by supplier product code,
// optionally constrained to one destination city.
func BuildSearchByCodeRequest(c Connection, productCode, cityCode string) ([]byte, error) {
	doc := searchRQ{
		Xmlns:         Namespace,
		Target:        c.Target,
		PrimaryLangID: c.PrimaryLang,
		POS:           c.pos(),
		Criteria: searchCriteria{
			BasicInfo: searchBasicInfo{SupplierProductCode: productCode},
		},
	}
	if cityCode != "" {
		doc.Criteria.Constraints = &searchConstraints{City: cityConstraint{Code: cityCode}}
	}
	return marshalDocument(doc)
}

// BuildDescriptiveInfoRequest renders the content request for one product.
// Image items are always requested; the caller decides whether to use them.
func BuildDescriptiveInfoRequest(c Connection, tourActivityCode string) ([]byte, error) {
	return marshalDocument(descriptiveInfoRQ{
		Xmlns:             Namespace,
		Target:            c.Target,
		PrimaryLangID:     c.PrimaryLang,
		MarketCountryCode: c.MarketCountry,
		POS:               c.pos(),
		Infos: descriptiveInfoItems{Info: descriptiveInfoItem{
			ChainCode:        c.ChainCode,
			TourActivityCode: tourActivityCode,
			TPAExtensions:    imageItemsExt{ReturnImageItems: "true"},
		}},
	})
}

// BuildAvailabilityRequest renders one availability probe. The stay window
// end is derived from the first requested length of stay; every length is
// still carried as its own LengthOfStay element so the supplier prices all
// of them.
func BuildAvailabilityRequest(c Connection, p AvailabilityParams) ([]byte, error) {
	if p.Start == "" {
		return nil, fmt.Errorf("availability request: start date is required")
	}
	lengths := p.LengthsOfStay
	if len(lengths) == 0 {
		lengths = []int{c.LOSMin}
	}
	start, err := time.Parse(dateLayout, p.Start)
	if err != nil {
		return nil, fmt.Errorf("availability request: bad start date %q: %w", p.Start, err)
	}
	end := start.AddDate(0, 0, lengths[0])

	quantity := p.Quantity
	if quantity < 1 {
		quantity = 1
	}
	counts := guestCountsFor(p.Adults, p.ChildrenAges)

	return marshalDocument(availRQ{
		Xmlns:             Namespace,
		Target:            c.Target,
		PrimaryLangID:     c.PrimaryLang,
		MarketCountryCode: c.MarketCountry,
		POS:               c.pos(),
		Segments: availSegments{Segment: availSegment{
			Criteria: availCriteria{Criterion: availCriterion{
				Ref: tourActivityRef{
					ChainCode:            c.ChainCode,
					ProductType:          c.ProductType,
					CategoryCode:         c.CategoryCode,
					TourActivityCityCode: p.CityCode,
					DepartureLocation:    p.DepartureLocation,
					TourActivityCode:     p.TourActivityCode,
				},
				LengthsOfStay: lengths,
			}},
			StayRange: stayDateRange{
				Start: start.Format(dateLayout),
				End:   end.Format(dateLayout),
			},
			Candidates: activityCandidates{Candidate: activityCandidate{
				Quantity:    strconv.Itoa(quantity),
				RPH:         "01",
				GuestCounts: guestCounts{Counts: counts},
			}},
		}},
	})
}

// guestCountsFor expands party composition into per-guest GuestCount entries.
// Adults are reported with a fixed nominal age; the supplier only
// distinguishes adult and child bands.
func guestCountsFor(adults int, childrenAges []int) []guestCount {
	var counts []guestCount
	for i := 0; i < adults; i++ {
		counts = append(counts, guestCount{Age: "50", Count: "1"})
	}
	for _, age := range childrenAges {
		counts = append(counts, guestCount{Age: strconv.Itoa(age), Count: "1"})
	}
	if len(counts) == 0 {
		counts = append(counts, guestCount{Age: "50", Count: "1"})
	}
	return counts
}

// BuildQuoteRequest renders a Quote-status reservation for a booking code.
// The total is sent as zero; the supplier replies with the real price.
func BuildQuoteRequest(c Connection, p QuoteParams) ([]byte, error) {
	if p.BookingCode == "" {
		return nil, fmt.Errorf("quote request: booking code is required")
	}

	var rphs []string
	var guests []resGuest
	for _, g := range p.Guests {
		rphs = append(rphs, g.RPH)
		guests = append(guests, resGuest{
			ResGuestRPH: g.RPH,
			Profiles: resProfiles{ProfileInfo: resProfileInfo{Profile: resProfile{
				Customer: resCustomer{
					BirthDate: g.BirthDate,
					PersonName: resPersonName{
						GivenName: g.GivenName,
						Surname:   g.Surname,
					},
					Email: g.Email,
				},
			}}},
		})
	}

	doc := resRQ{
		Xmlns:             Namespace,
		ResStatus:         "Quote",
		Target:            c.Target,
		PrimaryLangID:     c.PrimaryLang,
		MarketCountryCode: c.MarketCountry,
		POS:               c.pos(),
		Reservations: resReservations{Reservation: resReservation{
			Activities: resActivities{Activity: resActivity{
				Rates: resActivityRates{Rate: resActivityRate{
					BookingCode:  p.BookingCode,
					RatePlanCode: p.RatePlanCode,
					Total:        resTotal{AmountAfterTax: "0.00", CurrencyCode: "EUR"},
				}},
				TimeSpan:     stayDateRange{Start: p.Start, End: p.End},
				PropertyInfo: resPropertyInfo{ChainCode: c.ChainCode},
				GuestRPHs:    resGuestRPHs{RPHs: rphs},
			}},
			ResGuests: resGuests{Guests: guests},
		}},
	}
	if p.ResIDValue != "" {
		doc.Reservations.Reservation.GlobalInfo = &resGlobalInfo{
			ReservationIDs: resReservationIDs{ID: resReservationID{
				ResIDType:  "16",
				ResIDValue: p.ResIDValue,
			}},
		}
	}
	return marshalDocument(doc)
}
