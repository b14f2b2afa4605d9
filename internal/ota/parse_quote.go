package ota

import (
	"fmt"
	"strings"
)

// ParseQuote normalizes a Quote reservation response. Success requires
// both an error-free response and a priced total.
func ParseQuote(raw []byte) QuoteResult {
	q := QuoteResult{
		Errors:         []string{},
		Flights:        []FlightSegment{},
		Itinerary:      []ItineraryEntry{},
		Images:         []string{},
		AgeBands:       []AgeBand{},
		ReservationIDs: []ReservationID{},
		Guests:         []GuestEcho{},
	}

	root, err := DecodeNode(raw)
	if err != nil {
		q.Errors = append(q.Errors, fmt.Sprintf("parse error: %v", err))
		return q
	}
	q.Errors = append(q.Errors, collectErrors(root)...)

	if ar := root.Find("ActivityRate"); ar != nil {
		q.BookingCode = ar.Attr("BookingCode")
		if tot := ar.Find("Total"); tot != nil {
			q.Total = tot.Attr("AmountAfterTax", "AmountBeforeTax")
			q.Currency = tot.Attr("CurrencyCode")
		}
	}

	if at := root.Find("ActivityTypes", "ActivityType"); at != nil {
		q.Room.Code = at.Attr("ActivityTypeCode")
		if t := at.Find("ActivityDescription", "Text"); t != nil {
			q.Room.Name = t.TextContent()
		}
	}

	if rp := root.Find("RatePlans", "RatePlan"); rp != nil {
		q.RatePlan.Code = rp.Attr("RatePlanCode")
		q.RatePlan.Name = rp.Attr("RatePlanName")
		if mi := rp.Find("MealsIncluded"); mi != nil {
			q.RatePlan.Meals = mi.Attr("MealPlanCodes")
		}
	}

	if ts := root.Find("TimeSpan"); ts != nil {
		q.Start = ts.Attr("Start")
		q.End = ts.Attr("End")
	}

	q.Product = parseQuoteProduct(root.Find("BasicPropertyInfo"))

	root.FindEach([]string{"ImageItems", "URL"}, func(n *Node) {
		if url := n.TextContent(); url != "" {
			q.Images = append(q.Images, url)
		}
	})
	q.Images = dedupe(q.Images)

	var notes []string
	for _, ti := range root.FindAll("TextItem") {
		if ti.Attr("SourceID") != "NOTE" {
			continue
		}
		for _, d := range ti.FindAll("Description") {
			if s := d.TextContent(); s != "" {
				notes = append(notes, s)
			}
		}
	}
	q.Note = strings.Join(notes, "\n")

	root.FindEach([]string{"PriceAgeBands", "PriceAgeBand"}, func(n *Node) {
		q.AgeBands = append(q.AgeBands, AgeBand{Min: n.Attr("min"), Max: n.Attr("max")})
	})

	if detail := root.Find("AirItineraryDetail"); detail != nil {
		for _, seg := range detail.FindAll("FlightSegment") {
			q.Flights = append(q.Flights, parseFlightSegment(seg, ""))
		}
	}

	root.FindEach([]string{"Itineraries", "Itinerary"}, func(it *Node) {
		entry := ItineraryEntry{Label: it.Attr("LocalityName")}
		if d := it.Find("TextItems", "TextItem", "Description"); d != nil {
			entry.Text = d.TextContent()
		}
		if dest := it.Find("Destinations", "Destination"); dest != nil {
			entry.Destination = CodeName{Code: dest.Attr("Code"), Name: dest.Attr("Name")}
		}
		q.Itinerary = append(q.Itinerary, entry)
	})

	q.Cancel = parseCancelPolicy(root)

	root.FindEach([]string{"TourActivityReservationIDs", "TourActivityReservationID"}, func(n *Node) {
		q.ReservationIDs = append(q.ReservationIDs, ReservationID{
			Type:  n.Attr("ResID_Type"),
			Value: n.Attr("ResID_Value"),
		})
	})

	root.FindEach([]string{"ResGuests", "ResGuest"}, func(rg *Node) {
		guest := GuestEcho{RPH: rg.Attr("ResGuestRPH")}
		if cust := rg.Find("Customer"); cust != nil {
			guest.BirthDate = cust.Attr("BirthDate")
		}
		given, surname := "", ""
		if n := rg.Find("PersonName", "GivenName"); n != nil {
			given = n.TextContent()
		}
		if n := rg.Find("PersonName", "Surname"); n != nil {
			surname = n.TextContent()
		}
		guest.Name = strings.TrimSpace(given + " " + surname)
		if n := rg.Find("Email"); n != nil {
			guest.Email = n.TextContent()
		}
		q.Guests = append(q.Guests, guest)
	})

	q.Success = len(q.Errors) == 0 && q.Total != ""
	return q
}

func parseQuoteProduct(bpi *Node) QuoteProduct {
	if bpi == nil {
		return QuoteProduct{}
	}
	p := QuoteProduct{
		ChainCode:      bpi.Attr("ChainCode"),
		Code:           bpi.Attr("TourActivityCode"),
		Name:           bpi.Attr("TourActivityName"),
		CityCode:       bpi.Attr("TourActivityCityCode"),
		ProductType:    bpi.Attr("ProductType"),
		TypeCode:       bpi.Attr("ProductTypeCode"),
		TypeName:       bpi.Attr("ProductTypeName"),
		CategoryCode:   bpi.Attr("CategoryCode"),
		CategoryDetail: bpi.Attr("CategoryCodeDetail"),
	}
	if addr := bpi.Find("Address"); addr != nil {
		if c := addr.Find("CityName"); c != nil {
			p.City = c.TextContent()
		}
		if s := addr.Find("StateProv"); s != nil {
			p.State = s.TextContent()
		}
		if c := addr.Find("CountryName"); c != nil {
			p.Country = c.TextContent()
			p.CountryCode = c.Attr("Code")
		}
	}
	if pos := bpi.Find("Position"); pos != nil {
		p.Latitude = pos.Attr("Latitude")
		p.Longitude = pos.Attr("Longitude")
	}
	return p
}
