package ota

import (
	"strings"
	"time"
)

// ParseAvailability normalizes an availability response. A supplier error
// block or malformed XML yields OK=false; the caller downgrades that to a
// warning when probing several departure airports.
func ParseAvailability(raw []byte) AvailabilityResult {
	res := AvailabilityResult{
		Images:   []string{},
		AgeBands: []AgeBand{},
		Flights:  []FlightSegment{},
		Offers:   []Offer{},
	}

	root, err := DecodeNode(raw)
	if err != nil {
		res.ErrorCode = "PARSE"
		res.ErrorText = err.Error()
		return res
	}
	if e := root.Find("Errors", "Error"); e != nil {
		res.ErrorCode = e.Attr("Code")
		res.ErrorText = firstNonEmpty(e.Attr("ShortText"), e.TextContent())
		return res
	}
	res.OK = true

	var activities []*Node
	root.FindEach([]string{"Activities", "Activity"}, func(n *Node) {
		activities = append(activities, n)
	})
	if len(activities) == 0 {
		return res
	}

	first := activities[0]
	if ts := first.Find("TimeSpan"); ts != nil {
		res.Start = ts.Attr("Start")
		res.End = ts.Attr("End")
		res.Nights = nightsBetween(res.Start, res.End)
	}
	res.MarketCode = first.Attr("MarketCode")
	if dl := first.Find("DepartureLocations", "DepartureLocation"); dl != nil {
		res.DepartureLocation = CodeName{Code: dl.Attr("LocationCode"), Name: dl.TextContent()}
	}
	res.Property = parseProperty(first.Find("BasicPropertyInfo"))

	first.FindEach([]string{"TPA_Extensions", "ImageItems", "URL"}, func(n *Node) {
		if url := n.TextContent(); url != "" {
			res.Images = append(res.Images, url)
		}
	})
	res.Images = dedupe(res.Images)
	if len(res.Images) > 0 {
		res.MainImage = res.Images[0]
	}
	res.Note = noteText(first)

	first.FindEach([]string{"PriceAgeBands", "PriceAgeBand"}, func(n *Node) {
		res.AgeBands = append(res.AgeBands, AgeBand{Min: n.Attr("min"), Max: n.Attr("max")})
	})

	res.FlightDirection, res.Flights = parseAirItinerary(first)

	for _, act := range activities {
		res.Offers = append(res.Offers, parseActivityOffer(act))
	}
	return res
}

func parseActivityOffer(act *Node) Offer {
	o := Offer{}

	if ts := act.Find("TimeSpan"); ts != nil {
		o.Start = ts.Attr("Start")
		o.End = ts.Attr("End")
	}

	if bpi := act.Find("BasicPropertyInfo"); bpi != nil {
		o.ProductName = bpi.Attr("TourActivityName")
		o.TourActivityCode = bpi.Attr("TourActivityCode")
	}

	// Every ActivityType maps a room code to its description; the offer's
	// own room resolves through this map.
	services := map[string]string{}
	act.FindEach([]string{"ActivityTypes", "ActivityType"}, func(at *Node) {
		code := at.Attr("ActivityTypeCode")
		desc := ""
		if t := at.Find("ActivityDescription", "Text"); t != nil {
			desc = t.TextContent()
		}
		if code != "" && desc != "" {
			services[code] = desc
			o.Services = append(o.Services, CodeName{Code: code, Name: desc})
		}
		if o.Units == "" {
			o.Units = at.Attr("NumberOfUnits")
		}
	})

	if rp := act.Find("RatePlans", "RatePlan"); rp != nil {
		o.RatePlanCode = rp.Attr("RatePlanCode")
		o.RatePlanName = rp.Attr("RatePlanName")
		if mi := rp.Find("MealsIncluded"); mi != nil {
			o.MealPlanCodes = mi.Attr("MealPlanCodes")
		}
	}

	ar := act.Find("ActivityRates", "ActivityRate")
	if ar != nil {
		o.BookingCode = ar.Attr("BookingCode")
		if o.RoomCode == "" {
			o.RoomCode = ar.Attr("ActivityTypeCode")
		}
		if o.RatePlanCode == "" {
			o.RatePlanCode = ar.Attr("RatePlanCode")
		}
		o.Status = ar.Attr("AvailabilityStatus")
		if o.Units == "" {
			o.Units = ar.Attr("NumberOfUnits")
		}
	}
	if o.BookingCode == "" {
		if ap := act.Find("ActivityPrices", "ActivityPrice"); ap != nil {
			o.BookingCode = ap.Attr("BookingCode")
		}
	}
	if o.Status == "" {
		o.Status = act.Attr("AvailabilityStatus")
	}

	// Older backends omit ActivityTypeCode on the rate; the room code then
	// comes from the second segment of the booking code.
	if o.RoomCode == "" {
		if parts := strings.Split(o.BookingCode, "|"); len(parts) >= 2 {
			o.RoomCode = parts[1]
		}
	}
	o.RoomName = services[o.RoomCode]
	if o.RoomName == "" {
		if t := act.Find("ActivityTypes", "ActivityType", "ActivityDescription", "Text"); t != nil {
			o.RoomName = t.TextContent()
		}
	}

	o.Price, o.Currency = ResolvePrice(act)

	if img := act.Find("TPA_Extensions", "ImageItems", "ImageItem", "ImageFormat", "URL"); img != nil {
		o.Image = img.TextContent()
	}
	o.ShortDesc = shortDescription(act)
	o.FlightDirection, o.Flights = parseAirItinerary(act)
	o.Cancel = parseCancelPolicy(act)
	return o
}

func parseProperty(bpi *Node) PropertyInfo {
	if bpi == nil {
		return PropertyInfo{}
	}
	p := PropertyInfo{
		ChainCode:       bpi.Attr("ChainCode"),
		Code:            bpi.Attr("TourActivityCode"),
		Name:            bpi.Attr("TourActivityName"),
		CityCode:        bpi.Attr("TourActivityCityCode"),
		ProductType:     bpi.Attr("ProductType"),
		ProductTypeName: bpi.Attr("ProductTypeName"),
		CategoryCode:    bpi.Attr("CategoryCode"),
		CategoryDetail:  bpi.Attr("CategoryCodeDetail"),
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
	return p
}

// noteText resolves the short description: the NOTE text item first, then
// any text item, then any bare description.
func noteText(scope *Node) string {
	for _, ti := range scope.FindAll("TextItem") {
		if ti.Attr("SourceID") != "NOTE" {
			continue
		}
		if d := ti.Find("Description"); d != nil && d.TextContent() != "" {
			return d.TextContent()
		}
	}
	return ""
}

func shortDescription(scope *Node) string {
	if s := noteText(scope); s != "" {
		return s
	}
	if d := scope.Find("TextItems", "TextItem", "Description"); d != nil && d.TextContent() != "" {
		return d.TextContent()
	}
	if d := scope.Find("Description"); d != nil && d.TextContent() != "" {
		return d.TextContent()
	}
	return ""
}

func parseAirItinerary(scope *Node) (direction string, segments []FlightSegment) {
	detail := scope.Find("AirItineraries", "AirItineraryDetail")
	if detail == nil {
		return "", nil
	}
	direction = detail.Attr("DirectionInd")
	for _, od := range detail.FindAll("OriginDestinationOption") {
		rph := od.Attr("RPH")
		for _, seg := range od.FindAll("FlightSegment") {
			segments = append(segments, parseFlightSegment(seg, rph))
		}
	}
	// Some responses skip the OriginDestinationOption level entirely.
	if len(segments) == 0 {
		for _, seg := range detail.FindAll("FlightSegment") {
			segments = append(segments, parseFlightSegment(seg, ""))
		}
	}
	return direction, segments
}

func parseFlightSegment(seg *Node, odRPH string) FlightSegment {
	fs := FlightSegment{
		ODRPH:         odRPH,
		DepartureTime: seg.Attr("DepartureDateTime"),
		ArrivalTime:   seg.Attr("ArrivalDateTime"),
		FlightNumber:  seg.Attr("FlightNumber"),
		BookingClass:  seg.Attr("ResBookDesigCode"),
	}
	if dep := seg.Find("DepartureAirport"); dep != nil {
		fs.Departure = CodeName{Code: dep.Attr("LocationCode"), Name: dep.Attr("LocationName")}
	}
	if arr := seg.Find("ArrivalAirport"); arr != nil {
		fs.Arrival = CodeName{Code: arr.Attr("LocationCode"), Name: arr.Attr("LocationName")}
	}
	if op := seg.Find("OperatingAirline"); op != nil {
		fs.Operating = CodeName{Code: op.Attr("Code"), Name: op.Attr("CompanyShortName")}
	}
	if mk := seg.Find("MarketingAirline"); mk != nil {
		fs.Marketing = CodeName{Code: mk.Attr("Code"), Name: mk.Attr("CompanyShortName")}
	}
	if bag := seg.Find("TPA_Extensions", "Baggage", "Weight"); bag != nil {
		fs.BaggageKg = bag.Attr("Weight")
	}
	return fs
}

func parseCancelPolicy(scope *Node) *CancelPolicy {
	cp := scope.Find("CancelPenalties", "CancelPenalty")
	if cp == nil {
		return nil
	}
	out := &CancelPolicy{
		NonRefundable: equalsTrue(cp.Attr("NonRefundable")),
	}
	if dl := cp.Find("Deadline"); dl != nil {
		out.DeadlineUnit = dl.Attr("OffsetTimeUnit")
		out.DeadlineMultiplier = dl.Attr("OffsetUnitMultiplier")
		out.DeadlineDropTime = dl.Attr("OffsetDropTime")
	}
	if ap := cp.Find("AmountPercent"); ap != nil {
		out.PenaltyPercent = ap.Attr("Percent")
		out.PenaltyBasis = ap.Attr("BasisType")
	}
	return out
}

func equalsTrue(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

func nightsBetween(start, end string) int {
	from, err1 := time.Parse(dateLayout, trimDate(start))
	to, err2 := time.Parse(dateLayout, trimDate(end))
	if err1 != nil || err2 != nil {
		return 0
	}
	n := int(to.Sub(from).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
