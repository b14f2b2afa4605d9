package search

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"touravail/internal/catalog"
	"touravail/internal/ota"
	"touravail/pkg/logger"
)

// ProductDetail loads the room and rate plan options for one package on
// a fixed stay window, deduplicated down to the cheapest offer per
// combination.
func (s *Service) ProductDetail(ctx context.Context, req DetailRequest) (*DetailResponse, error) {
	conn := s.supplier.Connection()
	if missing := conn.Missing(); len(missing) > 0 {
		return nil, unavailable(ErrorCodeIncompleteConfig,
			"supplier connection incomplete: "+strings.Join(missing, ", "))
	}

	req.PackageCode = strings.TrimSpace(req.PackageCode)
	if req.PackageCode == "" {
		return nil, badRequest(ErrorCodeValidation, "package_code is required")
	}
	start, _, nights, appErr := stayWindow(req.StartDate, req.EndDate, req.Nights, conn)
	if appErr != nil {
		return nil, appErr
	}
	if req.Rooms <= 0 {
		req.Rooms = 1
	}
	if req.Adults <= 0 {
		req.Adults = 2
	}

	name, options, err := s.supplier.RoomOptions(ctx, ota.AvailabilityParams{
		TourActivityCode: req.PackageCode,
		Start:            start,
		LengthsOfStay:    []int{nights},
		Quantity:         req.Rooms,
		Adults:           req.Adults,
		ChildrenAges:     req.ChildrenAges,
	})
	if err != nil {
		return nil, upstream("availability lookup failed: " + err.Error())
	}

	options = dedupeOptions(options)

	return &DetailResponse{
		PackageCode:     req.PackageCode,
		ProductName:     name,
		Gallery:         s.gallery(ctx, req.PackageCode, req.Image),
		DefaultRoomCode: defaultRoomCode(options),
		Options:         options,
	}, nil
}

// dedupeOptions keeps the cheapest option per booking code, or per
// room/rate-plan combination when the supplier omitted booking codes,
// and sorts the survivors for display.
func dedupeOptions(options []ota.RoomOption) []ota.RoomOption {
	type slot struct {
		index int
		price float64
	}
	best := map[string]slot{}
	out := make([]ota.RoomOption, 0, len(options))
	for _, opt := range options {
		key := opt.BookingCode
		if key == "" {
			key = opt.RoomCode + "|" + opt.RatePlanShort + "|" + opt.RatePlanCode
		}
		price := ota.ParseAmount(opt.Price)
		if prev, ok := best[key]; ok {
			if price < prev.price {
				out[prev.index] = opt
				best[key] = slot{index: prev.index, price: price}
			}
			continue
		}
		best[key] = slot{index: len(out), price: price}
		out = append(out, opt)
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := ota.ParseAmount(out[i].Price), ota.ParseAmount(out[j].Price)
		if pi != pj {
			return pi < pj
		}
		if out[i].RoomCode != out[j].RoomCode {
			return out[i].RoomCode < out[j].RoomCode
		}
		return out[i].RatePlanShort < out[j].RatePlanShort
	})
	return out
}

// defaultRoomCode prefers a double room when one is on offer.
func defaultRoomCode(options []ota.RoomOption) string {
	for _, opt := range options {
		if strings.HasPrefix(strings.ToUpper(opt.RoomCode), "DBL") {
			return opt.RoomCode
		}
	}
	if len(options) > 0 {
		return options[0].RoomCode
	}
	return ""
}

// gallery resolves the image set for a package: the package's own
// gallery, then the product core's, then the image echoed by the caller.
func (s *Service) gallery(ctx context.Context, packageCode, fallback string) []string {
	if images := s.supplier.GalleryImages(ctx, packageCode); len(images) > 0 {
		return images
	}
	core, _ := SplitBookingCode(packageCode)
	if core != "" && core != packageCode {
		if images := s.supplier.GalleryImages(ctx, core); len(images) > 0 {
			return images
		}
	}
	if fallback != "" {
		return []string{fallback}
	}
	return []string{}
}

// QuoteByCode re-prices one booking code with synthetic guest profiles
// and echoes the supplier's quote back enriched with a product image.
func (s *Service) QuoteByCode(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	conn := s.supplier.Connection()
	if missing := conn.Missing(); len(missing) > 0 {
		return nil, unavailable(ErrorCodeIncompleteConfig,
			"supplier connection incomplete: "+strings.Join(missing, ", "))
	}

	req.BookingCode = strings.TrimSpace(req.BookingCode)
	if req.BookingCode == "" {
		return nil, badRequest(ErrorCodeValidation, "booking_code is required")
	}
	start, end, _, appErr := stayWindow(req.StartDate, req.EndDate, req.Nights, conn)
	if appErr != nil {
		return nil, appErr
	}
	if req.Adults <= 0 {
		req.Adults = 2
	}

	startDate, _ := time.Parse(dateLayout, start)

	resIDValue := catalog.NormalizeAirport(req.DepartureAirport)
	if resIDValue == "" {
		resIDValue = conn.DepartureDefault
	}
	if resIDValue == "" && s.ids != nil {
		resIDValue = strconv.FormatInt(s.ids.GenerateID(), 10)
	}

	quote, err := s.supplier.Quote(ctx, ota.QuoteParams{
		BookingCode:  req.BookingCode,
		RatePlanCode: strings.TrimSpace(req.RatePlanCode),
		Start:        start,
		End:          end,
		Guests:       syntheticGuests(startDate, req.Adults, req.ChildrenAges),
		ResIDValue:   resIDValue,
	})
	if err != nil {
		return nil, upstream("quote failed: " + err.Error())
	}

	return &QuoteResponse{
		QuoteResult: quote,
		Image:       s.quoteImage(ctx, req, quote),
	}, nil
}

func (s *Service) quoteImage(ctx context.Context, req QuoteRequest, quote ota.QuoteResult) string {
	if req.Image != "" {
		return req.Image
	}
	core, _ := SplitBookingCode(req.BookingCode)
	if s.products != nil && core != "" {
		if image := s.products.ImageForCore(ctx, core); image != "" {
			return image
		}
	}
	if len(quote.Images) > 0 {
		return quote.Images[0]
	}
	return ""
}

// adultAge is the assumed age of placeholder adult guests.
const adultAge = 35

// syntheticGuests fabricates the guest profiles a quote requires when no
// real traveller data exists yet. Birth dates are back-dated from the
// stay start so the supplier computes the same age bands as at check-in.
func syntheticGuests(start time.Time, adults int, childrenAges []int) []ota.Guest {
	guests := make([]ota.Guest, 0, adults+len(childrenAges))
	rph := 0
	for i := 0; i < adults; i++ {
		rph++
		guests = append(guests, ota.Guest{
			RPH:       fmt.Sprintf("%02d", rph),
			GivenName: fmt.Sprintf("Adult%d", i+1),
			Surname:   "Guest",
			Email:     fmt.Sprintf("adult%d@example.invalid", i+1),
			BirthDate: start.AddDate(-adultAge, 0, 0).Format(dateLayout),
		})
	}
	for i, age := range childrenAges {
		rph++
		if age < 0 {
			age = 0
		}
		guests = append(guests, ota.Guest{
			RPH:       fmt.Sprintf("%02d", rph),
			GivenName: fmt.Sprintf("Child%d", i+1),
			Surname:   "Guest",
			Email:     fmt.Sprintf("child%d@example.invalid", i+1),
			BirthDate: start.AddDate(-age, 0, 0).Format(dateLayout),
		})
	}
	return guests
}

// DescriptiveDetail fetches the descriptive content for a product and
// backfills it from the local catalog when the supplier's answer is
// empty or broken.
func (s *Service) DescriptiveDetail(ctx context.Context, code string) (*ota.DescriptiveDetail, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, badRequest(ErrorCodeValidation, "product code is required")
	}

	detail, err := s.supplier.DescriptiveInfo(ctx, code)
	if err == nil && detail.Meaningful() {
		return detail, nil
	}
	if err != nil {
		s.logger.Warn("DescriptiveDetail",
			logger.Field{Key: "code", Value: code}, logger.Err(err))
	}

	core, _ := SplitBookingCode(code)
	var record *ota.ProductRecord
	if s.products != nil && core != "" {
		record, _ = s.products.FindByCode(ctx, core)
	}
	if record == nil {
		if err != nil {
			return nil, upstream("descriptive info failed: " + err.Error())
		}
		return detail, nil
	}

	merged := ota.DetailFromProduct(*record)
	merged.Code = code
	if detail != nil {
		mergeDetail(&merged, detail)
	}
	return &merged, nil
}

// mergeDetail overlays the supplier payload on top of the catalog
// fallback, keeping whichever side has content.
func mergeDetail(dst, src *ota.DescriptiveDetail) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.City != "" {
		dst.City = src.City
	}
	if src.Country != "" {
		dst.Country = src.Country
	}
	if src.Duration != "" {
		dst.Duration = src.Duration
	}
	if src.Notes != "" {
		dst.Notes = src.Notes
	}
	if len(src.Descriptions) > 0 {
		dst.Descriptions = src.Descriptions
	}
	if len(src.Categories) > 0 {
		dst.Categories = src.Categories
	}
	if len(src.Types) > 0 {
		dst.Types = src.Types
	}
	if len(src.PickupNotes) > 0 {
		dst.PickupNotes = src.PickupNotes
	}
	if len(src.ImageURLs) > 0 {
		dst.ImageURLs = src.ImageURLs
	}
	if len(src.Included) > 0 {
		dst.Included = src.Included
	}
	if len(src.Excluded) > 0 {
		dst.Excluded = src.Excluded
	}
}

// stayWindow normalizes a start/end/nights triple the same way for
// detail and quote calls.
func stayWindow(startStr, endStr string, nights int, conn ota.Connection) (start, end string, n int, appErr *AppError) {
	start = strings.TrimSpace(startStr)
	end = strings.TrimSpace(endStr)
	if start == "" {
		return "", "", 0, badRequest(ErrorCodeMissingStartDate, "start_date is required")
	}
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return "", "", 0, badRequest(ErrorCodeValidation, "start_date must be YYYY-MM-DD")
	}

	n = nights
	if n <= 0 && end != "" {
		endDate, err := time.Parse(dateLayout, end)
		if err != nil {
			return "", "", 0, badRequest(ErrorCodeValidation, "end_date must be YYYY-MM-DD")
		}
		n = int(endDate.Sub(startDate).Hours() / 24)
	}
	if n == 0 {
		n = conn.LOSMin
	}
	if n <= 0 {
		return "", "", 0, badRequest(ErrorCodeInvalidNights, "nights must be positive")
	}
	if end == "" {
		end = startDate.AddDate(0, 0, n).Format(dateLayout)
	}
	return start, end, n, nil
}
