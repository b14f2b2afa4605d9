package search

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"touravail/internal/ota"
	"touravail/pkg/cache"
	"touravail/pkg/idgen"
	"touravail/pkg/logger"
)

// SupplierClient is the slice of the OTA client the search service needs.
type SupplierClient interface {
	Availability(ctx context.Context, p ota.AvailabilityParams) (ota.AvailabilityResult, error)
	RoomOptions(ctx context.Context, p ota.AvailabilityParams) (string, []ota.RoomOption, error)
	Quote(ctx context.Context, p ota.QuoteParams) (ota.QuoteResult, error)
	DescriptiveInfo(ctx context.Context, code string) (*ota.DescriptiveDetail, error)
	GalleryImages(ctx context.Context, code string) []string
	Connection() ota.Connection
}

type Service struct {
	supplier SupplierClient
	resolver *Resolver
	products ProductCatalog
	cache    cache.Cache
	ttl      time.Duration
	ids      idgen.Generator
	logger   logger.Client
}

func NewService(supplier SupplierClient, resolver *Resolver, products ProductCatalog,
	cache cache.Cache, ttlMinutes int, ids idgen.Generator, logger logger.Client) *Service {
	return &Service{
		supplier: supplier,
		resolver: resolver,
		products: products,
		cache:    cache,
		ttl:      time.Duration(ttlMinutes) * time.Minute,
		ids:      ids,
		logger:   logger,
	}
}

const dateLayout = "2006-01-02"

// normalizeRequest fills derivable fields in place and rejects requests
// that cannot be turned into a supplier query.
func (s *Service) normalizeRequest(req *SearchRequest, conn ota.Connection) *AppError {
	req.Destination = strings.ToUpper(strings.TrimSpace(req.Destination))
	req.DepartureAirport = strings.TrimSpace(req.DepartureAirport)
	req.ProductCode = strings.TrimSpace(req.ProductCode)
	req.StartDate = strings.TrimSpace(req.StartDate)
	req.EndDate = strings.TrimSpace(req.EndDate)

	if req.Destination == "" && req.ProductCode == "" {
		return badRequest(ErrorCodeMissingDest, "destination or product_code is required")
	}
	if req.StartDate == "" {
		return badRequest(ErrorCodeMissingStartDate, "start_date is required")
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return badRequest(ErrorCodeValidation, "start_date must be YYYY-MM-DD")
	}

	if req.Nights <= 0 && req.EndDate != "" {
		end, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return badRequest(ErrorCodeValidation, "end_date must be YYYY-MM-DD")
		}
		req.Nights = int(end.Sub(start).Hours() / 24)
	}
	if req.Nights == 0 {
		req.Nights = conn.LOSMin
	}
	if req.Nights <= 0 {
		return badRequest(ErrorCodeInvalidNights, "nights must be positive")
	}
	if req.EndDate == "" {
		req.EndDate = start.AddDate(0, 0, req.Nights).Format(dateLayout)
	}

	if req.Rooms <= 0 {
		req.Rooms = 1
	}
	if req.Adults <= 0 {
		req.Adults = 2
	}
	return nil
}

func (s *Service) cacheKey(req SearchRequest) string {
	key := fmt.Sprintf("avail:%s:%s:%s:%s:%s:%d:%d:%d:%v",
		req.Destination,
		req.DepartureAirport,
		req.ProductCode,
		req.StartDate,
		req.EndDate,
		req.Nights,
		req.Rooms,
		req.Adults,
		req.ChildrenAges,
	)

	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("avail:search:%x", hash[:16])
}

type airportResult struct {
	airport string
	res     ota.AvailabilityResult
	err     error
}

// SearchAvailability fans one availability query out to every resolved
// departure airport, tolerates per-airport failures, and aggregates the
// surviving offers into product groups.
func (s *Service) SearchAvailability(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	conn := s.supplier.Connection()
	if missing := conn.Missing(); len(missing) > 0 {
		return nil, unavailable(ErrorCodeIncompleteConfig,
			"supplier connection incomplete: "+strings.Join(missing, ", "))
	}
	if appErr := s.normalizeRequest(&req, conn); appErr != nil {
		return nil, appErr
	}

	cacheKey := s.cacheKey(req)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			var response SearchResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.Metadata.CacheHit = true
				response.Metadata.CacheKey = cacheKey
				return &response, nil
			}
			s.logger.Error("SearchAvailability", logger.Field{Key: "err_unmarshal", Value: err})
		}
	}

	airports, err := s.resolver.Departures(ctx, req)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	results := make([]airportResult, len(airports))
	var wg sync.WaitGroup
	for i, apt := range airports {
		wg.Add(1)
		go func(i int, apt string) {
			defer wg.Done()
			res, err := s.supplier.Availability(ctx, ota.AvailabilityParams{
				CityCode:          req.Destination,
				DepartureLocation: apt,
				TourActivityCode:  req.ProductCode,
				Start:             req.StartDate,
				LengthsOfStay:     []int{req.Nights},
				Quantity:          req.Rooms,
				Adults:            req.Adults,
				ChildrenAges:      req.ChildrenAges,
			})
			results[i] = airportResult{airport: apt, res: res, err: err}
		}(i, apt)
	}
	wg.Wait()

	meta := Metadata{AirportsQueried: airports}
	agg := newAggregator()
	for _, r := range results {
		if r.err != nil {
			meta.AirportsFailed++
			meta.Warnings = append(meta.Warnings, fmt.Sprintf("%s: %v", r.airport, r.err))
			s.logger.Warn("SearchAvailability",
				logger.Field{Key: "airport", Value: r.airport}, logger.Err(r.err))
			continue
		}
		if !r.res.OK {
			meta.AirportsFailed++
			meta.Warnings = append(meta.Warnings,
				strings.TrimSpace(fmt.Sprintf("%s: %s %s", r.airport, r.res.ErrorCode, r.res.ErrorText)))
			continue
		}
		meta.AirportsSucceeded++

		for _, offer := range r.res.Offers {
			if offer.Start == "" {
				offer.Start = r.res.Start
			}
			if offer.End == "" {
				offer.End = r.res.End
			}
			// Suppliers may answer with alternative stays around the
			// requested window; only the exact window is comparable
			// across airports.
			if !matchDate(offer.Start, req.StartDate) || !matchDate(offer.End, req.EndDate) {
				continue
			}
			if !offer.Bookable() {
				continue
			}
			offer.DepartureLocation = r.airport
			agg.Add(offer)
			meta.TotalOffers++
		}
	}

	groups := agg.Finish(func(core string) bool {
		return s.products != nil && s.products.IsRecommended(ctx, core)
	})
	if len(groups) == 0 {
		meta.Warnings = append(meta.Warnings,
			"no bookable offers from "+strings.Join(airports, ", "))
	}
	meta.TotalGroups = uint32(len(groups))
	meta.SearchTimeMs = uint32(time.Since(startTime).Milliseconds())
	meta.CacheKey = cacheKey

	response := &SearchResponse{Metadata: meta, Groups: groups}

	if s.cache != nil {
		responseBytes, err := json.Marshal(response)
		if err != nil {
			s.logger.Error("SearchAvailability", logger.Field{Key: "err_marshal", Value: err})
			return response, nil
		}
		if err := s.cache.Set(ctx, cacheKey, string(responseBytes), s.ttl); err != nil {
			s.logger.Error("SearchAvailability", logger.Field{Key: "err_set_cache", Value: err})
		}
	}

	return response, nil
}

// matchDate compares the date part of two datetime strings. An empty
// offer date never disqualifies the offer.
func matchDate(got, want string) bool {
	got = strings.TrimSpace(got)
	if got == "" {
		return true
	}
	if len(got) > 10 {
		got = got[:10]
	}
	if len(want) > 10 {
		want = want[:10]
	}
	return got == want
}
