package search

import (
	"context"
	"sort"

	"touravail/internal/catalog"
	"touravail/internal/ota"
	"touravail/pkg/logger"
)

// maxDepartures caps the fan-out so one search never floods the supplier.
const maxDepartures = 10

type DepartureSource interface {
	Airports(ctx context.Context, q catalog.DepartureQuery) ([]string, error)
}

type ProductCatalog interface {
	IsRecommended(ctx context.Context, core string) bool
	ImageForCore(ctx context.Context, core string) string
	LegacyAirports(ctx context.Context, core, destination string) ([]string, error)
	FindByCode(ctx context.Context, core string) (*ota.ProductRecord, error)
}

// Resolver decides which departure airports a search fans out to. The
// sources are tried in order of freshness: an explicit airport from the
// request, the departures cache, airport suffixes embedded in legacy
// product codes, and finally the configured default.
type Resolver struct {
	departures DepartureSource
	products   ProductCatalog
	fallback   string
	logger     logger.Client
}

func NewResolver(departures DepartureSource, products ProductCatalog, fallback string, logger logger.Client) *Resolver {
	return &Resolver{
		departures: departures,
		products:   products,
		fallback:   catalog.NormalizeAirport(fallback),
		logger:     logger,
	}
}

func (r *Resolver) Departures(ctx context.Context, req SearchRequest) ([]string, error) {
	if apt := catalog.NormalizeAirport(req.DepartureAirport); apt != "" {
		return []string{apt}, nil
	}

	core, _ := SplitBookingCode(req.ProductCode)

	if r.departures != nil {
		q := catalog.DepartureQuery{
			Destination: req.Destination,
			ProductCore: core,
			Start:       req.StartDate,
			End:         req.EndDate,
			Nights:      req.Nights,
		}
		airports, err := r.departures.Airports(ctx, q)
		if err != nil {
			r.logger.Warn("Departures", logger.Field{Key: "err_cache", Value: err})
		}
		if len(airports) > 0 {
			return capAirports(airports), nil
		}
	}

	if r.products != nil {
		airports, err := r.products.LegacyAirports(ctx, core, req.Destination)
		if err != nil {
			r.logger.Warn("Departures", logger.Field{Key: "err_legacy", Value: err})
		}
		if len(airports) > 0 {
			return capAirports(airports), nil
		}
	}

	if r.fallback != "" {
		return []string{r.fallback}, nil
	}

	return nil, badRequest(ErrorCodeNoDeparture, "no departure airport could be resolved for this search")
}

func capAirports(airports []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(airports))
	for _, a := range airports {
		a = catalog.NormalizeAirport(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	sort.Strings(out)
	if len(out) > maxDepartures {
		out = out[:maxDepartures]
	}
	return out
}
