package search

import (
	"math"
	"sort"
	"strings"

	"touravail/internal/ota"
)

// SplitBookingCode breaks a supplier booking code into its product core
// and departure variant. The code is pipe-delimited and the first part
// optionally carries a "#" separated departure suffix, for example
// "EGSH01#MXP|DBLR|SS-FB" -> ("EGSH01", "MXP").
func SplitBookingCode(code string) (core, variant string) {
	base := strings.TrimSpace(strings.SplitN(code, "|", 2)[0])
	if i := strings.Index(base, "#"); i >= 0 {
		return base[:i], base[i+1:]
	}
	return base, ""
}

type aggregator struct {
	groups map[string]*OfferGroup
	order  []string
}

func newAggregator() *aggregator {
	return &aggregator{groups: map[string]*OfferGroup{}}
}

// Add folds one offer into its product group. Group and solution minimum
// prices only ever decrease; name, image and short description are taken
// from the first offer that carries them.
func (a *aggregator) Add(offer ota.Offer) {
	core, variant := SplitBookingCode(offer.BookingCode)
	if core == "" {
		core = MiscGroupCode
	}

	g, ok := a.groups[core]
	if !ok {
		g = &OfferGroup{
			ProductCore: core,
			Solutions:   []FlightSolution{},
			Offers:      []ota.Offer{},
			minPrice:    math.Inf(1),
		}
		a.groups[core] = g
		a.order = append(a.order, core)
	}

	g.Offers = append(g.Offers, offer)

	price := ota.ParseAmount(offer.Price)
	if price < g.minPrice {
		g.minPrice = price
		g.MinPrice = offer.Price
		g.Currency = offer.Currency
	}
	if g.Name == "" {
		g.Name = offer.ProductName
	}
	if g.Image == "" {
		g.Image = offer.Image
	}
	if g.ShortDesc == "" {
		g.ShortDesc = offer.ShortDesc
	}

	a.upsertSolution(g, offer, variant, price)
}

// upsertSolution records one departure variant of a group. Offers whose
// booking code carries no "#" suffix have no departure of their own and
// never produce a solution.
func (a *aggregator) upsertSolution(g *OfferGroup, offer ota.Offer, variant string, price float64) {
	if variant == "" {
		return
	}
	packageCode := g.ProductCore + "#" + variant

	var sol *FlightSolution
	for i := range g.Solutions {
		if g.Solutions[i].Variant == variant {
			sol = &g.Solutions[i]
			break
		}
	}
	if sol == nil {
		g.Solutions = append(g.Solutions, FlightSolution{
			PackageCode: packageCode,
			Variant:     variant,
			minPrice:    math.Inf(1),
		})
		sol = &g.Solutions[len(g.Solutions)-1]
	}

	improved := price < sol.minPrice
	if improved {
		sol.minPrice = price
		sol.MinPrice = offer.Price
		sol.Currency = offer.Currency
	}
	// Flight samples come from whichever offer carried them; a cheaper
	// offer with its own flights replaces older samples.
	if len(offer.Flights) > 0 && (len(sol.Flights) == 0 || improved) {
		sol.Flights = offer.Flights
		sol.Direction = offer.FlightDirection
	}
}

// Finish resolves the recommended flag per group and returns the groups
// sorted for display: recommended first, then by minimum price, then by
// name. Solutions inside each group are sorted by price then code.
func (a *aggregator) Finish(isRecommended func(core string) bool) []OfferGroup {
	groups := make([]OfferGroup, 0, len(a.order))
	for _, core := range a.order {
		g := a.groups[core]
		if isRecommended != nil && core != MiscGroupCode {
			g.IsRecommended = isRecommended(core)
		}
		sort.SliceStable(g.Solutions, func(i, j int) bool {
			if g.Solutions[i].minPrice != g.Solutions[j].minPrice {
				return g.Solutions[i].minPrice < g.Solutions[j].minPrice
			}
			return g.Solutions[i].PackageCode < g.Solutions[j].PackageCode
		})
		groups = append(groups, *g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].IsRecommended != groups[j].IsRecommended {
			return groups[i].IsRecommended
		}
		if groups[i].minPrice != groups[j].minPrice {
			return groups[i].minPrice < groups[j].minPrice
		}
		return groups[i].Name < groups[j].Name
	})
	return groups
}
