package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"touravail/pkg/db"
	"touravail/pkg/logger"
)

// DepartureQuery narrows the departures cache lookup. ProductCore takes
// precedence over Destination when both are set.
type DepartureQuery struct {
	Destination string
	ProductCore string
	Start       string
	End         string
	Nights      int
}

// DepartureStore reads the departures cache: one row per known departure
// (product, airport, date, stay length), refreshed out of band.
type DepartureStore struct {
	sql db.SQLExecutor
	log logger.Client
}

func NewDepartureStore(sql db.SQLExecutor, log logger.Client) *DepartureStore {
	return &DepartureStore{sql: sql, log: log}
}

// Airports returns the distinct departure airports matching the query,
// relaxing constraints in two steps: exact date window and night count
// first, then the window alone, then any date.
func (s *DepartureStore) Airports(ctx context.Context, q DepartureQuery) ([]string, error) {
	where, args := s.baseFilter(q)
	if where == "" {
		return nil, nil
	}

	for _, tier := range queryTiers(q, len(args)) {
		airports, err := s.fetchAirports(ctx, where+tier.clause, append(args, tier.args...))
		if err != nil {
			s.log.Warn("departures cache query failed", logger.Err(err))
			continue
		}
		if len(airports) > 0 {
			return airports, nil
		}
	}
	return nil, nil
}

type queryTier struct {
	clause string
	args   []any
}

// queryTiers builds the constraint-relaxation ladder for one lookup:
// exact stay window and night count first, then the window alone, then
// the base filter only. Tiers whose inputs are missing are left out.
func queryTiers(q DepartureQuery, baseArgs int) []queryTier {
	var tiers []queryTier
	if q.Start != "" && q.End != "" {
		if q.Nights > 0 {
			tiers = append(tiers, queryTier{
				clause: fmt.Sprintf(" AND depart_date BETWEEN $%d AND $%d AND duration_days = $%d",
					baseArgs+1, baseArgs+2, baseArgs+3),
				args: []any{q.Start, q.End, q.Nights},
			})
		}
		tiers = append(tiers, queryTier{
			clause: fmt.Sprintf(" AND depart_date BETWEEN $%d AND $%d", baseArgs+1, baseArgs+2),
			args:   []any{q.Start, q.End},
		})
	}
	return append(tiers, queryTier{})
}

func (s *DepartureStore) baseFilter(q DepartureQuery) (string, []any) {
	if core := strings.TrimSpace(q.ProductCore); core != "" {
		return "product_code LIKE $1", []any{core + "%"}
	}
	if dest := strings.TrimSpace(q.Destination); dest != "" {
		return "UPPER(city_code) = $1", []any{strings.ToUpper(dest)}
	}
	return "", nil
}

func (s *DepartureStore) fetchAirports(ctx context.Context, where string, args []any) ([]string, error) {
	query := `SELECT DISTINCT UPPER(SUBSTR(depart_airport, 1, 3)) FROM departures_cache WHERE ` + where
	rows, err := s.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var airport string
		if err := rows.Scan(&airport); err != nil {
			return nil, err
		}
		if a := NormalizeAirport(airport); a != "" {
			out = append(out, a)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// NormalizeAirport reduces free-form airport input to a 3-letter IATA
// code, or "" when the input carries fewer than three letters.
func NormalizeAirport(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 3 {
		return ""
	}
	return s[:3]
}
