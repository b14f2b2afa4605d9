package catalog

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"touravail/internal/ota"
	"touravail/pkg/db"
	"touravail/pkg/logger"
)

// ProductStore reads the cached supplier catalog.
type ProductStore struct {
	sql db.SQLExecutor
	log logger.Client
}

func NewProductStore(sql db.SQLExecutor, log logger.Client) *ProductStore {
	return &ProductStore{sql: sql, log: log}
}

// IsRecommended reports whether a product core is flagged for boosting.
// Any lookup problem counts as not recommended; ranking must never fail
// a search.
func (s *ProductStore) IsRecommended(ctx context.Context, core string) bool {
	if core == "" {
		return false
	}
	var recommended sql.NullBool
	err := s.sql.QueryRowContext(ctx,
		`SELECT is_recommended FROM ota_products WHERE code = $1`, core,
	).Scan(&recommended)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("recommended lookup failed", logger.Field{Key: "core", Value: core}, logger.Err(err))
		}
		return false
	}
	return recommended.Valid && recommended.Bool
}

// ImageForCore returns the cached catalog image for a product core, main
// image first, thumbnail as fallback.
func (s *ProductStore) ImageForCore(ctx context.Context, core string) string {
	if core == "" {
		return ""
	}
	var image, thumb sql.NullString
	err := s.sql.QueryRowContext(ctx,
		`SELECT image_url, thumb_url FROM ota_products WHERE code = $1`, core,
	).Scan(&image, &thumb)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("image lookup failed", logger.Field{Key: "core", Value: core}, logger.Err(err))
		}
		return ""
	}
	if image.Valid && strings.TrimSpace(image.String) != "" {
		return strings.TrimSpace(image.String)
	}
	if thumb.Valid {
		return strings.TrimSpace(thumb.String)
	}
	return ""
}

// LegacyAirports derives departure airports from catalog codes of the
// form CORE#APTn, for suppliers predating the departures cache.
func (s *ProductStore) LegacyAirports(ctx context.Context, core, destination string) ([]string, error) {
	var (
		query string
		arg   string
	)
	switch {
	case core != "":
		query = `SELECT DISTINCT UPPER(SUBSTRING(code FROM POSITION('#' IN code) + 1 FOR 3))
			FROM ota_products
			WHERE code LIKE $1 AND POSITION('#' IN code) > 0`
		arg = core + "%"
	case destination != "":
		query = `SELECT DISTINCT UPPER(SUBSTRING(code FROM POSITION('#' IN code) + 1 FOR 3))
			FROM ota_products
			WHERE UPPER(city_code) = $1 AND POSITION('#' IN code) > 0`
		arg = strings.ToUpper(destination)
	default:
		return nil, nil
	}

	rows, err := s.sql.QueryContext(ctx, query, arg)
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

// FindByCode returns the cached catalog record for a product core, or
// nil when the core is unknown.
func (s *ProductStore) FindByCode(ctx context.Context, core string) (*ota.ProductRecord, error) {
	row := s.sql.QueryRowContext(ctx, `
		SELECT code, name, city_code, area_id, country_iso, country_name,
		       product_type, product_type_code, product_type_name,
		       category_code, category_detail
		FROM ota_products WHERE code = $1`, core)

	var p ota.ProductRecord
	err := row.Scan(
		&p.Code, &p.Name, &p.CityCode, &p.AreaID, &p.CountryISO, &p.CountryName,
		&p.ProductType, &p.ProductTypeCode, &p.ProductTypeName,
		&p.CategoryCode, &p.CategoryDetail,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
