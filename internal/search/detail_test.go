package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"touravail/internal/ota"
)

func TestProductDetail(t *testing.T) {
	supplier := &stubSupplier{
		conn:      testConn(),
		roomsName: "Sea Club Resort",
		rooms: []ota.RoomOption{
			{RoomCode: "TRPR", RatePlanShort: "SS-FB", BookingCode: "EGSH01#MXP|TRPR|SS-FB", Price: "650.00", Currency: "EUR"},
			{RoomCode: "DBLR", RatePlanShort: "SS-FB", BookingCode: "EGSH01#MXP|DBLR|SS-FB", Price: "450.00", Currency: "EUR"},
			// duplicate booking code, more expensive, must be dropped
			{RoomCode: "DBLR", RatePlanShort: "SS-FB", BookingCode: "EGSH01#MXP|DBLR|SS-FB", Price: "480.00", Currency: "EUR"},
		},
		gallery: map[string][]string{
			"EGSH01#MXP": {"https://img.example.com/1.jpg", "https://img.example.com/2.jpg"},
		},
	}
	svc := newTestService(supplier, &stubDepartures{}, &stubCatalog{}, nil)

	resp, err := svc.ProductDetail(context.Background(), DetailRequest{
		PackageCode: "EGSH01#MXP",
		StartDate:   "2025-06-01",
		Nights:      7,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sea Club Resort", resp.ProductName)
	require.Len(t, resp.Options, 2)
	assert.Equal(t, "450.00", resp.Options[0].Price)
	assert.Equal(t, "DBLR", resp.Options[0].RoomCode)
	assert.Equal(t, "650.00", resp.Options[1].Price)
	assert.Equal(t, "DBLR", resp.DefaultRoomCode)
	assert.Len(t, resp.Gallery, 2)

	require.Len(t, supplier.gotParams, 1)
	assert.Equal(t, "EGSH01#MXP", supplier.gotParams[0].TourActivityCode)
	assert.Equal(t, []int{7}, supplier.gotParams[0].LengthsOfStay)
}

func TestProductDetailGalleryFallsBackToCore(t *testing.T) {
	supplier := &stubSupplier{
		conn:    testConn(),
		gallery: map[string][]string{"EGSH01": {"https://img.example.com/core.jpg"}},
	}
	svc := newTestService(supplier, &stubDepartures{}, &stubCatalog{}, nil)

	resp, err := svc.ProductDetail(context.Background(), DetailRequest{
		PackageCode: "EGSH01#MXP",
		StartDate:   "2025-06-01",
		Nights:      7,
		Image:       "https://img.example.com/form.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example.com/core.jpg"}, resp.Gallery)
	assert.Equal(t, "", resp.DefaultRoomCode)
}

func TestProductDetailGalleryFormImage(t *testing.T) {
	supplier := &stubSupplier{conn: testConn()}
	svc := newTestService(supplier, &stubDepartures{}, &stubCatalog{}, nil)

	resp, err := svc.ProductDetail(context.Background(), DetailRequest{
		PackageCode: "EGSH01#MXP",
		StartDate:   "2025-06-01",
		Nights:      7,
		Image:       "https://img.example.com/form.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example.com/form.jpg"}, resp.Gallery)
}

func TestProductDetailUpstreamFailure(t *testing.T) {
	supplier := &stubSupplier{conn: testConn(), roomsErr: errors.New("boom")}
	svc := newTestService(supplier, &stubDepartures{}, &stubCatalog{}, nil)

	_, err := svc.ProductDetail(context.Background(), DetailRequest{
		PackageCode: "EGSH01#MXP",
		StartDate:   "2025-06-01",
		Nights:      7,
	})
	require.Error(t, err)
	appErr, ok := err.(*AppError)
	require.True(t, ok)
	assert.Equal(t, ErrorCodeUpstream, appErr.Code)
}

func TestDedupeOptionsWithoutBookingCodes(t *testing.T) {
	options := []ota.RoomOption{
		{RoomCode: "DBLR", RatePlanShort: "SS-FB", Price: "500.00"},
		{RoomCode: "DBLR", RatePlanShort: "SS-FB", Price: "450.00"},
		{RoomCode: "DBLR", RatePlanShort: "SS-HB", Price: "400.00"},
	}
	out := dedupeOptions(options)
	require.Len(t, out, 2)
	assert.Equal(t, "400.00", out[0].Price)
	assert.Equal(t, "SS-HB", out[0].RatePlanShort)
	assert.Equal(t, "450.00", out[1].Price)
}

func TestDefaultRoomCode(t *testing.T) {
	assert.Equal(t, "DBLS", defaultRoomCode([]ota.RoomOption{
		{RoomCode: "SGLR"},
		{RoomCode: "DBLS"},
		{RoomCode: "DBLR"},
	}))
	assert.Equal(t, "SGLR", defaultRoomCode([]ota.RoomOption{{RoomCode: "SGLR"}}))
	assert.Equal(t, "", defaultRoomCode(nil))
}

func TestQuoteByCode(t *testing.T) {
	supplier := &stubSupplier{
		conn: testConn(),
		quote: ota.QuoteResult{
			Success:     true,
			Errors:      []string{},
			Total:       "1870.00",
			Currency:    "EUR",
			BookingCode: "EGSH01#MXP|DBLR|SS-FB",
			Images:      []string{"https://img.example.com/api.jpg"},
		},
	}
	products := &stubCatalog{images: map[string]string{"EGSH01": "https://img.example.com/db.jpg"}}
	svc := newTestService(supplier, &stubDepartures{}, products, nil)

	resp, err := svc.QuoteByCode(context.Background(), QuoteRequest{
		BookingCode:      "EGSH01#MXP|DBLR|SS-FB",
		StartDate:        "2025-06-01",
		EndDate:          "2025-06-08",
		DepartureAirport: "mxp",
		Adults:           2,
		ChildrenAges:     []int{6},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "1870.00", resp.Total)
	// the catalog image wins over the API one
	assert.Equal(t, "https://img.example.com/db.jpg", resp.Image)

	p := supplier.gotQuote
	assert.Equal(t, "EGSH01#MXP|DBLR|SS-FB", p.BookingCode)
	assert.Equal(t, "2025-06-01", p.Start)
	assert.Equal(t, "2025-06-08", p.End)
	assert.Equal(t, "MXP", p.ResIDValue)

	require.Len(t, p.Guests, 3)
	assert.Equal(t, "01", p.Guests[0].RPH)
	assert.Equal(t, "Adult1", p.Guests[0].GivenName)
	assert.Equal(t, "1990-06-01", p.Guests[0].BirthDate)
	assert.Equal(t, "03", p.Guests[2].RPH)
	assert.Equal(t, "Child1", p.Guests[2].GivenName)
	assert.Equal(t, "2019-06-01", p.Guests[2].BirthDate)
}

func TestQuoteByCodeResIDFallsBackToGeneratedID(t *testing.T) {
	conn := testConn()
	conn.DepartureDefault = ""
	supplier := &stubSupplier{conn: conn, quote: ota.QuoteResult{Success: true, Total: "100.00"}}
	svc := newTestService(supplier, &stubDepartures{}, &stubCatalog{}, nil)

	_, err := svc.QuoteByCode(context.Background(), QuoteRequest{
		BookingCode: "EGSH01|DBLR",
		StartDate:   "2025-06-01",
		Nights:      7,
	})
	require.NoError(t, err)
	assert.Equal(t, "424242", supplier.gotQuote.ResIDValue)
	assert.Equal(t, "2025-06-08", supplier.gotQuote.End)
}

func TestQuoteByCodeValidation(t *testing.T) {
	supplier := &stubSupplier{conn: testConn()}
	svc := newTestService(supplier, &stubDepartures{}, &stubCatalog{}, nil)

	_, err := svc.QuoteByCode(context.Background(), QuoteRequest{StartDate: "2025-06-01"})
	require.Error(t, err)
	appErr, ok := err.(*AppError)
	require.True(t, ok)
	assert.Equal(t, ErrorCodeValidation, appErr.Code)
}

func TestSyntheticGuestsAdultOnly(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	guests := syntheticGuests(start, 2, nil)
	require.Len(t, guests, 2)
	assert.Equal(t, "Adult2", guests[1].GivenName)
	assert.Equal(t, "adult2@example.invalid", guests[1].Email)
	assert.Equal(t, "1990-06-01", guests[1].BirthDate)
}

func TestDescriptiveDetailMeaningfulPassThrough(t *testing.T) {
	supplier := &stubSupplier{
		conn:   testConn(),
		detail: &ota.DescriptiveDetail{Code: "EGSH01", Name: "Sea Club"},
	}
	svc := newTestService(supplier, &stubDepartures{}, &stubCatalog{}, nil)

	detail, err := svc.DescriptiveDetail(context.Background(), "EGSH01")
	require.NoError(t, err)
	assert.Equal(t, "Sea Club", detail.Name)
}

func TestDescriptiveDetailCatalogFallback(t *testing.T) {
	supplier := &stubSupplier{conn: testConn(), detailErr: errors.New("parse error")}
	products := &stubCatalog{records: map[string]*ota.ProductRecord{
		"EGSH01": {Code: "EGSH01", Name: "Sea Club", CityCode: "SSH", CountryName: "Egitto"},
	}}
	svc := newTestService(supplier, &stubDepartures{}, products, nil)

	detail, err := svc.DescriptiveDetail(context.Background(), "EGSH01#MXP")
	require.NoError(t, err)
	assert.Equal(t, "EGSH01#MXP", detail.Code)
	assert.Equal(t, "Sea Club", detail.Name)
	assert.Equal(t, "SSH", detail.City)
}

func TestDescriptiveDetailMergesEmptyPayload(t *testing.T) {
	supplier := &stubSupplier{
		conn:   testConn(),
		detail: &ota.DescriptiveDetail{Code: "EGSH01", Duration: "7 notti"},
	}
	products := &stubCatalog{records: map[string]*ota.ProductRecord{
		"EGSH01": {Code: "EGSH01", Name: "Sea Club"},
	}}
	svc := newTestService(supplier, &stubDepartures{}, products, nil)

	detail, err := svc.DescriptiveDetail(context.Background(), "EGSH01")
	require.NoError(t, err)
	assert.Equal(t, "Sea Club", detail.Name)
	assert.Equal(t, "7 notti", detail.Duration)
}

func TestDescriptiveDetailUpstreamFailureNoFallback(t *testing.T) {
	supplier := &stubSupplier{conn: testConn(), detailErr: errors.New("boom")}
	svc := newTestService(supplier, &stubDepartures{}, &stubCatalog{}, nil)

	_, err := svc.DescriptiveDetail(context.Background(), "EGSH01")
	require.Error(t, err)
	appErr, ok := err.(*AppError)
	require.True(t, ok)
	assert.Equal(t, ErrorCodeUpstream, appErr.Code)
}
