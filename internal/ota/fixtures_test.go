package ota

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The canned supplier responses served by the mock module must stay in
// the shape the parsers read, or local runs silently return empty
// results.

func readMockFixture(t *testing.T, name string) []byte {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "..", "mock", "files", name))
	require.NoError(t, err)
	return raw
}

func TestParseAvailability_MockFixture(t *testing.T) {
	res := ParseAvailability(readMockFixture(t, "avail_response.xml"))

	assert.True(t, res.OK)
	require.Len(t, res.Offers, 2)
	assert.Equal(t, "EGSH01#MXP|DBLR|SS-FB", res.Offers[0].BookingCode)
	assert.Equal(t, "450.00", res.Offers[0].Price)
	assert.Equal(t, "SS-FB", res.Offers[0].MealPlanCodes)
	assert.True(t, res.Offers[0].Bookable())
	require.NotEmpty(t, res.Flights)
	assert.Equal(t, "NO1234", res.Flights[0].FlightNumber)
}

func TestParseAvailability_MockEmptyFixture(t *testing.T) {
	res := ParseAvailability(readMockFixture(t, "avail_empty_response.xml"))

	assert.False(t, res.OK)
	assert.Equal(t, "147", res.ErrorCode)
	assert.Empty(t, res.Offers)
}

func TestParseQuote_MockFixture(t *testing.T) {
	q := ParseQuote(readMockFixture(t, "res_response.xml"))

	assert.True(t, q.Success)
	assert.Equal(t, "EGSH01#MXP|DBLR|SS-FB", q.BookingCode)
	assert.Equal(t, "1870.00", q.Total)
	assert.Equal(t, "SS-FB", q.RatePlan.Meals)
	require.NotEmpty(t, q.ReservationIDs)
	assert.Equal(t, "MXP", q.ReservationIDs[0].Value)
}
