package ota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConnection() Connection {
	return Connection{
		BaseURL:         "https://api.example.com/OtaService",
		Target:          "Production",
		PrimaryLang:     "it",
		MarketCountry:   "it",
		RequestorID:     "AGENCY1",
		MessagePassword: "secret",
		ChainCode:       "SANDTOUR",
		ProductType:     "Tour",
		CategoryCode:    "211",
		BearerToken:     "tok",
		LOSMin:          7,
		LOSMax:          14,
	}
}

func TestBuildProductRequest(t *testing.T) {
	body, err := BuildProductRequest(testConnection(), ProductFilter{})
	require.NoError(t, err)

	xml := string(body)
	assert.Contains(t, xml, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, xml, `<OTAX_TourActivityProductRQ`)
	assert.Contains(t, xml, `xmlns="http://www.opentravel.org/OTA/2003/05"`)
	assert.Contains(t, xml, `Target="Production"`)
	assert.Contains(t, xml, `PrimaryLangID="it"`)
	assert.Contains(t, xml, `<RequestorID ID="AGENCY1" MessagePassword="secret">`)
	assert.Contains(t, xml, `ChainCode="SANDTOUR"`)
	assert.Contains(t, xml, `ProductType="Tour"`)
	assert.Contains(t, xml, `CategoryCode="211"`)
	assert.NotContains(t, xml, "TourActivityCode=")
	assert.NotContains(t, xml, "TourActivityCityCode=")
}

func TestBuildProductRequest_Filtered(t *testing.T) {
	body, err := BuildProductRequest(testConnection(), ProductFilter{
		TourActivityCode: "0000RMFCORE",
		CityCode:         "SSH",
	})
	require.NoError(t, err)

	xml := string(body)
	assert.Contains(t, xml, `TourActivityCode="0000RMFCORE"`)
	assert.Contains(t, xml, `TourActivityCityCode="SSH"`)
}

func TestBuildSearchByCodeRequest(t *testing.T) {
	body, err := BuildSearchByCodeRequest(testConnection(), "0000RMFCORE", "")
	require.NoError(t, err)

	xml := string(body)
	assert.Contains(t, xml, `<OTAX_TourActivitySearchRQ`)
	assert.Contains(t, xml, `SupplierProductCode="0000RMFCORE"`)
	assert.NotContains(t, xml, "<Constraints>")

	body, err = BuildSearchByCodeRequest(testConnection(), "0000RMFCORE", "SSH")
	require.NoError(t, err)
	assert.Contains(t, string(body), `<City Code="SSH">`)
}

func TestBuildDescriptiveInfoRequest(t *testing.T) {
	body, err := BuildDescriptiveInfoRequest(testConnection(), "0000RMFCORE")
	require.NoError(t, err)

	xml := string(body)
	assert.Contains(t, xml, `<OTAX_TourActivityDescriptiveInfoRQ`)
	assert.Contains(t, xml, `MarketCountryCode="it"`)
	assert.Contains(t, xml, `ChainCode="SANDTOUR"`)
	assert.Contains(t, xml, `TourActivityCode="0000RMFCORE"`)
	assert.Contains(t, xml, `<ReturnImageItems>true</ReturnImageItems>`)
}

func TestBuildAvailabilityRequest(t *testing.T) {
	body, err := BuildAvailabilityRequest(testConnection(), AvailabilityParams{
		CityCode:          "SSH",
		DepartureLocation: "MXP",
		Start:             "2025-06-01",
		LengthsOfStay:     []int{7, 14},
		Adults:            2,
		ChildrenAges:      []int{8},
	})
	require.NoError(t, err)

	xml := string(body)
	assert.Contains(t, xml, `<OTAX_TourActivityAvailRQ`)
	assert.Contains(t, xml, `TourActivityCityCode="SSH"`)
	assert.Contains(t, xml, `DepartureLocation="MXP"`)
	assert.Contains(t, xml, `<LengthOfStay>7</LengthOfStay>`)
	assert.Contains(t, xml, `<LengthOfStay>14</LengthOfStay>`)
	// end date derives from the first length of stay
	assert.Contains(t, xml, `Start="2025-06-01"`)
	assert.Contains(t, xml, `End="2025-06-08"`)
	assert.Contains(t, xml, `Quantity="1"`)
	assert.Contains(t, xml, `RPH="01"`)
	assert.Equal(t, 2, countOf(xml, `<GuestCount Age="50" Count="1">`))
	assert.Contains(t, xml, `<GuestCount Age="8" Count="1">`)
}

func TestBuildAvailabilityRequest_Defaults(t *testing.T) {
	body, err := BuildAvailabilityRequest(testConnection(), AvailabilityParams{
		TourActivityCode: "0000RMFCORE#MXP2",
		Start:            "2025-06-01",
	})
	require.NoError(t, err)

	xml := string(body)
	// empty party still sends the single nominal adult
	assert.Equal(t, 1, countOf(xml, `<GuestCount`))
	assert.Contains(t, xml, `<GuestCount Age="50" Count="1">`)
	// first configured length of stay backs the window
	assert.Contains(t, xml, `<LengthOfStay>7</LengthOfStay>`)
	assert.Contains(t, xml, `End="2025-06-08"`)
	assert.Contains(t, xml, `TourActivityCode="0000RMFCORE#MXP2"`)
	assert.NotContains(t, xml, "DepartureLocation=")
}

func TestBuildAvailabilityRequest_MissingStart(t *testing.T) {
	_, err := BuildAvailabilityRequest(testConnection(), AvailabilityParams{})
	assert.Error(t, err)

	_, err = BuildAvailabilityRequest(testConnection(), AvailabilityParams{Start: "june 1st"})
	assert.Error(t, err)
}

func TestBuildAvailabilityRequest_EscapesCredentials(t *testing.T) {
	conn := testConnection()
	conn.MessagePassword = `p&ss<word"`
	body, err := BuildAvailabilityRequest(conn, AvailabilityParams{Start: "2025-06-01"})
	require.NoError(t, err)

	xml := string(body)
	assert.Contains(t, xml, "p&amp;ss&lt;word&#34;")
	assert.NotContains(t, xml, `p&ss<word`)
}

func TestBuildQuoteRequest(t *testing.T) {
	body, err := BuildQuoteRequest(testConnection(), QuoteParams{
		BookingCode:  "0000RMFCORE#BGY1|DBLR|SS-FB",
		RatePlanCode: "SS-FB",
		Start:        "2025-06-01",
		End:          "2025-06-08",
		ResIDValue:   "123456789",
		Guests: []Guest{
			{RPH: "1", GivenName: "Adult1", Surname: "Guest", Email: "adult1@example.invalid", BirthDate: "1990-06-01"},
			{RPH: "2", GivenName: "Adult2", Surname: "Guest", Email: "adult2@example.invalid", BirthDate: "1991-06-01"},
		},
	})
	require.NoError(t, err)

	xml := string(body)
	assert.Contains(t, xml, `ResStatus="Quote"`)
	assert.Contains(t, xml, `BookingCode="0000RMFCORE#BGY1|DBLR|SS-FB"`)
	assert.Contains(t, xml, `RatePlanCode="SS-FB"`)
	assert.Contains(t, xml, `<Total AmountAfterTax="0.00" CurrencyCode="EUR">`)
	assert.Contains(t, xml, `<TimeSpan Start="2025-06-01" End="2025-06-08">`)
	assert.Contains(t, xml, `<BasicPropertyInfo ChainCode="SANDTOUR">`)
	assert.Contains(t, xml, `<ResGuestRPH>1</ResGuestRPH>`)
	assert.Contains(t, xml, `<ResGuestRPH>2</ResGuestRPH>`)
	assert.Contains(t, xml, `<Customer BirthDate="1990-06-01">`)
	assert.Contains(t, xml, `<GivenName>Adult1</GivenName>`)
	assert.Contains(t, xml, `ResID_Type="16"`)
	assert.Contains(t, xml, `ResID_Value="123456789"`)
}

func TestBuildQuoteRequest_OptionalParts(t *testing.T) {
	body, err := BuildQuoteRequest(testConnection(), QuoteParams{
		BookingCode: "BC1",
		Start:       "2025-06-01",
		End:         "2025-06-08",
	})
	require.NoError(t, err)

	xml := string(body)
	assert.NotContains(t, xml, "RatePlanCode=")
	assert.NotContains(t, xml, "ResGlobalInfo")

	_, err = BuildQuoteRequest(testConnection(), QuoteParams{})
	assert.Error(t, err)
}

func countOf(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}
