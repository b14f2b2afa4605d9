package ota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quoteRS = `<?xml version="1.0"?>
<OTAX_TourActivityResRS xmlns="http://www.opentravel.org/OTA/2003/05">
  <TourActivityReservations>
    <TourActivityReservation>
      <Activities>
        <Activity>
          <ActivityTypes>
            <ActivityType ActivityTypeCode="DBLR">
              <ActivityDescription><Text>Camera doppia</Text></ActivityDescription>
            </ActivityType>
          </ActivityTypes>
          <RatePlans>
            <RatePlan RatePlanCode="SS-FB" RatePlanName="Pensione completa">
              <MealsIncluded MealPlanCodes="FB"/>
            </RatePlan>
          </RatePlans>
          <ActivityRates>
            <ActivityRate BookingCode="0000RMFCORE#MXP2|DBLR|SS-FB">
              <Total AmountAfterTax="2890.00" CurrencyCode="EUR"/>
            </ActivityRate>
          </ActivityRates>
          <TimeSpan Start="2025-06-01" End="2025-06-08"/>
          <BasicPropertyInfo ChainCode="SANDTOUR" TourActivityCode="0000RMFCORE" TourActivityName="Resort Mare Rosso" TourActivityCityCode="SSH">
            <Address>
              <CityName>Sharm el Sheikh</CityName>
              <CountryName Code="EG">Egitto</CountryName>
            </Address>
            <Position Latitude="27.9" Longitude="34.3"/>
          </BasicPropertyInfo>
          <CancelPenalties>
            <CancelPenalty NonRefundable="true">
              <AmountPercent Percent="100" BasisType="FullStay"/>
            </CancelPenalty>
          </CancelPenalties>
        </Activity>
      </Activities>
      <ResGuests>
        <ResGuest ResGuestRPH="1">
          <Profiles><ProfileInfo><Profile>
            <Customer BirthDate="1990-06-01">
              <PersonName><GivenName>Adult1</GivenName><Surname>Guest</Surname></PersonName>
              <Email>adult1@example.invalid</Email>
            </Customer>
          </Profile></ProfileInfo></Profiles>
        </ResGuest>
      </ResGuests>
      <ResGlobalInfo>
        <TourActivityReservationIDs>
          <TourActivityReservationID ResID_Type="16" ResID_Value="987654321"/>
        </TourActivityReservationIDs>
      </ResGlobalInfo>
    </TourActivityReservation>
  </TourActivityReservations>
</OTAX_TourActivityResRS>`

func TestParseQuote(t *testing.T) {
	q := ParseQuote([]byte(quoteRS))
	require.True(t, q.Success)
	assert.Empty(t, q.Errors)

	assert.Equal(t, "2890.00", q.Total)
	assert.Equal(t, "EUR", q.Currency)
	assert.Equal(t, "0000RMFCORE#MXP2|DBLR|SS-FB", q.BookingCode)
	assert.Equal(t, CodeName{Code: "DBLR", Name: "Camera doppia"}, q.Room)
	assert.Equal(t, RatePlanInfo{Code: "SS-FB", Name: "Pensione completa", Meals: "FB"}, q.RatePlan)
	assert.Equal(t, "2025-06-01", q.Start)
	assert.Equal(t, "2025-06-08", q.End)

	assert.Equal(t, "Resort Mare Rosso", q.Product.Name)
	assert.Equal(t, "EG", q.Product.CountryCode)
	assert.Equal(t, "27.9", q.Product.Latitude)

	require.NotNil(t, q.Cancel)
	assert.True(t, q.Cancel.NonRefundable)
	assert.Equal(t, "100", q.Cancel.PenaltyPercent)

	require.Len(t, q.ReservationIDs, 1)
	assert.Equal(t, ReservationID{Type: "16", Value: "987654321"}, q.ReservationIDs[0])

	require.Len(t, q.Guests, 1)
	assert.Equal(t, "1", q.Guests[0].RPH)
	assert.Equal(t, "Adult1 Guest", q.Guests[0].Name)
	assert.Equal(t, "adult1@example.invalid", q.Guests[0].Email)
	assert.Equal(t, "1990-06-01", q.Guests[0].BirthDate)
}

func TestParseQuote_SupplierErrors(t *testing.T) {
	doc := `<RS><Errors><Error Code="392" ShortText="Booking code expired"/></Errors></RS>`
	q := ParseQuote([]byte(doc))
	assert.False(t, q.Success)
	require.Len(t, q.Errors, 1)
	assert.Equal(t, "392 Booking code expired", q.Errors[0])
}

func TestParseQuote_NoTotalNoSuccess(t *testing.T) {
	doc := `<RS><ActivityRate BookingCode="BC"/></RS>`
	q := ParseQuote([]byte(doc))
	assert.False(t, q.Success)
	assert.Equal(t, "BC", q.BookingCode)
	assert.Empty(t, q.Errors)
}

func TestParseQuote_Malformed(t *testing.T) {
	q := ParseQuote([]byte("<<<"))
	assert.False(t, q.Success)
	require.NotEmpty(t, q.Errors)
}
