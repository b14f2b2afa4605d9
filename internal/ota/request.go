package ota

import "encoding/xml"

// OTA message namespace shared by all five operations.
const Namespace = "http://www.opentravel.org/OTA/2003/05"

type requestorID struct {
	ID              string `xml:"ID,attr"`
	MessagePassword string `xml:"MessagePassword,attr"`
}

type source struct {
	RequestorID requestorID `xml:"RequestorID"`
}

type pos struct {
	Source source `xml:"Source"`
}

type productRQ struct {
	XMLName       xml.Name       `xml:"OTAX_TourActivityProductRQ"`
	Xmlns         string         `xml:"xmlns,attr"`
	Target        string         `xml:"Target,attr"`
	PrimaryLangID string         `xml:"PrimaryLangID,attr"`
	POS           pos            `xml:"POS"`
	Products      productsFilter `xml:"TourActivityProducts"`
}

type productsFilter struct {
	ChainCode            string `xml:"ChainCode,attr"`
	ProductType          string `xml:"ProductType,attr"`
	CategoryCode         string `xml:"CategoryCode,attr"`
	TourActivityCode     string `xml:"TourActivityCode,attr,omitempty"`
	TourActivityCityCode string `xml:"TourActivityCityCode,attr,omitempty"`
}

type searchRQ struct {
	XMLName       xml.Name       `xml:"OTAX_TourActivitySearchRQ"`
	Xmlns         string         `xml:"xmlns,attr"`
	Target        string         `xml:"Target,attr"`
	PrimaryLangID string         `xml:"PrimaryLangID,attr"`
	POS           pos            `xml:"POS"`
	Criteria      searchCriteria `xml:"SearchCriteria"`
}

type searchCriteria struct {
	BasicInfo   searchBasicInfo    `xml:"BasicInfo"`
	Constraints *searchConstraints `xml:"Constraints,omitempty"`
}

type searchBasicInfo struct {
	SupplierProductCode string `xml:"SupplierProductCode,attr"`
}

type searchConstraints struct {
	City cityConstraint `xml:"City"`
}

type cityConstraint struct {
	Code string `xml:"Code,attr"`
}

type descriptiveInfoRQ struct {
	XMLName           xml.Name             `xml:"OTAX_TourActivityDescriptiveInfoRQ"`
	Xmlns             string               `xml:"xmlns,attr"`
	Target            string               `xml:"Target,attr"`
	PrimaryLangID     string               `xml:"PrimaryLangID,attr"`
	MarketCountryCode string               `xml:"MarketCountryCode,attr"`
	POS               pos                  `xml:"POS"`
	Infos             descriptiveInfoItems `xml:"TourActivityDescriptiveInfos"`
}

type descriptiveInfoItems struct {
	Info descriptiveInfoItem `xml:"TourActivityDescriptiveInfo"`
}

type descriptiveInfoItem struct {
	ChainCode        string        `xml:"ChainCode,attr"`
	TourActivityCode string        `xml:"TourActivityCode,attr"`
	TPAExtensions    imageItemsExt `xml:"TPA_Extensions"`
}

type imageItemsExt struct {
	ReturnImageItems string `xml:"ReturnImageItems"`
}

type availRQ struct {
	XMLName           xml.Name      `xml:"OTAX_TourActivityAvailRQ"`
	Xmlns             string        `xml:"xmlns,attr"`
	Target            string        `xml:"Target,attr"`
	PrimaryLangID     string        `xml:"PrimaryLangID,attr"`
	MarketCountryCode string        `xml:"MarketCountryCode,attr"`
	POS               pos           `xml:"POS"`
	Segments          availSegments `xml:"AvailRequestSegments"`
}

type availSegments struct {
	Segment availSegment `xml:"AvailRequestSegment"`
}

type availSegment struct {
	Criteria   availCriteria      `xml:"TourActivitySearchCriteria"`
	StayRange  stayDateRange      `xml:"StayDateRange"`
	Candidates activityCandidates `xml:"ActivityCandidates"`
}

type availCriteria struct {
	Criterion availCriterion `xml:"Criterion"`
}

type availCriterion struct {
	Ref           tourActivityRef `xml:"TourActivityRef"`
	LengthsOfStay []int           `xml:"LengthOfStay"`
}

type tourActivityRef struct {
	ChainCode            string `xml:"ChainCode,attr"`
	ProductType          string `xml:"ProductType,attr"`
	CategoryCode         string `xml:"CategoryCode,attr"`
	TourActivityCityCode string `xml:"TourActivityCityCode,attr,omitempty"`
	DepartureLocation    string `xml:"DepartureLocation,attr,omitempty"`
	TourActivityCode     string `xml:"TourActivityCode,attr,omitempty"`
}

type stayDateRange struct {
	Start string `xml:"Start,attr"`
	End   string `xml:"End,attr"`
}

type activityCandidates struct {
	Candidate activityCandidate `xml:"ActivityCandidate"`
}

type activityCandidate struct {
	Quantity    string      `xml:"Quantity,attr"`
	RPH         string      `xml:"RPH,attr"`
	GuestCounts guestCounts `xml:"GuestCounts"`
}

type guestCounts struct {
	Counts []guestCount `xml:"GuestCount"`
}

type guestCount struct {
	Age   string `xml:"Age,attr"`
	Count string `xml:"Count,attr"`
}

type resRQ struct {
	XMLName           xml.Name        `xml:"OTAX_TourActivityResRQ"`
	Xmlns             string          `xml:"xmlns,attr"`
	ResStatus         string          `xml:"ResStatus,attr"`
	Target            string          `xml:"Target,attr"`
	PrimaryLangID     string          `xml:"PrimaryLangID,attr"`
	MarketCountryCode string          `xml:"MarketCountryCode,attr"`
	POS               pos             `xml:"POS"`
	Reservations      resReservations `xml:"TourActivityReservations"`
}

type resReservations struct {
	Reservation resReservation `xml:"TourActivityReservation"`
}

type resReservation struct {
	Activities resActivities  `xml:"Activities"`
	ResGuests  resGuests      `xml:"ResGuests"`
	GlobalInfo *resGlobalInfo `xml:"ResGlobalInfo,omitempty"`
}

type resActivities struct {
	Activity resActivity `xml:"Activity"`
}

type resActivity struct {
	Rates        resActivityRates `xml:"ActivityRates"`
	TimeSpan     stayDateRange    `xml:"TimeSpan"`
	PropertyInfo resPropertyInfo  `xml:"BasicPropertyInfo"`
	GuestRPHs    resGuestRPHs     `xml:"ResGuestRPHs"`
}

type resActivityRates struct {
	Rate resActivityRate `xml:"ActivityRate"`
}

type resActivityRate struct {
	BookingCode  string   `xml:"BookingCode,attr"`
	RatePlanCode string   `xml:"RatePlanCode,attr,omitempty"`
	Total        resTotal `xml:"Total"`
}

type resTotal struct {
	AmountAfterTax string `xml:"AmountAfterTax,attr"`
	CurrencyCode   string `xml:"CurrencyCode,attr"`
}

type resPropertyInfo struct {
	ChainCode string `xml:"ChainCode,attr"`
}

type resGuestRPHs struct {
	RPHs []string `xml:"ResGuestRPH"`
}

type resGuests struct {
	Guests []resGuest `xml:"ResGuest"`
}

type resGuest struct {
	ResGuestRPH string      `xml:"ResGuestRPH,attr"`
	Profiles    resProfiles `xml:"Profiles"`
}

type resProfiles struct {
	ProfileInfo resProfileInfo `xml:"ProfileInfo"`
}

type resProfileInfo struct {
	Profile resProfile `xml:"Profile"`
}

type resProfile struct {
	Customer resCustomer `xml:"Customer"`
}

type resCustomer struct {
	BirthDate  string        `xml:"BirthDate,attr"`
	PersonName resPersonName `xml:"PersonName"`
	Email      string        `xml:"Email"`
}

type resPersonName struct {
	GivenName string `xml:"GivenName"`
	Surname   string `xml:"Surname"`
}

type resGlobalInfo struct {
	ReservationIDs resReservationIDs `xml:"TourActivityReservationIDs"`
}

type resReservationIDs struct {
	ID resReservationID `xml:"TourActivityReservationID"`
}

type resReservationID struct {
	ResIDType  string `xml:"ResID_Type,attr"`
	ResIDValue string `xml:"ResID_Value,attr"`
}
