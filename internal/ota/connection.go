package ota

import (
	"strings"
	"time"

	"touravail/cfg"
)

// Connection is the immutable supplier connection value object used by
// builders, parsers and the transport for the duration of one operation.
type Connection struct {
	BaseURL          string
	Target           string
	PrimaryLang      string
	MarketCountry    string
	RequestorID      string
	MessagePassword  string
	ChainCode        string
	ProductType      string
	CategoryCode     string
	BearerToken      string
	BasicUser        string
	BasicPass        string
	Timeout          time.Duration
	DepartureDefault string
	LOSMin           int
	LOSMax           int
}

// NewConnection normalizes raw supplier settings into a Connection. This
// is the single place where loose input shapes are cleaned up; everything
// downstream trusts the result.
func NewConnection(s cfg.SupplierConfig) Connection {
	timeout := s.Timeout()
	if timeout <= 0 {
		timeout = 40 * time.Second
	}
	losMin, losMax := s.LOSMin, s.LOSMax
	if losMin <= 0 {
		losMin = 7
	}
	if losMax < losMin {
		losMax = losMin
	}
	return Connection{
		BaseURL:          strings.TrimRight(strings.TrimSpace(s.BaseURL), "/"),
		Target:           orDefault(s.Target, "Production"),
		PrimaryLang:      orDefault(s.PrimaryLang, "it"),
		MarketCountry:    orDefault(s.MarketCountry, "it"),
		RequestorID:      strings.TrimSpace(s.RequestorID),
		MessagePassword:  s.MessagePassword,
		ChainCode:        strings.TrimSpace(s.ChainCode),
		ProductType:      orDefault(s.ProductType, "Tour"),
		CategoryCode:     orDefault(s.CategoryCode, "211"),
		BearerToken:      strings.TrimSpace(s.BearerToken),
		BasicUser:        s.BasicUser,
		BasicPass:        s.BasicPass,
		Timeout:          timeout,
		DepartureDefault: strings.ToUpper(strings.TrimSpace(s.DepartureDefault)),
		LOSMin:           losMin,
		LOSMax:           losMax,
	}
}

// Missing reports which required connection fields are absent. A non-empty
// result means the connection cannot be used for any operation.
func (c Connection) Missing() []string {
	var missing []string
	check := func(name, v string) {
		if v == "" {
			missing = append(missing, name)
		}
	}
	check("base_url", c.BaseURL)
	check("bearer_token", c.BearerToken)
	check("target", c.Target)
	check("primary_lang", c.PrimaryLang)
	check("market_country", c.MarketCountry)
	check("requestor_id", c.RequestorID)
	check("message_password", c.MessagePassword)
	check("chain_code", c.ChainCode)
	return missing
}

func orDefault(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
