package ota

import "strings"

// Operation endpoint suffixes under the supplier's OtaService root.
const (
	opProduct         = "TourActivityProduct"
	opSearch          = "TourActivitySearch"
	opDescriptiveInfo = "TourActivityDescriptiveInfo"
	opAvail           = "TourActivityAvail"
	opRes             = "TourActivityRes"
)

// endpointURL joins the configured base URL with an operation path.
// Deployed base URLs come in three shapes: already pointing at the
// operation, ending in /OtaService, or the service root. All three must
// resolve to the same final URL.
func endpointURL(baseURL, op string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	lower := strings.ToLower(base)
	if strings.HasSuffix(lower, "/"+strings.ToLower(op)) {
		return base
	}
	if strings.HasSuffix(lower, "/otaservice") {
		return base + "/" + op
	}
	return base + "/OtaService/" + op
}

func (c Connection) ProductURL() string         { return endpointURL(c.BaseURL, opProduct) }
func (c Connection) SearchURL() string          { return endpointURL(c.BaseURL, opSearch) }
func (c Connection) DescriptiveInfoURL() string { return endpointURL(c.BaseURL, opDescriptiveInfo) }
func (c Connection) AvailURL() string           { return endpointURL(c.BaseURL, opAvail) }
func (c Connection) ResURL() string             { return endpointURL(c.BaseURL, opRes) }
