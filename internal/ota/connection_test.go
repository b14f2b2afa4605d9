package ota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"touravail/cfg"
)

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"https://api.example.com", "https://api.example.com/OtaService/TourActivityAvail"},
		{"https://api.example.com/", "https://api.example.com/OtaService/TourActivityAvail"},
		{"https://api.example.com/OtaService", "https://api.example.com/OtaService/TourActivityAvail"},
		{"https://api.example.com/otaservice/", "https://api.example.com/otaservice/TourActivityAvail"},
		{"https://api.example.com/OtaService/TourActivityAvail", "https://api.example.com/OtaService/TourActivityAvail"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, endpointURL(tt.base, opAvail), "base %q", tt.base)
	}
}

func TestConnectionEndpoints(t *testing.T) {
	c := Connection{BaseURL: "https://api.example.com"}
	assert.Equal(t, "https://api.example.com/OtaService/TourActivityProduct", c.ProductURL())
	assert.Equal(t, "https://api.example.com/OtaService/TourActivitySearch", c.SearchURL())
	assert.Equal(t, "https://api.example.com/OtaService/TourActivityDescriptiveInfo", c.DescriptiveInfoURL())
	assert.Equal(t, "https://api.example.com/OtaService/TourActivityRes", c.ResURL())
}

func TestNewConnectionDefaults(t *testing.T) {
	c := NewConnection(cfg.SupplierConfig{
		BaseURL:         "https://api.example.com/ ",
		RequestorID:     " AGENCY1 ",
		MessagePassword: "secret",
		ChainCode:       "SANDTOUR",
		BearerToken:     "tok",
	})
	assert.Equal(t, "https://api.example.com", c.BaseURL)
	assert.Equal(t, "AGENCY1", c.RequestorID)
	assert.Equal(t, "Production", c.Target)
	assert.Equal(t, "it", c.PrimaryLang)
	assert.Equal(t, "it", c.MarketCountry)
	assert.Equal(t, "Tour", c.ProductType)
	assert.Equal(t, "211", c.CategoryCode)
	assert.Equal(t, 40*time.Second, c.Timeout)
	assert.Equal(t, 7, c.LOSMin)
	assert.Equal(t, 7, c.LOSMax)
	assert.Empty(t, c.Missing())
}

func TestConnectionMissing(t *testing.T) {
	missing := Connection{}.Missing()
	assert.Contains(t, missing, "base_url")
	assert.Contains(t, missing, "bearer_token")
	assert.Contains(t, missing, "requestor_id")
	assert.Contains(t, missing, "message_password")
	assert.Contains(t, missing, "chain_code")
	assert.Len(t, missing, 8)
}
