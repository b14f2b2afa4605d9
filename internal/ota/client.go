package ota

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"touravail/pkg/logger"
)

// Client talks to one supplier OTA endpoint set.
type Client struct {
	conn Connection
	http *http.Client
	log  logger.Client
}

func NewClient(conn Connection, log logger.Client) *Client {
	return &Client{
		conn: conn,
		http: &http.Client{Timeout: conn.Timeout},
		log:  log,
	}
}

func (c *Client) Connection() Connection { return c.conn }

// PostXML sends an OTA document and returns the raw response body.
// Authentication is layered: bearer token first, then explicit basic
// credentials, then the requestor id/password pair as basic auth.
func (c *Client) PostXML(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/xml; charset=utf-8")
	req.Header.Set("Accept", "application/xml")

	switch {
	case c.conn.BearerToken != "":
		req.Header.Set("Authorization", "Bearer "+c.conn.BearerToken)
	case c.conn.BasicUser != "" && c.conn.BasicPass != "":
		req.SetBasicAuth(c.conn.BasicUser, c.conn.BasicPass)
	case c.conn.RequestorID != "" && c.conn.MessagePassword != "":
		req.SetBasicAuth(c.conn.RequestorID, c.conn.MessagePassword)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("supplier returned HTTP %d: %s", resp.StatusCode, bodySnippet(raw))
	}
	return raw, nil
}

func bodySnippet(raw []byte) string {
	const max = 300
	if len(raw) > max {
		return string(raw[:max])
	}
	return string(raw)
}

// FetchProducts lists the catalog, optionally narrowed by filter.
func (c *Client) FetchProducts(ctx context.Context, f ProductFilter) ([]ProductRecord, error) {
	body, err := BuildProductRequest(c.conn, f)
	if err != nil {
		return nil, err
	}
	raw, err := c.PostXML(ctx, c.conn.ProductURL(), body)
	if err != nil {
		return nil, err
	}
	return ParseProducts(raw)
}

// FetchProductByCode looks up a single catalog entry.
func (c *Client) FetchProductByCode(ctx context.Context, code string) (*ProductRecord, error) {
	products, err := c.FetchProducts(ctx, ProductFilter{TourActivityCode: code})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

// SearchByCode runs a supplier-side product search and returns any
// matching catalog records.
func (c *Client) SearchByCode(ctx context.Context, code, cityCode string) ([]ProductRecord, error) {
	body, err := BuildSearchByCodeRequest(c.conn, code, cityCode)
	if err != nil {
		return nil, err
	}
	raw, err := c.PostXML(ctx, c.conn.SearchURL(), body)
	if err != nil {
		return nil, err
	}
	return ParseProducts(raw)
}

// DescriptiveInfo fetches and normalizes descriptive content for a
// product code.
func (c *Client) DescriptiveInfo(ctx context.Context, code string) (*DescriptiveDetail, error) {
	body, err := BuildDescriptiveInfoRequest(c.conn, code)
	if err != nil {
		return nil, err
	}
	raw, err := c.PostXML(ctx, c.conn.DescriptiveInfoURL(), body)
	if err != nil {
		return nil, err
	}
	detail, err := ParseDescriptiveDetail(raw)
	if err != nil {
		return nil, err
	}
	detail.Code = code
	return detail, nil
}

// Availability runs one availability probe.
func (c *Client) Availability(ctx context.Context, p AvailabilityParams) (AvailabilityResult, error) {
	body, err := BuildAvailabilityRequest(c.conn, p)
	if err != nil {
		return AvailabilityResult{}, err
	}
	raw, err := c.PostXML(ctx, c.conn.AvailURL(), body)
	if err != nil {
		return AvailabilityResult{}, err
	}
	return ParseAvailability(raw), nil
}

// RoomOptions probes availability for a single package code and returns
// its room/rate matrix.
func (c *Client) RoomOptions(ctx context.Context, p AvailabilityParams) (string, []RoomOption, error) {
	body, err := BuildAvailabilityRequest(c.conn, p)
	if err != nil {
		return "", nil, err
	}
	raw, err := c.PostXML(ctx, c.conn.AvailURL(), body)
	if err != nil {
		return "", nil, err
	}
	return ParseRoomOptions(raw)
}

// Quote prices a booking code without committing inventory.
func (c *Client) Quote(ctx context.Context, p QuoteParams) (QuoteResult, error) {
	body, err := BuildQuoteRequest(c.conn, p)
	if err != nil {
		return QuoteResult{}, err
	}
	raw, err := c.PostXML(ctx, c.conn.ResURL(), body)
	if err != nil {
		return QuoteResult{}, err
	}
	return ParseQuote(raw), nil
}

// GalleryImages fetches the descriptive image list for a code, returning
// nil on any failure. Gallery content is cosmetic and never blocks a
// detail page.
func (c *Client) GalleryImages(ctx context.Context, code string) []string {
	detail, err := c.DescriptiveInfo(ctx, code)
	if err != nil {
		c.log.Warn("gallery fetch failed", logger.Field{Key: "code", Value: code}, logger.Err(err))
		return nil
	}
	return detail.ImageURLs
}
