package tinkoff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// API method paths (the REST gateway mirrors the gRPC service names).
const (
	epGetAccounts     = "tinkoff.public.invest.api.contract.v1.UsersService/GetAccounts"
	epGetPortfolio    = "tinkoff.public.invest.api.contract.v1.OperationsService/GetPortfolio"
	epGetOperations   = "tinkoff.public.invest.api.contract.v1.OperationsService/GetOperations"
	epGetInstrumentBy = "tinkoff.public.invest.api.contract.v1.InstrumentsService/GetInstrumentBy"
	epGetDividends    = "tinkoff.public.invest.api.contract.v1.InstrumentsService/GetDividends"
	epGetBondCoupons  = "tinkoff.public.invest.api.contract.v1.InstrumentsService/GetBondCoupons"
	epGetCandles      = "tinkoff.public.invest.api.contract.v1.MarketDataService/GetCandles"
)

// DemoToken switches the client to canned fixture responses, so the app
// works end to end without a real API token.
const DemoToken = "demo"

// Client for the T-Bank Invest REST API
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	log     zerolog.Logger
}

// apiError is the structured error body the gateway returns
type apiError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
	Error       string `json:"error"`
}

// NewClient creates a new T-Bank Invest API client
func NewClient(baseURL, token string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(token),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("client", "tinkoff").Logger(),
	}
}

// IsDemo reports whether the client serves demo fixtures
func (c *Client) IsDemo() bool {
	return c.token == DemoToken
}

// post makes a POST request to the API and decodes the response into out
func (c *Client) post(endpoint string, request interface{}, out interface{}) error {
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/" + endpoint
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-app-name", "t-invest-tracker")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid response from API: %w", err)
	}

	return nil
}

// statusError maps a non-200 response to a descriptive error. 401 and 403
// get hints because they almost always mean a bad or under-scoped token.
func (c *Client) statusError(status int, raw []byte) error {
	detail := strings.TrimSpace(string(raw))

	var structured apiError
	if err := json.Unmarshal(raw, &structured); err == nil {
		switch {
		case structured.Message != "":
			detail = structured.Message
		case structured.Description != "":
			detail = structured.Description
		case structured.Error != "":
			detail = structured.Error
		}
	}

	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("unauthorized (401), check your API token: %s", detail)
	case http.StatusForbidden:
		return fmt.Errorf("forbidden (403), token may lack read scopes: %s", detail)
	default:
		return fmt.Errorf("API error %d: %s", status, detail)
	}
}

// GetAccounts lists the user's brokerage accounts
func (c *Client) GetAccounts() (*AccountsResponse, error) {
	if c.IsDemo() {
		return demoAccounts(), nil
	}

	var out AccountsResponse
	if err := c.post(epGetAccounts, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPortfolio fetches the portfolio snapshot for one account
func (c *Client) GetPortfolio(accountID string) (*PortfolioResponse, error) {
	if c.IsDemo() {
		return demoPortfolio(accountID), nil
	}

	req := struct {
		AccountID string `json:"accountId"`
	}{AccountID: accountID}

	var out PortfolioResponse
	if err := c.post(epGetPortfolio, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOperations fetches executed operations for an account over a date range
func (c *Client) GetOperations(accountID string, from, to time.Time) (*OperationsResponse, error) {
	if c.IsDemo() {
		return demoOperations(from), nil
	}

	req := struct {
		AccountID string `json:"accountId"`
		From      string `json:"from"`
		To        string `json:"to"`
		State     string `json:"state"`
	}{
		AccountID: accountID,
		From:      from.Format(time.RFC3339),
		To:        to.Format(time.RFC3339),
		State:     "OPERATION_STATE_EXECUTED",
	}

	var out OperationsResponse
	if err := c.post(epGetOperations, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInstrumentName resolves a FIGI to a display name. Lookup failures fall
// back to the FIGI itself: names are presentation-only.
func (c *Client) GetInstrumentName(figi string) string {
	if c.IsDemo() {
		return demoInstrumentName(figi)
	}

	req := struct {
		IDType string `json:"idType"`
		ID     string `json:"id"`
	}{
		IDType: "INSTRUMENT_ID_TYPE_FIGI",
		ID:     figi,
	}

	var out instrumentResponse
	if err := c.post(epGetInstrumentBy, req, &out); err != nil {
		c.log.Warn().Err(err).Str("figi", figi).Msg("Failed to fetch instrument name")
		return figi
	}
	if out.Instrument.Name == "" {
		return figi
	}
	return out.Instrument.Name
}

// GetDividends fetches declared dividend events for a share
func (c *Client) GetDividends(figi string, from, to time.Time) (*DividendsResponse, error) {
	if c.IsDemo() {
		return demoDividends(figi), nil
	}

	req := struct {
		FIGI string `json:"figi"`
		From string `json:"from"`
		To   string `json:"to"`
	}{
		FIGI: figi,
		From: from.Format(time.RFC3339),
		To:   to.Format(time.RFC3339),
	}

	var out DividendsResponse
	if err := c.post(epGetDividends, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBondCoupons fetches declared coupon events for a bond
func (c *Client) GetBondCoupons(figi string, from, to time.Time) (*CouponsResponse, error) {
	if c.IsDemo() {
		return demoCoupons(figi), nil
	}

	req := struct {
		FIGI string `json:"figi"`
		From string `json:"from"`
		To   string `json:"to"`
	}{
		FIGI: figi,
		From: from.Format(time.RFC3339),
		To:   to.Format(time.RFC3339),
	}

	var out CouponsResponse
	if err := c.post(epGetBondCoupons, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCandles fetches daily candles for an instrument
func (c *Client) GetCandles(figi string, from, to time.Time) (*CandlesResponse, error) {
	if c.IsDemo() {
		return demoCandles(), nil
	}

	req := struct {
		FIGI     string `json:"figi"`
		From     string `json:"from"`
		To       string `json:"to"`
		Interval string `json:"interval"`
	}{
		FIGI:     figi,
		From:     from.Format(time.RFC3339),
		To:       to.Format(time.RFC3339),
		Interval: "CANDLE_INTERVAL_DAY",
	}

	var out CandlesResponse
	if err := c.post(epGetCandles, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
