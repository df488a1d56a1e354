package tinkoff

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPortfolio_SendsAuthAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer real-token", r.Header.Get("Authorization"))
		assert.Equal(t, "t-invest-tracker", r.Header.Get("x-app-name"))
		assert.True(t, strings.HasSuffix(r.URL.Path, "OperationsService/GetPortfolio"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "acc-1", body["accountId"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"expectedYield": {"units": "12", "nano": 0},
			"positions": [{
				"figi": "BBG000TEST",
				"instrumentType": "share",
				"quantity": {"units": "10", "nano": 0},
				"currentPrice": {"currency": "rub", "units": "280", "nano": 0},
				"expectedYield": {"units": "300", "nano": 0}
			}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "real-token", zerolog.Nop())
	portfolio, err := client.GetPortfolio("acc-1")
	require.NoError(t, err)
	require.Len(t, portfolio.Positions, 1)

	pos := portfolio.Positions[0]
	assert.Equal(t, "BBG000TEST", pos.FIGI)
	assert.Equal(t, 280.0, pos.CurrentPrice.Float())
	assert.Nil(t, pos.DailyYield)
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantSubstr string
	}{
		{
			name:       "401 hints at bad token",
			status:     http.StatusUnauthorized,
			body:       `{"message": "token invalid"}`,
			wantSubstr: "check your API token",
		},
		{
			name:       "403 hints at scopes",
			status:     http.StatusForbidden,
			body:       `{"description": "no read scope"}`,
			wantSubstr: "read scopes",
		},
		{
			name:       "500 keeps body detail",
			status:     http.StatusInternalServerError,
			body:       `{"error": "boom"}`,
			wantSubstr: "boom",
		},
		{
			name:       "non-JSON body used as is",
			status:     http.StatusBadGateway,
			body:       "upstream gone",
			wantSubstr: "upstream gone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "real-token", zerolog.Nop())
			_, err := client.GetAccounts()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSubstr)
		})
	}
}

func TestDemoAccounts(t *testing.T) {
	client := NewClient("http://unused", DemoToken, zerolog.Nop())
	assert.True(t, client.IsDemo())

	accounts, err := client.GetAccounts()
	require.NoError(t, err)
	require.Len(t, accounts.Accounts, 2)
	assert.Equal(t, "demo_1", accounts.Accounts[0].ID)
	assert.Equal(t, "ACCOUNT_TYPE_TINKOFF_IIS", accounts.Accounts[1].Type)
}

func TestDemoPortfolio_IISVariant(t *testing.T) {
	client := NewClient("http://unused", DemoToken, zerolog.Nop())

	broker, err := client.GetPortfolio("demo_1")
	require.NoError(t, err)
	iis, err := client.GetPortfolio("demo_2")
	require.NoError(t, err)

	assert.Len(t, broker.Positions, 5)
	assert.Len(t, iis.Positions, 5)

	// The IIS variant overrides every daily yield to +42.
	for _, pos := range iis.Positions {
		require.NotNil(t, pos.DailyYield)
		assert.Equal(t, 42.0, pos.DailyYield.Float())
	}
	assert.Equal(t, 18000.0, iis.ExpectedYield.Float())
}

func TestDemoOperations_WindowFilter(t *testing.T) {
	client := NewClient("http://unused", DemoToken, zerolog.Nop())

	// Wide window returns the full history including the year-old pay-in.
	all, err := client.GetOperations("demo_1", time.Now().Add(-2*365*24*time.Hour), time.Now())
	require.NoError(t, err)
	assert.Len(t, all.Operations, 5)

	// A 30-day window drops the old pay-in.
	recent, err := client.GetOperations("demo_1", time.Now().Add(-30*24*time.Hour), time.Now())
	require.NoError(t, err)
	assert.Len(t, recent.Operations, 4)
}

func TestDemoPaymentEvents(t *testing.T) {
	client := NewClient("http://unused", DemoToken, zerolog.Nop())
	now := time.Now()

	divs, err := client.GetDividends("BBG004730N88", now, now.AddDate(1, 0, 0))
	require.NoError(t, err)
	require.Len(t, divs.Dividends, 1)
	assert.Equal(t, 30.0, divs.Dividends[0].DividendNet.Float())

	none, err := client.GetDividends("BBG004731489", now, now.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, none.Dividends)

	coupons, err := client.GetBondCoupons("BBG00T22ZKV2", now, now.AddDate(1, 0, 0))
	require.NoError(t, err)
	require.Len(t, coupons.Events, 2)
	for _, c := range coupons.Events {
		date, err := time.Parse(time.RFC3339, c.CouponDate)
		require.NoError(t, err)
		assert.True(t, date.After(now))
	}
}

func TestDemoInstrumentName(t *testing.T) {
	client := NewClient("http://unused", DemoToken, zerolog.Nop())
	assert.Equal(t, "Sberbank", client.GetInstrumentName("BBG004730N88"))
	assert.Equal(t, "UNKNOWN", client.GetInstrumentName("UNKNOWN"))
}
