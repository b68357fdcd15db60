package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/homeledger/backend/config"
	"github.com/homeledger/backend/internal/infra/db/dbtest"
	"github.com/homeledger/backend/internal/infra/dependency"
	"github.com/homeledger/backend/internal/integration/adapters"
)

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test", LoginRateLimit: 5},
		JWT:    config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: time.Hour},
		Ledger: config.LedgerConfig{ThousandsSeparator: "."},
	}
	injector := dependency.NewInjector(cfg, dbtest.Open(t), dependency.Options{
		Clock:      &adapters.FixedClock{Time: time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)},
		BcryptCost: bcrypt.MinCost,
	})

	c := &apiClient{t: t, engine: injector.Router.Setup(cfg.Server.Environment)}
	var auth map[string]any
	status := c.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":    "ana@example.com",
		"name":     "Ana",
		"password": "correct horse",
	}, &auth)
	require.Equal(t, http.StatusCreated, status)
	c.token = auth["access_token"].(string)
	return c
}

func (c *apiClient) do(method, path string, body any, out any) int {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func amountOf(t *testing.T, v any) string {
	t.Helper()

	money, ok := v.(map[string]any)
	require.True(t, ok, "not a money object: %v", v)
	return money["amount"].(string)
}

func TestAPI_RequiresToken(t *testing.T) {
	c := newAPIClient(t)
	c.token = ""

	status := c.do(http.MethodGet, "/api/v1/flows", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	c.token = "garbage"
	status = c.do(http.MethodGet, "/api/v1/flows", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_Health(t *testing.T) {
	c := newAPIClient(t)

	var body map[string]any
	status := c.do(http.MethodGet, "/health", nil, &body)
	assert.Equal(t, http.StatusOK, status)
	// The no-op cache reports itself unavailable
	assert.Equal(t, "degraded", body["status"])
}

func TestAPI_MonthLifecycle(t *testing.T) {
	c := newAPIClient(t)

	var flow map[string]any
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/flows", map[string]any{"year": 2025}, &flow))
	books := flow["books"].([]any)
	require.Len(t, books, 12)
	march := books[2].(map[string]any)
	assert.Equal(t, "March", march["month_name"])
	bookID := march["id"].(string)

	var conflict map[string]any
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/api/v1/flows", map[string]any{"year": 2025}, &conflict))
	assert.Equal(t, "LED-010005", conflict["code"])

	var category map[string]any
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/categories", map[string]any{"name": "Groceries"}, &category))

	var income map[string]any
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/books/"+bookID+"/incomes", map[string]any{
		"description": "Salary",
		"amount":      "100,00",
	}, &income))
	assert.Equal(t, "100.00", amountOf(t, income["amount"]))
	incomeID := income["id"].(string)

	// Amounts may also be sent as JSON numbers
	var expense map[string]any
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/incomes/"+incomeID+"/expenses", map[string]any{
		"category_id": category["id"],
		"description": "Market",
		"amount":      40,
	}, &expense))
	assert.Equal(t, "60.00", amountOf(t, expense["income_balance"]))

	var exceeded map[string]any
	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodPost, "/api/v1/incomes/"+incomeID+"/expenses", map[string]any{
		"category_id": category["id"],
		"description": "Too much",
		"amount":      "60.01",
	}, &exceeded))
	assert.Equal(t, "LED-010006", exceeded["code"])
	assert.Equal(t, "60.00", exceeded["details"].(map[string]any)["available"])

	var invalid map[string]any
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/v1/incomes/"+incomeID+"/expenses", map[string]any{
		"category_id": category["id"],
		"description": "Precise",
		"amount":      "1.005",
	}, &invalid))
	assert.Equal(t, "LED-010001", invalid["code"])

	var inUse map[string]any
	assert.Equal(t, http.StatusConflict, c.do(http.MethodDelete, "/api/v1/categories/"+category["id"].(string), nil, &inUse))
	assert.Equal(t, "LED-020001", inUse["code"])

	var closed map[string]any
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/books/"+bookID+"/close", nil, &closed))
	assert.Equal(t, "60.00", amountOf(t, closed["remnant_amount"]))
	assert.Equal(t, false, closed["flow_closed"])

	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/api/v1/books/"+bookID+"/close", nil, nil))
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/api/v1/books/"+bookID+"/incomes", map[string]any{
		"description": "Late",
		"amount":      "1",
	}, nil))

	var remnants map[string]any
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/remnants", nil, &remnants))
	assert.Equal(t, "60.00", amountOf(t, remnants["total"]))

	var summary map[string]any
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/flows/"+flow["id"].(string), nil, &summary))
	assert.Equal(t, float64(1), summary["closed_months"])
	assert.Equal(t, "60.00", amountOf(t, summary["accumulated_remnant"]))
}

func TestAPI_Withdrawal(t *testing.T) {
	c := newAPIClient(t)

	var flow map[string]any
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/flows", map[string]any{"year": 2025}, &flow))
	flowID := flow["id"].(string)
	january := flow["books"].([]any)[0].(map[string]any)["id"].(string)

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/books/"+january+"/incomes", map[string]any{
		"description": "Salary",
		"amount":      "50000",
	}, nil))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/books/"+january+"/close", nil, nil))

	var rejected map[string]any
	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodPost, "/api/v1/flows/"+flowID+"/withdrawals", map[string]any{
		"amount":       "50000.01",
		"description":  "Vacation",
		"target_month": 4,
	}, &rejected))
	assert.Equal(t, "LED-010007", rejected["code"])

	var withdrawn map[string]any
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/flows/"+flowID+"/withdrawals", map[string]any{
		"amount":       "20000",
		"description":  "Vacation",
		"target_month": 4,
	}, &withdrawn))
	remaining := withdrawn["accumulated_remnant"].(map[string]any)
	assert.Equal(t, "30000.00", remaining["amount"])
	assert.Equal(t, "$30.000", remaining["display"])
	withdrawal := withdrawn["withdrawal"].(map[string]any)
	assert.Equal(t, "applied", withdrawal["state"])

	// Re-applying an applied withdrawal is a no-op
	var reapplied map[string]any
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/withdrawals/"+withdrawal["id"].(string)+"/apply", nil, &reapplied))
	assert.Equal(t, "30000.00", amountOf(t, reapplied["accumulated_remnant"]))

	var dashboard map[string]any
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/dashboard", nil, &dashboard))
	assert.Equal(t, float64(2025), dashboard["year"])
}

func TestAPI_WithdrawalDefaultsToCurrentMonth(t *testing.T) {
	c := newAPIClient(t)

	var flow map[string]any
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/flows", map[string]any{"year": 2025}, &flow))
	flowID := flow["id"].(string)
	books := flow["books"].([]any)
	january := books[0].(map[string]any)["id"].(string)
	march := books[2].(map[string]any)["id"].(string)

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/books/"+january+"/incomes", map[string]any{
		"description": "Salary",
		"amount":      "50000",
	}, nil))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/books/"+january+"/close", nil, nil))

	// No target_month: the clock reads 15 March 2025
	var withdrawn map[string]any
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/flows/"+flowID+"/withdrawals", map[string]any{
		"amount":      "20000",
		"description": "Vacation",
	}, &withdrawn))
	withdrawal := withdrawn["withdrawal"].(map[string]any)
	assert.Equal(t, float64(3), withdrawal["target_month"])
	income := withdrawn["income"].(map[string]any)
	assert.Equal(t, march, income["book_id"])
	assert.Equal(t, "Income from remnants: Vacation", income["description"])

	// The withdrawal entry is readable on its own, with a signed display
	remnantID := withdrawn["remnant"].(map[string]any)["id"].(string)
	var detail map[string]any
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/remnants/"+remnantID, nil, &detail))
	assert.Equal(t, "withdrawal", detail["kind"])
	assert.Equal(t, march, detail["book_id"])
	assert.Equal(t, flowID, detail["flow_id"])
	assert.Equal(t, float64(2025), detail["year"])
	assert.Equal(t, float64(3), detail["month"])
	assert.Equal(t, "March", detail["month_name"])
	amount := detail["amount"].(map[string]any)
	assert.Equal(t, "-20000.00", amount["amount"])
	assert.Equal(t, "-$20.000", amount["display"])
}

func TestAPI_InvalidIDs(t *testing.T) {
	c := newAPIClient(t)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{name: "malformed flow id", method: http.MethodGet, path: "/api/v1/flows/not-a-uuid", status: http.StatusBadRequest},
		{name: "unknown flow", method: http.MethodGet, path: "/api/v1/flows/6f1c1f9e-3d1a-4a4e-9b8e-2f0f2b1c9d11", status: http.StatusNotFound},
		{name: "unknown book", method: http.MethodPost, path: "/api/v1/books/6f1c1f9e-3d1a-4a4e-9b8e-2f0f2b1c9d11/close", status: http.StatusNotFound},
		{name: "unknown income", method: http.MethodDelete, path: "/api/v1/incomes/6f1c1f9e-3d1a-4a4e-9b8e-2f0f2b1c9d11", status: http.StatusNotFound},
		{name: "unknown remnant", method: http.MethodGet, path: "/api/v1/remnants/6f1c1f9e-3d1a-4a4e-9b8e-2f0f2b1c9d11", status: http.StatusNotFound},
		{name: "malformed remnant id", method: http.MethodGet, path: "/api/v1/remnants/not-a-uuid", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, c.do(tt.method, tt.path, nil, nil))
		})
	}
}
