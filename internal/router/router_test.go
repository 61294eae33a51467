package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/config"
	"finledger/internal/export"
	"finledger/internal/logger"
	"finledger/internal/metrics"
	"finledger/internal/middleware"
	"finledger/internal/testutil"
	"finledger/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

type testApp struct {
	router *gin.Engine
}

func setupApp(t *testing.T, mutate ...func(*config.Config)) *testApp {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	cfg := &config.Config{
		CORSAllowedOrigins: []string{"*"},
		ExportHeaderLocale: "ru",
	}
	for _, fn := range mutate {
		fn(cfg)
	}

	m := metrics.New()
	return &testApp{router: New(Deps{
		DB:          db,
		Config:      cfg,
		Metrics:     m,
		RateLimiter: middleware.NewRateLimiter(1000, 1000, m),
	})}
}

func (a *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) registerUser(t *testing.T, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"password123"}`, email)
	rec := a.request("POST", "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return parseJSON(t, rec)["token"].(string)
}

func (a *testApp) createCategory(t *testing.T, token, name string) string {
	t.Helper()
	rec := a.request("POST", "/api/v1/categories", fmt.Sprintf(`{"name":%q}`, name), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return parseJSON(t, rec)["id"].(string)
}

func (a *testApp) createTransaction(t *testing.T, token, categoryID, amount, date, txType string) string {
	t.Helper()
	body := fmt.Sprintf(`{"category":%q,"amount":%q,"date":%q,"type":%q}`, categoryID, amount, date, txType)
	rec := a.request("POST", "/api/v1/transactions", body, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return parseJSON(t, rec)["id"].(string)
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result), rec.Body.String())
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	require.True(t, ok, "expected error object, got %s", rec.Body.String())
	return errObj["code"].(string)
}

func listIDs(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := parseJSON(t, rec)["data"].([]interface{})
	ids := make([]string, 0, len(data))
	for _, item := range data {
		ids = append(ids, item.(map[string]interface{})["id"].(string))
	}
	return ids
}

// seed gives the user a Groceries expense and a Salary income in January 2024.
func (a *testApp) seed(t *testing.T, token string) (groceries, salary, groceriesTx, salaryTx string) {
	t.Helper()
	groceries = a.createCategory(t, token, "Groceries")
	salary = a.createCategory(t, token, "Salary")
	groceriesTx = a.createTransaction(t, token, groceries, "50.00", "2024-01-05", "expense")
	salaryTx = a.createTransaction(t, token, salary, "2000.00", "2024-01-10", "income")
	return
}

func TestHealth(t *testing.T) {
	app := setupApp(t)
	rec := app.request("GET", "/api/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", parseJSON(t, rec)["status"])
}

func TestAnalyticsSummary(t *testing.T) {
	app := setupApp(t)
	token := app.registerUser(t, "a@example.com")
	app.seed(t, token)

	rec := app.request("GET", "/api/v1/analytics", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{
		"total_income": "2000.00",
		"total_expense": "50.00",
		"category_summary": [
			{"category__name": "Groceries", "total": "50.00"},
			{"category__name": "Salary", "total": "2000.00"}
		]
	}`, rec.Body.String())
}

func TestAnalyticsEmpty(t *testing.T) {
	app := setupApp(t)
	token := app.registerUser(t, "empty@example.com")

	rec := app.request("GET", "/api/v1/analytics", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_income":"0.00","total_expense":"0.00","category_summary":[]}`, rec.Body.String())
}

func TestFilterMinAmount(t *testing.T) {
	app := setupApp(t)
	token := app.registerUser(t, "a@example.com")
	_, _, _, salaryTx := app.seed(t, token)

	rec := app.request("GET", "/api/v1/transactions?min_amount=100", "", token)
	assert.Equal(t, []string{salaryTx}, listIDs(t, rec))

	rec = app.request("GET", "/api/v1/transactions?min_amount=lots", "", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestDeleteCategoryCascades(t *testing.T) {
	app := setupApp(t)
	token := app.registerUser(t, "a@example.com")
	groceries, _, groceriesTx, salaryTx := app.seed(t, token)

	rec := app.request("DELETE", "/api/v1/categories/"+groceries, "", token)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = app.request("GET", "/api/v1/transactions", "", token)
	assert.Equal(t, []string{salaryTx}, listIDs(t, rec))

	rec = app.request("GET", "/api/v1/transactions/"+groceriesTx, "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnershipIsolation(t *testing.T) {
	app := setupApp(t)
	alice := app.registerUser(t, "alice@example.com")
	bob := app.registerUser(t, "bob@example.com")
	groceries, _, groceriesTx, _ := app.seed(t, alice)
	bobCategory := app.createCategory(t, bob, "Groceries")

	for _, tc := range []struct {
		method, path, body, code string
	}{
		{"GET", "/api/v1/categories/" + groceries, "", "CATEGORY_NOT_FOUND"},
		{"PATCH", "/api/v1/categories/" + groceries, `{"name":"Mine"}`, "CATEGORY_NOT_FOUND"},
		{"DELETE", "/api/v1/categories/" + groceries, "", "CATEGORY_NOT_FOUND"},
		{"GET", "/api/v1/transactions/" + groceriesTx, "", "TRANSACTION_NOT_FOUND"},
		{"PATCH", "/api/v1/transactions/" + groceriesTx, `{"amount":"1"}`, "TRANSACTION_NOT_FOUND"},
		{"DELETE", "/api/v1/transactions/" + groceriesTx, "", "TRANSACTION_NOT_FOUND"},
	} {
		rec := app.request(tc.method, tc.path, tc.body, bob)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, tc.code, errorCode(t, rec), "%s %s", tc.method, tc.path)
	}

	// Bob cannot file a transaction under Alice's category.
	body := fmt.Sprintf(`{"category":%q,"amount":"1","date":"2024-01-01","type":"expense"}`, groceries)
	rec := app.request("POST", "/api/v1/transactions", body, bob)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := parseJSON(t, rec)["error"].(map[string]interface{})["fields"].(map[string]interface{})
	assert.Contains(t, fields, "category")

	// Bob sees only his own rows.
	rec = app.request("GET", "/api/v1/categories", "", bob)
	assert.Equal(t, []string{bobCategory}, listIDs(t, rec))
	rec = app.request("GET", "/api/v1/transactions", "", bob)
	assert.Empty(t, listIDs(t, rec))

	// Alice's data is untouched.
	rec = app.request("GET", "/api/v1/transactions", "", alice)
	assert.Len(t, listIDs(t, rec), 2)
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	app := setupApp(t)
	paths := []struct{ method, path string }{
		{"GET", "/api/v1/profile"},
		{"GET", "/api/v1/categories"},
		{"POST", "/api/v1/categories"},
		{"GET", "/api/v1/transactions"},
		{"DELETE", "/api/v1/transactions/0190f2a4-1b2c-7d3e-8f40-000000000001"},
		{"GET", "/api/v1/analytics"},
		{"GET", "/api/v1/export/csv"},
		{"GET", "/api/v1/export/xlsx"},
	}
	for _, p := range paths {
		rec := app.request(p.method, p.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
	}

	rec := app.request("GET", "/api/v1/categories", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTransactionLifecycle(t *testing.T) {
	app := setupApp(t)
	token := app.registerUser(t, "a@example.com")
	groceries, salary, groceriesTx, _ := app.seed(t, token)

	rec := app.request("GET", "/api/v1/transactions/"+groceriesTx, "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	got := parseJSON(t, rec)
	assert.Equal(t, groceries, got["category"])
	assert.Equal(t, "50.00", got["amount"])
	assert.Equal(t, "2024-01-05", got["date"])
	assert.Equal(t, "expense", got["type"])

	rec = app.request("PATCH", "/api/v1/transactions/"+groceriesTx, `{"amount":"62.5"}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got = parseJSON(t, rec)
	assert.Equal(t, "62.50", got["amount"])
	assert.Equal(t, "2024-01-05", got["date"])

	body := fmt.Sprintf(`{"category":%q,"amount":"10","date":"2024-03-01","type":"income"}`, salary)
	rec = app.request("PUT", "/api/v1/transactions/"+groceriesTx, body, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got = parseJSON(t, rec)
	assert.Equal(t, salary, got["category"])
	assert.Equal(t, "income", got["type"])

	rec = app.request("DELETE", "/api/v1/transactions/"+groceriesTx, "", token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = app.request("DELETE", "/api/v1/transactions/"+groceriesTx, "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryNamesAreUniquePerUser(t *testing.T) {
	app := setupApp(t)
	token := app.registerUser(t, "a@example.com")
	app.createCategory(t, token, "Groceries")

	rec := app.request("POST", "/api/v1/categories", `{"name":"Groceries"}`, token)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE_CATEGORY", errorCode(t, rec))

	rec = app.request("POST", "/api/v1/categories", `{"name":"   "}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportCSV(t *testing.T) {
	app := setupApp(t)
	token := app.registerUser(t, "a@example.com")
	app.seed(t, token)

	rec := app.request("GET", "/api/v1/export/csv", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="transactions.csv"`, rec.Header().Get("Content-Disposition"))

	header, rows, err := export.ReadCSV(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, export.HeaderRU, header)
	assert.Equal(t, []export.Row{
		{Date: "2024-01-05", Category: "Groceries", Amount: "50.00", Type: "expense"},
		{Date: "2024-01-10", Category: "Salary", Amount: "2000.00", Type: "income"},
	}, rows)
}

func TestExportXLSXUsesConfiguredHeader(t *testing.T) {
	app := setupApp(t, func(c *config.Config) { c.ExportHeaderLocale = "en" })
	token := app.registerUser(t, "a@example.com")
	app.seed(t, token)

	rec := app.request("GET", "/api/v1/export/xlsx", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	header, rows, err := export.ReadXLSX(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, export.HeaderEN, header)
	assert.Len(t, rows, 2)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Run("open without a key", func(t *testing.T) {
		app := setupApp(t)
		app.request("GET", "/api/health", "", "")

		rec := app.request("GET", "/metrics", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "finledger_http_requests_total")
	})

	t.Run("guarded by a key", func(t *testing.T) {
		app := setupApp(t, func(c *config.Config) { c.MetricsAPIKey = "scrape-secret" })

		rec := app.request("GET", "/metrics", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = app.request("GET", "/metrics", "", "scrape-secret")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestUnknownRoute(t *testing.T) {
	app := setupApp(t)
	rec := app.request("GET", "/api/v1/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestSwaggerDocIsServed(t *testing.T) {
	app := setupApp(t)
	rec := app.request("GET", "/swagger/doc.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/transactions/{id}"`)
}
