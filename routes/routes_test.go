package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"veneya/config"
	"veneya/controllers"
	"veneya/store"
	"veneya/utils"
)

type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	logger := zaptest.NewLogger(t)

	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "api.db")

	st, err := store.Open(context.Background(), cfg.Database, logger, store.WithPasswordCost(bcrypt.MinCost))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	h := controllers.NewHandler(st, tokens, store.GridResolver{Decimals: store.DefaultZoneDecimals}, logger)
	return &apiClient{t: t, app: NewApp(cfg.Server, h, tokens, logger)}
}

func (a *apiClient) do(method, path string, body any) (int, map[string]any) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	if len(raw) > 0 {
		require.NoError(a.t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (a *apiClient) signUpAndLogin(username string) {
	a.t.Helper()
	status, _ := a.do("POST", "/accounts", map[string]string{
		"username":           username,
		"email":              username + "@example.com",
		"password":           "secret",
		"avg_daily_earnings": "300",
	})
	require.Equal(a.t, http.StatusCreated, status)

	status, body := a.do("POST", "/login", map[string]string{"username": username, "password": "secret"})
	require.Equal(a.t, http.StatusOK, status)
	a.token = body["token"].(string)
	require.NotEmpty(a.t, a.token)
}

func TestAccountsAndLogin(t *testing.T) {
	api := newAPI(t)

	status, body := api.do("POST", "/accounts", map[string]string{
		"username": "ana", "email": "ana@example.com", "password": "secret", "avg_daily_earnings": "300",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.EqualValues(t, 1, body["account_id"])

	status, _ = api.do("POST", "/accounts", map[string]string{
		"username": "ana", "email": "x@example.com", "password": "secret",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = api.do("POST", "/accounts", map[string]string{"email": "y@example.com", "password": "secret"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = api.do("POST", "/login", map[string]string{"username": "ana", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = api.do("POST", "/login", map[string]string{"username": "ana", "password": "secret"})
	require.Equal(t, http.StatusOK, status)
	account := body["account"].(map[string]any)
	assert.Equal(t, "ana", account["username"])
	assert.NotContains(t, account, "password")
	assert.NotContains(t, account, "PasswordHash")

	api.token = body["token"].(string)
	status, body = api.do("GET", "/me", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ana@example.com", body["email"])
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	api := newAPI(t)
	for _, path := range []string{"/me", "/products", "/products/next-id", "/sales", "/reports/zones"} {
		status, _ := api.do("GET", path, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
}

func TestCatalogFlow(t *testing.T) {
	api := newAPI(t)
	api.signUpAndLogin("ana")

	status, body := api.do("GET", "/products/next-id", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["next_id"])

	status, body = api.do("POST", "/products", map[string]any{
		"products": []map[string]any{
			{"id": 1, "name": "tamal", "unit_earnings": "10.00"},
			{"id": 2, "name": "", "unit_earnings": "3"},
		},
	})
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["skipped"])

	status, body = api.do("GET", "/products/next-id", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["next_id"])

	status, _ = api.do("POST", "/products", map[string]any{
		"products": []map[string]any{{"name": "atole", "unit_earnings": "cinco"}},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = api.do("PUT", "/products/1", map[string]string{"name": "tamal verde", "unit_earnings": "12"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["saved"])

	status, body = api.do("PUT", "/products/1", map[string]string{"name": "tamal verde"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["saved"])

	status, _ = api.do("PUT", "/products/abc", map[string]string{"name": "x", "unit_earnings": "1"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = api.do("GET", "/products", nil)
	require.Equal(t, http.StatusOK, status)
	products := body["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "tamal verde", products[0].(map[string]any)["name"])
	assert.Equal(t, "12", products[0].(map[string]any)["unit_earnings"])
}

func TestProductsAreIsolatedPerAccount(t *testing.T) {
	api := newAPI(t)
	api.signUpAndLogin("ana")
	status, _ := api.do("POST", "/products", map[string]any{
		"products": []map[string]any{{"id": 1, "name": "tamal", "unit_earnings": "10"}},
	})
	require.Equal(t, http.StatusOK, status)

	api.signUpAndLogin("beto")
	status, _ = api.do("PUT", "/products/1", map[string]string{"name": "mine", "unit_earnings": "1"})
	assert.Equal(t, http.StatusConflict, status)

	status, body := api.do("GET", "/products", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["products"])

	status, _ = api.do("POST", "/sales", map[string]any{
		"zone":  "Z1",
		"items": []map[string]any{{"product_id": 1, "quantity": 1}},
	})
	assert.Equal(t, http.StatusConflict, status, "selling another vendor's product")
}

func TestNextIDThenSaveForLaterAccount(t *testing.T) {
	api := newAPI(t)
	api.signUpAndLogin("ana")
	status, _ := api.do("PUT", "/products/1", map[string]string{"name": "tamal", "unit_earnings": "10"})
	require.Equal(t, http.StatusOK, status)

	api.signUpAndLogin("beto")
	status, body := api.do("GET", "/products/next-id", nil)
	require.Equal(t, http.StatusOK, status)
	next := int64(body["next_id"].(float64))
	assert.EqualValues(t, 2, next)

	status, body = api.do("PUT", fmt.Sprintf("/products/%d", next), map[string]string{"name": "atole", "unit_earnings": "4"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["saved"])

	status, body = api.do("GET", "/products/next-id", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, body["next_id"])
}

func TestSalesAndReports(t *testing.T) {
	api := newAPI(t)
	api.signUpAndLogin("ana")

	status, _ := api.do("POST", "/products", map[string]any{
		"products": []map[string]any{
			{"name": "tamal", "unit_earnings": "10.00"},
			{"name": "atole", "unit_earnings": "5.00"},
		},
	})
	require.Equal(t, http.StatusOK, status)

	status, body := api.do("POST", "/sales", map[string]any{
		"zone": "Z1",
		"items": []map[string]any{
			{"product_id": 1, "quantity": 3},
			{"product_id": 2, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Len(t, body["sale_ids"], 2)

	status, body = api.do("POST", "/sales", map[string]any{
		"latitude":  19.43,
		"longitude": -99.13,
		"items":     []map[string]any{{"product_id": 2, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Zone_19.4_-99.2", body["zone"])

	status, _ = api.do("POST", "/sales", map[string]any{"zone": "Z1", "items": []map[string]any{{"product_id": 1, "quantity": 0}}})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = api.do("POST", "/sales", map[string]any{"items": []map[string]any{{"product_id": 1, "quantity": 1}}})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = api.do("GET", "/sales", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["sales"], 3)

	status, body = api.do("GET", "/reports/zones", nil)
	require.Equal(t, http.StatusOK, status)
	zones := body["zones"].([]any)
	require.Len(t, zones, 2)
	first := zones[0].(map[string]any)
	assert.Equal(t, "Z1", first["zone"])
	assert.InDelta(t, 40.0, first["earnings"], 1e-9)

	status, body = api.do("GET", "/reports/zones?limit=1&scope=all", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["zones"], 1)

	status, body = api.do("GET", "/reports/zones?order=asc&limit=1", nil)
	require.Equal(t, http.StatusOK, status)
	lowest := body["zones"].([]any)
	require.Len(t, lowest, 1)
	assert.Equal(t, "Zone_19.4_-99.2", lowest[0].(map[string]any)["zone"])

	for _, query := range []string{"scope=everyone", "order=up", "limit=abc", "limit=-1"} {
		status, _ = api.do("GET", "/reports/zones?"+query, nil)
		assert.Equal(t, http.StatusBadRequest, status, query)
	}

	status, body = api.do("GET", "/reports/zones/Z1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.InDelta(t, 40.0, body["grand_total"], 1e-9)
	products := body["products"].([]any)
	require.Len(t, products, 2)
	assert.InDelta(t, 30.0, products[0].(map[string]any)["earnings"], 1e-9)
	assert.InDelta(t, 10.0, products[1].(map[string]any)["earnings"], 1e-9)

	status, body = api.do("GET", "/reports/popular", nil)
	require.Equal(t, http.StatusOK, status)
	popular := body["products"].([]any)
	require.Len(t, popular, 2)
	atole := popular[1].(map[string]any)
	assert.Equal(t, "atole", atole["product_name"])
	assert.InDelta(t, 3, atole["quantity"], 0)
	assert.InDelta(t, 2, atole["zones"], 0)
}

func TestResolveZoneAndHealth(t *testing.T) {
	api := newAPI(t)

	status, body := api.do("GET", "/zones/resolve?lat=19.43&lng=-99.13", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Zone_19.4_-99.2", body["zone"])

	status, _ = api.do("GET", "/zones/resolve?lat=north&lng=1", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = api.do("GET", "/zones/resolve?lat=95&lng=1", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = api.do("GET", "/healthz", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}
