package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus/internal/middleware"
	"nexus/internal/mock"
	"nexus/internal/model"
	"nexus/internal/store"
)

type testEnv struct {
	router  *gin.Engine
	handler *Handler
	store   *store.Store
	clock   *time.Time
}

func newTestEnv(t *testing.T, withStore bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	env := &testEnv{clock: &clock}

	if withStore {
		st, err := store.New(filepath.Join(t.TempDir(), "nexus.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })
		env.store = st
	}

	env.handler = NewHandler(Options{
		Rand:             mock.NewLockedRand(1),
		Store:            env.store,
		Logger:           zerolog.Nop(),
		Seeded:           true,
		Version:          "test",
		DefaultRangeDays: 30,
		TransactionCount: 10,
		MaxTransactions:  50,
		ExportDir:        t.TempDir(),
		ExportTTL:        time.Minute,
		Now:              func() time.Time { return *env.clock },
	})

	r := gin.New()
	r.Use(middleware.RequestID())
	env.handler.RegisterRoutes(r.Group("/api"))
	env.router = r
	return env
}

func (e *testEnv) do(method, target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestGetSeries_ExplicitRange(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(http.MethodGet, "/api/data?start_date=2024-01-01&end_date=2024-01-03")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	records := decode[[]model.DailyRecord](t, w)
	require.Len(t, records, 3)
	assert.Equal(t, "2024-01-01", records[0].Date)
	assert.Equal(t, "2024-01-02", records[1].Date)
	assert.Equal(t, "2024-01-03", records[2].Date)
	for _, r := range records {
		assert.Equal(t, "All", r.Category)
		assert.GreaterOrEqual(t, r.Visits, 0)
		assert.GreaterOrEqual(t, r.Sales, 0)
		assert.GreaterOrEqual(t, r.Revenue, 0)
	}
}

func TestGetSeries_Defaults(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(http.MethodGet, "/api/data")
	require.Equal(t, http.StatusOK, w.Code)

	records := decode[[]model.DailyRecord](t, w)
	require.Len(t, records, 31)
	assert.Equal(t, "2024-02-14", records[0].Date)
	assert.Equal(t, "2024-03-15", records[30].Date)
}

func TestGetSeries_MalformedDatesFallBack(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(http.MethodGet, "/api/data?start_date=not-a-date&end_date=2024-13-40")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.DailyRecord](t, w), 31)
}

func TestGetSeries_StartAfterEnd(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(http.MethodGet, "/api/data?start_date=2024-02-02&end_date=2024-02-01")
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode[map[string]string](t, w)
	assert.Equal(t, "Start date must be before end date", body["error"])
}

func TestGetSeries_RangeTooLong(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(http.MethodGet, "/api/data?start_date=0001-01-01&end_date=9999-12-31")
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "Date range must not exceed 3650 days", body["error"])

	w = env.do(http.MethodGet, "/api/export?format=pdf&start_date=0001-01-01&end_date=9999-12-31")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 恰好等于上限
	w = env.do(http.MethodGet, "/api/data?start_date=2014-03-19&end_date=2024-03-15")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.DailyRecord](t, w), 3650)
}

func TestGetSeries_Category(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(http.MethodGet, "/api/data?start_date=2024-01-01&end_date=2024-01-10&category=Books")
	require.Equal(t, http.StatusOK, w.Code)
	for _, r := range decode[[]model.DailyRecord](t, w) {
		assert.Equal(t, "Books", r.Category)
		assert.LessOrEqual(t, r.Revenue, r.Sales*40)
	}
}

func TestGetRecentTransactions(t *testing.T) {
	env := newTestEnv(t, false)

	cases := []struct {
		query string
		want  int
	}{
		{"", 10},
		{"?count=3", 3},
		{"?count=abc", 10},
		{"?count=-1", 10},
		{"?count=1000", 50},
	}
	for _, tc := range cases {
		w := env.do(http.MethodGet, "/api/recent_transactions"+tc.query)
		require.Equal(t, http.StatusOK, w.Code)
		txs := decode[[]model.Transaction](t, w)
		assert.Len(t, txs, tc.want, tc.query)
		for _, tx := range txs {
			assert.True(t, strings.HasPrefix(tx.ID, "ORD-"))
		}
	}
}

func TestGetStats(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(http.MethodGet, "/api/stats")
	require.Equal(t, http.StatusOK, w.Code)

	raw := decode[map[string]any](t, w)
	assert.Contains(t, raw, "total_revenue")
	assert.Contains(t, raw, "active_users")
	assert.Contains(t, raw, "conversion_rate")
	assert.Equal(t, "Electronics", raw["top_category"])

	stats := decode[model.Stats](t, w)
	assert.GreaterOrEqual(t, stats.TotalRevenue, 154320)
	assert.LessOrEqual(t, stats.ActiveUsers, 1255)
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(http.MethodGet, "/api/categories")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string][]string](t, w)
	assert.Equal(t, []string{"Electronics", "Clothing", "Home", "Books", "Toys"}, body["categories"])
}

func TestGetStatus(t *testing.T) {
	env := newTestEnv(t, true)
	*env.clock = env.clock.Add(90 * time.Second)

	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/export?start_date=2024-01-01&end_date=2024-01-02").Code)

	w := env.do(http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[StatusResponse](t, w)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "test", status.Version)
	assert.Equal(t, "1m30s", status.Uptime)
	assert.True(t, status.Seeded)
	assert.True(t, status.History)
	assert.Equal(t, 5, status.Categories)
	assert.Equal(t, 1, status.Exports)
}
