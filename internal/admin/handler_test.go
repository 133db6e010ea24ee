package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rampantspark/genpass/internal/stats"
)

func newDashboard(t *testing.T) (*http.ServeMux, *Authenticator, *stats.Manager) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	auth, err := NewAuthenticator(false)
	require.NoError(t, err)
	mgr := stats.NewManager(nil, nil, false, logger)

	mux := http.NewServeMux()
	NewHandler(auth, mgr, logger).Register(mux)
	return mux, auth, mgr
}

func serve(mux *http.ServeMux, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestLoginFlow(t *testing.T) {
	mux, auth, mgr := newDashboard(t)
	require.NoError(t, mgr.RecordGeneration(context.Background(), stats.GenerationInfo{
		Category:   "pin4",
		Count:      12,
		Elapsed:    1500 * time.Microsecond,
		FinishedAt: time.Unix(1700000000, 0),
		Client:     "<script>",
	}))

	rec := serve(mux, auth.Path())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(mux, auth.Path()+"/login?token=wrong")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(mux, auth.Path()+"/login?token="+auth.Token())
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, auth.Path(), rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	rec = serve(mux, auth.Path(), cookies[0])
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Total generations:</strong> 1")
	assert.Contains(t, body, "Total items:</strong> 12")
	assert.Contains(t, body, "<td>pin4</td>")
	assert.Contains(t, body, "0.0015s")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'none'")
}

func TestHandleData(t *testing.T) {
	mux, auth, mgr := newDashboard(t)

	rec := serve(mux, auth.Path()+"/data")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	cookie := &http.Cookie{Name: cookieName, Value: auth.Token()}
	rec = serve(mux, auth.Path()+"/data", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var empty struct {
		Categories []stats.CountEntry     `json:"categories"`
		Recent     []stats.GenerationInfo `json:"recent"`
		Persistent bool                   `json:"persistent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.NotNil(t, empty.Categories)
	assert.NotNil(t, empty.Recent)
	assert.False(t, empty.Persistent)

	for _, cat := range []string{"pin6", "pin6", "username"} {
		require.NoError(t, mgr.RecordGeneration(context.Background(), stats.GenerationInfo{
			Category: cat, Count: 2, FinishedAt: time.Now(), Client: "cli",
		}))
	}

	rec = serve(mux, auth.Path()+"/data", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Summary    stats.Summary          `json:"summary"`
		Categories []stats.CountEntry     `json:"categories"`
		Recent     []stats.GenerationInfo `json:"recent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, 3, data.Summary.TotalGenerations)
	assert.Equal(t, int64(6), data.Summary.TotalItems)
	assert.Equal(t, []stats.CountEntry{
		{Label: "pin6", Generations: 2, Items: 4},
		{Label: "username", Generations: 1, Items: 2},
	}, data.Categories)
	assert.Len(t, data.Recent, 3)
	assert.Equal(t, "username", data.Recent[0].Category)
}
