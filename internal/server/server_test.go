package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbmops/scorecard"
)

const testExport = `Id,Completion time,Please Enter Your Name,Date/Time of Scorecard Review?,Name of Account/Portfolio,What was the overall Scorecard Score?
1,12/20/2025 16:05,Dana Whitfield,12/15/2025 14:30,Merck Sodexo,4.68/5.00
2,12/21/2025 09:00,Chris Ortega,12/18/2025 10:00,GM Milford,91
3,12/21/2025 10:00,Alex Pruitt,12/19/2025 10:00,Mystery Startup Nobody Knows,3.5
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "December_2025_Scorecards.csv"), []byte(testExport), 0o644))

	client, err := scorecard.New()
	require.NoError(t, err)

	cfg := &Config{
		ServerAddr:    ":0",
		ScorecardsDir: dir,
		CacheTTL:      time.Minute,
		Environment:   "development",
		SiteTitle:     "Scorecard Review Dashboard",
	}
	return New(cfg, client)
}

func doRequest(t *testing.T, s *Server, path string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := s.App.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	resp, body := doRequest(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestAPIAccounts(t *testing.T) {
	s := newTestServer(t)
	resp, body := doRequest(t, s, "/api/accounts")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, body)
	assert.Equal(t, "ok", env.Status)

	var data struct {
		Month    string `json:"month"`
		Accounts []struct {
			Account struct {
				Name     string `json:"name"`
				Vertical string `json:"vertical"`
			} `json:"account"`
			HasData   bool `json:"has_data"`
			Responses int  `json:"responses"`
		} `json:"accounts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "December_2025", data.Month)
	require.Len(t, data.Accounts, 55)

	withData := 0
	for _, a := range data.Accounts {
		if a.HasData {
			withData++
		}
	}
	assert.Equal(t, 2, withData)
}

func TestAPIAccountsUnknownMonth(t *testing.T) {
	s := newTestServer(t)
	resp, body := doRequest(t, s, "/api/accounts?month=October_2025")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	env := decodeEnvelope(t, body)
	assert.Equal(t, "error", env.Status)
}

func TestAPIMissing(t *testing.T) {
	s := newTestServer(t)
	resp, body := doRequest(t, s, "/api/accounts/missing")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, body)
	var data struct {
		Accounts []json.RawMessage `json:"accounts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Accounts, 53)
}

func TestAPIDiagnostics(t *testing.T) {
	s := newTestServer(t)
	resp, body := doRequest(t, s, "/api/diagnostics")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, body)
	var data struct {
		Unresolved []struct {
			RawName string `json:"raw_name"`
			Row     int    `json:"row"`
		} `json:"unresolved"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Unresolved, 1)
	assert.Equal(t, "Mystery Startup Nobody Knows", data.Unresolved[0].RawName)
}

func TestDashboardPage(t *testing.T) {
	s := newTestServer(t)
	resp, body := doRequest(t, s, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Scorecard Review Dashboard")
	assert.Contains(t, string(body), "December 2025")
	assert.Contains(t, string(body), "Merck")
	assert.Contains(t, string(body), "Unresolved names")
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)

	// Metrics read the cached snapshot; warm it first.
	resp, _ := doRequest(t, s, "/api/accounts")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, s, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "scorecard_accounts")
	assert.Contains(t, string(body), "scorecard_unresolved_names 1")
}

func TestCacheReuse(t *testing.T) {
	s := newTestServer(t)

	resp, _ := doRequest(t, s, "/api/accounts")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := s.cache.peek()
	require.NotNil(t, first)

	resp, _ = doRequest(t, s, "/api/accounts")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Same(t, first, s.cache.peek())
}
