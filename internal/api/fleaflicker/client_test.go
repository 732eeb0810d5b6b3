package fleaflicker

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    srv.URL,
	}
	return client, srv
}

func TestGetJSON(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    bool
		wantNetErr bool
	}{
		{
			name:       "success",
			statusCode: http.StatusOK,
			body:       `{"league": {"id": 12345, "name": "Test League", "size": 10}}`,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       `{}`,
			wantErr:    true,
			wantNetErr: true,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			body:       ``,
			wantErr:    true,
			wantNetErr: true,
		},
		{
			name:       "malformed body",
			statusCode: http.StatusOK,
			body:       `{"league": `,
			wantErr:    true,
			wantNetErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "12345", r.URL.Query().Get("leagueId"))
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			var result struct {
				League struct {
					ID   int    `json:"id"`
					Name string `json:"name"`
					Size int    `json:"size"`
				} `json:"league"`
			}
			err := client.GetJSON("/api/FetchLeagueStandings", map[string]string{"leagueId": "12345"}, &result)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "Test League", result.League.Name)
				assert.Equal(t, 10, result.League.Size)
				return
			}

			require.Error(t, err)
			var netErr *NetworkError
			assert.Equal(t, tt.wantNetErr, errors.As(err, &netErr))
		})
	}
}

func TestGetJSONTransportError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	var result map[string]any
	err := client.GetJSON("/api/FetchLeagueStandings", nil, &result)
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.NotEmpty(t, netErr.URL)
	assert.Error(t, netErr.Unwrap())
}

func TestGetHTML(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><ul><li>This Week</li><li>Week 10</li></ul></body></html>`))
	}))
	defer srv.Close()

	doc, err := client.GetHTML("/nfl/leagues/12345/scores")
	require.NoError(t, err)

	week, ok := scrapeCurrentWeek(doc)
	require.True(t, ok)
	assert.Equal(t, 9, week)
}
