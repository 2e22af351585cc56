package portfolio

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioHandler(t *testing.T) {
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
		wantValue  float64
	}{
		{
			name:       "merges duplicates case-insensitively",
			body:       `{"holdings":[{"ticker":"petr4","quantity":10},{"ticker":"PETR4","quantity":10},{"ticker":"ITSA4","quantity":100}]}`,
			wantStatus: http.StatusOK,
			wantValue:  38.45*20 + 9.80*100,
		},
		{
			name:       "unknown ticker",
			body:       `{"holdings":[{"ticker":"XXXX3","quantity":1}]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  `portfolio.Summarize: unknown ticker: "XXXX3"`,
		},
		{
			name:       "non-positive quantity",
			body:       `{"holdings":[{"ticker":"PETR4","quantity":0}]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "field Quantity must be greater than 0",
		},
		{
			name:       "empty holdings",
			body:       `{"holdings":[]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "field Holdings must contain at least 1 items",
		},
		{
			name:       "invalid json",
			body:       `[`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/portfolio/summary", bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
				return
			}
			data := got["data"].(map[string]any)
			assert.InDelta(t, tt.wantValue, data["total_value"], 1e-6)
			assert.Len(t, data["positions"], 2)
		})
	}
}
