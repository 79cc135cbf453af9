package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"googletrans-local/domain"
)

// stubService scripts the pipeline for handler tests.
type stubService struct {
	err     error
	failOn  string
	results map[string]string
}

func (s *stubService) Translate(ctx context.Context, trReq domain.TranslateRequest) (domain.TranslateResult, error) {
	if s.err != nil {
		return domain.TranslateResult{}, s.err
	}
	if trReq.Text == s.failOn && s.failOn != "" {
		return domain.TranslateResult{}, &domain.TransportError{Host: "stub", Status: http.StatusBadGateway}
	}
	text := s.results[trReq.Text]
	return domain.TranslateResult{
		Dest:   trReq.TargetLang,
		Origin: trReq.Text,
		Text:   text,
	}, nil
}

func (s *stubService) TranslateBatch(ctx context.Context, texts []string, trReq domain.TranslateRequest) ([]domain.TranslateResult, error) {
	results := make([]domain.TranslateResult, 0, len(texts))
	for i, text := range texts {
		itemReq := trReq
		itemReq.Text = text
		res, err := s.Translate(ctx, itemReq)
		if err != nil {
			return results, fmt.Errorf("batch item %d: %w", i, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *stubService) Close() {}

func newTestRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewTranslateHandler(svc, nil).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTranslateEndpoint(t *testing.T) {
	r := newTestRouter(&stubService{results: map[string]string{"Hello": "Hallo"}})

	w := doJSON(t, r, "/translate", `{"text":"Hello","target_lang":"de"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res domain.TranslateResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Hallo", res.Text)
	assert.Equal(t, "Hello", res.Origin)
	assert.Equal(t, "de", res.Dest)
}

func TestTranslateEndpointRejectsUnknownOption(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := doJSON(t, r, "/translate", `{"text":"Hello","target_lang":"de","format":"html"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `unsupported option \"format\"`)
}

func TestTranslateEndpointErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{
			name:   "invalid language",
			err:    &domain.LanguageError{Role: "destination", Identifier: "xx"},
			status: http.StatusBadRequest,
		},
		{
			name:   "transport",
			err:    &domain.TransportError{Host: "translate.google.com", Status: 503},
			status: http.StatusBadGateway,
		},
		{
			name:   "decode",
			err:    &domain.DecodeError{Stage: "translated text missing"},
			status: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubService{err: tt.err})
			w := doJSON(t, r, "/translate", `{"text":"Hello","target_lang":"de"}`)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestBatchEndpoint(t *testing.T) {
	t.Run("list in list out", func(t *testing.T) {
		r := newTestRouter(&stubService{results: map[string]string{"a": "A", "b": "B"}})
		w := doJSON(t, r, "/translate/batch", `{"texts":["a","b"],"target_lang":"de"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var results []domain.TranslateResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
		require.Len(t, results, 2)
		assert.Equal(t, "A", results[0].Text)
		assert.Equal(t, "B", results[1].Text)
	})

	t.Run("failure carries completed prefix", func(t *testing.T) {
		r := newTestRouter(&stubService{failOn: "b", results: map[string]string{"a": "A", "c": "C"}})
		w := doJSON(t, r, "/translate/batch", `{"texts":["a","b","c"],"target_lang":"de"}`)
		require.Equal(t, http.StatusBadGateway, w.Code)

		var body struct {
			Error   string                   `json:"error"`
			Results []domain.TranslateResult `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body.Error, "batch item 1")
		require.Len(t, body.Results, 1)
		assert.Equal(t, "A", body.Results[0].Text)
	})
}
