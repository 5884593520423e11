package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_DescribesEveryRoute(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(spec, &doc))

	assert.Contains(t, doc.Paths["/api"], "get")
	assert.Contains(t, doc.Paths["/api"], "post")
	for _, method := range []string{"get", "patch", "put", "delete"} {
		assert.Contains(t, doc.Paths["/api/{id}"], method)
	}
}

func TestHandler(t *testing.T) {
	h := Handler()

	t.Run("Spec", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, SpecPath, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.JSONEq(t, string(spec), w.Body.String())
	})

	t.Run("UI", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "swagger")
	})
}
