package resp

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(h gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h(c)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestErrorEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind string
		wantMsg  string
	}{
		{"conflict", apperr.New(apperr.Conflict, "order already claimed"), http.StatusConflict, "CONFLICT", "order already claimed"},
		{"empty cart", apperr.New(apperr.EmptyCart, "cart is empty"), http.StatusBadRequest, "EMPTY_CART", "cart is empty"},
		{"foreign error hidden", errors.New("sql: connection refused"), http.StatusInternalServerError, "INTERNAL", "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := run(func(c *gin.Context) { Error(c, tt.err) })
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tt.wantKind, body["kind"])
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestErrorCarriesDetailsAndFields(t *testing.T) {
	err := apperr.New(apperr.Conflict, "cart has another restaurant").
		WithDetail("existingRestaurant", map[string]any{"id": 3, "name": "Pho 24"})
	_, body := run(func(c *gin.Context) { Error(c, err) })

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	existing := details["existingRestaurant"].(map[string]any)
	assert.Equal(t, "Pho 24", existing["name"])

	_, body = run(func(c *gin.Context) {
		Error(c, apperr.ValidationFields("invalid request", map[string]string{"quantity": "must be >= 1"}))
	})
	assert.Equal(t, map[string]any{"quantity": "must be >= 1"}, body["fields"])
}

func TestOK(t *testing.T) {
	w, body := run(func(c *gin.Context) { OK(c, gin.H{"id": 1}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
}
