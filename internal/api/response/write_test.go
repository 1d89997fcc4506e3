package response

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerrk000/teamify/internal/api/apierr"
	"github.com/jerrk000/teamify/internal/model"
)

func TestJSONWritesBody(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusCreated, map[string]int{"revision": 2})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"revision":2}`, rr.Body.String())
}

func TestJSONUnencodableValueIsServerError(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusOK, model.Rect{X: math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, apierr.CodeInternalError, resp.Error.Code)
}

func TestJSONNilHasNoBody(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusAccepted, nil)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Empty(t, rr.Body.String())
}
