package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rogeriosouza/construtora-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/clients?page=3&per_page=10&search_term=silva&sort=created_at-desc", nil)

	query := parseListQuery(c)

	assert.Equal(t, 3, query.Page)
	assert.Equal(t, 10, query.PerPage)
	assert.Equal(t, "silva", query.Search)
	assert.Equal(t, "created_at", query.SortBy)
	assert.Equal(t, "desc", query.SortDir)
}

func TestParseListQueryDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/clients", nil)

	query := parseListQuery(c)

	assert.Equal(t, 1, query.Page)
	assert.Equal(t, 20, query.PerPage)
	assert.Empty(t, query.Search)
}

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: valor inválido", services.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: parcela já paga", services.ErrInvalidState), http.StatusUnprocessableEntity},
		{services.ErrInactiveRecord, http.StatusUnprocessableEntity},
		{services.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		respondError(c, tc.err)
		require.Equal(t, tc.status, recorder.Code, "error %v", tc.err)
	}
}
