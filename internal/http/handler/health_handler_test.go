package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	a := setupAPI(t)

	rr := a.serve(newRequest(t, http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())

	rr = a.serve(newRequest(t, http.MethodGet, "/health/db", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var db map[string]interface{}
	decode(t, rr, &db)
	assert.Equal(t, "healthy", db["status"])
	assert.Contains(t, db, "stats")

	rr = a.serve(newRequest(t, http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
