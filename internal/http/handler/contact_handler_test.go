package handler_test

import (
	"net/http"
	"testing"

	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submissionPage struct {
	Data         []domain.ContactSubmissionDTO `json:"data"`
	Total        int64                         `json:"total"`
	StatusCounts map[string]int64              `json:"statusCounts"`
}

func TestContactHandler_PublicSubmit(t *testing.T) {
	a := setupAPI(t)

	rr := a.serve(newRequest(t, http.MethodPost, "/api/v1/contact", map[string]string{
		"name":    "Fatima",
		"email":   "fatima@example.com",
		"message": "Onze cv-ketel maakt lawaai.",
	}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var submission domain.ContactSubmissionDTO
	decode(t, rr, &submission)
	assert.Equal(t, domain.ContactStatusNew, submission.Status)

	rr = a.serve(newRequest(t, http.MethodPost, "/api/v1/contact", map[string]string{"name": "Zonder email"}))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr).Errors, "email")
}

func TestContactHandler_Inbox(t *testing.T) {
	a := setupAPI(t)

	submission := testutil.CreateTestSubmission(t, a.db, "Henk", domain.ContactStatusNew)
	testutil.CreateTestSubmission(t, a.db, "Ingrid", domain.ContactStatusArchived)

	rr := a.do(t, http.MethodGet, "/api/v1/contact-submissions?status=new", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var page submissionPage
	decode(t, rr, &page)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, int64(2), page.StatusCounts["all"])

	path := "/api/v1/contact-submissions/" + submission.ID.String()

	rr = a.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var opened domain.ContactSubmissionDTO
	decode(t, rr, &opened)
	assert.Equal(t, domain.ContactStatusRead, opened.Status)
	assert.NotNil(t, opened.ReadAt)

	rr = a.do(t, http.MethodPatch, path, map[string]string{"status": "replied", "notes": "Teruggebeld"})
	require.Equal(t, http.StatusOK, rr.Code)
	var replied domain.ContactSubmissionDTO
	decode(t, rr, &replied)
	assert.Equal(t, domain.ContactStatusReplied, replied.Status)
	assert.Equal(t, "Teruggebeld", replied.Notes)

	rr = a.do(t, http.MethodPatch, path, map[string]string{"status": "new"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = a.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = a.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDashboardHandler_Get(t *testing.T) {
	a := setupAPI(t)

	testutil.CreateTestSubmission(t, a.db, "Henk", domain.ContactStatusNew)

	rr := a.do(t, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var dashboard domain.DashboardDTO
	decode(t, rr, &dashboard)
	assert.Equal(t, int64(1), dashboard.ContactStats.New)
	assert.Len(t, dashboard.RecentContacts, 1)
	assert.Empty(t, dashboard.RecentProjects)
}
