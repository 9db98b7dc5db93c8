package domain_test

import (
	"testing"
	"time"

	"github.com/straye-as/facility-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSubmission_TransitionTo(t *testing.T) {
	first := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	later := first.Add(24 * time.Hour)

	s := &domain.ContactSubmission{Status: domain.ContactStatusNew}

	s.TransitionTo(domain.ContactStatusReplied, first)
	assert.Equal(t, domain.ContactStatusReplied, s.Status)
	require.NotNil(t, s.ReadAt)
	assert.Equal(t, first, *s.ReadAt)

	s.TransitionTo(domain.ContactStatusArchived, later)
	assert.Equal(t, domain.ContactStatusArchived, s.Status)
	assert.Equal(t, first, *s.ReadAt, "read_at is only set once")
}

func TestContactSubmission_TransitionTo_StayingNew(t *testing.T) {
	s := &domain.ContactSubmission{Status: domain.ContactStatusNew}

	s.TransitionTo(domain.ContactStatusNew, time.Now())

	assert.Equal(t, domain.ContactStatusNew, s.Status)
	assert.Nil(t, s.ReadAt)
}

func TestContactSubmission_MarkAsRead(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	s := &domain.ContactSubmission{Status: domain.ContactStatusNew}
	assert.True(t, s.MarkAsRead(now))
	assert.Equal(t, domain.ContactStatusRead, s.Status)
	require.NotNil(t, s.ReadAt)

	replied := &domain.ContactSubmission{Status: domain.ContactStatusReplied}
	assert.False(t, replied.MarkAsRead(now))
	assert.Equal(t, domain.ContactStatusReplied, replied.Status)
	assert.Nil(t, replied.ReadAt)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, domain.BuildingTypeOffice.IsValid())
	assert.False(t, domain.BuildingType("castle").IsValid())

	assert.True(t, domain.ProjectTypeRecurring.IsValid())
	assert.False(t, domain.ProjectType("").IsValid())

	assert.True(t, domain.ProjectStatusInvoiced.IsValid())
	assert.False(t, domain.ProjectStatus("planned").IsValid())

	assert.True(t, domain.ContactStatusArchived.IsValid())
	assert.False(t, domain.ContactStatus("handled").IsValid())
}

func TestActiveProjectStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]domain.ProjectStatus{domain.ProjectStatusApproved, domain.ProjectStatusInProgress},
		domain.ActiveProjectStatuses(),
	)
}

func TestParseProjectFilters(t *testing.T) {
	clientID := "0b7c6f0e-5a43-4c4f-9a36-3f1f5d0a8e11"

	f := domain.ParseProjectFilters("  lift  ", "in_progress", "renovation", clientID)
	assert.Equal(t, "lift", f.Search)
	assert.Equal(t, domain.ProjectStatusInProgress, f.Status)
	assert.Equal(t, domain.ProjectTypeRenovation, f.Type)
	require.NotNil(t, f.ClientID)
	assert.Equal(t, clientID, f.ClientID.String())

	ignored := domain.ParseProjectFilters("", "bogus", "castle", "not-a-uuid")
	assert.Empty(t, ignored.Search)
	assert.Empty(t, ignored.Status)
	assert.Empty(t, ignored.Type)
	assert.Nil(t, ignored.ClientID)
}

func TestParseContactStatusFilter(t *testing.T) {
	assert.Equal(t, domain.ContactStatusReplied, domain.ParseContactStatusFilter("replied"))
	assert.Equal(t, domain.ContactStatus(""), domain.ParseContactStatusFilter("all"))
}

func TestValidationError(t *testing.T) {
	ve := domain.NewValidationError("name", "required")
	ve.Add("email", "invalid")
	ve.Add("name", "ignored second message")

	assert.True(t, ve.HasErrors())
	assert.Equal(t, "required", ve.Fields["name"])
	assert.Equal(t, "validation failed: email: invalid; name: required", ve.Error())
}
