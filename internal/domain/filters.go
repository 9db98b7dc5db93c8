package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ParseProjectFilters builds project list filters from raw query values.
// Values that are not a known enum member or not a UUID are dropped.
func ParseProjectFilters(search, status, projectType, clientID string) *ProjectFilters {
	filters := &ProjectFilters{Search: strings.TrimSpace(search)}

	if s := ProjectStatus(status); s.IsValid() {
		filters.Status = s
	}
	if t := ProjectType(projectType); t.IsValid() {
		filters.Type = t
	}
	if id, err := uuid.Parse(clientID); err == nil {
		filters.ClientID = &id
	}

	return filters
}

// ParseContactStatusFilter returns status when it is a known value, otherwise
// the empty status which means no filter
func ParseContactStatusFilter(status string) ContactStatus {
	if s := ContactStatus(status); s.IsValid() {
		return s
	}
	return ""
}
