package mapper

import (
	"time"

	"github.com/straye-as/facility-api/internal/domain"
	"gorm.io/datatypes"
)

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(domain.TimestampLayout)
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format(domain.DateLayout)
}

func formatOptionalDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := formatDate(*d)
	return &s
}

// ToClientDTO converts Client to ClientDTO
func ToClientDTO(client *domain.Client, locationsCount, projectsCount int64) domain.ClientDTO {
	return domain.ClientDTO{
		ID:             client.ID,
		Name:           client.Name,
		ContactPerson:  client.ContactPerson,
		Email:          client.Email,
		Phone:          client.Phone,
		Notes:          client.Notes,
		LocationsCount: locationsCount,
		ProjectsCount:  projectsCount,
		CreatedAt:      formatTimestamp(client.CreatedAt),
		UpdatedAt:      formatTimestamp(client.UpdatedAt),
	}
}

// ToClientOptionDTO converts Client to the id/name pair used by pickers
func ToClientOptionDTO(client *domain.Client) domain.ClientOptionDTO {
	return domain.ClientOptionDTO{
		ID:   client.ID,
		Name: client.Name,
	}
}

// ToLocationDTO converts Location to LocationDTO. The client summary is
// included when the Client association is loaded.
func ToLocationDTO(location *domain.Location, projectsCount int64) domain.LocationDTO {
	dto := domain.LocationDTO{
		ID:            location.ID,
		ClientID:      location.ClientID,
		Name:          location.Name,
		Address:       location.Address,
		PostalCode:    location.PostalCode,
		City:          location.City,
		FullAddress:   location.FullAddress(),
		BuildingType:  location.BuildingType,
		Notes:         location.Notes,
		ProjectsCount: projectsCount,
		CreatedAt:     formatTimestamp(location.CreatedAt),
		UpdatedAt:     formatTimestamp(location.UpdatedAt),
	}
	if location.Client != nil {
		client := ToClientOptionDTO(location.Client)
		dto.Client = &client
	}
	return dto
}

// ToProjectDTO converts Project to ProjectDTO
func ToProjectDTO(project *domain.Project) domain.ProjectDTO {
	dto := domain.ProjectDTO{
		ID:          project.ID,
		LocationID:  project.LocationID,
		Title:       project.Title,
		Description: project.Description,
		Type:        project.Type,
		Status:      project.Status,
		StartDate:   formatOptionalDate(project.StartDate),
		DueDate:     formatOptionalDate(project.DueDate),
		CreatedAt:   formatTimestamp(project.CreatedAt),
		UpdatedAt:   formatTimestamp(project.UpdatedAt),
	}

	if project.QuotedPrice.Valid {
		price := project.QuotedPrice.Decimal
		dto.QuotedPrice = &price
	}

	if project.Location != nil {
		loc := &domain.ProjectLocationDTO{
			ID:       project.Location.ID,
			Name:     project.Location.Name,
			City:     project.Location.City,
			ClientID: project.Location.ClientID,
		}
		if project.Location.Client != nil {
			loc.ClientName = project.Location.Client.Name
		}
		dto.Location = loc
	}

	return dto
}

// ToProjectDetailDTO converts a fully loaded Project. fileURL resolves the
// public URL of a stored file.
func ToProjectDetailDTO(project *domain.Project, activityTypes []domain.ActivityType, fileURL func(path string) string) domain.ProjectDetailDTO {
	dto := domain.ProjectDetailDTO{
		ProjectDTO:    ToProjectDTO(project),
		TimeEntries:   make([]domain.TimeEntryDTO, 0, len(project.TimeEntries)),
		Materials:     make([]domain.MaterialDTO, 0, len(project.Materials)),
		Notes:         make([]domain.NoteDTO, 0, len(project.Notes)),
		Files:         make([]domain.FileDTO, 0, len(project.Files)),
		ActivityTypes: make([]domain.ActivityTypeDTO, 0, len(activityTypes)),
		Financials:    domain.CalculateFinancials(project),
	}

	for i := range project.TimeEntries {
		dto.TimeEntries = append(dto.TimeEntries, ToTimeEntryDTO(&project.TimeEntries[i]))
	}
	for i := range project.Materials {
		dto.Materials = append(dto.Materials, ToMaterialDTO(&project.Materials[i]))
	}
	for i := range project.Notes {
		dto.Notes = append(dto.Notes, ToNoteDTO(&project.Notes[i]))
	}
	for i := range project.Files {
		dto.Files = append(dto.Files, ToFileDTO(&project.Files[i], fileURL(project.Files[i].Path)))
	}
	for i := range activityTypes {
		dto.ActivityTypes = append(dto.ActivityTypes, ToActivityTypeDTO(&activityTypes[i]))
	}

	return dto
}

// ToActivityTypeDTO converts ActivityType to ActivityTypeDTO
func ToActivityTypeDTO(activityType *domain.ActivityType) domain.ActivityTypeDTO {
	return domain.ActivityTypeDTO{
		ID:                activityType.ID,
		Name:              activityType.Name,
		DefaultHourlyRate: activityType.DefaultHourlyRate,
		IsActive:          activityType.IsActive,
	}
}

// ToTimeEntryDTO converts TimeEntry to TimeEntryDTO
func ToTimeEntryDTO(entry *domain.TimeEntry) domain.TimeEntryDTO {
	dto := domain.TimeEntryDTO{
		ID:             entry.ID,
		ProjectID:      entry.ProjectID,
		ActivityTypeID: entry.ActivityTypeID,
		Hours:          entry.Hours,
		HourlyRate:     entry.HourlyRate,
		TotalCost:      entry.TotalCost(),
		Date:           formatDate(entry.Date),
		Notes:          entry.Notes,
		CreatedAt:      formatTimestamp(entry.CreatedAt),
	}
	if entry.ActivityType != nil {
		at := ToActivityTypeDTO(entry.ActivityType)
		dto.ActivityType = &at
	}
	return dto
}

// ToMaterialDTO converts ProjectMaterial to MaterialDTO
func ToMaterialDTO(material *domain.ProjectMaterial) domain.MaterialDTO {
	return domain.MaterialDTO{
		ID:        material.ID,
		ProjectID: material.ProjectID,
		Name:      material.Name,
		Quantity:  material.Quantity,
		Unit:      material.Unit,
		UnitCost:  material.UnitCost,
		TotalCost: material.TotalCost,
		Date:      formatDate(material.Date),
		Notes:     material.Notes,
		CreatedAt: formatTimestamp(material.CreatedAt),
	}
}

// ToNoteDTO converts ProjectNote to NoteDTO
func ToNoteDTO(note *domain.ProjectNote) domain.NoteDTO {
	return domain.NoteDTO{
		ID:         note.ID,
		ProjectID:  note.ProjectID,
		AuthorID:   note.AuthorID,
		AuthorName: note.AuthorName,
		Content:    note.Content,
		CreatedAt:  formatTimestamp(note.CreatedAt),
	}
}

// ToFileDTO converts ProjectFile to FileDTO
func ToFileDTO(file *domain.ProjectFile, url string) domain.FileDTO {
	return domain.FileDTO{
		ID:             file.ID,
		ProjectID:      file.ProjectID,
		Name:           file.Name,
		OriginalName:   file.OriginalName,
		MimeType:       file.MimeType,
		Size:           file.Size,
		URL:            url,
		UploadedByID:   file.UploadedByID,
		UploadedByName: file.UploadedByName,
		CreatedAt:      formatTimestamp(file.CreatedAt),
	}
}

// ToContactSubmissionDTO converts ContactSubmission to ContactSubmissionDTO
func ToContactSubmissionDTO(submission *domain.ContactSubmission) domain.ContactSubmissionDTO {
	dto := domain.ContactSubmissionDTO{
		ID:        submission.ID,
		Name:      submission.Name,
		Email:     submission.Email,
		Phone:     submission.Phone,
		Subject:   submission.Subject,
		Message:   submission.Message,
		Status:    submission.Status,
		Notes:     submission.Notes,
		CreatedAt: formatTimestamp(submission.CreatedAt),
		UpdatedAt: formatTimestamp(submission.UpdatedAt),
	}
	if submission.ReadAt != nil {
		readAt := formatTimestamp(*submission.ReadAt)
		dto.ReadAt = &readAt
	}
	return dto
}

// ToContactSubmissionSummaryDTO converts ContactSubmission to the dashboard projection
func ToContactSubmissionSummaryDTO(submission *domain.ContactSubmission) domain.ContactSubmissionSummaryDTO {
	return domain.ContactSubmissionSummaryDTO{
		ID:        submission.ID,
		Name:      submission.Name,
		Subject:   submission.Subject,
		Status:    submission.Status,
		CreatedAt: formatTimestamp(submission.CreatedAt),
	}
}

// ToDashboardProjectDTO converts a Project with Location.Client loaded
func ToDashboardProjectDTO(project *domain.Project) domain.DashboardProjectDTO {
	dto := domain.DashboardProjectDTO{
		ID:        project.ID,
		Title:     project.Title,
		Status:    project.Status,
		CreatedAt: formatTimestamp(project.CreatedAt),
	}
	if project.Location != nil {
		dto.LocationName = project.Location.Name
		if project.Location.Client != nil {
			dto.ClientName = project.Location.Client.Name
		}
	}
	return dto
}
