package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Timestamp and date layouts used on the wire
const (
	TimestampLayout = "2006-01-02T15:04:05Z"
	DateLayout      = "2006-01-02"
)

// Client DTOs

type ClientDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	ContactPerson  string    `json:"contactPerson,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	LocationsCount int64     `json:"locationsCount"`
	ProjectsCount  int64     `json:"projectsCount"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedAt      string    `json:"updatedAt"`
}

// ClientDetailDTO is a client with its locations
type ClientDetailDTO struct {
	ClientDTO
	Locations []LocationDTO `json:"locations"`
}

// ClientOptionDTO is the minimal client shape used by pickers
type ClientOptionDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ClientRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	ContactPerson string `json:"contactPerson" validate:"omitempty,max=255"`
	Email         string `json:"email" validate:"omitempty,email,max=255"`
	Phone         string `json:"phone" validate:"omitempty,max=50"`
	Notes         string `json:"notes"`
}

// Location DTOs

type LocationDTO struct {
	ID            uuid.UUID        `json:"id"`
	ClientID      uuid.UUID        `json:"clientId"`
	Client        *ClientOptionDTO `json:"client,omitempty"`
	Name          string           `json:"name"`
	Address       string           `json:"address"`
	PostalCode    string           `json:"postalCode"`
	City          string           `json:"city"`
	FullAddress   string           `json:"fullAddress"`
	BuildingType  BuildingType     `json:"buildingType"`
	Notes         string           `json:"notes,omitempty"`
	ProjectsCount int64            `json:"projectsCount"`
	CreatedAt     string           `json:"createdAt"`
	UpdatedAt     string           `json:"updatedAt"`
}

// LocationDetailDTO is a location with its projects
type LocationDetailDTO struct {
	LocationDTO
	Projects []ProjectDTO `json:"projects"`
}

type LocationRequest struct {
	ClientID     string `json:"clientId" validate:"required,uuid"`
	Name         string `json:"name" validate:"required,max=255"`
	Address      string `json:"address" validate:"required,max=255"`
	PostalCode   string `json:"postalCode" validate:"required,max=20"`
	City         string `json:"city" validate:"required,max=255"`
	BuildingType string `json:"buildingType" validate:"required,building_type"`
	Notes        string `json:"notes"`
}

// Project DTOs

// ProjectLocationDTO summarises where a project takes place
type ProjectLocationDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	City       string    `json:"city"`
	ClientID   uuid.UUID `json:"clientId"`
	ClientName string    `json:"clientName"`
}

type ProjectDTO struct {
	ID          uuid.UUID           `json:"id"`
	LocationID  uuid.UUID           `json:"locationId"`
	Location    *ProjectLocationDTO `json:"location,omitempty"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Type        ProjectType         `json:"type"`
	Status      ProjectStatus       `json:"status"`
	QuotedPrice *decimal.Decimal    `json:"quotedPrice"`
	StartDate   *string             `json:"startDate"`
	DueDate     *string             `json:"dueDate"`
	CreatedAt   string              `json:"createdAt"`
	UpdatedAt   string              `json:"updatedAt"`
}

// ProjectDetailDTO is a project with all child rows, the active activity
// types for new time entries and the derived financials
type ProjectDetailDTO struct {
	ProjectDTO
	TimeEntries   []TimeEntryDTO    `json:"timeEntries"`
	Materials     []MaterialDTO     `json:"materials"`
	Notes         []NoteDTO         `json:"notes"`
	Files         []FileDTO         `json:"files"`
	ActivityTypes []ActivityTypeDTO `json:"activityTypes"`
	Financials    ProjectFinancials `json:"financials"`
}

// ProjectListResponse is a page of projects plus counts per status
type ProjectListResponse struct {
	PaginatedResponse
	StatusCounts map[string]int64 `json:"statusCounts"`
}

type ProjectRequest struct {
	LocationID  string           `json:"locationId" validate:"required,uuid"`
	Title       string           `json:"title" validate:"required,max=255"`
	Description string           `json:"description"`
	Type        string           `json:"type" validate:"omitempty,project_type"`
	Status      string           `json:"status" validate:"omitempty,project_status"`
	QuotedPrice *decimal.Decimal `json:"quotedPrice" validate:"omitempty,gte=0"`
	StartDate   string           `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	DueDate     string           `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

// ProjectFilters are the optional list filters for projects.
// Zero values mean the filter is not applied.
type ProjectFilters struct {
	Search   string
	Status   ProjectStatus
	Type     ProjectType
	ClientID *uuid.UUID
}

// Activity type DTOs

type ActivityTypeDTO struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	DefaultHourlyRate decimal.Decimal `json:"defaultHourlyRate"`
	IsActive          bool            `json:"isActive"`
}

type ActivityTypeRequest struct {
	Name              string           `json:"name" validate:"required,max=255"`
	DefaultHourlyRate *decimal.Decimal `json:"defaultHourlyRate" validate:"omitempty,gte=0"`
	IsActive          *bool            `json:"isActive"`
}

// Time entry DTOs

type TimeEntryDTO struct {
	ID             uuid.UUID        `json:"id"`
	ProjectID      uuid.UUID        `json:"projectId"`
	ActivityTypeID uuid.UUID        `json:"activityTypeId"`
	ActivityType   *ActivityTypeDTO `json:"activityType,omitempty"`
	Hours          decimal.Decimal  `json:"hours"`
	HourlyRate     decimal.Decimal  `json:"hourlyRate"`
	TotalCost      decimal.Decimal  `json:"totalCost"`
	Date           string           `json:"date"`
	Notes          string           `json:"notes,omitempty"`
	CreatedAt      string           `json:"createdAt"`
}

type TimeEntryRequest struct {
	ActivityTypeID string           `json:"activityTypeId" validate:"required,uuid"`
	Hours          *decimal.Decimal `json:"hours" validate:"required,gte=0.25,lte=24"`
	HourlyRate     *decimal.Decimal `json:"hourlyRate" validate:"required,gte=0"`
	Date           string           `json:"date" validate:"required,datetime=2006-01-02"`
	Notes          string           `json:"notes"`
}

// Material DTOs

type MaterialDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProjectID uuid.UUID       `json:"projectId"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	TotalCost decimal.Decimal `json:"totalCost"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt string          `json:"createdAt"`
}

// MaterialRequest has no total cost field; the stored total is always
// quantity times unit cost.
type MaterialRequest struct {
	Name     string           `json:"name" validate:"required,max=255"`
	Quantity *decimal.Decimal `json:"quantity" validate:"required,gte=0.01"`
	Unit     string           `json:"unit" validate:"omitempty,max=50"`
	UnitCost *decimal.Decimal `json:"unitCost" validate:"required,gte=0"`
	Date     string           `json:"date" validate:"required,datetime=2006-01-02"`
	Notes    string           `json:"notes"`
}

// Note DTOs

type NoteDTO struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"projectId"`
	AuthorID   uuid.UUID `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  string    `json:"createdAt"`
}

type NoteRequest struct {
	Content string `json:"content" validate:"required"`
}

// File DTOs

type FileDTO struct {
	ID             uuid.UUID `json:"id"`
	ProjectID      uuid.UUID `json:"projectId"`
	Name           string    `json:"name"`
	OriginalName   string    `json:"originalName"`
	MimeType       string    `json:"mimeType"`
	Size           int64     `json:"size"`
	URL            string    `json:"url"`
	UploadedByID   uuid.UUID `json:"uploadedById"`
	UploadedByName string    `json:"uploadedByName"`
	CreatedAt      string    `json:"createdAt"`
}

// Contact submission DTOs

type ContactSubmissionDTO struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Subject   string        `json:"subject,omitempty"`
	Message   string        `json:"message,omitempty"`
	Status    ContactStatus `json:"status"`
	Notes     string        `json:"notes,omitempty"`
	ReadAt    *string       `json:"readAt"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

// ContactSubmissionSummaryDTO is the narrow projection used on the dashboard
type ContactSubmissionSummaryDTO struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Subject   string        `json:"subject,omitempty"`
	Status    ContactStatus `json:"status"`
	CreatedAt string        `json:"createdAt"`
}

// ContactSubmissionListResponse is a page of submissions plus counts per status
type ContactSubmissionListResponse struct {
	PaginatedResponse
	StatusCounts map[string]int64 `json:"statusCounts"`
}

type ContactSubmissionRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Subject string `json:"subject" validate:"omitempty,max=255"`
	Message string `json:"message" validate:"omitempty,max=5000"`
}

type UpdateContactSubmissionRequest struct {
	Status *string `json:"status" validate:"omitempty,contact_status"`
	Notes  *string `json:"notes" validate:"omitempty,max=5000"`
}

// Dashboard DTOs

type ContactStatsDTO struct {
	Total int64 `json:"total"`
	New   int64 `json:"new"`
}

type ProjectStatsDTO struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// DashboardProjectDTO is a recent project with location and client names joined in
type DashboardProjectDTO struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Status       ProjectStatus `json:"status"`
	LocationName string        `json:"locationName"`
	ClientName   string        `json:"clientName"`
	CreatedAt    string        `json:"createdAt"`
}

type DashboardDTO struct {
	ContactStats   ContactStatsDTO               `json:"contactStats"`
	RecentContacts []ContactSubmissionSummaryDTO `json:"recentContacts"`
	ProjectStats   ProjectStatsDTO               `json:"projectStats"`
	RecentProjects []DashboardProjectDTO         `json:"recentProjects"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// AuthUserDTO describes the caller of the current request
type AuthUserDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
	AuthType string    `json:"authType"`
}
