package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns a UUID when the caller did not set one
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BuildingType is the closed set of location building categories.
// Wire values are the ones stored by the existing back-office.
type BuildingType string

const (
	BuildingTypeOffice      BuildingType = "kantoor"
	BuildingTypeShop        BuildingType = "winkel"
	BuildingTypeHotel       BuildingType = "hotel"
	BuildingTypeHealthcare  BuildingType = "zorg"
	BuildingTypeIndustrial  BuildingType = "industrial"
	BuildingTypeResidential BuildingType = "residential"
	BuildingTypeOther       BuildingType = "overig"
)

// IsValid checks if the building type is a known value
func (b BuildingType) IsValid() bool {
	switch b {
	case BuildingTypeOffice, BuildingTypeShop, BuildingTypeHotel, BuildingTypeHealthcare,
		BuildingTypeIndustrial, BuildingTypeResidential, BuildingTypeOther:
		return true
	}
	return false
}

// ProjectType represents the kind of work a project covers
type ProjectType string

const (
	ProjectTypeMaintenance ProjectType = "maintenance"
	ProjectTypeRecurring   ProjectType = "recurring"
	ProjectTypeRenovation  ProjectType = "renovation"
)

// IsValid checks if the project type is a known value
func (t ProjectType) IsValid() bool {
	switch t {
	case ProjectTypeMaintenance, ProjectTypeRecurring, ProjectTypeRenovation:
		return true
	}
	return false
}

// ProjectStatus represents where a project is in its commercial lifecycle
type ProjectStatus string

const (
	ProjectStatusQuote      ProjectStatus = "quote"
	ProjectStatusApproved   ProjectStatus = "approved"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusInvoiced   ProjectStatus = "invoiced"
)

// AllProjectStatuses lists statuses in lifecycle order
var AllProjectStatuses = []ProjectStatus{
	ProjectStatusQuote,
	ProjectStatusApproved,
	ProjectStatusInProgress,
	ProjectStatusCompleted,
	ProjectStatusInvoiced,
}

// IsValid checks if the project status is a known value
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusQuote, ProjectStatusApproved, ProjectStatusInProgress,
		ProjectStatusCompleted, ProjectStatusInvoiced:
		return true
	}
	return false
}

// IsActive reports whether work is approved or underway
func (s ProjectStatus) IsActive() bool {
	switch s {
	case ProjectStatusApproved, ProjectStatusInProgress:
		return true
	case ProjectStatusQuote, ProjectStatusCompleted, ProjectStatusInvoiced:
		return false
	}
	return false
}

// ActiveProjectStatuses returns the statuses counted as active on the dashboard
func ActiveProjectStatuses() []ProjectStatus {
	var active []ProjectStatus
	for _, s := range AllProjectStatuses {
		if s.IsActive() {
			active = append(active, s)
		}
	}
	return active
}

// ContactStatus is the state of a public contact submission
type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "new"
	ContactStatusRead     ContactStatus = "read"
	ContactStatusReplied  ContactStatus = "replied"
	ContactStatusArchived ContactStatus = "archived"
)

// AllContactStatuses lists contact statuses in display order
var AllContactStatuses = []ContactStatus{
	ContactStatusNew,
	ContactStatusRead,
	ContactStatusReplied,
	ContactStatusArchived,
}

// IsValid checks if the contact status is a known value
func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusReplied, ContactStatusArchived:
		return true
	}
	return false
}

// Client is a customer that owns one or more locations
type Client struct {
	BaseModel
	Name          string     `gorm:"type:varchar(255);not null;index"`
	ContactPerson string     `gorm:"type:varchar(255)"`
	Email         string     `gorm:"type:varchar(255)"`
	Phone         string     `gorm:"type:varchar(50)"`
	Notes         string     `gorm:"type:text"`
	Locations     []Location `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

// Location is a physical site belonging to a client
type Location struct {
	BaseModel
	ClientID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	Client       *Client      `gorm:"foreignKey:ClientID"`
	Name         string       `gorm:"type:varchar(255);not null;index"`
	Address      string       `gorm:"type:varchar(255);not null"`
	PostalCode   string       `gorm:"type:varchar(20);not null"`
	City         string       `gorm:"type:varchar(255);not null"`
	BuildingType BuildingType `gorm:"type:varchar(20);not null"`
	Notes        string       `gorm:"type:text"`
	Projects     []Project    `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
}

// Project is a unit of work carried out at a location
type Project struct {
	BaseModel
	LocationID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	Location    *Location           `gorm:"foreignKey:LocationID"`
	Title       string              `gorm:"type:varchar(255);not null"`
	Description string              `gorm:"type:text"`
	Type        ProjectType         `gorm:"type:varchar(20);not null;index"`
	Status      ProjectStatus       `gorm:"type:varchar(20);not null;index"`
	QuotedPrice decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	StartDate   *datatypes.Date
	DueDate     *datatypes.Date
	TimeEntries []TimeEntry       `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Materials   []ProjectMaterial `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Notes       []ProjectNote     `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Files       []ProjectFile     `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// ActivityType is a kind of billable work with a default hourly rate
type ActivityType struct {
	BaseModel
	Name              string          `gorm:"type:varchar(255);not null"`
	DefaultHourlyRate decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	IsActive          bool            `gorm:"not null;index"`
	TimeEntries       []TimeEntry     `gorm:"foreignKey:ActivityTypeID;constraint:OnDelete:RESTRICT"`
}

// TimeEntry records hours worked on a project
type TimeEntry struct {
	BaseModel
	ProjectID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ActivityTypeID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ActivityType   *ActivityType   `gorm:"foreignKey:ActivityTypeID"`
	Hours          decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	HourlyRate     decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	Date           datatypes.Date  `gorm:"not null"`
	Notes          string          `gorm:"type:text"`
}

// TotalCost is hours times hourly rate
func (t *TimeEntry) TotalCost() decimal.Decimal {
	return TimeEntryCost(t.Hours, t.HourlyRate)
}

// ProjectMaterial is a material line used on a project
type ProjectMaterial struct {
	BaseModel
	ProjectID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Unit      string          `gorm:"type:varchar(50);not null"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalCost decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Date      datatypes.Date  `gorm:"not null"`
	Notes     string          `gorm:"type:text"`
}

// BeforeSave recomputes TotalCost on every create and save so the stored value
// always equals quantity times unit cost.
func (m *ProjectMaterial) BeforeSave(tx *gorm.DB) error {
	m.TotalCost = MaterialCost(m.Quantity, m.UnitCost)
	return nil
}

// ProjectNote is a free-text note on a project
type ProjectNote struct {
	BaseModel
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorName string    `gorm:"type:varchar(255)"`
	Content    string    `gorm:"type:text;not null"`
}

// ProjectFile is metadata for an uploaded project attachment.
// Name is the generated storage name, OriginalName is what the user uploaded.
type ProjectFile struct {
	BaseModel
	ProjectID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(255);not null"`
	OriginalName   string    `gorm:"type:varchar(255);not null"`
	Path           string    `gorm:"type:varchar(500);not null;uniqueIndex"`
	MimeType       string    `gorm:"type:varchar(255);not null"`
	Size           int64     `gorm:"not null"`
	UploadedByID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UploadedByName string    `gorm:"type:varchar(255)"`
}

// ContactSubmission is a message sent through the public contact form
type ContactSubmission struct {
	BaseModel
	Name    string        `gorm:"type:varchar(255);not null"`
	Email   string        `gorm:"type:varchar(255);not null"`
	Phone   string        `gorm:"type:varchar(50)"`
	Subject string        `gorm:"type:varchar(255)"`
	Message string        `gorm:"type:text"`
	Status  ContactStatus `gorm:"type:varchar(20);not null;index"`
	Notes   string        `gorm:"type:text"`
	ReadAt  *time.Time
}

// TransitionTo moves the submission to status. ReadAt is stamped the first
// time the submission leaves "new" and never changes afterwards.
func (c *ContactSubmission) TransitionTo(status ContactStatus, now time.Time) {
	if c.Status == ContactStatusNew && status != ContactStatusNew && c.ReadAt == nil {
		t := now
		c.ReadAt = &t
	}
	c.Status = status
}

// MarkAsRead moves a new submission to read; other states are left alone
func (c *ContactSubmission) MarkAsRead(now time.Time) bool {
	if c.Status != ContactStatusNew {
		return false
	}
	c.TransitionTo(ContactStatusRead, now)
	return true
}

// Actor identifies the authenticated user performing a mutation
type Actor struct {
	ID   uuid.UUID
	Name string
}
