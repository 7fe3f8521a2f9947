package models

import "time"

// Incident severities
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Incident records a problem involving a visitor. Creating one
// re-evaluates the visitor's incident count against the automatic
// blacklist threshold.
type Incident struct {
	BaseModel
	VisitorID   uint   `gorm:"not null;index" json:"visitor_id"`
	ServiceID   uint   `gorm:"not null;index" json:"service_id"`
	ReportedBy  uint   `gorm:"not null" json:"reported_by"`
	Reason      string `gorm:"type:varchar(255);not null" json:"reason"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Severity    string `gorm:"type:varchar(10);default:medium" json:"severity"`

	Resolved       bool       `gorm:"not null;default:false" json:"resolved"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	ResolutionNote string     `gorm:"type:text" json:"resolution_note,omitempty"`

	// Relations
	Visitor  *Visitor `gorm:"foreignKey:VisitorID" json:"visitor,omitempty"`
	Service  *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Reporter *User    `gorm:"foreignKey:ReportedBy" json:"reporter,omitempty"`
}
