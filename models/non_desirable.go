package models

// NonDesirable marks a visitor as blacklisted. The unique index on
// VisitorID guarantees at most one entry per visitor even under
// concurrent writers; deleting the entry un-blacklists the visitor.
type NonDesirable struct {
	BaseModel
	VisitorID  uint   `gorm:"not null;uniqueIndex" json:"visitor_id"`
	Reason     string `gorm:"type:varchar(255);not null" json:"reason"`
	ReportedBy uint   `gorm:"not null" json:"reported_by"`

	// Relations
	Visitor  *Visitor `gorm:"foreignKey:VisitorID" json:"visitor,omitempty"`
	Reporter *User    `gorm:"foreignKey:ReportedBy" json:"reporter,omitempty"`
}
