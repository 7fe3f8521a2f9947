package models

// Checkpoint is a controlled access point inside a site. The
// SOSIdentifier is the external alert identifier printed on the
// physical panic button; it is unique across the deployment.
type Checkpoint struct {
	BaseModel
	Name          string `gorm:"type:varchar(100);not null" json:"name"`
	SiteID        uint   `gorm:"not null;index" json:"site_id"`
	SOSIdentifier string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sos_identifier"`

	// Relations
	Site      *Site      `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	Agents    []Agent    `gorm:"foreignKey:CheckpointID" json:"agents,omitempty"`
	Visits    []Visit    `gorm:"foreignKey:CheckpointID" json:"visits,omitempty"`
	SOSAlerts []SOSAlert `gorm:"foreignKey:CheckpointID" json:"sos_alerts,omitempty"`
}
