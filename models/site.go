package models

// Site is a physical location containing checkpoints
type Site struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Location string `gorm:"type:varchar(255)" json:"location,omitempty"`

	// Relations
	Checkpoints []Checkpoint `gorm:"foreignKey:SiteID" json:"checkpoints,omitempty"`
}
