package models

// Agent is a control agent posted at a checkpoint. Agents are
// restricted-capability accounts managed by administrators, distinct
// from the staff users table.
type Agent struct {
	BaseModel
	Firstname    string `gorm:"type:varchar(50);not null" json:"firstname"`
	Lastname     string `gorm:"type:varchar(50);not null" json:"lastname"`
	Email        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(100);not null" json:"-"`
	CheckpointID *uint  `json:"checkpoint_id,omitempty"`

	// Relations
	Checkpoint *Checkpoint `gorm:"foreignKey:CheckpointID" json:"checkpoint,omitempty"`
}
