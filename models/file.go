package models

// File is the metadata row for an uploaded document. Bytes live on
// disk under the upload directory; StoredName is the uuid-based name
// of the file on disk.
type File struct {
	BaseModel
	OriginalName string `gorm:"type:varchar(255);not null" json:"original_name"`
	StoredName   string `gorm:"type:varchar(100);uniqueIndex;not null" json:"stored_name"`
	MimeType     string `gorm:"type:varchar(100)" json:"mime_type,omitempty"`
	Size         int64  `gorm:"not null" json:"size"`
	Path         string `gorm:"type:varchar(255);not null" json:"path"`
	UploadedBy   uint   `json:"uploaded_by,omitempty"`
}
