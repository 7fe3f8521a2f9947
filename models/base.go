package models

import "time"

// BaseModel holds the columns shared by every table
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaginationQuery carries the page/limit query parameters
type PaginationQuery struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Normalize clamps pagination parameters to sane values
func (p *PaginationQuery) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 10
	}
}

// Offset returns the row offset for the current page
func (p PaginationQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}
