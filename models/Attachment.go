package models

import "gorm.io/gorm"

// Attachment is an uploaded file reference tied to a record. PDF uploads carry
// a page count and a short extracted-text preview.
type Attachment struct {
	gorm.Model
	RecordID uint `gorm:"not null;index" json:"record_id"`

	FileName string `gorm:"not null" json:"file_name"`
	FilePath string `gorm:"not null" json:"file_path"`
	FileType string `gorm:"type:varchar(128)" json:"file_type"`
	FileSize int64  `json:"file_size"`

	PageCount int    `json:"page_count,omitempty"`
	Preview   string `gorm:"type:text" json:"preview,omitempty"`
}
