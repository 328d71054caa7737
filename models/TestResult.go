package models

import "gorm.io/gorm"

// TestResult records one experimental outcome for a record. A record can carry
// any number of results; the conclusion text is the only required field.
type TestResult struct {
	gorm.Model
	RecordID uint `gorm:"not null;index" json:"record_id"`

	Capacity            *float64 `json:"capacity"`
	Retention           *float64 `json:"retention"`
	CoulombicEfficiency *float64 `json:"coulombic_efficiency"`

	Conclusion    string `gorm:"type:text;not null" json:"conclusion"`
	FailureReason string `gorm:"type:text" json:"failure_reason"`
}
