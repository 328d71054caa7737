package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Research types distinguish which formula table, if any, backs a record.
const (
	ResearchTypeDES      = "des_electrolyte"
	ResearchTypeHydrogel = "hydrogel"
	ResearchTypeOther    = "other"
)

// DefaultResearchType is applied when a submission carries an unknown type.
const DefaultResearchType = ResearchTypeDES

// Visibility states for a record.
const (
	VisibilityPrivate = "private"
	VisibilityShared  = "shared"
)

// ExperimentRecord is one logical electrolyte experiment owned by a researcher.
type ExperimentRecord struct {
	gorm.Model
	OwnerID      uint  `gorm:"not null;index" json:"owner_id"`
	Owner        *User `gorm:"foreignKey:OwnerID" json:"-"`
	Title        string `gorm:"not null" json:"title"`
	ResearchType string `gorm:"type:varchar(32);not null;default:des_electrolyte" json:"research_type"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	Visibility   string `gorm:"type:varchar(16);not null;default:private" json:"visibility"`

	// Share link state. Token and password hash are nil while the record is private.
	ShareToken        *string    `gorm:"uniqueIndex" json:"-"`
	ShareExpiresAt    *time.Time `json:"-"`
	SharePasswordHash *string    `json:"-"`

	DesFormula      *DesFormula      `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"des_formula,omitempty"`
	HydrogelFormula *HydrogelFormula `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"hydrogel_formula,omitempty"`
	TestResults     []TestResult     `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"test_results,omitempty"`
	Attachments     []Attachment     `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}

// ValidResearchType reports whether value is one of the three known variants.
func ValidResearchType(value string) bool {
	switch value {
	case ResearchTypeDES, ResearchTypeHydrogel, ResearchTypeOther:
		return true
	}
	return false
}

// NormalizeResearchType maps arbitrary input onto a known variant, falling
// back to the default when the value is unrecognized.
func NormalizeResearchType(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if ValidResearchType(trimmed) {
		return trimmed
	}
	return DefaultResearchType
}

// ParseTags splits a comma-separated tag field into trimmed entries. Order is
// preserved and duplicates are kept; an empty input yields an empty list.
func ParseTags(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tags = append(tags, strings.TrimSpace(part))
	}
	return tags
}

// Shared reports whether the record currently carries a live share link.
func (r *ExperimentRecord) Shared() bool {
	return r.Visibility == VisibilityShared && r.ShareToken != nil && *r.ShareToken != ""
}

// ShareExpired reports whether the record's share link has lapsed at the given time.
func (r *ExperimentRecord) ShareExpired(now time.Time) bool {
	return r.ShareExpiresAt != nil && now.After(*r.ShareExpiresAt)
}
