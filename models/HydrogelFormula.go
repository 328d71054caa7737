package models

import "gorm.io/gorm"

// HydrogelFormula captures a hydrogel electrolyte recipe. At most one row
// exists per record of type hydrogel.
type HydrogelFormula struct {
	gorm.Model
	RecordID uint `gorm:"not null;index" json:"record_id"`

	PolymerType    string `json:"polymer_type"`
	PolymerContent string `json:"polymer_content"`

	CrosslinkMethod string `json:"crosslink_method"`
	CrosslinkAgent  string `json:"crosslink_agent"`

	SolventSystem     string `json:"solvent_system"`
	SaltConcentration string `json:"salt_concentration"`

	PreparationSteps string `gorm:"type:text" json:"preparation_steps"`
	GelProperties    string `gorm:"type:text" json:"gel_properties"`
	Notes            string `gorm:"type:text" json:"notes"`
}
