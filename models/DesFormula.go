package models

import "gorm.io/gorm"

// DesFormula captures a deep-eutectic-solvent electrolyte recipe. At most one
// row exists per record of type des_electrolyte.
type DesFormula struct {
	gorm.Model
	RecordID uint `gorm:"not null;index" json:"record_id"`

	HbaName     string `json:"hba_name"`
	HbaPurity   string `json:"hba_purity"`
	HbaSupplier string `json:"hba_supplier"`
	HbdName     string `json:"hbd_name"`
	HbdPurity   string `json:"hbd_purity"`
	HbdSupplier string `json:"hbd_supplier"`

	MolarRatio string `json:"molar_ratio"`

	// WaterContent is nil when the field was left blank on submission.
	WaterContent     *float64 `json:"water_content"`
	WaterContentUnit string   `gorm:"type:varchar(8)" json:"water_content_unit"`

	SaltName          string `json:"salt_name"`
	SaltConcentration string `json:"salt_concentration"`

	Additives Additives `gorm:"type:text" json:"additives"`

	PreparationTemp string `json:"preparation_temp"`
	StirringTime    string `json:"stirring_time"`
	Appearance      string `json:"appearance"`
	Viscosity       string `json:"viscosity"`
	Notes           string `gorm:"type:text" json:"notes"`
}
