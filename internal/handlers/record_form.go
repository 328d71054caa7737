package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"zinclab/internal/views/pages"
	"zinclab/models"
)

// desFormulaFromForm builds a DES formula row from the submitted fields. The
// second return is false when neither HBA nor HBD was provided, in which case
// no row should be written.
func desFormulaFromForm(r *http.Request) (models.DesFormula, bool, error) {
	formula := models.DesFormula{
		HbaName:           strings.TrimSpace(r.PostFormValue("hba_name")),
		HbaPurity:         strings.TrimSpace(r.PostFormValue("hba_purity")),
		HbaSupplier:       strings.TrimSpace(r.PostFormValue("hba_supplier")),
		HbdName:           strings.TrimSpace(r.PostFormValue("hbd_name")),
		HbdPurity:         strings.TrimSpace(r.PostFormValue("hbd_purity")),
		HbdSupplier:       strings.TrimSpace(r.PostFormValue("hbd_supplier")),
		MolarRatio:        strings.TrimSpace(r.PostFormValue("molar_ratio")),
		SaltName:          strings.TrimSpace(r.PostFormValue("salt_name")),
		SaltConcentration: strings.TrimSpace(r.PostFormValue("salt_concentration")),
		WaterContentUnit:  strings.TrimSpace(r.PostFormValue("water_content_unit")),
		Notes:             strings.TrimSpace(r.PostFormValue("des_notes")),
	}

	rawWater := strings.TrimSpace(r.PostFormValue("water_content"))
	if rawWater != "" {
		value, err := strconv.ParseFloat(rawWater, 64)
		if err != nil {
			return models.DesFormula{}, false, fmt.Errorf("water content must be a number")
		}
		formula.WaterContent = &value
	}

	if additives := strings.TrimSpace(r.PostFormValue("additives")); additives != "" {
		formula.Additives = models.AdditiveText(additives)
	}

	hasContent := formula.HbaName != "" || formula.HbdName != ""
	return formula, hasContent, nil
}

// hydrogelFromForm mirrors desFormulaFromForm for the hydrogel field set;
// polymer type or crosslink method must be present for a row to be written.
func hydrogelFromForm(r *http.Request) (models.HydrogelFormula, bool) {
	formula := models.HydrogelFormula{
		PolymerType:       strings.TrimSpace(r.PostFormValue("polymer_type")),
		PolymerContent:    strings.TrimSpace(r.PostFormValue("polymer_content")),
		CrosslinkMethod:   strings.TrimSpace(r.PostFormValue("crosslink_method")),
		CrosslinkAgent:    strings.TrimSpace(r.PostFormValue("crosslink_agent")),
		SolventSystem:     strings.TrimSpace(r.PostFormValue("solvent_system")),
		SaltConcentration: strings.TrimSpace(r.PostFormValue("gel_salt_concentration")),
		PreparationSteps:  strings.TrimSpace(r.PostFormValue("preparation_steps")),
		GelProperties:     strings.TrimSpace(r.PostFormValue("gel_properties")),
		Notes:             strings.TrimSpace(r.PostFormValue("gel_notes")),
	}

	hasContent := formula.PolymerType != "" || formula.CrosslinkMethod != ""
	return formula, hasContent
}

// refillForm echoes a failed submission back into the form view.
func refillForm(r *http.Request, action, heading, message string) pages.RecordFormData {
	return pages.RecordFormData{
		Action:       action,
		Heading:      heading,
		Message:      message,
		Title:        strings.TrimSpace(r.PostFormValue("title")),
		ResearchType: models.NormalizeResearchType(r.PostFormValue("research_type")),
		Tags:         r.PostFormValue("tags"),

		HbaName:           r.PostFormValue("hba_name"),
		HbaPurity:         r.PostFormValue("hba_purity"),
		HbaSupplier:       r.PostFormValue("hba_supplier"),
		HbdName:           r.PostFormValue("hbd_name"),
		HbdPurity:         r.PostFormValue("hbd_purity"),
		HbdSupplier:       r.PostFormValue("hbd_supplier"),
		MolarRatio:        r.PostFormValue("molar_ratio"),
		SaltName:          r.PostFormValue("salt_name"),
		SaltConcentration: r.PostFormValue("salt_concentration"),
		WaterContent:      r.PostFormValue("water_content"),
		WaterContentUnit:  r.PostFormValue("water_content_unit"),
		Additives:         r.PostFormValue("additives"),
		DesNotes:          r.PostFormValue("des_notes"),

		PolymerType:      r.PostFormValue("polymer_type"),
		PolymerContent:   r.PostFormValue("polymer_content"),
		CrosslinkMethod:  r.PostFormValue("crosslink_method"),
		CrosslinkAgent:   r.PostFormValue("crosslink_agent"),
		SolventSystem:    r.PostFormValue("solvent_system"),
		GelSaltConc:      r.PostFormValue("gel_salt_concentration"),
		PreparationSteps: r.PostFormValue("preparation_steps"),
		GelProperties:    r.PostFormValue("gel_properties"),
		GelNotes:         r.PostFormValue("gel_notes"),

		Conclusion:    r.PostFormValue("conclusion"),
		FailureReason: r.PostFormValue("failure_reason"),
	}
}
