package pages

import (
	"fmt"
	"strings"
	"time"

	"zinclab/models"
)

// ResearchTypeLabel maps a research type to its display name.
func ResearchTypeLabel(value string) string {
	switch value {
	case models.ResearchTypeDES:
		return "DES electrolyte"
	case models.ResearchTypeHydrogel:
		return "Hydrogel"
	default:
		return "Other"
	}
}

// FormatTimestamp renders a stored timestamp for listings and detail pages.
func FormatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format("2006-01-02 15:04")
}

// FormulaPreview builds the one-line recipe summary shown on record cards.
func FormulaPreview(record models.ExperimentRecord) string {
	switch record.ResearchType {
	case models.ResearchTypeDES:
		if record.DesFormula == nil {
			return ""
		}
		f := record.DesFormula
		parts := []string{}
		if f.HbaName != "" && f.HbdName != "" {
			parts = append(parts, f.HbaName+":"+f.HbdName)
		}
		if f.MolarRatio != "" {
			parts = append(parts, "("+f.MolarRatio+")")
		}
		if f.SaltName != "" {
			parts = append(parts, "+ "+f.SaltName)
		}
		if f.WaterContent != nil {
			unit := f.WaterContentUnit
			if unit == "" {
				unit = "wt%"
			}
			parts = append(parts, fmt.Sprintf("+ %g%s H2O", *f.WaterContent, unit))
		}
		if display := f.Additives.Display(); display != "" {
			parts = append(parts, "+ "+display)
		}
		return strings.Join(parts, " ")
	case models.ResearchTypeHydrogel:
		if record.HydrogelFormula == nil {
			return ""
		}
		f := record.HydrogelFormula
		parts := []string{}
		if f.PolymerType != "" {
			parts = append(parts, f.PolymerType)
		}
		if f.CrosslinkMethod != "" {
			parts = append(parts, "("+f.CrosslinkMethod+")")
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// ConclusionPreview returns the first result's conclusion, if any.
func ConclusionPreview(record models.ExperimentRecord) string {
	if len(record.TestResults) == 0 {
		return ""
	}
	return record.TestResults[0].Conclusion
}
