package export

import (
	"fmt"
	"strings"
)

const utf8BOM = "\uFEFF"

// KeyValue renders a single record as row-per-field CSV: one
// (category, field, value) triple per line, UTF-8 with a byte-order mark.
// Sections are emitted in a fixed order, and only populated sub-entities
// produce a section.
func KeyValue(item Item) []byte {
	rows := [][]string{
		{"Category", "Field", "Value"},
	}

	record := item.Record
	basic := [][2]string{
		{"Title", record.Title},
		{"Research Type", record.ResearchType},
		{"Created At", formatTime(record.CreatedAt)},
		{"Tags", strings.Join(record.Tags, "; ")},
		{"Visibility", record.Visibility},
	}
	for _, pair := range basic {
		rows = append(rows, []string{"Basic Info", pair[0], pair[1]})
	}

	if des := item.Des; des != nil {
		fields := [][2]string{
			{"HBA Name", des.HbaName},
			{"HBA Purity", des.HbaPurity},
			{"HBA Supplier", des.HbaSupplier},
			{"HBD Name", des.HbdName},
			{"HBD Purity", des.HbdPurity},
			{"HBD Supplier", des.HbdSupplier},
			{"Molar Ratio", des.MolarRatio},
			{"Water Content", waterContentCell(des)},
			{"Salt Name", des.SaltName},
			{"Salt Concentration", des.SaltConcentration},
			{"Additives", des.Additives.Display()},
			{"Preparation Temp", des.PreparationTemp},
			{"Stirring Time", des.StirringTime},
			{"Appearance", des.Appearance},
			{"Viscosity", des.Viscosity},
			{"Notes", des.Notes},
		}
		for _, pair := range fields {
			rows = append(rows, []string{"DES Formula", pair[0], pair[1]})
		}
	}

	if gel := item.Hydrogel; gel != nil {
		fields := [][2]string{
			{"Polymer Type", gel.PolymerType},
			{"Polymer Content", gel.PolymerContent},
			{"Crosslink Method", gel.CrosslinkMethod},
			{"Crosslink Agent", gel.CrosslinkAgent},
			{"Solvent System", gel.SolventSystem},
			{"Salt Concentration", gel.SaltConcentration},
			{"Preparation Steps", gel.PreparationSteps},
			{"Gel Properties", gel.GelProperties},
			{"Notes", gel.Notes},
		}
		for _, pair := range fields {
			rows = append(rows, []string{"Hydrogel Formula", pair[0], pair[1]})
		}
	}

	for idx, result := range item.Results {
		category := fmt.Sprintf("Test Result %d", idx+1)
		fields := [][2]string{
			{"Capacity", floatCell(result.Capacity)},
			{"Retention", floatCell(result.Retention)},
			{"Coulombic Efficiency", floatCell(result.CoulombicEfficiency)},
			{"Conclusion", result.Conclusion},
			{"Failure Reason", result.FailureReason},
		}
		for _, pair := range fields {
			rows = append(rows, []string{category, pair[0], pair[1]})
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, escapeCommaCell(cell))
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return []byte(utf8BOM + strings.Join(lines, "\r\n"))
}

func floatCell(value *float64) string {
	if value == nil {
		return ""
	}
	return trimFloat(*value)
}

// escapeCommaCell wraps a cell in double quotes, doubling embedded quotes,
// when it contains a quote, comma, or newline.
func escapeCommaCell(value string) string {
	if strings.ContainsAny(value, "\",\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
