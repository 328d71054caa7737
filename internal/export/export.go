// Package export renders experiment records into downloadable tabular files.
// All formatters are pure: they receive already-fetched record graphs and
// return encoded bytes.
package export

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"

	"zinclab/models"
)

// Item is one record plus whichever related rows were fetched alongside it.
type Item struct {
	Record   models.ExperimentRecord
	Des      *models.DesFormula
	Hydrogel *models.HydrogelFormula
	Results  []models.TestResult
}

// ItemFor assembles an Item from a record whose associations were preloaded.
func ItemFor(record models.ExperimentRecord) Item {
	return Item{
		Record:   record,
		Des:      record.DesFormula,
		Hydrogel: record.HydrogelFormula,
		Results:  record.TestResults,
	}
}

// tableHeader is the fixed column set of the row-per-record export. Legacy
// spreadsheets consuming these files key on column position, so the order is
// part of the format.
var tableHeader = []string{
	"Title",
	"Research Type",
	"Created At",
	"Tags",
	"HBA",
	"HBD",
	"Molar Ratio",
	"Salt Name",
	"Salt Concentration",
	"Water Content",
	"Additives",
	"DES Notes",
	"Polymer Type",
	"Crosslink Method",
	"Hydrogel Notes",
	"Conclusions",
	"Failure Reasons",
}

// Table renders one row per record as tab-separated values, BOM-prefixed and
// encoded as UTF-16LE for legacy spreadsheet compatibility. Multiple result
// conclusions and failure reasons are newline-joined within their cells.
func Table(items []Item) ([]byte, error) {
	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, tableHeader)

	for _, item := range items {
		record := item.Record

		conclusions := make([]string, 0, len(item.Results))
		failures := make([]string, 0, len(item.Results))
		for _, result := range item.Results {
			if result.Conclusion != "" {
				conclusions = append(conclusions, result.Conclusion)
			}
			if result.FailureReason != "" {
				failures = append(failures, result.FailureReason)
			}
		}

		row := []string{
			record.Title,
			record.ResearchType,
			formatTime(record.CreatedAt),
			strings.Join(record.Tags, "; "),
		}

		if des := item.Des; des != nil {
			row = append(row,
				des.HbaName,
				des.HbdName,
				des.MolarRatio,
				des.SaltName,
				des.SaltConcentration,
				waterContentCell(des),
				des.Additives.Display(),
				des.Notes,
			)
		} else {
			row = append(row, "", "", "", "", "", "", "", "")
		}

		if gel := item.Hydrogel; gel != nil {
			row = append(row, gel.PolymerType, gel.CrosslinkMethod, gel.Notes)
		} else {
			row = append(row, "", "", "")
		}

		row = append(row,
			strings.Join(conclusions, "\n"),
			strings.Join(failures, "\n"),
		)

		rows = append(rows, row)
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, escapeTabCell(cell))
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}

	text := "\uFEFF" + strings.Join(lines, "\r\n")
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	encoded, err := encoder.Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode tsv as utf-16le: %w", err)
	}
	return encoded, nil
}

func waterContentCell(des *models.DesFormula) string {
	if des.WaterContent == nil {
		return ""
	}
	unit := des.WaterContentUnit
	if unit == "" {
		unit = "wt%"
	}
	return fmt.Sprintf("%s %s", trimFloat(*des.WaterContent), unit)
}

func trimFloat(value float64) string {
	formatted := fmt.Sprintf("%g", value)
	return formatted
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format("2006-01-02 15:04")
}

// escapeTabCell wraps a cell in double quotes, doubling embedded quotes, when
// it contains a quote, tab, or newline.
func escapeTabCell(value string) string {
	if strings.ContainsAny(value, "\"\t\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
