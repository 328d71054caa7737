package export

import (
	"encoding/json"

	"zinclab/models"
)

// Dump serializes the record graph as indented JSON. The additives union
// controls its own wire shape, so list, free-text, and opaque payloads all
// survive the round trip.
func Dump(item Item) ([]byte, error) {
	payload := struct {
		Record   models.ExperimentRecord  `json:"record"`
		Des      *models.DesFormula       `json:"des_formula,omitempty"`
		Hydrogel *models.HydrogelFormula  `json:"hydrogel_formula,omitempty"`
		Results  []models.TestResult      `json:"test_results"`
	}{
		Record:   item.Record,
		Des:      item.Des,
		Hydrogel: item.Hydrogel,
		Results:  item.Results,
	}
	if payload.Results == nil {
		payload.Results = []models.TestResult{}
	}
	return json.MarshalIndent(payload, "", "    ")
}
