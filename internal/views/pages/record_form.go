package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"zinclab/internal/views/components"
	"zinclab/internal/views/layout"
	"zinclab/models"
)

// RecordFormData pre-fills the create/edit form. On create all fields are
// empty and Action points at /records/new.
type RecordFormData struct {
	Action       string
	Heading      string
	Message      string
	Title        string
	ResearchType string
	Tags         string

	// DES formula fields
	HbaName           string
	HbaPurity         string
	HbaSupplier       string
	HbdName           string
	HbdPurity         string
	HbdSupplier       string
	MolarRatio        string
	SaltName          string
	SaltConcentration string
	WaterContent      string
	WaterContentUnit  string
	Additives         string
	DesNotes          string

	// Hydrogel formula fields
	PolymerType      string
	PolymerContent   string
	CrosslinkMethod  string
	CrosslinkAgent   string
	SolventSystem    string
	GelSaltConc      string
	PreparationSteps string
	GelProperties    string
	GelNotes         string

	// First test result
	Conclusion    string
	FailureReason string
}

// NewRecordForm builds an empty create form.
func NewRecordForm() RecordFormData {
	return RecordFormData{
		Action:           "/records/new",
		Heading:          "New experiment record",
		ResearchType:     models.DefaultResearchType,
		WaterContentUnit: "wt%",
	}
}

// EditRecordForm pre-fills the form from an existing record graph.
func EditRecordForm(record models.ExperimentRecord, des *models.DesFormula, gel *models.HydrogelFormula, results []models.TestResult) RecordFormData {
	data := RecordFormData{
		Action:           fmt.Sprintf("/records/%d/edit", record.ID),
		Heading:          "Edit experiment record",
		Title:            record.Title,
		ResearchType:     record.ResearchType,
		Tags:             strings.Join(record.Tags, ", "),
		WaterContentUnit: "wt%",
	}

	if des != nil {
		data.HbaName = des.HbaName
		data.HbaPurity = des.HbaPurity
		data.HbaSupplier = des.HbaSupplier
		data.HbdName = des.HbdName
		data.HbdPurity = des.HbdPurity
		data.HbdSupplier = des.HbdSupplier
		data.MolarRatio = des.MolarRatio
		data.SaltName = des.SaltName
		data.SaltConcentration = des.SaltConcentration
		if des.WaterContent != nil {
			data.WaterContent = fmt.Sprintf("%g", *des.WaterContent)
		}
		if des.WaterContentUnit != "" {
			data.WaterContentUnit = des.WaterContentUnit
		}
		data.Additives = des.Additives.Display()
		data.DesNotes = des.Notes
	}

	if gel != nil {
		data.PolymerType = gel.PolymerType
		data.PolymerContent = gel.PolymerContent
		data.CrosslinkMethod = gel.CrosslinkMethod
		data.CrosslinkAgent = gel.CrosslinkAgent
		data.SolventSystem = gel.SolventSystem
		data.GelSaltConc = gel.SaltConcentration
		data.PreparationSteps = gel.PreparationSteps
		data.GelProperties = gel.GelProperties
		data.GelNotes = gel.Notes
	}

	// The form edits the first result; additional results stay untouched.
	if len(results) > 0 {
		data.Conclusion = results[0].Conclusion
		data.FailureReason = results[0].FailureReason
	}

	return data
}

func textInput(b *strings.Builder, name, label, value string) {
	fmt.Fprintf(b, "<label for=\"%s\">%s</label><input id=\"%s\" name=\"%s\" type=\"text\" value=\"%s\">",
		name, templ.EscapeString(label), name, name, templ.EscapeString(value))
}

func textArea(b *strings.Builder, name, label, value string) {
	fmt.Fprintf(b, "<label for=\"%s\">%s</label><textarea id=\"%s\" name=\"%s\">%s</textarea>",
		name, templ.EscapeString(label), name, name, templ.EscapeString(value))
}

func selected(current, option string) string {
	if current == option {
		return " selected"
	}
	return ""
}

// RecordForm renders the create/edit form. All formula sections are always
// present; the research type select decides which one the server persists.
func RecordForm(data RecordFormData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := components.FlashMessage("error", data.Message).Render(ctx, w); err != nil {
			return err
		}

		var b strings.Builder
		b.WriteString("<h1>" + templ.EscapeString(data.Heading) + "</h1>")
		fmt.Fprintf(&b, "<form method=\"post\" action=\"%s\" class=\"record-form\">", templ.EscapeString(data.Action))

		b.WriteString("<fieldset><legend>Basic info</legend>")
		textInput(&b, "title", "Title *", data.Title)
		b.WriteString("<label for=\"research_type\">Research type</label><select id=\"research_type\" name=\"research_type\">")
		fmt.Fprintf(&b, "<option value=\"%s\"%s>DES electrolyte</option>", models.ResearchTypeDES, selected(data.ResearchType, models.ResearchTypeDES))
		fmt.Fprintf(&b, "<option value=\"%s\"%s>Hydrogel</option>", models.ResearchTypeHydrogel, selected(data.ResearchType, models.ResearchTypeHydrogel))
		fmt.Fprintf(&b, "<option value=\"%s\"%s>Other</option>", models.ResearchTypeOther, selected(data.ResearchType, models.ResearchTypeOther))
		b.WriteString("</select>")
		textInput(&b, "tags", "Tags (comma separated)", data.Tags)
		b.WriteString("</fieldset>")

		b.WriteString("<fieldset><legend>DES formula</legend>")
		textInput(&b, "hba_name", "HBA name", data.HbaName)
		textInput(&b, "hba_purity", "HBA purity", data.HbaPurity)
		textInput(&b, "hba_supplier", "HBA supplier", data.HbaSupplier)
		textInput(&b, "hbd_name", "HBD name", data.HbdName)
		textInput(&b, "hbd_purity", "HBD purity", data.HbdPurity)
		textInput(&b, "hbd_supplier", "HBD supplier", data.HbdSupplier)
		textInput(&b, "molar_ratio", "Molar ratio", data.MolarRatio)
		textInput(&b, "salt_name", "Salt name", data.SaltName)
		textInput(&b, "salt_concentration", "Salt concentration", data.SaltConcentration)
		textInput(&b, "water_content", "Water content", data.WaterContent)
		b.WriteString("<label for=\"water_content_unit\">Water content unit</label><select id=\"water_content_unit\" name=\"water_content_unit\">")
		fmt.Fprintf(&b, "<option value=\"wt%%\"%s>wt%%</option>", selected(data.WaterContentUnit, "wt%"))
		fmt.Fprintf(&b, "<option value=\"mol%%\"%s>mol%%</option>", selected(data.WaterContentUnit, "mol%"))
		b.WriteString("</select>")
		textInput(&b, "additives", "Additives", data.Additives)
		textArea(&b, "des_notes", "Preparation notes", data.DesNotes)
		b.WriteString("</fieldset>")

		b.WriteString("<fieldset><legend>Hydrogel formula</legend>")
		textInput(&b, "polymer_type", "Polymer type", data.PolymerType)
		textInput(&b, "polymer_content", "Polymer content", data.PolymerContent)
		textInput(&b, "crosslink_method", "Crosslink method", data.CrosslinkMethod)
		textInput(&b, "crosslink_agent", "Crosslink agent", data.CrosslinkAgent)
		textInput(&b, "solvent_system", "Solvent system", data.SolventSystem)
		textInput(&b, "gel_salt_concentration", "Salt concentration", data.GelSaltConc)
		textArea(&b, "preparation_steps", "Preparation steps", data.PreparationSteps)
		textArea(&b, "gel_properties", "Gel properties", data.GelProperties)
		textArea(&b, "gel_notes", "Notes", data.GelNotes)
		b.WriteString("</fieldset>")

		b.WriteString("<fieldset><legend>Test result</legend>")
		textArea(&b, "conclusion", "Conclusion", data.Conclusion)
		textArea(&b, "failure_reason", "Failure reason", data.FailureReason)
		b.WriteString("</fieldset>")

		b.WriteString("<button type=\"submit\">Save</button> <a href=\"/dashboard\">Cancel</a>")
		b.WriteString("</form>")

		_, err := io.WriteString(w, b.String())
		return err
	})
	return layout.Base(data.Heading, true, body)
}
