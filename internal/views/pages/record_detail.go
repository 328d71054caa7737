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

// RecordDetailData carries the separately-fetched record graph for the detail
// and shared views.
type RecordDetailData struct {
	Record      models.ExperimentRecord
	Des         *models.DesFormula
	Hydrogel    *models.HydrogelFormula
	Results     []models.TestResult
	Attachments []models.Attachment
	ShareURL    string
	Message     string
}

func renderDetailSections(ctx context.Context, w io.Writer, data RecordDetailData) error {
	record := data.Record

	var b strings.Builder
	b.WriteString("<h1>" + templ.EscapeString(record.Title) + "</h1>")
	fmt.Fprintf(&b, "<p class=\"timestamp\">Created %s</p>", templ.EscapeString(FormatTimestamp(record.CreatedAt)))
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if err := components.TagBadges(record.Tags).Render(ctx, w); err != nil {
		return err
	}

	if des := data.Des; des != nil {
		if _, err := io.WriteString(w, "<section class=\"card\"><h2>DES electrolyte formula</h2>"); err != nil {
			return err
		}
		fields := []struct{ label, value string }{
			{"HBA (hydrogen-bond acceptor)", des.HbaName},
			{"HBA purity", des.HbaPurity},
			{"HBA supplier", des.HbaSupplier},
			{"HBD (hydrogen-bond donor)", des.HbdName},
			{"HBD purity", des.HbdPurity},
			{"HBD supplier", des.HbdSupplier},
			{"Molar ratio", des.MolarRatio},
			{"Salt name", des.SaltName},
			{"Salt concentration", des.SaltConcentration},
			{"Water content", waterContentDisplay(des)},
			{"Additives", des.Additives.Display()},
			{"Preparation temperature", des.PreparationTemp},
			{"Stirring time", des.StirringTime},
			{"Appearance", des.Appearance},
			{"Viscosity", des.Viscosity},
			{"Preparation notes", des.Notes},
		}
		for _, field := range fields {
			if err := components.Field(field.label, field.value).Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</section>"); err != nil {
			return err
		}
	}

	if gel := data.Hydrogel; gel != nil {
		if _, err := io.WriteString(w, "<section class=\"card\"><h2>Hydrogel electrolyte formula</h2>"); err != nil {
			return err
		}
		fields := []struct{ label, value string }{
			{"Polymer type", gel.PolymerType},
			{"Polymer content", gel.PolymerContent},
			{"Crosslink method", gel.CrosslinkMethod},
			{"Crosslink agent", gel.CrosslinkAgent},
			{"Solvent system", gel.SolventSystem},
			{"Salt concentration", gel.SaltConcentration},
			{"Preparation steps", gel.PreparationSteps},
			{"Gel properties", gel.GelProperties},
			{"Notes", gel.Notes},
		}
		for _, field := range fields {
			if err := components.Field(field.label, field.value).Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</section>"); err != nil {
			return err
		}
	}

	if len(data.Results) > 0 {
		if _, err := io.WriteString(w, "<section class=\"card\"><h2>Test results</h2>"); err != nil {
			return err
		}
		for _, result := range data.Results {
			if _, err := io.WriteString(w, "<div class=\"result\">"); err != nil {
				return err
			}
			fields := []struct{ label, value string }{
				{"Capacity", floatDisplay(result.Capacity, "mAh/g")},
				{"Retention", floatDisplay(result.Retention, "%")},
				{"Coulombic efficiency", floatDisplay(result.CoulombicEfficiency, "%")},
				{"Conclusion", result.Conclusion},
				{"Failure reason", result.FailureReason},
			}
			for _, field := range fields {
				if err := components.Field(field.label, field.value).Render(ctx, w); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</div>"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</section>"); err != nil {
			return err
		}
	}

	if len(data.Attachments) > 0 {
		var a strings.Builder
		a.WriteString("<section class=\"card\"><h2>Attachments</h2><ul class=\"attachments\">")
		for _, attachment := range data.Attachments {
			fmt.Fprintf(&a, "<li>%s (%d bytes", templ.EscapeString(attachment.FileName), attachment.FileSize)
			if attachment.PageCount > 0 {
				fmt.Fprintf(&a, ", %d pages", attachment.PageCount)
			}
			a.WriteString(")")
			if attachment.Preview != "" {
				fmt.Fprintf(&a, "<blockquote>%s</blockquote>", templ.EscapeString(attachment.Preview))
			}
			a.WriteString("</li>")
		}
		a.WriteString("</ul></section>")
		if _, err := io.WriteString(w, a.String()); err != nil {
			return err
		}
	}

	return nil
}

func waterContentDisplay(des *models.DesFormula) string {
	if des.WaterContent == nil {
		return ""
	}
	unit := des.WaterContentUnit
	if unit == "" {
		unit = "wt%"
	}
	return fmt.Sprintf("%g %s", *des.WaterContent, unit)
}

func floatDisplay(value *float64, unit string) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%g %s", *value, unit)
}

// RecordDetail renders the owner-facing detail page with edit, export, share,
// and attachment controls.
func RecordDetail(data RecordDetailData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := components.FlashMessage("info", data.Message).Render(ctx, w); err != nil {
			return err
		}

		record := data.Record
		var b strings.Builder
		b.WriteString("<div class=\"toolbar\"><a href=\"/dashboard\">Back to dashboard</a>")
		fmt.Fprintf(&b, "<a class=\"button\" href=\"/records/%d/edit\">Edit</a>", record.ID)
		fmt.Fprintf(&b, "<a class=\"button\" href=\"/records/%d/export?format=tsv\">TSV</a>", record.ID)
		fmt.Fprintf(&b, "<a class=\"button\" href=\"/records/%d/export?format=csv\">CSV</a>", record.ID)
		fmt.Fprintf(&b, "<a class=\"button\" href=\"/records/%d/export?format=json\">JSON</a>", record.ID)
		b.WriteString("</div>")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if err := renderDetailSections(ctx, w, data); err != nil {
			return err
		}

		var s strings.Builder
		s.WriteString("<section class=\"card\"><h2>Sharing</h2>")
		if data.ShareURL != "" {
			fmt.Fprintf(&s, "<p>Share link: <a href=\"%s\">%s</a></p>", templ.EscapeString(data.ShareURL), templ.EscapeString(data.ShareURL))
			fmt.Fprintf(&s, "<form method=\"post\" action=\"/records/%d/share/revoke\"><button type=\"submit\">Revoke link</button></form>", record.ID)
		} else {
			fmt.Fprintf(&s, "<form method=\"post\" action=\"/records/%d/share\" class=\"share-form\">", record.ID)
			s.WriteString("<label for=\"share_days\">Expires after (days, blank for never)</label><input id=\"share_days\" name=\"share_days\" type=\"number\" min=\"1\">")
			s.WriteString("<label for=\"share_password\">Password (optional)</label><input id=\"share_password\" name=\"share_password\" type=\"password\">")
			s.WriteString("<button type=\"submit\">Create share link</button></form>")
		}
		s.WriteString("</section>")

		fmt.Fprintf(&s, "<section class=\"card\"><h2>Upload attachment</h2><form method=\"post\" action=\"/records/%d/attachments\" enctype=\"multipart/form-data\"><input type=\"file\" name=\"attachment\" required><button type=\"submit\">Upload</button></form></section>", record.ID)
		_, err := io.WriteString(w, s.String())
		return err
	})
	return layout.Base(data.Record.Title, true, body)
}

// SharedRecord renders the read-only public view reached through a share link.
func SharedRecord(data RecordDetailData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<p class=\"shared-banner\">Shared experiment record (read-only)</p>"); err != nil {
			return err
		}
		return renderDetailSections(ctx, w, data)
	})
	return layout.Base(data.Record.Title, false, body)
}

// SharePasswordPrompt asks the visitor for the share password.
func SharePasswordPrompt(token, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := components.FlashMessage("error", message).Render(ctx, w); err != nil {
			return err
		}
		markup := fmt.Sprintf(
			"<h1>Protected record</h1><form method=\"post\" action=\"/s/%s\"><label for=\"password\">Password</label><input id=\"password\" name=\"password\" type=\"password\" required><button type=\"submit\">View record</button></form>",
			templ.EscapeString(token),
		)
		_, err := io.WriteString(w, markup)
		return err
	})
	return layout.Base("Protected record", false, body)
}
