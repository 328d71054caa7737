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

func typeClass(researchType string) string {
	switch researchType {
	case models.ResearchTypeDES:
		return "type-des"
	case models.ResearchTypeHydrogel:
		return "type-hydrogel"
	default:
		return "type-other"
	}
}

func cardData(record models.ExperimentRecord, selectable bool) components.RecordCardData {
	return components.RecordCardData{
		ID:         record.ID,
		Title:      record.Title,
		TypeLabel:  ResearchTypeLabel(record.ResearchType),
		TypeClass:  typeClass(record.ResearchType),
		CreatedAt:  FormatTimestamp(record.CreatedAt),
		Preview:    FormulaPreview(record),
		Conclusion: ConclusionPreview(record),
		Tags:       record.Tags,
		Selectable: selectable,
	}
}

// Dashboard renders the record listing with the selection/export controls.
// A non-empty message renders as an inline flash above the heading.
func Dashboard(displayName string, records []models.ExperimentRecord, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := components.FlashMessage("info", message).Render(ctx, w); err != nil {
			return err
		}

		var b strings.Builder
		greeting := "Your experiment records"
		if strings.TrimSpace(displayName) != "" {
			greeting = templ.EscapeString(displayName) + "'s experiment records"
		}
		b.WriteString("<h1>" + greeting + "</h1>")
		fmt.Fprintf(&b, "<p class=\"record-count\">%d records</p>", len(records))
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if len(records) == 0 {
			_, err := io.WriteString(w, "<p class=\"empty\">No records yet. <a href=\"/records/new\">Create the first one</a>.</p>")
			return err
		}

		if _, err := io.WriteString(w, "<form method=\"post\" action=\"/export\"><div class=\"toolbar\"><button type=\"submit\">Export selected (TSV)</button><a class=\"button\" href=\"/records/new\">New record</a></div><div class=\"record-grid\">"); err != nil {
			return err
		}
		for _, record := range records {
			if err := components.RecordCard(cardData(record, true)).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div></form>")
		return err
	})
	return layout.Base("Dashboard", true, body)
}
