// Package components holds the small presentational building blocks shared by
// the page views. Components receive plain display data; mapping from models
// happens in the pages package.
package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// RecordCardData is the display projection of one experiment record.
type RecordCardData struct {
	ID         uint
	Title      string
	TypeLabel  string
	TypeClass  string
	CreatedAt  string
	Preview    string
	Conclusion string
	Tags       []string
	Selectable bool
}

// RecordCard renders a dashboard card linking to the record detail page. When
// Selectable is set, the card carries an export checkbox named record_ids.
func RecordCard(data RecordCardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<article class=\"record-card\">")
		if data.Selectable {
			fmt.Fprintf(&b, "<input type=\"checkbox\" name=\"record_ids\" value=\"%d\" checked>", data.ID)
		}
		fmt.Fprintf(&b, "<a href=\"/records/%d\">", data.ID)
		b.WriteString("<h3>")
		b.WriteString(templ.EscapeString(data.Title))
		b.WriteString("</h3>")
		fmt.Fprintf(&b, "<span class=\"type-badge %s\">%s</span>", templ.EscapeString(data.TypeClass), templ.EscapeString(data.TypeLabel))
		fmt.Fprintf(&b, "<p class=\"timestamp\">%s</p>", templ.EscapeString(data.CreatedAt))
		if data.Preview != "" {
			fmt.Fprintf(&b, "<p class=\"formula-preview\">%s</p>", templ.EscapeString(data.Preview))
		}
		if data.Conclusion != "" {
			fmt.Fprintf(&b, "<p class=\"conclusion-preview\">%s</p>", templ.EscapeString(data.Conclusion))
		}
		b.WriteString("</a>")
		if err := TagBadges(data.Tags).Render(ctx, &writerAdapter{&b}); err != nil {
			return err
		}
		if err := DeleteConfirmButton(data.ID).Render(ctx, &writerAdapter{&b}); err != nil {
			return err
		}
		b.WriteString("</article>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

type writerAdapter struct {
	b *strings.Builder
}

func (w *writerAdapter) Write(p []byte) (int, error) {
	return w.b.Write(p)
}

// TagBadges renders a record's tags in display order. Duplicates render as
// separate badges.
func TagBadges(tags []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(tags) == 0 {
			return nil
		}
		var b strings.Builder
		b.WriteString("<ul class=\"tags\">")
		for _, tag := range tags {
			b.WriteString("<li>")
			b.WriteString(templ.EscapeString(tag))
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// DeleteConfirmButton renders the delete form for a record. Confirmation is a
// presentation concern, so it lives here as a browser prompt.
func DeleteConfirmButton(recordID uint) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		markup := fmt.Sprintf(
			"<form method=\"post\" action=\"/records/%d/delete\" onsubmit=\"return confirm('Delete this record and all its formulas, results, and attachments?')\"><button type=\"submit\" class=\"danger\">Delete</button></form>",
			recordID,
		)
		_, err := io.WriteString(w, markup)
		return err
	})
}

// FlashMessage renders an inline notice; kind selects the style ("error" or
// "info"). Empty messages render nothing.
func FlashMessage(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if strings.TrimSpace(message) == "" {
			return nil
		}
		markup := fmt.Sprintf(
			"<div class=\"flash flash-%s\">%s</div>",
			templ.EscapeString(kind),
			templ.EscapeString(message),
		)
		_, err := io.WriteString(w, markup)
		return err
	})
}

// Field renders a labelled read-only value on a detail page, skipping empty
// values entirely.
func Field(label, value string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if strings.TrimSpace(value) == "" {
			return nil
		}
		markup := fmt.Sprintf(
			"<div class=\"field\"><h4>%s</h4><p>%s</p></div>",
			templ.EscapeString(label),
			templ.EscapeString(value),
		)
		_, err := io.WriteString(w, markup)
		return err
	})
}
