package layout

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Base wraps a page body in the application chrome. The nav switches between
// the public and signed-in link sets.
func Base(title string, authenticated bool, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		b.WriteString("<title>")
		b.WriteString(templ.EscapeString(title))
		b.WriteString(" · zinclab</title>")
		b.WriteString("<link rel=\"stylesheet\" href=\"/assets/app.css\"></head><body>")
		b.WriteString("<header class=\"topbar\"><a class=\"brand\" href=\"/\">zinclab</a><nav>")
		if authenticated {
			b.WriteString("<a href=\"/dashboard\">Dashboard</a>")
			b.WriteString("<a href=\"/records/new\">New record</a>")
			b.WriteString("<form method=\"post\" action=\"/logout\" class=\"inline\"><button type=\"submit\">Sign out</button></form>")
		} else {
			b.WriteString("<a href=\"/login\">Sign in</a>")
			b.WriteString("<a href=\"/register\">Register</a>")
		}
		b.WriteString("</nav></header><main class=\"content\">")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</main></body></html>")
		return err
	})
}
