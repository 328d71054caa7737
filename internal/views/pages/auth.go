package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"zinclab/internal/views/components"
	"zinclab/internal/views/layout"
)

// Login renders the sign-in page with an optional inline message.
func Login(message, email string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := components.FlashMessage("error", message).Render(ctx, w); err != nil {
			return err
		}
		var b strings.Builder
		b.WriteString("<h1>Sign in</h1>")
		b.WriteString("<form method=\"post\" action=\"/login\" class=\"auth-form\">")
		b.WriteString("<label for=\"email\">Email</label>")
		b.WriteString("<input id=\"email\" name=\"email\" type=\"email\" value=\"" + templ.EscapeString(email) + "\" required>")
		b.WriteString("<label for=\"password\">Password</label>")
		b.WriteString("<input id=\"password\" name=\"password\" type=\"password\" required>")
		b.WriteString("<button type=\"submit\">Sign in</button>")
		b.WriteString("</form>")
		b.WriteString("<p>No account yet? <a href=\"/register\">Register</a></p>")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layout.Base("Sign in", false, body)
}

// Register renders the account creation page.
func Register(message, name, email string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := components.FlashMessage("error", message).Render(ctx, w); err != nil {
			return err
		}
		var b strings.Builder
		b.WriteString("<h1>Create an account</h1>")
		b.WriteString("<form method=\"post\" action=\"/register\" class=\"auth-form\">")
		b.WriteString("<label for=\"name\">Display name</label>")
		b.WriteString("<input id=\"name\" name=\"name\" type=\"text\" value=\"" + templ.EscapeString(name) + "\">")
		b.WriteString("<label for=\"email\">Email</label>")
		b.WriteString("<input id=\"email\" name=\"email\" type=\"email\" value=\"" + templ.EscapeString(email) + "\" required>")
		b.WriteString("<label for=\"password\">Password</label>")
		b.WriteString("<input id=\"password\" name=\"password\" type=\"password\" required>")
		b.WriteString("<label for=\"confirm_password\">Confirm password</label>")
		b.WriteString("<input id=\"confirm_password\" name=\"confirm_password\" type=\"password\" required>")
		b.WriteString("<button type=\"submit\">Register</button>")
		b.WriteString("</form>")
		b.WriteString("<p>Already registered? <a href=\"/login\">Sign in</a></p>")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layout.Base("Register", false, body)
}

// Landing renders the public front page for unauthenticated visitors.
func Landing() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section class=\"hero\">")
		b.WriteString("<h1>Electrolyte experiment records for zinc-ion batteries</h1>")
		b.WriteString("<p>Track DES and hydrogel electrolyte formulas, test conclusions, and exports in one place.</p>")
		b.WriteString("<p><a class=\"cta\" href=\"/register\">Get started</a> or <a href=\"/login\">sign in</a>.</p>")
		b.WriteString("</section>")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layout.Base("Welcome", false, body)
}

// NotFound renders the 404 page.
func NotFound(authenticated bool) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<h1>Not found</h1><p>That record does not exist or is not yours to see.</p>")
		return err
	})
	return layout.Base("Not found", authenticated, body)
}
