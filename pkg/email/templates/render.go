// Package templates renders the HTML bodies of account emails.
package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/a-h/templ"
)

//go:embed *.html
var files embed.FS

var (
	pages = template.Must(template.ParseFS(files, "*.html"))

	confirmRegistration = mustLookup("confirm_registration.html")
	passwordChange      = mustLookup("password_change.html")
)

func mustLookup(name string) *template.Template {
	t := pages.Lookup(name)
	if t == nil {
		panic(fmt.Sprintf("templates: %s not embedded", name))
	}
	return t
}

// LinkData is the input of every account email.
type LinkData struct {
	Name      string
	Link      string
	ExpiresIn string
}

// ConfirmRegistration is the email carrying the registration confirmation link.
func ConfirmRegistration(data LinkData) templ.Component {
	return templ.FromGoHTML(confirmRegistration, data)
}

// PasswordChange is the email carrying the password-change link.
func PasswordChange(data LinkData) templ.Component {
	return templ.FromGoHTML(passwordChange, data)
}

// Render takes a templ.Component and renders it to a string.
func Render(ctx context.Context, tpl templ.Component) (string, error) {
	var sb strings.Builder
	if err := tpl.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
