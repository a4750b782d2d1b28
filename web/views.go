package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/jimiolaniyan/useraccounts/account"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	viewLogin    = "login"
	viewNew      = "new"
	viewUser     = "user"
	viewNotFound = "404"
)

type alert struct {
	Level, Title, Message string
}

type page struct {
	Alert   *alert
	Account *account.Account
}

type views map[string]*template.Template

func loadViews() (views, error) {
	v := views{}
	for _, name := range []string{viewLogin, viewNew, viewUser, viewNotFound} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("error parsing %s view: %w", name, err)
		}
		v[name] = t
	}
	return v, nil
}

func (v views) render(w http.ResponseWriter, status int, name string, p page) error {
	var buf bytes.Buffer
	if err := v[name].ExecuteTemplate(&buf, "layout", p); err != nil {
		return fmt.Errorf("error rendering %s view: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func warning(title string) *alert {
	return &alert{Level: "warning", Title: title, Message: "Enter your information again"}
}

var (
	alertUpdated     = &alert{Level: "success", Title: "Success!", Message: "Information successfully updated"}
	alertNotFound    = &alert{Level: "warning", Title: "404", Message: "Page not found"}
	alertCredentials = warning("Invalid username/password")
)

// alertFor maps a rejected account operation to the alert shown with the form.
func alertFor(err error) *alert {
	switch {
	case errors.Is(err, account.ErrPasswordMismatch):
		return warning("Passwords do not match")
	case errors.Is(err, account.ErrPasswordTooLong):
		return warning("Password is too long")
	case errors.Is(err, account.ErrExistingUsername):
		return warning("Username already taken")
	case errors.Is(err, account.ErrExistingEmail):
		return warning("Email already taken")
	case errors.Is(err, account.ErrInvalidCredentials):
		return alertCredentials
	default:
		return &alert{Level: "danger", Title: "Something went wrong", Message: "Please try again later"}
	}
}
