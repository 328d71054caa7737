package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	applog "zinclab/internal/log"
	"zinclab/internal/views/pages"
)

// Register displays the account creation form and processes new registrations.
// Validation failures are caught before any write and shown inline.
func Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToDashboard(w, r)
			return
		}
		renderRegister(w, r, "", "", "")
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			http.Error(w, "registration not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}

		name := strings.TrimSpace(r.PostFormValue("name"))
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")
		confirm := r.PostFormValue("confirm_password")

		if email == "" || !strings.Contains(email, "@") {
			renderRegister(w, r, "Please provide a valid email address.", name, email)
			return
		}
		if len(password) < 8 {
			renderRegister(w, r, "Password must be at least 8 characters long.", name, email)
			return
		}
		if password != confirm {
			renderRegister(w, r, "Passwords do not match.", name, email)
			return
		}

		if _, err := findUserByEmail(r, email); err == nil {
			renderRegister(w, r, "An account with that email already exists.", name, email)
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Error(r.Context(), "failed to check existing user", "error", err)
			renderRegister(w, r, "We couldn't create your account right now. Please try again.", name, email)
			return
		}

		user, err := createUser(r, email, name, password)
		if err != nil {
			applog.Error(r.Context(), "failed to create user", "error", err)
			renderRegister(w, r, "We couldn't create your account right now. Please try again.", name, email)
			return
		}

		if err := establishSession(r, user); err != nil {
			applog.Error(r.Context(), "failed to establish session after registration", "error", err)
			renderRegister(w, r, "We couldn't sign you in after creating your account. Please try again.", name, email)
			return
		}

		applog.Debug(r.Context(), "registration completed", "userID", user.ID)
		redirectToDashboard(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderRegister(w http.ResponseWriter, r *http.Request, message, name, email string) {
	if err := pages.Register(message, name, email).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render register page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
