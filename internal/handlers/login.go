package handlers

import (
	"net/http"
	"strings"

	applog "zinclab/internal/log"
	"zinclab/internal/views/pages"
)

// Login renders the authentication view and processes sign-in submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToDashboard(w, r)
			return
		}
		message := ""
		if sessionManager != nil {
			message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		}
		renderLogin(w, r, message, "")
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")

		if email == "" || password == "" {
			renderLogin(w, r, "Email and password are required.", email)
			return
		}

		if !authenticate(w, r, email, password) {
			message := ""
			if sessionManager != nil {
				message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
			}
			if message == "" {
				message = "We were unable to sign you in. Please try again."
			}
			renderLogin(w, r, message, email)
			return
		}

		applog.Debug(r.Context(), "login succeeded", "email", strings.ToLower(email))
		redirectToDashboard(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, message, email string) {
	if err := pages.Login(message, email).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render login page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
