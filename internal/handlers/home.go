package handlers

import (
	"net/http"

	applog "zinclab/internal/log"
	"zinclab/internal/views/pages"
)

// Home serves the landing page, sending authenticated users straight to the
// dashboard. Unknown paths fall through here and render a 404.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		renderNotFound(w, r)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if ActiveSession(r) {
		redirectToDashboard(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Landing().Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render landing page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func renderNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := pages.NotFound(ActiveSession(r)).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render not-found page", "error", err)
	}
}
