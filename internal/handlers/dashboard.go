package handlers

import (
	"net/http"

	applog "zinclab/internal/log"
	"zinclab/internal/views/pages"
	"zinclab/models"
)

// Dashboard lists every record owned by the signed-in researcher, newest
// first, with formulas and result conclusions joined in. No pagination.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if database == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		redirectToLogin(w, r)
		return
	}

	ctx := r.Context()
	var records []models.ExperimentRecord
	err := database.WithContext(ctx).
		Preload("DesFormula").
		Preload("HydrogelFormula").
		Preload("TestResults").
		Where("owner_id = ?", userID).
		Order("created_at desc").
		Find(&records).Error
	if err != nil {
		applog.Error(ctx, "failed to list records", "error", err, "user", userID)
		http.Error(w, "We were unable to load your records. Please try again.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Dashboard(currentDisplayName(r), records, popFlash(r)).Render(ctx, w); err != nil {
		applog.Error(ctx, "failed to render dashboard", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
