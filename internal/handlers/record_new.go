package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	applog "zinclab/internal/log"
	"zinclab/internal/views/pages"
	"zinclab/models"
)

// NewRecord serves the create form and processes submissions. The record row
// and its optional formula and result rows are written inside one
// transaction, so a failed step leaves nothing behind.
func NewRecord(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		redirectToLogin(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		renderRecordForm(w, r, pages.NewRecordForm())
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		createRecord(w, r, userID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func createRecord(w http.ResponseWriter, r *http.Request, userID uint) {
	refill := func(message string) {
		renderRecordForm(w, r, refillForm(r, "/records/new", "New experiment record", message))
	}

	title := strings.TrimSpace(r.PostFormValue("title"))
	if title == "" {
		refill("Title is required.")
		return
	}

	researchType := models.NormalizeResearchType(r.PostFormValue("research_type"))
	tags := models.ParseTags(r.PostFormValue("tags"))

	desFormula, hasDes, err := desFormulaFromForm(r)
	if err != nil {
		refill("Water content must be a number.")
		return
	}
	gelFormula, hasGel := hydrogelFromForm(r)
	conclusion := strings.TrimSpace(r.PostFormValue("conclusion"))
	failureReason := strings.TrimSpace(r.PostFormValue("failure_reason"))

	record := models.ExperimentRecord{
		OwnerID:      userID,
		Title:        title,
		ResearchType: researchType,
		Tags:         datatypes.NewJSONSlice(tags),
		Visibility:   models.VisibilityPrivate,
	}

	ctx := r.Context()
	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if researchType == models.ResearchTypeDES && hasDes {
			desFormula.RecordID = record.ID
			if err := tx.Create(&desFormula).Error; err != nil {
				return err
			}
		}

		if researchType == models.ResearchTypeHydrogel && hasGel {
			gelFormula.RecordID = record.ID
			if err := tx.Create(&gelFormula).Error; err != nil {
				return err
			}
		}

		if conclusion != "" {
			result := models.TestResult{
				RecordID:      record.ID,
				Conclusion:    conclusion,
				FailureReason: failureReason,
			}
			if err := tx.Create(&result).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		applog.Error(ctx, "failed to create record", "error", err, "user", userID)
		refill(fmt.Sprintf("We couldn't save the record: %v", err))
		return
	}

	applog.Info(ctx, "record created", "recordID", record.ID, "type", researchType, "user", userID)
	http.Redirect(w, r, fmt.Sprintf("/records/%d", record.ID), http.StatusSeeOther)
}

func renderRecordForm(w http.ResponseWriter, r *http.Request, data pages.RecordFormData) {
	if err := pages.RecordForm(data).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render record form", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
