package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	applog "zinclab/internal/log"
	"zinclab/internal/views/pages"
	"zinclab/models"
)

func editRecord(w http.ResponseWriter, r *http.Request, recordID, userID uint) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		showEditForm(w, r, recordID, userID)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		updateRecord(w, r, recordID, userID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func showEditForm(w http.ResponseWriter, r *http.Request, recordID, userID uint) {
	ctx := r.Context()

	record, err := findOwnedRecord(ctx, recordID, userID)
	if err != nil {
		handleRecordLoadError(w, r, err, recordID)
		return
	}

	des, gel, results, _, err := loadRecordRelations(ctx, recordID)
	if err != nil {
		handleRecordLoadError(w, r, err, recordID)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderRecordForm(w, r, pages.EditRecordForm(*record, des, gel, results))
}

// updateRecord rewrites the record row and upserts the formula row matching
// the submitted research type plus the first test result, all in one
// transaction. Switching research type does not delete the formula row of the
// previous type; the old row stays in storage and resurfaces if the type is
// switched back.
func updateRecord(w http.ResponseWriter, r *http.Request, recordID, userID uint) {
	ctx := r.Context()

	record, err := findOwnedRecord(ctx, recordID, userID)
	if err != nil {
		handleRecordLoadError(w, r, err, recordID)
		return
	}

	action := fmt.Sprintf("/records/%d/edit", recordID)
	refill := func(message string) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		renderRecordForm(w, r, refillForm(r, action, "Edit experiment record", message))
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

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"title":         title,
			"research_type": researchType,
			"tags":          datatypes.NewJSONSlice(tags),
		}
		if err := tx.Model(record).Updates(updates).Error; err != nil {
			return err
		}

		if researchType == models.ResearchTypeDES && hasDes {
			if err := upsertDesFormula(tx, recordID, desFormula); err != nil {
				return err
			}
		}

		if researchType == models.ResearchTypeHydrogel && hasGel {
			if err := upsertHydrogelFormula(tx, recordID, gelFormula); err != nil {
				return err
			}
		}

		if conclusion != "" {
			if err := upsertFirstResult(tx, recordID, conclusion, failureReason); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		applog.Error(ctx, "failed to update record", "error", err, "recordID", recordID)
		refill(fmt.Sprintf("We couldn't save your changes: %v", err))
		return
	}

	applog.Info(ctx, "record updated", "recordID", recordID, "type", researchType)
	http.Redirect(w, r, fmt.Sprintf("/records/%d", recordID), http.StatusSeeOther)
}

func upsertDesFormula(tx *gorm.DB, recordID uint, formula models.DesFormula) error {
	var existing models.DesFormula
	err := tx.Where("record_id = ?", recordID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		formula.RecordID = recordID
		return tx.Create(&formula).Error
	}
	if err != nil {
		return err
	}

	formula.ID = existing.ID
	formula.RecordID = recordID
	formula.CreatedAt = existing.CreatedAt
	return tx.Save(&formula).Error
}

func upsertHydrogelFormula(tx *gorm.DB, recordID uint, formula models.HydrogelFormula) error {
	var existing models.HydrogelFormula
	err := tx.Where("record_id = ?", recordID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		formula.RecordID = recordID
		return tx.Create(&formula).Error
	}
	if err != nil {
		return err
	}

	formula.ID = existing.ID
	formula.RecordID = recordID
	formula.CreatedAt = existing.CreatedAt
	return tx.Save(&formula).Error
}

// upsertFirstResult updates the oldest result row or inserts one when the
// record has none. Later rows are left alone.
func upsertFirstResult(tx *gorm.DB, recordID uint, conclusion, failureReason string) error {
	var existing models.TestResult
	err := tx.Where("record_id = ?", recordID).Order("created_at asc").First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		result := models.TestResult{
			RecordID:      recordID,
			Conclusion:    conclusion,
			FailureReason: failureReason,
		}
		return tx.Create(&result).Error
	}
	if err != nil {
		return err
	}

	return tx.Model(&existing).Updates(map[string]any{
		"conclusion":     conclusion,
		"failure_reason": failureReason,
	}).Error
}
