package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	applog "zinclab/internal/log"
	"zinclab/models"
)

var errRecordNotFound = errors.New("records: record not found")

// RecordResource dispatches /records/{id} and its sub-paths: detail, edit,
// delete, export, share, and attachment upload.
func RecordResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		redirectToLogin(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/records")
	path = strings.Trim(path, "/")
	if path == "" {
		renderNotFound(w, r)
		return
	}

	segments := strings.Split(path, "/")
	idValue, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		renderNotFound(w, r)
		return
	}
	recordID := uint(idValue)

	if len(segments) == 1 {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		showRecord(w, r, recordID, userID)
		return
	}

	switch strings.Join(segments[1:], "/") {
	case "edit":
		editRecord(w, r, recordID, userID)
	case "delete":
		deleteRecord(w, r, recordID, userID)
	case "export":
		exportRecord(w, r, recordID, userID)
	case "share":
		issueShareLink(w, r, recordID, userID)
	case "share/revoke":
		revokeShareLink(w, r, recordID, userID)
	case "attachments":
		uploadAttachment(w, r, recordID, userID)
	default:
		renderNotFound(w, r)
	}
}

// findOwnedRecord loads a record scoped to its owner. Foreign and missing ids
// both come back as errRecordNotFound so callers answer with a 404 either way.
func findOwnedRecord(ctx context.Context, recordID, userID uint) (*models.ExperimentRecord, error) {
	var record models.ExperimentRecord
	err := database.WithContext(ctx).
		Where("id = ? AND owner_id = ?", recordID, userID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// loadRecordRelations fetches the formula rows and result list as standalone
// queries, mirroring the detail contract (the listing joins instead).
func loadRecordRelations(ctx context.Context, recordID uint) (*models.DesFormula, *models.HydrogelFormula, []models.TestResult, []models.Attachment, error) {
	var des *models.DesFormula
	var found models.DesFormula
	err := database.WithContext(ctx).Where("record_id = ?", recordID).First(&found).Error
	switch {
	case err == nil:
		des = &found
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, nil, nil, nil, err
	}

	var gel *models.HydrogelFormula
	var foundGel models.HydrogelFormula
	err = database.WithContext(ctx).Where("record_id = ?", recordID).First(&foundGel).Error
	switch {
	case err == nil:
		gel = &foundGel
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, nil, nil, nil, err
	}

	var results []models.TestResult
	if err := database.WithContext(ctx).Where("record_id = ?", recordID).Order("created_at asc").Find(&results).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	var attachments []models.Attachment
	if err := database.WithContext(ctx).Where("record_id = ?", recordID).Order("created_at asc").Find(&attachments).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	return des, gel, results, attachments, nil
}

func handleRecordLoadError(w http.ResponseWriter, r *http.Request, err error, recordID uint) {
	if errors.Is(err, errRecordNotFound) {
		renderNotFound(w, r)
		return
	}
	applog.Error(r.Context(), "failed to load record", "error", err, "recordID", recordID)
	http.Error(w, "We were unable to load that record. Please try again.", http.StatusInternalServerError)
}
