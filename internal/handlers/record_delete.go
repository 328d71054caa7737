package handlers

import (
	"net/http"

	applog "zinclab/internal/log"
)

// deleteRecord removes a single record row. Dependent formula, result, and
// attachment rows are left to the storage layer's referential rules;
// confirmation happens in the calling UI.
func deleteRecord(w http.ResponseWriter, r *http.Request, recordID, userID uint) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	record, err := findOwnedRecord(ctx, recordID, userID)
	if err != nil {
		handleRecordLoadError(w, r, err, recordID)
		return
	}

	if err := database.WithContext(ctx).Delete(record).Error; err != nil {
		applog.Error(ctx, "failed to delete record", "error", err, "recordID", recordID)
		http.Error(w, "We were unable to delete that record. Please try again.", http.StatusInternalServerError)
		return
	}

	applog.Info(ctx, "record deleted", "recordID", recordID, "user", userID)
	redirectToDashboard(w, r)
}
