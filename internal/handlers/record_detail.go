package handlers

import (
	"fmt"
	"net/http"

	applog "zinclab/internal/log"
	"zinclab/internal/views/pages"
)

func showRecord(w http.ResponseWriter, r *http.Request, recordID, userID uint) {
	ctx := r.Context()

	record, err := findOwnedRecord(ctx, recordID, userID)
	if err != nil {
		handleRecordLoadError(w, r, err, recordID)
		return
	}

	des, gel, results, attachments, err := loadRecordRelations(ctx, recordID)
	if err != nil {
		handleRecordLoadError(w, r, err, recordID)
		return
	}

	data := pages.RecordDetailData{
		Record:      *record,
		Des:         des,
		Hydrogel:    gel,
		Results:     results,
		Attachments: attachments,
		Message:     popFlash(r),
	}
	if record.Shared() {
		data.ShareURL = fmt.Sprintf("/s/%s", *record.ShareToken)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.RecordDetail(data).Render(ctx, w); err != nil {
		applog.Error(ctx, "failed to render record detail", "error", err, "recordID", recordID)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
