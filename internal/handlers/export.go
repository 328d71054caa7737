package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"zinclab/internal/export"
	applog "zinclab/internal/log"
	"zinclab/models"
)

const (
	contentTypeTSV  = "text/tab-separated-values; charset=utf-16le"
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// exportRecord serves GET /records/{id}/export?format=tsv|csv|json for one
// record. TSV is the row-per-record table, CSV the key/value breakdown, JSON
// the raw dump.
func exportRecord(w http.ResponseWriter, r *http.Request, recordID, userID uint) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

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

	item := export.Item{
		Record:   *record,
		Des:      des,
		Hydrogel: gel,
		Results:  results,
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "tsv"
	}

	base := exportFileBase(record.Title, record.ID)

	switch format {
	case "tsv":
		payload, err := export.Table([]export.Item{item})
		if err != nil {
			exportFailed(w, r, err, recordID)
			return
		}
		serveDownload(w, contentTypeTSV, base+".tsv", payload)
	case "csv":
		serveDownload(w, contentTypeCSV, base+".csv", export.KeyValue(item))
	case "json":
		payload, err := export.Dump(item)
		if err != nil {
			exportFailed(w, r, err, recordID)
			return
		}
		serveDownload(w, contentTypeJSON, base+".json", payload)
	default:
		http.Error(w, "unknown export format", http.StatusBadRequest)
	}
}

// ExportSelected serves POST /export: the dashboard posts the checked record
// ids and receives one TSV table covering all of them.
func ExportSelected(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		redirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	ids := make([]uint, 0, len(r.PostForm["record_ids"]))
	for _, raw := range r.PostForm["record_ids"] {
		value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(value))
	}
	if len(ids) == 0 {
		putFlash(r, "Select at least one record to export.")
		redirectToDashboard(w, r)
		return
	}

	ctx := r.Context()
	var records []models.ExperimentRecord
	err := database.WithContext(ctx).
		Preload("DesFormula").
		Preload("HydrogelFormula").
		Preload("TestResults").
		Where("owner_id = ? AND id IN ?", userID, ids).
		Order("created_at desc").
		Find(&records).Error
	if err != nil {
		applog.Error(ctx, "failed to load records for export", "error", err, "user", userID)
		http.Error(w, "We were unable to export those records. Please try again.", http.StatusInternalServerError)
		return
	}
	if len(records) == 0 {
		renderNotFound(w, r)
		return
	}

	items := make([]export.Item, 0, len(records))
	for _, record := range records {
		items = append(items, export.ItemFor(record))
	}

	payload, err := export.Table(items)
	if err != nil {
		applog.Error(ctx, "failed to build export table", "error", err, "user", userID)
		http.Error(w, "We were unable to export those records. Please try again.", http.StatusInternalServerError)
		return
	}

	name := fmt.Sprintf("records-%s.tsv", time.Now().UTC().Format("20060102-150405"))
	applog.Info(ctx, "records exported", "user", userID, "count", len(records))
	serveDownload(w, contentTypeTSV, name, payload)
}

func serveDownload(w http.ResponseWriter, contentType, fileName string, payload []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	w.Write(payload)
}

// exportFileBase derives a filesystem-safe download name from the record
// title, falling back to the id when nothing printable survives.
func exportFileBase(title string, recordID uint) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		return fmt.Sprintf("record-%d", recordID)
	}
	return name
}

func exportFailed(w http.ResponseWriter, r *http.Request, err error, recordID uint) {
	applog.Error(r.Context(), "failed to build export", "error", err, "recordID", recordID)
	http.Error(w, "We were unable to export that record. Please try again.", http.StatusInternalServerError)
}
