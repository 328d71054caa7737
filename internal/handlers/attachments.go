package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	applog "zinclab/internal/log"
	"zinclab/models"
)

const previewRuneLimit = 500

// uploadAttachment stores one multipart file against the record. PDF uploads
// additionally get a page count and a short text preview extracted.
func uploadAttachment(w http.ResponseWriter, r *http.Request, recordID, userID uint) {
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

	if err := r.ParseMultipartForm(uploads.MaxSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		applog.Error(ctx, "failed to parse attachment form", "error", err, "recordID", recordID)
		putFlash(r, "Upload is too large or invalid. Please retry with a smaller file.")
		redirectToRecord(w, r, recordID)
		return
	}

	fileName, data, mime, err := readAttachmentUpload(r)
	if err != nil {
		putFlash(r, "Please choose a file to upload.")
		redirectToRecord(w, r, recordID)
		return
	}
	if int64(len(data)) > uploads.MaxSize {
		putFlash(r, "Upload is too large. Please retry with a smaller file.")
		redirectToRecord(w, r, recordID)
		return
	}

	attachment := models.Attachment{
		RecordID: record.ID,
		FileName: fileName,
		FileType: mime,
		FileSize: int64(len(data)),
	}

	if strings.Contains(strings.ToLower(mime), "pdf") {
		pages, preview, err := inspectPDF(data)
		if err != nil {
			applog.Error(ctx, "failed to read uploaded PDF", "error", err, "recordID", recordID)
		} else {
			attachment.PageCount = pages
			attachment.Preview = preview
		}
	}

	storedPath, err := storeUpload(recordID, fileName, data)
	if err != nil {
		applog.Error(ctx, "failed to store attachment", "error", err, "recordID", recordID)
		http.Error(w, "We were unable to store that file. Please try again.", http.StatusInternalServerError)
		return
	}
	attachment.FilePath = storedPath

	if err := database.WithContext(ctx).Create(&attachment).Error; err != nil {
		applog.Error(ctx, "failed to save attachment", "error", err, "recordID", recordID)
		http.Error(w, "We were unable to save that file. Please try again.", http.StatusInternalServerError)
		return
	}

	applog.Info(ctx, "attachment uploaded", "recordID", recordID, "file", fileName, "bytes", attachment.FileSize)
	putFlash(r, fmt.Sprintf("Uploaded %s.", fileName))
	redirectToRecord(w, r, recordID)
}

func readAttachmentUpload(r *http.Request) (string, []byte, string, error) {
	file, header, err := r.FormFile("attachment")
	if err != nil {
		return "", nil, "", err
	}
	defer file.Close()

	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, file); err != nil {
		return "", nil, "", err
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" {
		mime = mimeTypeFromName(header.Filename)
	}

	return filepath.Base(header.Filename), buf.Bytes(), mime, nil
}

// storeUpload writes the payload under the configured upload directory,
// namespaced per record so identical names from different records never
// collide.
func storeUpload(recordID uint, fileName string, data []byte) (string, error) {
	dir := filepath.Join(uploads.Dir, fmt.Sprintf("%d", recordID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func inspectPDF(data []byte) (int, string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, "", err
	}

	numPages := reader.NumPage()
	var builder strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
		if builder.Len() > previewRuneLimit*4 {
			break
		}
	}

	preview := strings.TrimSpace(builder.String())
	runes := []rune(preview)
	if len(runes) > previewRuneLimit {
		preview = string(runes[:previewRuneLimit])
	}
	return numPages, preview, nil
}

func mimeTypeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return "text/plain"
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
