package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"zinclab/internal/config"
	"zinclab/models"
)

func withTestUploads(t *testing.T) func() {
	t.Helper()
	original := uploads
	uploads = config.UploadConfig{Dir: t.TempDir(), MaxSize: config.DefaultMaxUploadSize}
	return func() {
		uploads = original
	}
}

func multipartUpload(t *testing.T, target, fileName string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("attachment", fileName)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadAttachmentStoresFile(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)
	t.Cleanup(withTestUploads(t))

	user := seedUser(t, db, "lin@zinclab.app")
	record := seedRecord(t, db, user.ID, "Trial with notes")

	content := []byte("cycling log: 200 cycles, 92% retention")
	req := multipartUpload(t, fmt.Sprintf("/records/%d/attachments", record.ID), "cycling-log.txt", content)
	ctx, err := sm.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}
	req = req.WithContext(ctx)
	signIn(t, sm, req, user.ID)

	w := httptest.NewRecorder()
	RecordResource(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after upload, got %d: %s", w.Code, w.Body.String())
	}

	var attachment models.Attachment
	if err := db.Where("record_id = ?", record.ID).First(&attachment).Error; err != nil {
		t.Fatalf("expected attachment persisted: %v", err)
	}
	if attachment.FileName != "cycling-log.txt" {
		t.Fatalf("unexpected file name %q", attachment.FileName)
	}
	if attachment.FileSize != int64(len(content)) {
		t.Fatalf("unexpected file size %d", attachment.FileSize)
	}
	if attachment.FileType != "text/plain" {
		t.Fatalf("unexpected mime type %q", attachment.FileType)
	}

	stored, err := os.ReadFile(attachment.FilePath)
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Fatal("stored file does not match upload")
	}
}

func TestUploadAttachmentRequiresFile(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)
	t.Cleanup(withTestUploads(t))

	user := seedUser(t, db, "lin@zinclab.app")
	record := seedRecord(t, db, user.ID, "No file")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.Close()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/records/%d/attachments", record.ID), body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	ctx, err := sm.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}
	req = req.WithContext(ctx)
	signIn(t, sm, req, user.ID)

	w := httptest.NewRecorder()
	RecordResource(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect with flash, got %d", w.Code)
	}

	var count int64
	db.Model(&models.Attachment{}).Where("record_id = ?", record.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected no attachment row, got %d", count)
	}
}

func TestMimeTypeFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"report.PDF", "application/pdf"},
		{"notes.txt", "text/plain"},
		{"data.csv", "text/csv"},
		{"photo.jpeg", "image/jpeg"},
		{"mystery.bin", "application/octet-stream"},
	}
	for _, tc := range tests {
		if got := mimeTypeFromName(tc.name); got != tc.want {
			t.Errorf("mimeTypeFromName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
