package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	applog "zinclab/internal/log"
	"zinclab/internal/views/pages"
	"zinclab/models"
)

// issueShareLink mints a fresh token for the record and flips it to shared
// visibility. An optional expiry in days and an optional password can be set
// at issue time; reissuing replaces all three.
func issueShareLink(w http.ResponseWriter, r *http.Request, recordID, userID uint) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	record, err := findOwnedRecord(ctx, recordID, userID)
	if err != nil {
		handleRecordLoadError(w, r, err, recordID)
		return
	}

	token := uuid.NewString()
	updates := map[string]any{
		"visibility":          models.VisibilityShared,
		"share_token":         token,
		"share_expires_at":    nil,
		"share_password_hash": nil,
	}

	if days := strings.TrimSpace(r.PostFormValue("share_days")); days != "" {
		count, err := strconv.Atoi(days)
		if err != nil || count < 1 {
			putFlash(r, "Expiry must be a whole number of days.")
			redirectToRecord(w, r, recordID)
			return
		}
		updates["share_expires_at"] = time.Now().UTC().AddDate(0, 0, count)
	}

	if password := r.PostFormValue("share_password"); password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			applog.Error(ctx, "failed to hash share password", "error", err, "recordID", recordID)
			http.Error(w, "We were unable to create the share link. Please try again.", http.StatusInternalServerError)
			return
		}
		updates["share_password_hash"] = string(hashed)
	}

	if err := database.WithContext(ctx).Model(record).Updates(updates).Error; err != nil {
		applog.Error(ctx, "failed to issue share link", "error", err, "recordID", recordID)
		http.Error(w, "We were unable to create the share link. Please try again.", http.StatusInternalServerError)
		return
	}

	applog.Info(ctx, "share link issued", "recordID", recordID)
	putFlash(r, "Share link created.")
	redirectToRecord(w, r, recordID)
}

// revokeShareLink clears the token and returns the record to private
// visibility. The old token stops resolving immediately.
func revokeShareLink(w http.ResponseWriter, r *http.Request, recordID, userID uint) {
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

	updates := map[string]any{
		"visibility":          models.VisibilityPrivate,
		"share_token":         nil,
		"share_expires_at":    nil,
		"share_password_hash": nil,
	}
	if err := database.WithContext(ctx).Model(record).Updates(updates).Error; err != nil {
		applog.Error(ctx, "failed to revoke share link", "error", err, "recordID", recordID)
		http.Error(w, "We were unable to revoke the share link. Please try again.", http.StatusInternalServerError)
		return
	}

	applog.Info(ctx, "share link revoked", "recordID", recordID)
	putFlash(r, "Share link revoked.")
	redirectToRecord(w, r, recordID)
}

// SharedRecordView serves /s/{token} without authentication. Expired or
// unknown tokens answer 404; password-protected records prompt before
// rendering.
func SharedRecordView(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	token := strings.Trim(strings.TrimPrefix(r.URL.Path, "/s"), "/")
	if token == "" || strings.Contains(token, "/") {
		renderNotFound(w, r)
		return
	}

	ctx := r.Context()
	var record models.ExperimentRecord
	err := database.WithContext(ctx).
		Where("share_token = ? AND visibility = ?", token, models.VisibilityShared).
		First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Error(ctx, "failed to resolve share token", "error", err)
		}
		renderNotFound(w, r)
		return
	}

	if record.ShareExpired(time.Now().UTC()) {
		renderNotFound(w, r)
		return
	}

	if record.SharePasswordHash != nil {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			renderShareComponent(w, r, pages.SharePasswordPrompt(token, ""))
			return
		case http.MethodPost:
			if err := r.ParseForm(); err != nil {
				http.Error(w, "invalid form submission", http.StatusBadRequest)
				return
			}
			password := r.PostFormValue("password")
			if bcrypt.CompareHashAndPassword([]byte(*record.SharePasswordHash), []byte(password)) != nil {
				w.WriteHeader(http.StatusUnauthorized)
				renderShareComponent(w, r, pages.SharePasswordPrompt(token, "Incorrect password."))
				return
			}
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
	} else if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	des, gel, results, attachments, err := loadRecordRelations(ctx, record.ID)
	if err != nil {
		applog.Error(ctx, "failed to load shared record", "error", err, "recordID", record.ID)
		http.Error(w, "We were unable to load that record. Please try again.", http.StatusInternalServerError)
		return
	}

	data := pages.RecordDetailData{
		Record:      record,
		Des:         des,
		Hydrogel:    gel,
		Results:     results,
		Attachments: attachments,
	}
	renderShareComponent(w, r, pages.SharedRecord(data))
}

func renderShareComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render shared view", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func redirectToRecord(w http.ResponseWriter, r *http.Request, recordID uint) {
	http.Redirect(w, r, fmt.Sprintf("/records/%d", recordID), http.StatusSeeOther)
}
