package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"zinclab/models"
)

func TestIssueAndRevokeShareLink(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	user := seedUser(t, db, "lin@zinclab.app")
	record := seedRecord(t, db, user.ID, "Shareable trial")

	req := sessionRequest(t, sm, http.MethodPost, fmt.Sprintf("/records/%d/share", record.ID), url.Values{})
	signIn(t, sm, req, user.ID)
	w := httptest.NewRecorder()
	RecordResource(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after issuing link, got %d", w.Code)
	}

	var shared models.ExperimentRecord
	if err := db.First(&shared, record.ID).Error; err != nil {
		t.Fatalf("failed to reload record: %v", err)
	}
	if !shared.Shared() {
		t.Fatal("expected record to be shared with a token")
	}
	token := *shared.ShareToken

	// The public view resolves the token without a session.
	w = httptest.NewRecorder()
	SharedRecordView(w, httptest.NewRequest(http.MethodGet, "/s/"+token, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected shared view to render, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Shareable trial") {
		t.Fatal("expected record title in shared view")
	}

	req = sessionRequest(t, sm, http.MethodPost, fmt.Sprintf("/records/%d/share/revoke", record.ID), url.Values{})
	signIn(t, sm, req, user.ID)
	w = httptest.NewRecorder()
	RecordResource(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after revoking link, got %d", w.Code)
	}

	var revoked models.ExperimentRecord
	if err := db.First(&revoked, record.ID).Error; err != nil {
		t.Fatalf("failed to reload record: %v", err)
	}
	if revoked.Shared() || revoked.Visibility != models.VisibilityPrivate {
		t.Fatal("expected record back to private")
	}

	w = httptest.NewRecorder()
	SharedRecordView(w, httptest.NewRequest(http.MethodGet, "/s/"+token, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected revoked token to 404, got %d", w.Code)
	}
}

func TestShareLinkExpiry(t *testing.T) {
	_, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	user := seedUser(t, db, "lin@zinclab.app")
	record := seedRecord(t, db, user.ID, "Expired trial")

	token := "expired-token"
	expired := time.Now().UTC().Add(-time.Hour)
	updates := map[string]any{
		"visibility":       models.VisibilityShared,
		"share_token":      token,
		"share_expires_at": expired,
	}
	if err := db.Model(record).Updates(updates).Error; err != nil {
		t.Fatalf("failed to mark record shared: %v", err)
	}

	w := httptest.NewRecorder()
	SharedRecordView(w, httptest.NewRequest(http.MethodGet, "/s/"+token, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected expired link to 404, got %d", w.Code)
	}
}

func TestSharePasswordFlow(t *testing.T) {
	_, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	user := seedUser(t, db, "lin@zinclab.app")
	record := seedRecord(t, db, user.ID, "Protected trial")

	hash, err := bcrypt.GenerateFromPassword([]byte("zincite"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	token := "protected-token"
	updates := map[string]any{
		"visibility":          models.VisibilityShared,
		"share_token":         token,
		"share_password_hash": string(hash),
	}
	if err := db.Model(record).Updates(updates).Error; err != nil {
		t.Fatalf("failed to mark record shared: %v", err)
	}

	w := httptest.NewRecorder()
	SharedRecordView(w, httptest.NewRequest(http.MethodGet, "/s/"+token, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected password prompt, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "Protected trial") {
		t.Fatal("record content must not leak before password entry")
	}

	form := url.Values{}
	form.Set("password", "wrong")
	req := httptest.NewRequest(http.MethodPost, "/s/"+token, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	SharedRecordView(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}

	form.Set("password", "zincite")
	req = httptest.NewRequest(http.MethodPost, "/s/"+token, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	SharedRecordView(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected record after correct password, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Protected trial") {
		t.Fatal("expected record content after correct password")
	}
}

func TestIssueShareLinkWithExpiryDays(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	user := seedUser(t, db, "lin@zinclab.app")
	record := seedRecord(t, db, user.ID, "Week-long share")

	form := url.Values{}
	form.Set("share_days", "7")
	req := sessionRequest(t, sm, http.MethodPost, fmt.Sprintf("/records/%d/share", record.ID), form)
	signIn(t, sm, req, user.ID)
	w := httptest.NewRecorder()
	RecordResource(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}

	var shared models.ExperimentRecord
	if err := db.First(&shared, record.ID).Error; err != nil {
		t.Fatalf("failed to reload record: %v", err)
	}
	if shared.ShareExpiresAt == nil {
		t.Fatal("expected expiry to be set")
	}
	remaining := time.Until(*shared.ShareExpiresAt)
	if remaining < 6*24*time.Hour || remaining > 8*24*time.Hour {
		t.Fatalf("expected expiry about 7 days out, got %s", remaining)
	}
}
