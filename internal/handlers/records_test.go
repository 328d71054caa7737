package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"gorm.io/gorm"

	"zinclab/models"
)

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", DisplayName: "Seeded"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedRecord(t *testing.T, db *gorm.DB, ownerID uint, title string) *models.ExperimentRecord {
	t.Helper()
	record := &models.ExperimentRecord{
		OwnerID:      ownerID,
		Title:        title,
		ResearchType: models.ResearchTypeDES,
		Visibility:   models.VisibilityPrivate,
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}
	return record
}

func TestCreateRecordWritesFormulaAndResult(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	user := seedUser(t, db, "lin@zinclab.app")

	form := url.Values{}
	form.Set("title", "ChCl:EG 1:2 baseline")
	form.Set("research_type", models.ResearchTypeDES)
	form.Set("tags", "DES, baseline, baseline")
	form.Set("hba_name", "choline chloride")
	form.Set("hbd_name", "ethylene glycol")
	form.Set("molar_ratio", "1:2")
	form.Set("salt_name", "ZnSO4")
	form.Set("salt_concentration", "2M")
	form.Set("water_content", "5")
	form.Set("additives", "urea (10%)")
	form.Set("conclusion", "Stable plating over 200 cycles")

	req := sessionRequest(t, sm, http.MethodPost, "/records/new", form)
	signIn(t, sm, req, user.ID)
	w := httptest.NewRecorder()
	NewRecord(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after create, got %d: %s", w.Code, w.Body.String())
	}

	var record models.ExperimentRecord
	if err := db.Where("owner_id = ?", user.ID).First(&record).Error; err != nil {
		t.Fatalf("expected record persisted: %v", err)
	}
	if loc := w.Header().Get("Location"); loc != fmt.Sprintf("/records/%d", record.ID) {
		t.Fatalf("expected redirect to detail page, got %q", loc)
	}
	if got := []string(record.Tags); len(got) != 3 || got[0] != "DES" || got[2] != "baseline" {
		t.Fatalf("expected duplicate-preserving tags, got %v", got)
	}

	var formula models.DesFormula
	if err := db.Where("record_id = ?", record.ID).First(&formula).Error; err != nil {
		t.Fatalf("expected DES formula persisted: %v", err)
	}
	if formula.WaterContent == nil || *formula.WaterContent != 5 {
		t.Fatalf("unexpected water content %v", formula.WaterContent)
	}
	if got := formula.Additives.Display(); got != "urea (10%)" {
		t.Fatalf("unexpected additives %q", got)
	}

	var result models.TestResult
	if err := db.Where("record_id = ?", record.ID).First(&result).Error; err != nil {
		t.Fatalf("expected test result persisted: %v", err)
	}
	if result.Conclusion != "Stable plating over 200 cycles" {
		t.Fatalf("unexpected conclusion %q", result.Conclusion)
	}

	var gelCount int64
	db.Model(&models.HydrogelFormula{}).Where("record_id = ?", record.ID).Count(&gelCount)
	if gelCount != 0 {
		t.Fatalf("expected no hydrogel row for a DES record, got %d", gelCount)
	}
}

func TestCreateRecordEmptyWaterContentStoredAsNull(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	user := seedUser(t, db, "lin@zinclab.app")

	form := url.Values{}
	form.Set("title", "Dry baseline")
	form.Set("research_type", models.ResearchTypeDES)
	form.Set("hba_name", "choline chloride")
	form.Set("hbd_name", "urea")
	form.Set("water_content", "")

	req := sessionRequest(t, sm, http.MethodPost, "/records/new", form)
	signIn(t, sm, req, user.ID)
	w := httptest.NewRecorder()
	NewRecord(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after create, got %d: %s", w.Code, w.Body.String())
	}

	var record models.ExperimentRecord
	if err := db.Where("owner_id = ?", user.ID).First(&record).Error; err != nil {
		t.Fatalf("expected record persisted: %v", err)
	}

	var formula models.DesFormula
	if err := db.Where("record_id = ?", record.ID).First(&formula).Error; err != nil {
		t.Fatalf("expected DES formula persisted: %v", err)
	}
	if formula.WaterContent != nil {
		t.Fatalf("expected NULL water content, got %v", *formula.WaterContent)
	}

	var nullCount int64
	db.Model(&models.DesFormula{}).Where("record_id = ? AND water_content IS NULL", record.ID).Count(&nullCount)
	if nullCount != 1 {
		t.Fatalf("expected water_content stored as NULL, got %d matching rows", nullCount)
	}

	var gelCount int64
	db.Model(&models.HydrogelFormula{}).Where("record_id = ?", record.ID).Count(&gelCount)
	if gelCount != 0 {
		t.Fatalf("expected no hydrogel row for a DES record, got %d", gelCount)
	}
}

func TestCreateOtherTypeRecordRoundTrip(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	user := seedUser(t, db, "lin@zinclab.app")

	form := url.Values{}
	form.Set("title", "Separator wetting study")
	form.Set("research_type", models.ResearchTypeOther)
	form.Set("tags", "separator")
	form.Set("hba_name", "choline chloride")
	form.Set("polymer_type", "PVA")

	req := sessionRequest(t, sm, http.MethodPost, "/records/new", form)
	signIn(t, sm, req, user.ID)
	w := httptest.NewRecorder()
	NewRecord(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after create, got %d: %s", w.Code, w.Body.String())
	}

	var record models.ExperimentRecord
	if err := db.Where("owner_id = ?", user.ID).First(&record).Error; err != nil {
		t.Fatalf("expected record persisted: %v", err)
	}
	if record.ResearchType != models.ResearchTypeOther {
		t.Fatalf("unexpected research type %q", record.ResearchType)
	}

	// Neither formula table gets a row for an "other" record, even when the
	// form carried formula fields.
	var desCount, gelCount int64
	db.Model(&models.DesFormula{}).Where("record_id = ?", record.ID).Count(&desCount)
	db.Model(&models.HydrogelFormula{}).Where("record_id = ?", record.ID).Count(&gelCount)
	if desCount != 0 || gelCount != 0 {
		t.Fatalf("expected no formula rows, got des=%d gel=%d", desCount, gelCount)
	}

	detailReq := sessionRequest(t, sm, http.MethodGet, fmt.Sprintf("/records/%d", record.ID), nil)
	signIn(t, sm, detailReq, user.ID)
	w = httptest.NewRecorder()
	RecordResource(w, detailReq)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from detail page, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Separator wetting study") {
		t.Fatal("expected record title in detail page")
	}
}

func TestCreateRecordRequiresTitle(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	user := seedUser(t, db, "lin@zinclab.app")

	form := url.Values{}
	form.Set("title", "   ")
	req := sessionRequest(t, sm, http.MethodPost, "/records/new", form)
	signIn(t, sm, req, user.ID)
	w := httptest.NewRecorder()
	NewRecord(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected form re-render, got %d", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "Title is required.") {
		t.Fatal("expected validation message in response")
	}

	var count int64
	db.Model(&models.ExperimentRecord{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no record written, got %d", count)
	}
}

func TestCreateRecordRejectsNonNumericWaterContent(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	user := seedUser(t, db, "lin@zinclab.app")

	form := url.Values{}
	form.Set("title", "Water content typo")
	form.Set("hba_name", "choline chloride")
	form.Set("water_content", "five")
	req := sessionRequest(t, sm, http.MethodPost, "/records/new", form)
	signIn(t, sm, req, user.ID)
	w := httptest.NewRecorder()
	NewRecord(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected form re-render, got %d", w.Code)
	}

	var count int64
	db.Model(&models.ExperimentRecord{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no record written on validation failure, got %d", count)
	}
}

func TestShowRecordScopedToOwner(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	owner := seedUser(t, db, "owner@zinclab.app")
	intruder := seedUser(t, db, "intruder@zinclab.app")
	record := seedRecord(t, db, owner.ID, "Private baseline")

	req := sessionRequest(t, sm, http.MethodGet, fmt.Sprintf("/records/%d", record.ID), nil)
	signIn(t, sm, req, intruder.ID)
	w := httptest.NewRecorder()
	RecordResource(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign record, got %d", w.Code)
	}

	req = sessionRequest(t, sm, http.MethodGet, fmt.Sprintf("/records/%d", record.ID), nil)
	signIn(t, sm, req, owner.ID)
	w = httptest.NewRecorder()
	RecordResource(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Private baseline") {
		t.Fatal("expected record title in detail page")
	}
}

func TestRecordResourceRejectsBadID(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	_, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	req := sessionRequest(t, sm, http.MethodGet, "/records/not-a-number", nil)
	signIn(t, sm, req, 1)
	w := httptest.NewRecorder()
	RecordResource(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", w.Code)
	}
}

func TestEditSwitchingTypeKeepsOldFormula(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	user := seedUser(t, db, "lin@zinclab.app")
	record := seedRecord(t, db, user.ID, "Type switch trial")
	formula := models.DesFormula{RecordID: record.ID, HbaName: "choline chloride", HbdName: "urea"}
	if err := db.Create(&formula).Error; err != nil {
		t.Fatalf("failed to seed formula: %v", err)
	}

	form := url.Values{}
	form.Set("title", "Type switch trial")
	form.Set("research_type", models.ResearchTypeHydrogel)
	form.Set("polymer_type", "PVA")
	form.Set("crosslink_method", "freeze-thaw")
	req := sessionRequest(t, sm, http.MethodPost, fmt.Sprintf("/records/%d/edit", record.ID), form)
	signIn(t, sm, req, user.ID)
	w := httptest.NewRecorder()
	RecordResource(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after edit, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.ExperimentRecord
	if err := db.First(&updated, record.ID).Error; err != nil {
		t.Fatalf("failed to reload record: %v", err)
	}
	if updated.ResearchType != models.ResearchTypeHydrogel {
		t.Fatalf("expected hydrogel type, got %q", updated.ResearchType)
	}

	var gel models.HydrogelFormula
	if err := db.Where("record_id = ?", record.ID).First(&gel).Error; err != nil {
		t.Fatalf("expected hydrogel formula written: %v", err)
	}
	if gel.PolymerType != "PVA" {
		t.Fatalf("unexpected polymer type %q", gel.PolymerType)
	}

	// The DES row of the previous type survives the switch.
	var desCount int64
	db.Model(&models.DesFormula{}).Where("record_id = ?", record.ID).Count(&desCount)
	if desCount != 1 {
		t.Fatalf("expected old DES formula kept, got %d rows", desCount)
	}
}

func TestEditUpdatesExistingFormulaInPlace(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	user := seedUser(t, db, "lin@zinclab.app")
	record := seedRecord(t, db, user.ID, "Ratio sweep")
	formula := models.DesFormula{RecordID: record.ID, HbaName: "choline chloride", HbdName: "ethylene glycol", MolarRatio: "1:2"}
	if err := db.Create(&formula).Error; err != nil {
		t.Fatalf("failed to seed formula: %v", err)
	}

	form := url.Values{}
	form.Set("title", "Ratio sweep")
	form.Set("research_type", models.ResearchTypeDES)
	form.Set("hba_name", "choline chloride")
	form.Set("hbd_name", "ethylene glycol")
	form.Set("molar_ratio", "1:3")
	req := sessionRequest(t, sm, http.MethodPost, fmt.Sprintf("/records/%d/edit", record.ID), form)
	signIn(t, sm, req, user.ID)
	w := httptest.NewRecorder()
	RecordResource(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after edit, got %d", w.Code)
	}

	var rows []models.DesFormula
	if err := db.Where("record_id = ?", record.ID).Find(&rows).Error; err != nil {
		t.Fatalf("failed to load formulas: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected formula updated in place, got %d rows", len(rows))
	}
	if rows[0].MolarRatio != "1:3" {
		t.Fatalf("expected updated molar ratio, got %q", rows[0].MolarRatio)
	}
}

func TestDeleteRecord(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	user := seedUser(t, db, "lin@zinclab.app")
	record := seedRecord(t, db, user.ID, "Doomed trial")

	req := sessionRequest(t, sm, http.MethodPost, fmt.Sprintf("/records/%d/delete", record.ID), url.Values{})
	signIn(t, sm, req, user.ID)
	w := httptest.NewRecorder()
	RecordResource(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after delete, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected redirect to dashboard, got %q", loc)
	}

	var count int64
	db.Model(&models.ExperimentRecord{}).Where("id = ?", record.ID).Count(&count)
	if count != 0 {
		t.Fatal("expected record hidden after delete")
	}
}

func TestDeleteRecordRequiresPost(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	user := seedUser(t, db, "lin@zinclab.app")
	record := seedRecord(t, db, user.ID, "Still here")

	req := sessionRequest(t, sm, http.MethodGet, fmt.Sprintf("/records/%d/delete", record.ID), nil)
	signIn(t, sm, req, user.ID)
	w := httptest.NewRecorder()
	RecordResource(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for GET delete, got %d", w.Code)
	}
}
