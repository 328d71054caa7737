package pages

import (
	"context"
	"strings"
	"testing"

	"gorm.io/gorm"

	"zinclab/models"
)

func TestDashboardEmptyState(t *testing.T) {
	var sb strings.Builder
	if err := Dashboard("Lin", nil, "").Render(context.Background(), &sb); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	html := sb.String()
	if !strings.Contains(html, "Lin's experiment records") {
		t.Fatal("expected personalized heading")
	}
	if !strings.Contains(html, "No records yet") {
		t.Fatal("expected empty state prompt")
	}
	if strings.Contains(html, "record-grid") {
		t.Fatal("expected no record grid when there are no records")
	}
	if strings.Contains(html, "flash") {
		t.Fatal("expected no flash markup without a message")
	}
}

func TestDashboardRendersFlashMessage(t *testing.T) {
	var sb strings.Builder
	if err := Dashboard("", nil, "Select at least one record to export.").Render(context.Background(), &sb); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	html := sb.String()
	if !strings.Contains(html, "flash-info") {
		t.Fatal("expected info flash markup")
	}
	if !strings.Contains(html, "Select at least one record to export.") {
		t.Fatal("expected flash message text")
	}
}

func TestDashboardRendersSelectableCards(t *testing.T) {
	records := []models.ExperimentRecord{
		{
			Model:        gorm.Model{ID: 4},
			Title:        "ChCl:EG 1:2 baseline",
			ResearchType: models.ResearchTypeDES,
			DesFormula:   &models.DesFormula{HbaName: "ChCl", HbdName: "EG", MolarRatio: "1:2"},
		},
		{
			Model:           gorm.Model{ID: 9},
			Title:           "PVA freeze-thaw gel",
			ResearchType:    models.ResearchTypeHydrogel,
			HydrogelFormula: &models.HydrogelFormula{PolymerType: "PVA", CrosslinkMethod: "freeze-thaw"},
		},
	}

	var sb strings.Builder
	if err := Dashboard("", records, "").Render(context.Background(), &sb); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	html := sb.String()

	if !strings.Contains(html, "Your experiment records") {
		t.Fatal("expected fallback heading without a display name")
	}
	if !strings.Contains(html, "action=\"/export\"") {
		t.Fatal("expected export form wrapping the grid")
	}
	if !strings.Contains(html, "ChCl:EG 1:2 baseline") || !strings.Contains(html, "PVA freeze-thaw gel") {
		t.Fatal("expected both record titles")
	}
	if strings.Count(html, "name=\"record_ids\"") != 2 {
		t.Fatal("expected a selection checkbox per record")
	}
}
