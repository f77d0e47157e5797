package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"kitchenos/internal/store"
	"kitchenos/models"
)

func TestLoginRendersMessageAndEmail(t *testing.T) {
	var buf bytes.Buffer
	if err := Login("Gecersiz bilgiler", "sef@example.com").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render login: %v", err)
	}
	out := buf.String()
	for _, token := range []string{"<!DOCTYPE html>", "Gecersiz bilgiler", `value="sef@example.com"`, `action="/login"`} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected login page to contain %q: %s", token, out)
		}
	}
}

func TestLoginPartialSkipsDocumentShell(t *testing.T) {
	var buf bytes.Buffer
	if err := LoginPartial("", "").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render login partial: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<html") {
		t.Fatalf("expected partial without document shell: %s", out)
	}
	if strings.Contains(out, "alert") {
		t.Fatalf("expected no alert without a message: %s", out)
	}
}

func TestDashboardRendersStatsAndOutlets(t *testing.T) {
	outlet := store.OutletSummary{
		Outlet:        models.Outlet{Name: "Bistro Kadikoy", Status: models.OutletMaintenance},
		RecipeCount:   3,
		CategoryCount: 2,
	}
	outlet.ID = "outlet-1"

	data := DashboardData{
		ProductName: "Kitchen OS",
		UserName:    "Demo Sef",
		Stats: store.DashboardStats{
			Outlets:            1,
			Recipes:            3,
			Ingredients:        14,
			AverageCostPerUnit: decimal.RequireFromString("12.5"),
		},
		Outlets: []store.OutletSummary{outlet},
	}

	var buf bytes.Buffer
	if err := Dashboard(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render dashboard: %v", err)
	}
	out := buf.String()
	for _, token := range []string{"Hos geldiniz, Demo Sef", "Bistro Kadikoy", "12,50 TL", "data-outlet-id=\"outlet-1\"", "data-state=\"active\""} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected dashboard to contain %q: %s", token, out)
		}
	}
}

func TestOutletRowsUsesStatusLabels(t *testing.T) {
	rows := OutletRows([]store.OutletSummary{{Outlet: models.Outlet{Name: "A", Status: models.OutletActive}}})
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0].Status == string(models.OutletActive) {
		t.Fatalf("expected display label instead of raw status, got %q", rows[0].Status)
	}
}
