package telegram

import (
	"strings"
	"testing"
	"time"

	"day-planner/internal/app"
	"day-planner/internal/metrics"
	"day-planner/internal/planner"
	"day-planner/internal/session"
)

func TestMarkdownBold(t *testing.T) {
	got := markdownBold("Start at **Joe_s Bar**, then eat.")
	if got != `Start at *Joe\_s Bar*, then eat.` {
		t.Errorf("Unexpected markdown %q", got)
	}
}

func TestFormatHome_NoMatch(t *testing.T) {
	text, kb := formatHome(app.HomeView{PlanView: app.PlanView{Message: app.NoMatchMessage}, Flash: session.BookingThanks})
	if kb != nil {
		t.Error("Expected no keyboard without a match")
	}
	if !strings.HasPrefix(text, "🎉 Thank you for your booking") || !strings.Contains(text, "No matches found") {
		t.Errorf("Unexpected text %q", text)
	}
}

func TestFormatCheckout(t *testing.T) {
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	view := session.CheckoutView{
		Plan:    planner.Plan{Kind: planner.PlanFood, Restaurant: "Nopa"},
		Heading: "You are heading to: Nopa",
		People:  2,
		Day:     "2026-10-16",
	}
	text, kb := formatCheckout(view, now)
	if !strings.Contains(text, "Date: 2026-10-16 (today)") {
		t.Errorf("Expected today's date, got %q", text)
	}
	if strings.Contains(text, "Time:") {
		t.Error("Expected no time line when time is unset")
	}
	if kb == nil || len(kb.InlineKeyboard[0]) != 2 {
		t.Error("Expected confirm and back buttons")
	}
}

func TestFormatUsageReport(t *testing.T) {
	text := formatUsageReport(
		[]metrics.DailyUsage{{Date: "2026-10-16", Plans: 4, Matched: 3, AvgLatency: 120 * time.Microsecond}},
		metrics.SysHealth{Alloc: "1.2 MB", Sys: "8.0 MB", Goroutines: 5, DataDiskSize: "20 kB"},
	)
	for _, want := range []string{"*2026-10-16*: 4 plans, 75% matched, avg 120µs", "RAM: 1.2 MB (Alloc) / 8.0 MB (Sys)", "Disk Data: 20 kB"} {
		if !strings.Contains(text, want) {
			t.Errorf("Report is missing %q:\n%s", want, text)
		}
	}

	if empty := formatUsageReport(nil, metrics.SysHealth{}); !strings.Contains(empty, "_No data yet_") {
		t.Errorf("Expected empty marker, got %q", empty)
	}
}
