package render

import (
	"strings"
	"testing"
	"time"

	"slotwatch/internal/core/classify"
	"slotwatch/internal/core/markerpack"
	"slotwatch/internal/core/window"
	"slotwatch/internal/services/status/domain"
)

func sampleReport() domain.Report {
	return domain.Report{
		RunID:       "run-1",
		Date:        window.Date{Year: 2025, Month: 8, Day: 20},
		GeneratedAt: time.Date(2025, 8, 20, 16, 45, 0, 0, time.UTC),
		Rows: []domain.Row{
			{
				Region:      "EURforUS",
				RegionLabel: "EUR",
				Kind:        "index",
				KindLabel:   "Index",
				Statuses: map[markerpack.Slot]classify.Status{
					markerpack.SlotEarly:   classify.StatusOK,
					markerpack.SlotLatest1: classify.StatusNOK,
					markerpack.SlotLatest2: classify.StatusWaiting,
					markerpack.SlotFinal:   classify.StatusOK,
				},
				Rules: map[markerpack.Slot]string{
					markerpack.SlotLatest1: classify.RuleTotalsMismatch,
				},
				Caution: []string{"totals mismatch: submitted=10, validated=9"},
				Info:    []string{"Missing Prices (Quotable only) : 3"},
				Links: map[markerpack.Phase]string{
					markerpack.PhaseEarly: "/mnt/logs/e.log",
					markerpack.PhaseFinal: "/mnt/logs/f.log",
				},
			},
			{
				Region: "USD",
				Kind:   "single_name",
				Statuses: map[markerpack.Slot]classify.Status{
					markerpack.SlotEarly:   classify.StatusWaiting,
					markerpack.SlotLatest1: classify.StatusWaiting,
					markerpack.SlotLatest2: classify.StatusWaiting,
					markerpack.SlotFinal:   classify.StatusWaiting,
				},
			},
		},
	}
}

func TestBadge(t *testing.T) {
	if Badge(classify.StatusOK) != "✅" || Badge(classify.StatusNOK) != "❌" || Badge(classify.StatusWaiting) != "⏳" {
		t.Fatalf("badge mapping broken")
	}
}

func TestText(t *testing.T) {
	out := Text(sampleReport())
	for _, want := range []string{
		"2025-08-20",
		"run-1",
		"Early", "Latest 1", "Latest 2", "Final",
		"EUR", "Index",
		"✅ OK", "❌ NOK", "⏳ WAITING",
		"! totals mismatch: submitted=10, validated=9",
		"- Missing Prices (Quotable only) : 3",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("text output missing %q:\n%s", want, out)
		}
	}
	// bare ids fall back to title casing
	if !strings.Contains(out, "Single Name") {
		t.Fatalf("kind fallback label missing:\n%s", out)
	}
}

func TestHTML(t *testing.T) {
	out, err := HTML(sampleReport())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	for _, want := range []string{
		"<title>Price submission status 2025-08-20</title>",
		`title="totals-mismatch"`,
		`<li class="caution">totals mismatch: submitted=10, validated=9</li>`,
		`<a href="/mnt/logs/e.log">early</a>`,
		"⏳ WAITING",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("html output missing %q", want)
		}
	}
}
