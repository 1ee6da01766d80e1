package classify

import (
	"strings"
	"testing"

	"slotwatch/internal/core/markerpack"
)

func fixtures(t *testing.T) (markerpack.Kind, markerpack.Markers) {
	t.Helper()
	p, err := markerpack.Load()
	if err != nil {
		t.Fatalf("load pack: %v", err)
	}
	k, ok := p.KindByID("index")
	if !ok {
		t.Fatalf("index kind missing")
	}
	return k, p.Markers
}

func kindByID(t *testing.T, id string) markerpack.Kind {
	t.Helper()
	p, err := markerpack.Load()
	if err != nil {
		t.Fatalf("load pack: %v", err)
	}
	k, ok := p.KindByID(id)
	if !ok {
		t.Fatalf("kind %q missing", id)
	}
	return k
}

const goodBlock = `2025/08/20 16:00:10 reading input from GoodFiles\prices_20250820.xml
2025/08/20 16:01:00 Total Prices to be submitted: 100
2025/08/20 16:02:00 Total validated Prices submitted: 100 (100%)
2025/08/20 16:02:01 Program is ending successfully`

// Scenario A: full success composite
func TestBlockSuccess(t *testing.T) {
	kind, m := fixtures(t)
	res := Block(goodBlock, kind, m)
	if res.Status != StatusOK {
		t.Fatalf("status = %s (%s), want OK", res.Status, res.Rule)
	}
	if res.Rule != RuleSuccess {
		t.Fatalf("rule = %s", res.Rule)
	}
	if len(res.Caution) != 0 {
		t.Fatalf("unexpected caution notes: %v", res.Caution)
	}
}

// Scenario B: totals disagree
func TestBlockTotalsMismatch(t *testing.T) {
	kind, m := fixtures(t)
	text := strings.Replace(goodBlock, "validated Prices submitted: 100", "validated Prices submitted: 95", 1)
	res := Block(text, kind, m)
	if res.Status != StatusNOK || res.Rule != RuleTotalsMismatch {
		t.Fatalf("status = %s rule = %s", res.Status, res.Rule)
	}
	if len(res.Caution) != 1 || !strings.Contains(res.Caution[0], "100") || !strings.Contains(res.Caution[0], "95") {
		t.Fatalf("caution must cite both figures, got %v", res.Caution)
	}
}

// Scenario C: hard failure markers win over anything else present
func TestBlockHardFailurePrecedence(t *testing.T) {
	kind, m := fixtures(t)
	cases := map[string]string{
		"skip":      "2025/08/20 16:00:00 Skipping auto submission for today",
		"error end": goodBlock + "\n2025/08/20 16:03:00 Program is ending with error",
		"bad input": strings.Replace(goodBlock, `GoodFiles\prices`, `BadFiles\prices`, 1),
		"error":     goodBlock + "\n2025/08/20 16:02:30 ERROR while flushing queue",
	}
	for name, text := range cases {
		res := Block(text, kind, m)
		if res.Status != StatusNOK || res.Rule != RuleHardFailure {
			t.Fatalf("%s: status = %s rule = %s", name, res.Status, res.Rule)
		}
		if len(res.Caution) == 0 || res.Caution[0] != "error/skip/bad-input marker detected" {
			t.Fatalf("%s: caution = %v", name, res.Caution)
		}
	}
}

// Rule 2 beats the success composite even when the block also ends well
func TestBlockRequiredMissingBeatsSuccess(t *testing.T) {
	kind, m := fixtures(t)
	text := goodBlock + "\n2025/08/20 16:02:00 Missing Clearable Prices : 4"
	res := Block(text, kind, m)
	if res.Status != StatusNOK || res.Rule != RuleRequiredMissing {
		t.Fatalf("status = %s rule = %s", res.Status, res.Rule)
	}
	if len(res.Caution) == 0 || !strings.Contains(res.Caution[0], "4") {
		t.Fatalf("caution must carry the count, got %v", res.Caution)
	}
}

func TestBlockValidationErrorsForceFailure(t *testing.T) {
	kind, m := fixtures(t)
	text := goodBlock + "\n2025/08/20 16:02:00 Validation Error(s): 2"
	res := Block(text, kind, m)
	if res.Status != StatusNOK || res.Rule != RuleRequiredMissing {
		t.Fatalf("status = %s rule = %s", res.Status, res.Rule)
	}
}

// Scenario E: optional-missing is informational only
func TestBlockOptionalMissingIsInfo(t *testing.T) {
	kind, m := fixtures(t)
	text := goodBlock + "\n2025/08/20 16:01:30 Missing Prices (Quotable only) : 3"
	res := Block(text, kind, m)
	if res.Status != StatusOK {
		t.Fatalf("status = %s (%s), want OK", res.Status, res.Rule)
	}
	if len(res.Info) != 1 || !strings.Contains(res.Info[0], "3") {
		t.Fatalf("info must mention the count, got %v", res.Info)
	}
	if len(res.Caution) != 0 {
		t.Fatalf("caution must stay empty, got %v", res.Caution)
	}
}

// Rule 5 placement: with a positive required-missing count the same
// informational lines move to caution
func TestBlockNotePlacementUnderRequiredMissing(t *testing.T) {
	kind, m := fixtures(t)
	text := goodBlock +
		"\n2025/08/20 16:01:30 Missing Prices (Quotable only) : 3" +
		"\n2025/08/20 16:01:31 Missing Clearable Prices : 2"
	res := Block(text, kind, m)
	if res.Status != StatusNOK {
		t.Fatalf("status = %s", res.Status)
	}
	if len(res.Info) != 0 {
		t.Fatalf("info must be empty when required-missing fires, got %v", res.Info)
	}
	joined := strings.Join(res.Caution, "\n")
	if !strings.Contains(joined, "Clearable") || !strings.Contains(joined, "Quotable") {
		t.Fatalf("caution must carry both notes, got %v", res.Caution)
	}
}

func TestBlockInvalidCurveLinesAreInfo(t *testing.T) {
	kind, m := fixtures(t)
	text := goodBlock + "\n2025/08/20 16:01:40 Curve [XYZ 5Y] was not sent. Invalid ! stale quote"
	res := Block(text, kind, m)
	if res.Status != StatusOK {
		t.Fatalf("status = %s", res.Status)
	}
	if len(res.Info) != 1 || !strings.Contains(res.Info[0], "Curve [XYZ 5Y]") {
		t.Fatalf("info = %v", res.Info)
	}
}

// Default rule: incomplete runs wait and name what is missing
func TestBlockIncompleteWaits(t *testing.T) {
	kind, m := fixtures(t)
	text := `2025/08/20 16:00:10 reading input from GoodFiles\prices.xml
2025/08/20 16:01:00 Total Prices to be submitted: 100
2025/08/20 16:01:30 Program is ending`
	res := Block(text, kind, m)
	if res.Status != StatusWaiting || res.Rule != RuleIncomplete {
		t.Fatalf("status = %s rule = %s", res.Status, res.Rule)
	}
	joined := strings.Join(res.Info, "\n")
	for _, want := range []string{"validated/contributed total", "100% confirmation", "successful end marker"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("info must name %q, got %v", want, res.Info)
		}
	}
}

// Totals selection follows the kind: single_name compares the contributed
// figure, index_option accepts whichever is present
func TestBlockTotalsFieldSelection(t *testing.T) {
	_, m := fixtures(t)

	sn := kindByID(t, "single_name")
	text := `2025/08/20 16:00:10 GoodFiles\sn.xml
2025/08/20 16:01:00 Total Prices to be submitted: 42
2025/08/20 16:01:10 Contributed Prices: 42 (100%)
2025/08/20 16:01:20 Program is ending successfully`
	if res := Block(text, sn, m); res.Status != StatusOK {
		t.Fatalf("single_name status = %s (%s)", res.Status, res.Rule)
	}

	opt := kindByID(t, "index_option")
	either := strings.Replace(text, "Contributed Prices: 42", "Total validated Prices submitted: 42", 1)
	if res := Block(either, opt, m); res.Status != StatusOK {
		t.Fatalf("index_option status = %s (%s)", res.Status, res.Rule)
	}
}

// Raw string comparison: a leading zero is a mismatch by design
func TestBlockTotalsCompareAsRawStrings(t *testing.T) {
	kind, m := fixtures(t)
	text := strings.Replace(goodBlock, "validated Prices submitted: 100", "validated Prices submitted: 0100", 1)
	res := Block(text, kind, m)
	if res.Status != StatusNOK || res.Rule != RuleTotalsMismatch {
		t.Fatalf("status = %s rule = %s, want raw-string mismatch", res.Status, res.Rule)
	}
}
