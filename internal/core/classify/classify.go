// Package classify applies the ordered rule set that turns a completed run
// block's text into a status plus categorized diagnostic notes
package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"slotwatch/internal/core/markerpack"
)

// Status is the outcome of one (block, window) evaluation
type Status string

// Status values
const (
	StatusOK      Status = "OK"
	StatusNOK     Status = "NOK"
	StatusWaiting Status = "WAITING"
)

// Rule identifiers carried on results for diagnostics
const (
	RuleHardFailure     = "hard-failure"
	RuleRequiredMissing = "required-missing"
	RuleSuccess         = "success"
	RuleTotalsMismatch  = "totals-mismatch"
	RuleIncomplete      = "incomplete"
	RuleNoBlock         = "no-block"
	RuleSummaryRejected = "summary-rejected"
	RuleSummaryAccepted = "summary-accepted"
	RuleSummaryQuiet    = "summary-quiet"
)

// Result is one classification outcome. Immutable once returned
type Result struct {
	Status  Status
	Info    []string
	Caution []string
	Rule    string
}

// Waiting is the result for a window with no completed block
func Waiting() Result {
	return Result{Status: StatusWaiting, Rule: RuleNoBlock}
}

// count is one numeric marker occurrence. raw keeps the captured digits
// untouched so totals compare byte-for-byte, exactly mirroring the log's
// own formatting
type count struct {
	text  string
	value int
	raw   string
}

// findCount returns the first occurrence of a counted marker. A nil
// pattern or no match reports ok=false; non-numeric captures are treated
// as no match, never as an error
func findCount(re *regexp.Regexp, text string) (count, bool) {
	if re == nil {
		return count{}, false
	}
	m := re.FindStringSubmatch(text)
	if m == nil || len(m) < 2 {
		return count{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return count{}, false
	}
	return count{text: strings.TrimSpace(m[0]), value: n, raw: m[1]}, true
}

func matches(re *regexp.Regexp, text string) bool {
	return re != nil && re.MatchString(text)
}

// Block classifies a closed run block's concatenated text under the given
// submission kind. Rule order is fixed: hard-failure markers, then positive
// required-missing or validation-error counts, then the success composite,
// then mismatched totals, with WAITING as the default when the run has not
// announced a verifiable outcome. Informational markers are recorded on
// every path; they land in caution instead of info when a positive
// required-missing count forces a failure
func Block(text string, kind markerpack.Kind, m markerpack.Markers) Result {
	// non-terminal notes first; placement decided by the terminal rule
	var notes []string
	for _, re := range m.InfoLines {
		for _, hit := range re.FindAllString(text, -1) {
			notes = append(notes, strings.TrimSpace(hit))
		}
	}
	if c, ok := findCount(m.OptionalMissing, text); ok && c.value > 0 {
		notes = append(notes, c.text)
	}

	// rule 1: hard failure markers short-circuit everything
	if matches(m.ErrorEnd, text) || matches(m.Skip, text) || matches(m.BadInput, text) || hintHit(m.ErrorHints, text) {
		return Result{
			Status:  StatusNOK,
			Info:    notes,
			Caution: []string{"error/skip/bad-input marker detected"},
			Rule:    RuleHardFailure,
		}
	}

	// rule 2: positive required-missing or validation-error counts fail
	// the run before any success marker is honoured
	var forced []string
	if c, ok := findCount(m.RequiredMissing, text); ok && c.value > 0 {
		forced = append(forced, c.text)
	}
	if c, ok := findCount(m.ValidationErrors, text); ok && c.value > 0 {
		forced = append(forced, c.text)
	}
	if len(forced) > 0 {
		// informational lines ride along in caution when the required
		// count also fired
		return Result{
			Status:  StatusNOK,
			Caution: append(forced, notes...),
			Rule:    RuleRequiredMissing,
		}
	}

	// success composite inputs
	good := matches(m.GoodInput, text)
	pct := matches(m.Complete, text)
	endOK := matches(m.SuccessEnd, text)
	submitted, haveSubmitted := findCount(m.TotalSubmitted, text)
	alt, altName, haveAlt := altTotal(kind, m, text)

	// rule 3: all success markers present and totals agree
	if good && haveSubmitted && haveAlt && pct && endOK {
		if submitted.raw == alt.raw {
			return Result{Status: StatusOK, Info: notes, Rule: RuleSuccess}
		}
		// rule 4: everything else succeeded but the figures disagree
		return Result{
			Status: StatusNOK,
			Info:   notes,
			Caution: []string{fmt.Sprintf(
				"totals mismatch: submitted=%s, %s=%s", submitted.raw, altName, alt.raw)},
			Rule: RuleTotalsMismatch,
		}
	}

	// default: the run has not produced a verifiable success; name what is
	// still missing so the reader can tell a late run from a broken one
	missing := missingMarkers(good, haveSubmitted, haveAlt, pct, endOK)
	return Result{
		Status: StatusWaiting,
		Info:   append(notes, "awaiting: "+strings.Join(missing, ", ")),
		Rule:   RuleIncomplete,
	}
}

func hintHit(hints []*regexp.Regexp, text string) bool {
	for _, re := range hints {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// altTotal picks the counter total for the kind's totals field: validated,
// contributed, or whichever of the two the log reports (contributed wins
// when both are present)
func altTotal(kind markerpack.Kind, m markerpack.Markers, text string) (count, string, bool) {
	switch kind.Totals {
	case markerpack.TotalsValidated:
		c, ok := findCount(m.TotalValidated, text)
		return c, "validated", ok
	case markerpack.TotalsContributed:
		c, ok := findCount(m.TotalContributed, text)
		return c, "contributed", ok
	default: // TotalsEither
		if c, ok := findCount(m.TotalContributed, text); ok {
			return c, "contributed", true
		}
		c, ok := findCount(m.TotalValidated, text)
		return c, "validated", ok
	}
}

func missingMarkers(good, submitted, alt, pct, endOK bool) []string {
	var out []string
	if !good {
		out = append(out, "good-input marker")
	}
	if !submitted {
		out = append(out, "submitted total")
	}
	if !alt {
		out = append(out, "validated/contributed total")
	}
	if !pct {
		out = append(out, "100% confirmation")
	}
	if !endOK {
		out = append(out, "successful end marker")
	}
	if len(out) == 0 {
		// composite unsatisfied only by ordering of markers; still waiting
		out = append(out, "consistent success markers")
	}
	return out
}
