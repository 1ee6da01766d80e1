package classify

import (
	"fmt"
	"regexp"
	"strconv"

	"slotwatch/internal/core/markerpack"
	"slotwatch/internal/core/runblock"
	"slotwatch/internal/core/stamp"
	"slotwatch/internal/core/window"
)

// Summary judges a submission-summary log for the final slot of kinds that
// report through it instead of a run block. Evaluation is gated on any
// stamped line falling inside the window: a quiet summary is WAITING, a
// positive rejected count is NOK, a positive accepted count with no
// rejections is OK, and activity with no counts stays WAITING
func Summary(lines []runblock.Line, w window.Resolved, m markerpack.Markers) Result {
	active := false
	for _, ln := range lines {
		if t, ok := stamp.Extract(ln.Text); ok && w.Contains(t) {
			active = true
			break
		}
	}
	if !active {
		return Result{Status: StatusWaiting, Rule: RuleSummaryQuiet}
	}

	text := joinLines(lines)
	accepted := sumCounts(m.SummaryAccepted, text)
	rejected := sumCounts(m.SummaryRejected, text)

	if rejected > 0 {
		return Result{
			Status:  StatusNOK,
			Caution: []string{fmt.Sprintf("rejected quotes: %d", rejected)},
			Rule:    RuleSummaryRejected,
		}
	}
	if accepted > 0 {
		return Result{Status: StatusOK, Rule: RuleSummaryAccepted}
	}
	// activity but no counts; stay conservative
	return Result{Status: StatusWaiting, Rule: RuleSummaryQuiet}
}

func joinLines(lines []runblock.Line) string {
	b := runblock.Block{Lines: lines}
	return b.Text()
}

// sumCounts totals every occurrence of a counted marker in text
func sumCounts(re *regexp.Regexp, text string) int {
	if re == nil {
		return 0
	}
	total := 0
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if len(m) < 2 {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += n
		}
	}
	return total
}
