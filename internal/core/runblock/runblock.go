// Package runblock segments an append-only log into completed run blocks
// and picks the block relevant to a resolved time window
package runblock

import (
	"regexp"
	"strings"
	"time"

	"slotwatch/internal/core/stamp"
	"slotwatch/internal/core/window"
)

// Line is one raw log line with its 1-based position in the source
type Line struct {
	Pos  int
	Text string
}

// Block is a contiguous, non-empty run of lines closed by a completion
// marker. Nominal is the instant of the terminating line, falling back to
// the latest stamped line inside the block; a block with no stamped line
// has HasNominal false and can never be picked
type Block struct {
	Lines      []Line
	Nominal    time.Time
	HasNominal bool
	Terminated bool
}

// Text joins the block's lines for classification
func (b Block) Text() string {
	parts := make([]string, len(b.Lines))
	for i, ln := range b.Lines {
		parts[i] = ln.Text
	}
	return strings.Join(parts, "\n")
}

// FromText splits raw log content into positioned lines
func FromText(txt string) []Line {
	if txt == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(txt, "\r\n", "\n"), "\n")
	out := make([]Line, len(raw))
	for i, s := range raw {
		out[i] = Line{Pos: i + 1, Text: s}
	}
	return out
}

// Segment partitions lines into closed blocks in a single pass. A line
// matching the completion marker closes the pending block (marker line
// included); a trailing pending block with no marker is an in-progress run
// with no verifiable outcome and is discarded. Blank and unstamped lines
// never break segmentation continuity
func Segment(lines []Line, completion *regexp.Regexp) []Block {
	var blocks []Block
	var cur []Line
	for _, ln := range lines {
		cur = append(cur, ln)
		if completion.MatchString(ln.Text) {
			blocks = append(blocks, seal(cur))
			cur = nil
		}
	}
	return blocks
}

// seal finalizes a pending block, deriving its nominal instant
func seal(lines []Line) Block {
	b := Block{Lines: lines, Terminated: true}
	// terminator first, then latest stamped line scanned backward
	for i := len(lines) - 1; i >= 0; i-- {
		if t, ok := stamp.Extract(lines[i].Text); ok {
			b.Nominal = t
			b.HasNominal = true
			break
		}
	}
	return b
}

// Pick selects the block whose nominal instant falls within r, both ends
// inclusive. Among qualifying blocks the latest instant wins; a tie goes to
// the later block in file order. No qualifying block reports ok=false,
// which callers map to WAITING, never to an error
func Pick(blocks []Block, r window.Resolved) (Block, bool) {
	best := -1
	for i, b := range blocks {
		if !b.HasNominal || !r.Contains(b.Nominal) {
			continue
		}
		if best < 0 || !b.Nominal.Before(blocks[best].Nominal) {
			best = i
		}
	}
	if best < 0 {
		return Block{}, false
	}
	return blocks[best], true
}
