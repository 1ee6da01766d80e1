package domain

import (
	"context"

	"slotwatch/internal/core/runblock"
)

// SourcePort is how the service reads raw log lines. Implementations decide
// where logs live; a missing or unreadable file must surface as zero lines,
// not an error
type SourcePort interface {
	ReadLines(ctx context.Context, rel string) ([]runblock.Line, error)
	Link(rel string) string
}

// EvaluatorPort runs one full evaluation and returns the report
type EvaluatorPort interface {
	Evaluate(ctx context.Context, in Input) (Report, error)
}

// Ports bundles cross-module dependencies injected at build time
type Ports struct {
	Source SourcePort
}
