// Package domain defines the core types and interfaces for the status service
package domain

import (
	"time"

	"slotwatch/internal/core/classify"
	"slotwatch/internal/core/markerpack"
	"slotwatch/internal/core/window"
)

// Input controls one evaluation run
type Input struct {
	Date window.Date
	// Regions restricts the run to the named region ids; empty means every
	// region in the pack, in pack order
	Regions []string
}

// Row is the evaluated state of one (region, kind) pair for the business day
type Row struct {
	Region      string
	RegionLabel string
	Kind        string
	KindLabel   string

	Statuses map[markerpack.Slot]classify.Status
	Rules    map[markerpack.Slot]string

	Info    []string
	Caution []string

	// Links maps each consulted log phase to a display path
	Links map[markerpack.Phase]string
}

// Report is the result of one evaluation run over all requested pairs
type Report struct {
	RunID       string
	Date        window.Date
	GeneratedAt time.Time
	Rows        []Row
}
