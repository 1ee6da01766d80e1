// Package domain holds wire DTOs for the report API
package domain

import (
	"time"

	statusdom "slotwatch/internal/services/status/domain"
)

// ReportRequest asks for one evaluation run
type ReportRequest struct {
	Date    string   `json:"date" validate:"required,datetime=2006-01-02"`
	Regions []string `json:"regions" validate:"omitempty,dive,required"`
}

// RowDTO is one (region, kind) row on the wire
type RowDTO struct {
	Region      string            `json:"region"`
	RegionLabel string            `json:"region_label,omitempty"`
	Kind        string            `json:"kind"`
	KindLabel   string            `json:"kind_label,omitempty"`
	Statuses    map[string]string `json:"statuses"`
	Rules       map[string]string `json:"rules,omitempty"`
	Info        []string          `json:"info,omitempty"`
	Caution     []string          `json:"caution,omitempty"`
	Links       map[string]string `json:"links,omitempty"`
}

// ReportResponse is a completed evaluation run on the wire
type ReportResponse struct {
	RunID       string    `json:"run_id"`
	Date        string    `json:"date"`
	GeneratedAt time.Time `json:"generated_at"`
	Rows        []RowDTO  `json:"rows"`
}

// FromReport flattens the service report into wire shapes
func FromReport(rep statusdom.Report) ReportResponse {
	out := ReportResponse{
		RunID:       rep.RunID,
		Date:        rep.Date.String(),
		GeneratedAt: rep.GeneratedAt,
		Rows:        make([]RowDTO, 0, len(rep.Rows)),
	}
	for _, row := range rep.Rows {
		dto := RowDTO{
			Region:      row.Region,
			RegionLabel: row.RegionLabel,
			Kind:        row.Kind,
			KindLabel:   row.KindLabel,
			Statuses:    make(map[string]string, len(row.Statuses)),
			Info:        row.Info,
			Caution:     row.Caution,
		}
		for slot, st := range row.Statuses {
			dto.Statuses[string(slot)] = string(st)
		}
		if len(row.Rules) > 0 {
			dto.Rules = make(map[string]string, len(row.Rules))
			for slot, rule := range row.Rules {
				dto.Rules[string(slot)] = rule
			}
		}
		if len(row.Links) > 0 {
			dto.Links = make(map[string]string, len(row.Links))
			for phase, href := range row.Links {
				dto.Links[string(phase)] = href
			}
		}
		out.Rows = append(out.Rows, dto)
	}
	return out
}
