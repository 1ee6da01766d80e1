// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"slotwatch/internal/core/markerpack"
	"slotwatch/internal/core/version"
	phttp "slotwatch/internal/platform/net/http"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Pack        *markerpack.Pack
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r phttp.Router, d Deps) {
	h := &handlers{deps: d}

	phttp.GetJSON(r, "/health", h.health)
	phttp.GetJSON(r, "/ready", h.ready)
	phttp.GetJSON(r, "/version", h.version)
	phttp.GetJSON(r, "/service", h.service)
	phttp.GetJSON(r, "/pack", h.pack)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok fail skipped
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

// PackResponse reports the loaded marker pack shape
type PackResponse struct {
	Version      int    `json:"version"`
	HostTimezone string `json:"host_timezone"`
	Kinds        int    `json:"kinds"`
	Regions      int    `json:"regions"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) ready(_ *http.Request) (any, error) {
	pack := ReadyCheck{Name: "pack", Status: "ok"}
	if h.deps.Pack == nil {
		pack = ReadyCheck{Name: "pack", Status: "fail", Error: "marker pack not loaded"}
	}

	overall := "ok"
	if pack.Status != "ok" {
		overall = "fail"
	}
	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{pack},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

func (h *handlers) pack(_ *http.Request) (any, error) {
	if h.deps.Pack == nil {
		return PackResponse{}, nil
	}
	return PackResponse{
		Version:      h.deps.Pack.Version,
		HostTimezone: h.deps.Pack.HostTimezone,
		Kinds:        len(h.deps.Pack.Kinds),
		Regions:      len(h.deps.Pack.Regions),
	}, nil
}
