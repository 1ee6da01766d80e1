// Package http exposes evaluation runs over JSON and a human board page
package http

import (
	"net/http"
	"strings"
	"time"

	perr "slotwatch/internal/platform/errors"
	phttp "slotwatch/internal/platform/net/http"

	"slotwatch/internal/core/window"
	"slotwatch/internal/services/api/report/domain"
	statusdom "slotwatch/internal/services/status/domain"
	"slotwatch/internal/services/status/render"
)

// Deps are the handler dependencies
type Deps struct {
	Evaluator statusdom.EvaluatorPort
	// HostTimezone decides what "today" means when the board omits a date
	HostTimezone string
}

type handlers struct {
	deps Deps
}

// Register mounts the report routes
func Register(r phttp.Router, d Deps) {
	h := &handlers{deps: d}

	phttp.PostJSON(r, "/run", h.run)
	r.Get("/board", h.board)
}

func (h *handlers) evaluate(r *http.Request, date window.Date, regions []string) (statusdom.Report, error) {
	return h.deps.Evaluator.Evaluate(r.Context(), statusdom.Input{Date: date, Regions: regions})
}

// run executes one evaluation and returns the report as JSON
func (h *handlers) run(r *http.Request, req domain.ReportRequest) (any, error) {
	date, err := window.ParseDate(req.Date)
	if err != nil {
		return nil, perr.WrapIf(err, perr.ErrorCodeInvalidArgument, "bad date")
	}
	rep, err := h.evaluate(r, date, req.Regions)
	if err != nil {
		return nil, err
	}
	return domain.FromReport(rep), nil
}

// board renders the HTML status page. ?date= defaults to today in the host
// timezone; ?regions= is a comma separated filter
func (h *handlers) board(w http.ResponseWriter, r *http.Request) {
	date, err := h.boardDate(r.URL.Query().Get("date"))
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	var regions []string
	if raw := strings.TrimSpace(r.URL.Query().Get("regions")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if id := strings.TrimSpace(part); id != "" {
				regions = append(regions, id)
			}
		}
	}

	rep, err := h.evaluate(r, date, regions)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	page, err := render.HTML(rep)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (h *handlers) boardDate(raw string) (window.Date, error) {
	if raw == "" {
		loc, err := time.LoadLocation(h.deps.HostTimezone)
		if err != nil {
			return window.Date{}, perr.Wrapf(err, perr.ErrorCodeConfig, "bad host timezone %q", h.deps.HostTimezone)
		}
		return window.DateOf(time.Now().In(loc)), nil
	}
	date, err := window.ParseDate(raw)
	if err != nil {
		return window.Date{}, perr.WrapIf(err, perr.ErrorCodeInvalidArgument, "bad date")
	}
	return date, nil
}
