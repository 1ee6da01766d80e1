// Package service implements the status evaluation service
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"slotwatch/internal/core/classify"
	"slotwatch/internal/core/markerpack"
	"slotwatch/internal/core/runblock"
	"slotwatch/internal/core/window"
	perr "slotwatch/internal/platform/errors"
	"slotwatch/internal/platform/logger"
	"slotwatch/internal/services/status/domain"
)

// Config for the status service
type Config struct {
	Workers int
}

// Service implements domain.EvaluatorPort
type Service struct {
	Src  domain.SourcePort
	Pack *markerpack.Pack
	Cfg  Config
}

// New constructs a status service over a log source and a compiled pack
func New(src domain.SourcePort, pack *markerpack.Pack, cfg Config) *Service {
	w := cfg.Workers
	if w <= 0 {
		w = 4
	}
	return &Service{Src: src, Pack: pack, Cfg: Config{Workers: w}}
}

// unit is one (region, kind) evaluation target
type unit struct {
	region markerpack.Region
	kind   markerpack.Kind
}

// Evaluate classifies every requested (region, kind) pair for the given
// business day. Pairs run concurrently; row order always follows the pack's
// region and kind order regardless of completion order
func (s *Service) Evaluate(ctx context.Context, in domain.Input) (domain.Report, error) {
	units, err := s.targets(in.Regions)
	if err != nil {
		return domain.Report{}, err
	}

	runID := uuid.NewString()
	ctx = logger.WithRequest(ctx, "", runID)

	rows := make([]domain.Row, len(units))
	errs := make([]error, len(units))

	sem := make(chan struct{}, s.Cfg.Workers)
	wg := sync.WaitGroup{}

	for i := range units {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			rows[i], errs[i] = s.evaluateUnit(ctx, in.Date, units[i])
		}(i)
	}
	wg.Wait()

	for i, uerr := range errs {
		if uerr != nil {
			return domain.Report{}, perr.Wrapf(uerr, perr.CodeOf(uerr),
				"status: %s/%s", units[i].region.ID, units[i].kind.ID)
		}
	}

	return domain.Report{
		RunID:       runID,
		Date:        in.Date,
		GeneratedAt: time.Now().UTC(),
		Rows:        rows,
	}, nil
}

// targets expands the region filter into ordered (region, kind) pairs
func (s *Service) targets(regions []string) ([]unit, error) {
	want := map[string]bool{}
	for _, id := range regions {
		want[id] = true
	}
	var units []unit
	for _, reg := range s.Pack.Regions {
		if len(want) > 0 && !want[reg.ID] {
			continue
		}
		delete(want, reg.ID)
		for _, kid := range reg.Kinds {
			k, ok := s.Pack.KindByID(kid)
			if !ok {
				return nil, perr.Configf("status: region %q references unknown kind %q", reg.ID, kid)
			}
			units = append(units, unit{region: reg, kind: k})
		}
	}
	for id := range want {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "status: unknown region %q", id)
	}
	return units, nil
}

func (s *Service) evaluateUnit(ctx context.Context, date window.Date, u unit) (domain.Row, error) {
	dir := s.Pack.Dir(date.String(), u.kind, u.region.ID)

	links := make(map[markerpack.Phase]string, 3)
	cache := make(map[markerpack.Phase][]runblock.Line, 3)

	read := func(phase markerpack.Phase) ([]runblock.Line, error) {
		if lines, ok := cache[phase]; ok {
			return lines, nil
		}
		name, ok := s.Pack.FileName(phase, u.region.ID)
		if !ok {
			return nil, perr.Configf("status: no file template for phase %q", phase)
		}
		rel := dir + "/" + name
		lines, err := s.Src.ReadLines(ctx, rel)
		if err != nil {
			return nil, err
		}
		cache[phase] = lines
		links[phase] = s.Src.Link(rel)
		return lines, nil
	}

	var results [4]classify.Result
	for i, slot := range markerpack.Slots() {
		resolved, err := window.Resolve(date, u.region.Timezone, s.Pack.HostTimezone, u.kind.Windows[slot])
		if err != nil {
			return domain.Row{}, err
		}

		// the early, latest-1 and latest-2 checkpoints all inspect the early
		// run's log; only the final slot consults the final (or summary) phase
		phase := markerpack.PhaseEarly
		if slot == markerpack.SlotFinal {
			phase = markerpack.PhaseFinal
			if u.kind.FinalPhase == markerpack.PhaseSummary {
				phase = markerpack.PhaseSummary
			}
		}

		lines, err := read(phase)
		if err != nil {
			return domain.Row{}, err
		}

		if phase == markerpack.PhaseSummary {
			results[i] = classify.Summary(lines, resolved, s.Pack.Markers)
			continue
		}
		results[i] = s.classifyBlock(ctx, lines, resolved, u)
	}

	agg := classify.Aggregate(u.region.ID, u.kind.ID, results)
	return domain.Row{
		Region:      agg.Region,
		RegionLabel: u.region.Label,
		Kind:        agg.Kind,
		KindLabel:   u.kind.Label,
		Statuses:    agg.Statuses,
		Rules:       agg.Rules,
		Info:        agg.Info,
		Caution:     agg.Caution,
		Links:       links,
	}, nil
}

// classifyBlock picks the run block whose nominal time falls in the window
// and classifies it. No completed block in the window means WAITING
func (s *Service) classifyBlock(
	ctx context.Context,
	lines []runblock.Line,
	resolved window.Resolved,
	u unit,
) classify.Result {
	blocks := runblock.Segment(lines, s.Pack.Markers.Completion)
	b, ok := runblock.Pick(blocks, resolved)
	if !ok {
		return classify.Waiting()
	}
	res := classify.Block(b.Text(), u.kind, s.Pack.Markers)
	if res.Status == classify.StatusNOK {
		logger.C(ctx).Debug().
			Str("region", u.region.ID).
			Str("kind", u.kind.ID).
			Str("rule", res.Rule).
			Msg("run classified NOK")
	}
	return res
}
