// Package markerpack loads and compiles the marker vocabulary, window
// tables, and region roster from the embedded markers.json. New log
// producers are onboarded by supplying a different pack file, never by a
// code change
package markerpack

import (
	_ "embed"
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"time"

	"slotwatch/internal/core/window"
	perr "slotwatch/internal/platform/errors"
)

//go:embed markers.json
var embedded []byte

// Slot names the four daily business checkpoints
type Slot string

// Slot values, in reporting order
const (
	SlotEarly   Slot = "early"
	SlotLatest1 Slot = "latest1"
	SlotLatest2 Slot = "latest2"
	SlotFinal   Slot = "final"
)

// Slots returns the checkpoints in fixed reporting order
func Slots() [4]Slot { return [4]Slot{SlotEarly, SlotLatest1, SlotLatest2, SlotFinal} }

// Phase identifies which physical log of a (region, kind) pair to read
type Phase string

// Phase values
const (
	PhaseEarly   Phase = "early"
	PhaseFinal   Phase = "final"
	PhaseSummary Phase = "summary"
)

// TotalsField selects which reported total a kind's success rule compares
// against the submitted total
type TotalsField string

// TotalsField values
const (
	TotalsValidated   TotalsField = "validated"
	TotalsContributed TotalsField = "contributed"
	// TotalsEither accepts whichever of the two fields the log reports,
	// preferring the contributed figure when both are present
	TotalsEither TotalsField = "either"
)

// raw JSON shapes

type rawWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type rawKind struct {
	ID         string               `json:"id"`
	Label      string               `json:"label"`
	Dir        string               `json:"dir"`
	Totals     string               `json:"totals"`
	FinalPhase string               `json:"final_phase"`
	Windows    map[string]rawWindow `json:"windows"`
}

type rawRegion struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Timezone string   `json:"timezone"`
	Kinds    []string `json:"kinds"`
}

type rawMarkers struct {
	Completion       string   `json:"completion"`
	SuccessEnd       string   `json:"success_end"`
	ErrorEnd         string   `json:"error_end"`
	ErrorHints       []string `json:"error_hints"`
	Skip             string   `json:"skip"`
	BadInput         string   `json:"bad_input"`
	GoodInput        string   `json:"good_input"`
	TotalSubmitted   string   `json:"total_submitted"`
	TotalValidated   string   `json:"total_validated"`
	TotalContributed string   `json:"total_contributed"`
	Complete         string   `json:"complete"`
	RequiredMissing  string   `json:"required_missing"`
	OptionalMissing  string   `json:"optional_missing"`
	ValidationErrors string   `json:"validation_errors"`
	InfoLines        []string `json:"info_lines"`
	SummaryAccepted  string   `json:"summary_accepted"`
	SummaryRejected  string   `json:"summary_rejected"`
}

type rawPack struct {
	Version      int               `json:"version"`
	HostTimezone string            `json:"host_timezone"`
	Markers      rawMarkers        `json:"markers"`
	Kinds        []rawKind         `json:"kinds"`
	Files        map[string]string `json:"files"`
	DirTemplate  string            `json:"dir_template"`
	Regions      []rawRegion       `json:"regions"`
}

// Markers is the compiled marker vocabulary
type Markers struct {
	Completion       *regexp.Regexp
	SuccessEnd       *regexp.Regexp
	ErrorEnd         *regexp.Regexp
	ErrorHints       []*regexp.Regexp
	Skip             *regexp.Regexp
	BadInput         *regexp.Regexp
	GoodInput        *regexp.Regexp
	TotalSubmitted   *regexp.Regexp
	TotalValidated   *regexp.Regexp
	TotalContributed *regexp.Regexp
	Complete         *regexp.Regexp
	RequiredMissing  *regexp.Regexp
	OptionalMissing  *regexp.Regexp
	ValidationErrors *regexp.Regexp
	InfoLines        []*regexp.Regexp
	SummaryAccepted  *regexp.Regexp
	SummaryRejected  *regexp.Regexp
}

// Kind is one compiled submission kind with its window table
type Kind struct {
	ID         string
	Label      string
	Dir        string
	Totals     TotalsField
	FinalPhase Phase
	Windows    map[Slot]window.Window
}

// Region is one business region in reporting order
type Region struct {
	ID       string
	Label    string
	Timezone string
	Kinds    []string
}

// Pack is the compiled configuration consumed by the status service
type Pack struct {
	Version      int
	HostTimezone string
	Markers      Markers
	Kinds        []Kind
	Regions      []Region
	Files        map[Phase]string
	DirTemplate  string

	byID map[string]Kind
}

// KindByID looks up a compiled kind
func (p *Pack) KindByID(id string) (Kind, bool) {
	k, ok := p.byID[id]
	return k, ok
}

// FileName expands the file template for phase with the region id
func (p *Pack) FileName(phase Phase, regionID string) (string, bool) {
	tpl, ok := p.Files[phase]
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(tpl, "{region}", regionID), true
}

// Dir expands the directory template for one (date, kind, region) identity
func (p *Pack) Dir(date string, k Kind, regionID string) string {
	out := strings.ReplaceAll(p.DirTemplate, "{date}", date)
	out = strings.ReplaceAll(out, "{kind}", k.Dir)
	return strings.ReplaceAll(out, "{region}", regionID)
}

// Load compiles the embedded markers.json
func Load() (*Pack, error) {
	return parse(embedded)
}

// LoadFile compiles an external pack file, for onboarding new producers
func LoadFile(path string) (*Pack, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "markerpack: read %s", path)
	}
	return parse(buf)
}

func parse(buf []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(buf, &rp); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "markerpack: parse pack")
	}
	if rp.Version != 1 {
		return nil, perr.Configf("markerpack: unsupported pack version %d (want 1)", rp.Version)
	}
	if _, err := time.LoadLocation(rp.HostTimezone); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "markerpack: unknown host timezone %q", rp.HostTimezone)
	}

	p := &Pack{
		Version:      rp.Version,
		HostTimezone: rp.HostTimezone,
		DirTemplate:  rp.DirTemplate,
		Files:        make(map[Phase]string, len(rp.Files)),
		byID:         make(map[string]Kind, len(rp.Kinds)),
	}

	var err error
	if p.Markers, err = compileMarkers(rp.Markers); err != nil {
		return nil, err
	}

	for name, tpl := range rp.Files {
		switch Phase(name) {
		case PhaseEarly, PhaseFinal, PhaseSummary:
			p.Files[Phase(name)] = tpl
		default:
			return nil, perr.Configf("markerpack: unknown file phase %q", name)
		}
	}

	for _, rk := range rp.Kinds {
		k, err := compileKind(rk)
		if err != nil {
			return nil, err
		}
		if _, dup := p.byID[k.ID]; dup {
			return nil, perr.Configf("markerpack: duplicate kind %q", k.ID)
		}
		if _, ok := p.Files[k.FinalPhase]; !ok {
			return nil, perr.Configf("markerpack: kind %q final phase %q has no file template", k.ID, k.FinalPhase)
		}
		p.Kinds = append(p.Kinds, k)
		p.byID[k.ID] = k
	}

	for _, rr := range rp.Regions {
		if strings.TrimSpace(rr.ID) == "" {
			return nil, perr.Configf("markerpack: region with empty id")
		}
		if _, err := time.LoadLocation(rr.Timezone); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "markerpack: region %q unknown timezone %q", rr.ID, rr.Timezone)
		}
		for _, kid := range rr.Kinds {
			if _, ok := p.byID[kid]; !ok {
				return nil, perr.Configf("markerpack: region %q references unknown kind %q", rr.ID, kid)
			}
		}
		p.Regions = append(p.Regions, Region{
			ID:       rr.ID,
			Label:    rr.Label,
			Timezone: rr.Timezone,
			Kinds:    append([]string(nil), rr.Kinds...),
		})
	}

	return p, nil
}

func compileMarkers(rm rawMarkers) (Markers, error) {
	var m Markers
	var err error
	set := func(dst **regexp.Regexp, name, pat string, required bool) {
		if err != nil {
			return
		}
		if pat == "" {
			if required {
				err = perr.Configf("markerpack: marker %q is required", name)
			}
			return
		}
		var re *regexp.Regexp
		if re, err = regexp.Compile(pat); err != nil {
			err = perr.Wrapf(err, perr.ErrorCodeConfig, "markerpack: compile marker %q", name)
			return
		}
		*dst = re
	}

	set(&m.Completion, "completion", rm.Completion, true)
	set(&m.SuccessEnd, "success_end", rm.SuccessEnd, true)
	set(&m.ErrorEnd, "error_end", rm.ErrorEnd, true)
	set(&m.Skip, "skip", rm.Skip, false)
	set(&m.BadInput, "bad_input", rm.BadInput, false)
	set(&m.GoodInput, "good_input", rm.GoodInput, true)
	set(&m.TotalSubmitted, "total_submitted", rm.TotalSubmitted, true)
	set(&m.TotalValidated, "total_validated", rm.TotalValidated, false)
	set(&m.TotalContributed, "total_contributed", rm.TotalContributed, false)
	set(&m.Complete, "complete", rm.Complete, true)
	set(&m.RequiredMissing, "required_missing", rm.RequiredMissing, false)
	set(&m.OptionalMissing, "optional_missing", rm.OptionalMissing, false)
	set(&m.ValidationErrors, "validation_errors", rm.ValidationErrors, false)
	set(&m.SummaryAccepted, "summary_accepted", rm.SummaryAccepted, false)
	set(&m.SummaryRejected, "summary_rejected", rm.SummaryRejected, false)
	if err != nil {
		return Markers{}, err
	}
	if m.TotalValidated == nil && m.TotalContributed == nil {
		return Markers{}, perr.Configf("markerpack: need at least one of total_validated/total_contributed")
	}

	for _, pat := range rm.ErrorHints {
		re, cerr := regexp.Compile(pat)
		if cerr != nil {
			return Markers{}, perr.Wrapf(cerr, perr.ErrorCodeConfig, "markerpack: compile error hint %q", pat)
		}
		m.ErrorHints = append(m.ErrorHints, re)
	}
	for _, pat := range rm.InfoLines {
		re, cerr := regexp.Compile(pat)
		if cerr != nil {
			return Markers{}, perr.Wrapf(cerr, perr.ErrorCodeConfig, "markerpack: compile info line %q", pat)
		}
		m.InfoLines = append(m.InfoLines, re)
	}
	return m, nil
}

func compileKind(rk rawKind) (Kind, error) {
	if strings.TrimSpace(rk.ID) == "" {
		return Kind{}, perr.Configf("markerpack: kind with empty id")
	}
	k := Kind{
		ID:      rk.ID,
		Label:   rk.Label,
		Dir:     rk.Dir,
		Windows: make(map[Slot]window.Window, 4),
	}
	switch TotalsField(rk.Totals) {
	case TotalsValidated, TotalsContributed, TotalsEither:
		k.Totals = TotalsField(rk.Totals)
	default:
		return Kind{}, perr.Configf("markerpack: kind %q bad totals %q", rk.ID, rk.Totals)
	}
	switch Phase(rk.FinalPhase) {
	case PhaseFinal, PhaseSummary:
		k.FinalPhase = Phase(rk.FinalPhase)
	default:
		return Kind{}, perr.Configf("markerpack: kind %q bad final phase %q", rk.ID, rk.FinalPhase)
	}
	for _, slot := range Slots() {
		rw, ok := rk.Windows[string(slot)]
		if !ok {
			return Kind{}, perr.Configf("markerpack: kind %q missing window %q", rk.ID, slot)
		}
		start, err := window.ParseTimeOfDay(rw.Start)
		if err != nil {
			return Kind{}, perr.Wrapf(err, perr.ErrorCodeConfig, "markerpack: kind %q window %q", rk.ID, slot)
		}
		end, err := window.ParseTimeOfDay(rw.End)
		if err != nil {
			return Kind{}, perr.Wrapf(err, perr.ErrorCodeConfig, "markerpack: kind %q window %q", rk.ID, slot)
		}
		w := window.Window{Start: start, End: end}
		if err := w.Validate(); err != nil {
			return Kind{}, perr.Wrapf(err, perr.ErrorCodeConfig, "markerpack: kind %q window %q", rk.ID, slot)
		}
		k.Windows[slot] = w
	}
	return k, nil
}
