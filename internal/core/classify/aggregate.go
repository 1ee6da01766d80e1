package classify

import "slotwatch/internal/core/markerpack"

// StatusRow folds the four per-slot results for one (region, kind) pair
// into a single record, with notes deduplicated in first-seen order
type StatusRow struct {
	Region string
	Kind   string

	Statuses map[markerpack.Slot]Status
	Rules    map[markerpack.Slot]string

	Info    []string
	Caution []string
}

// Aggregate combines four results, one per slot in fixed order (early,
// latest-1, latest-2, final). Pure fold; inputs are never mutated
func Aggregate(region, kind string, slots [4]Result) StatusRow {
	row := StatusRow{
		Region:   region,
		Kind:     kind,
		Statuses: make(map[markerpack.Slot]Status, 4),
		Rules:    make(map[markerpack.Slot]string, 4),
	}
	seenInfo := make(map[string]struct{})
	seenCaution := make(map[string]struct{})

	for i, slot := range markerpack.Slots() {
		r := slots[i]
		row.Statuses[slot] = r.Status
		row.Rules[slot] = r.Rule
		for _, s := range r.Info {
			if _, dup := seenInfo[s]; dup {
				continue
			}
			seenInfo[s] = struct{}{}
			row.Info = append(row.Info, s)
		}
		for _, s := range r.Caution {
			if _, dup := seenCaution[s]; dup {
				continue
			}
			seenCaution[s] = struct{}{}
			row.Caution = append(row.Caution, s)
		}
	}
	return row
}
