// Package daterange turns a user's date inputs and preset into a concrete window.
package daterange

import (
	"time"

	"StockScope/internal/model"
)

// EpochFloor predates any real listing and stands in for "all history".
var EpochFloor = model.Date(1700, time.January, 1)

type ruleKind int

const (
	fromEnd ruleKind = iota // Start = End - days
	startOnly               // Start = End = explicit start
	floor                   // Start = EpochFloor
)

type rule struct {
	kind ruleKind
	days int
}

var presetRules = map[model.Preset]rule{
	model.Preset1D:  {kind: startOnly},
	model.Preset5D:  {kind: fromEnd, days: 4},
	model.Preset1M:  {kind: fromEnd, days: 30},
	model.Preset6M:  {kind: fromEnd, days: 180},
	model.Preset1Y:  {kind: fromEnd, days: 365},
	model.Preset5Y:  {kind: fromEnd, days: 5 * 365},
	model.PresetMax: {kind: floor},
}

// Resolve maps the raw selection inputs to an effective range. It never fails;
// an end before the start is passed through unchanged.
func Resolve(start, end time.Time, preset model.Preset, intraday bool) model.ResolvedRange {
	start, end = model.DateOf(start), model.DateOf(end)

	r := model.ResolvedRange{Granularity: model.GranularityDaily}
	if intraday {
		r.Granularity = model.GranularityMinute
	}

	rl, ok := presetRules[preset]
	if !ok {
		// No preset: the provider treats End as exclusive, so widen multi-day picks by one day.
		r.Start, r.End = start, end
		if !end.Equal(start) {
			r.End = end.AddDate(0, 0, 1)
		}
		return r
	}

	switch rl.kind {
	case startOnly:
		r.Start, r.End = start, start
	case floor:
		r.Start, r.End = EpochFloor, end
	default:
		r.Start, r.End = end.AddDate(0, 0, -rl.days), end
	}
	return r
}
