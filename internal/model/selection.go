package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownPreset is returned by ParsePreset for unrecognised spellings.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named time window relative to the selected end date.
type Preset string

const (
	PresetNone Preset = ""
	Preset1D   Preset = "1D"
	Preset5D   Preset = "5D"
	Preset1M   Preset = "1M"
	Preset6M   Preset = "6M"
	Preset1Y   Preset = "1Y"
	Preset5Y   Preset = "5Y"
	PresetMax  Preset = "MAX"
)

// Presets lists the selectable presets in display order.
var Presets = []Preset{PresetNone, Preset1D, Preset5D, Preset1M, Preset6M, Preset1Y, Preset5Y, PresetMax}

// ParsePreset accepts any preset spelling case-insensitively; "" and "none" mean no preset.
func ParsePreset(s string) (Preset, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" || v == "NONE" {
		return PresetNone, nil
	}
	for _, p := range Presets {
		if string(p) == v {
			return p, nil
		}
	}
	return PresetNone, fmt.Errorf("%w: %q", ErrUnknownPreset, s)
}

func (p Preset) String() string {
	if p == PresetNone {
		return "None"
	}
	return string(p)
}

// Granularity is the resolution of the rows a user asked for.
type Granularity string

const (
	GranularityMinute Granularity = "minute"
	GranularityDaily  Granularity = "daily"
)

// Selection is what the user picked in a single interaction.
type Selection struct {
	Symbol   string
	Start    time.Time
	End      time.Time
	Preset   Preset
	Intraday bool
}

// ResolvedRange is the concrete window derived from a Selection.
type ResolvedRange struct {
	Start       time.Time
	End         time.Time
	Granularity Granularity
}

// SingleDay reports whether the range covers exactly one calendar date.
func (r ResolvedRange) SingleDay() bool {
	return r.Start.Equal(r.End)
}

// Date returns midnight UTC of the given calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the clock and zone of t, keeping the calendar date as seen in t's location.
func DateOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// DateLayout is the textual form of calendar dates.
const DateLayout = "2006-01-02"

// NoticeLevel classifies a user-facing message.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a message surfaced to the user alongside a result.
type Notice struct {
	Level NoticeLevel
	Text  string
}
