package collector

import (
	"fmt"
	"time"
	_ "time/tzdata" // exchange zones must resolve on hosts without zoneinfo

	"StockScope/internal/model"
)

// Clock is a wall-clock time of day on the exchange.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses an "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// Session is the exchange trading window used to bound single-day requests.
type Session struct {
	Location *time.Location
	Open     Clock
	Close    Clock
	PreClose Clock
}

// DefaultSession is the NSE cash-market session.
func DefaultSession() Session {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+30*60)
	}
	return Session{
		Location: loc,
		Open:     Clock{9, 15},
		Close:    Clock{15, 30},
		PreClose: Clock{15, 15},
	}
}

// NewSession builds a Session from config strings.
func NewSession(tz, open, closeAt, preClose string) (Session, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Session{}, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	s := Session{Location: loc}
	if s.Open, err = ParseClock(open); err != nil {
		return Session{}, err
	}
	if s.Close, err = ParseClock(closeAt); err != nil {
		return Session{}, err
	}
	if s.PreClose, err = ParseClock(preClose); err != nil {
		return Session{}, err
	}
	return s, nil
}

// At places a calendar date at the given clock time in the session location.
func (s Session) At(date time.Time, c Clock) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, s.loc())
}

// Midnight returns the start of the calendar date in the session location.
func (s Session) Midnight(date time.Time) time.Time {
	return s.At(date, Clock{})
}

// Today returns the current calendar date as seen on the exchange.
func (s Session) Today(now time.Time) time.Time {
	return model.DateOf(now.In(s.loc()))
}

func (s Session) loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
