// Package clock answers "what is today" for the business. Every date
// comparison in the edit policy goes through a Clock so that tests can pin
// the day and production can pin the zone.
package clock

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
	// Today is the business-local date as YYYY-MM-DD.
	Today() string
}

type Zoned struct {
	loc *time.Location
	now func() time.Time
}

func NewZoned(zone string) (*Zoned, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("clock: load zone %q: %w", zone, err)
	}
	return &Zoned{loc: loc, now: time.Now}, nil
}

func (z *Zoned) Now() time.Time {
	return z.now().In(z.loc)
}

func (z *Zoned) Today() string {
	return z.Now().Format(DateLayout)
}

func (z *Zoned) Location() *time.Location {
	return z.loc
}

// Fixed always reports the same instant.
type Fixed struct {
	At  time.Time
	Loc *time.Location
}

func (f Fixed) Now() time.Time {
	if f.Loc == nil {
		return f.At
	}
	return f.At.In(f.Loc)
}

func (f Fixed) Today() string {
	return f.Now().Format(DateLayout)
}
