package slot

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidDate      = errors.New("invalid date format")
	ErrInvalidTimeOfDay = errors.New("invalid time of day format")
	ErrInvalidWindow    = errors.New("start time must be before end time")
)

const DateLayout = "2006-01-02"

// Date is a time-zone-naive civil date. Appointments are local to the
// business, so no instant semantics are attached.
type Date struct {
	value time.Time
}

func NewDate(t time.Time) Date {
	return Date{value: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{value: t}, nil
}

func (d Date) Time() time.Time {
	return d.value
}

func (d Date) String() string {
	return d.value.Format(DateLayout)
}

func (d Date) Before(other Date) bool {
	return d.value.Before(other.value)
}

func (d Date) After(other Date) bool {
	return d.value.After(other.value)
}

func (d Date) Equal(other Date) bool {
	return d.value.Equal(other.value)
}

func (d Date) IsZero() bool {
	return d.value.IsZero()
}

// TimeOfDay is a wall-clock HH:MM value stored as minutes since midnight.
type TimeOfDay struct {
	minutes int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}, nil
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

func (t TimeOfDay) Minutes() int {
	return t.minutes
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// Window is a slot's [start, end) time-of-day pair.
type Window struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewWindow(start, end TimeOfDay) (Window, error) {
	if !start.Before(end) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

func ParseWindow(start, end string) (Window, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Window{}, err
	}
	return NewWindow(s, e)
}

func (w Window) Start() TimeOfDay {
	return w.start
}

func (w Window) End() TimeOfDay {
	return w.end
}

func (w Window) Duration() time.Duration {
	return time.Duration(w.end.minutes-w.start.minutes) * time.Minute
}

// ServiceTypes is the set of service tags a slot accepts. The empty set
// accepts any service type.
type ServiceTypes struct {
	values []string
}

func NewServiceTypes(tags []string) ServiceTypes {
	seen := make(map[string]struct{}, len(tags))
	values := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		values = append(values, tag)
	}
	sort.Strings(values)
	return ServiceTypes{values: values}
}

func (s ServiceTypes) Accepts(serviceType string) bool {
	if len(s.values) == 0 {
		return true
	}
	serviceType = strings.ToLower(strings.TrimSpace(serviceType))
	for _, v := range s.values {
		if v == serviceType {
			return true
		}
	}
	return false
}

func (s ServiceTypes) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

func (s ServiceTypes) IsEmpty() bool {
	return len(s.values) == 0
}

// Note is administrative free text with no behavioral effect.
type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: strings.TrimSpace(value)}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
