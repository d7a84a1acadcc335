package models

import (
	"fmt"
	"strings"
)

// Status is the practice state of a song.
type Status int

const (
	NotStarted Status = iota
	InProgress
	Mastered
)

// Statuses lists every [Status] in display order.
var Statuses = []Status{NotStarted, InProgress, Mastered}

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "Not Started"
	case InProgress:
		return "In Progress"
	case Mastered:
		return "Mastered"
	default:
		return ""
	}
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool { return s >= NotStarted && s <= Mastered }

// Next cycles to the following status, wrapping around.
func (s Status) Next() Status { return (s + 1) % Status(len(Statuses)) }

// ParseStatus accepts display names or compact forms ("in progress", "inprogress", "in_progress").
func ParseStatus(s string) (Status, error) {
	switch compact(s) {
	case "notstarted":
		return NotStarted, nil
	case "inprogress":
		return InProgress, nil
	case "mastered":
		return Mastered, nil
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

// Difficulty is the user's estimate of how hard a song is.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

// Difficulties lists every [Difficulty] in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard, Expert}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	case Expert:
		return "Expert"
	default:
		return ""
	}
}

// Valid reports whether d is one of the defined difficulties.
func (d Difficulty) Valid() bool { return d >= Easy && d <= Expert }

// Next cycles to the following difficulty, wrapping around.
func (d Difficulty) Next() Difficulty { return (d + 1) % Difficulty(len(Difficulties)) }

// ParseDifficulty accepts display names in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if compact(s) == compact(d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

func compact(s string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return r.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// MarshalText encodes the display name so exports and JSON output stay readable.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
