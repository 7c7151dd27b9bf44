package models

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

const (
	MinStress     = 1
	MaxStress     = 10
	DefaultStress = MinStress
)

type BowelMovement string

const (
	BowelBloated  BowelMovement = "Bloated"
	BowelNormal   BowelMovement = "Normal"
	BowelDiarrhea BowelMovement = "Diarrhea"
)

// BowelMovements lists every accepted value in display order.
var BowelMovements = []BowelMovement{BowelBloated, BowelNormal, BowelDiarrhea}

func (b BowelMovement) Valid() bool {
	switch b {
	case BowelBloated, BowelNormal, BowelDiarrhea:
		return true
	default:
		return false
	}
}

// ParseBowelMovement matches case-insensitively and returns the canonical value.
func ParseBowelMovement(value string) (BowelMovement, bool) {
	value = strings.TrimSpace(value)
	for _, b := range BowelMovements {
		if strings.EqualFold(string(b), value) {
			return b, true
		}
	}
	return "", false
}

type LogEntry struct {
	ID             string        `json:"id,omitempty" db:"id"`
	Date           string        `json:"date" db:"log_date"`
	FoodInput      []string      `json:"foodInput" db:"food_input"`
	Alcohol        bool          `json:"alcohol" db:"alcohol"`
	BowelMovements BowelMovement `json:"bowelMovements" db:"bowel_movements"`
	Stress         int           `json:"stress" db:"stress"`
	Pain           bool          `json:"pain" db:"pain"`
	Nausea         bool          `json:"nausea" db:"nausea"`
}

// NewLogEntry returns an entry holding the form defaults.
func NewLogEntry() LogEntry {
	return LogEntry{
		FoodInput: []string{},
		Stress:    DefaultStress,
	}
}

// Validate checks the fields that block submission. Every other field has a
// safe default.
func (e LogEntry) Validate() error {
	verr := &ValidationError{}

	switch date := strings.TrimSpace(e.Date); {
	case date == "":
		verr.Add("date", "Date is required")
	default:
		if _, err := time.Parse(DateLayout, date); err != nil {
			verr.Add("date", "Date must be formatted as YYYY-MM-DD")
		}
	}

	switch {
	case e.BowelMovements == "":
		verr.Add("bowelMovements", "Bowel movement is required")
	case !e.BowelMovements.Valid():
		verr.Add("bowelMovements", "Bowel movement must be one of Bloated, Normal, Diarrhea")
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

// Normalize trims the date, clamps stress into range and guarantees a non-nil
// food list so the record serializes as an array.
func (e LogEntry) Normalize() LogEntry {
	e.Date = strings.TrimSpace(e.Date)
	e.Stress = ClampStress(e.Stress)
	if e.FoodInput == nil {
		e.FoodInput = []string{}
	}
	return e
}

func ClampStress(stress int) int {
	if stress < MinStress {
		return MinStress
	}
	if stress > MaxStress {
		return MaxStress
	}
	return stress
}
