// Package gpa provides pure functions for grade-point arithmetic.
// All functions are deterministic with no side effects, never panic and
// never return errors: every "no data" case is signalled through an ok
// bool or a documented zero value so callers always have a displayable
// result.
package gpa

import (
	"fmt"
	"math"

	"github.com/muadel/muadel/domain/gradescale"
)

// CourseRecord is one taken course. Name is free text and never used in
// calculation. A record with CreditHours <= 0 or an empty Grade is
// incomplete and excluded from any average.
type CourseRecord struct {
	Name        string `json:"name,omitempty"`
	CreditHours int    `json:"creditHours"`
	Grade       string `json:"grade"`
}

// Complete reports whether the record counts toward an average.
func (c CourseRecord) Complete() bool {
	return c.CreditHours > 0 && c.Grade != ""
}

// SemesterRecord is a finalized aggregate for one term. GPA must equal
// the weighted average of Courses under ScaleID at finalization time;
// explicit edits replace the derived fields wholesale without
// recomputation (callers are trusted to keep them consistent).
type SemesterRecord struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	GPA         float64        `json:"gpa"`
	CreditHours int            `json:"creditHours"`
	ScaleID     string         `json:"gradeScale"`
	Courses     []CourseRecord `json:"courses,omitempty"`
}

// Summary is the derived cumulative figure across semesters of one
// scale. The zero Summary renders as "0.00" with zero hours; that is a
// deliberate display convention, unlike Average's ok=false.
type Summary struct {
	Average     float64 `json:"cumulativeAverage"`
	CreditHours int     `json:"totalCreditHours"`
}

// Average computes the credit-weighted grade-point average of the
// complete records in courses. ok is false when no record counts
// (callers render that as "no result", never as zero). Grades absent
// from scale are skipped as if unset. No rounding is applied; rounding
// is a display concern (see FormatAverage).
func Average(courses []CourseRecord, scale gradescale.Scale) (avg float64, ok bool) {
	var points float64
	var hours int
	for _, c := range courses {
		if !c.Complete() {
			continue
		}
		p, known := scale.Points(c.Grade)
		if !known {
			continue
		}
		points += p * float64(c.CreditHours)
		hours += c.CreditHours
	}
	if hours == 0 {
		return 0, false
	}
	return points / float64(hours), true
}

// Cumulative blends a previously recorded average with a new one using
// the standard credit-weighted rule. With no prior history (zero or
// negative prior hours, or a prior average that is not a real number)
// the result is simply newAvg. Aggregate uses the same arithmetic, so
// building history incrementally equals recomputing from scratch.
func Cumulative(prevAvg float64, prevHours int, newAvg float64, newHours int) float64 {
	if prevHours <= 0 || math.IsNaN(prevAvg) || math.IsInf(prevAvg, 0) {
		return newAvg
	}
	if newHours <= 0 {
		return prevAvg
	}
	total := float64(prevHours + newHours)
	return (prevAvg*float64(prevHours) + newAvg*float64(newHours)) / total
}

// Aggregate computes the cumulative figure across the semesters matching
// scaleID. Semesters tagged with another scale are ignored entirely;
// cross-scale averages are never mixed. An empty match returns the zero
// Summary.
func Aggregate(semesters []SemesterRecord, scaleID string) Summary {
	var points float64
	var hours int
	for _, s := range semesters {
		if s.ScaleID != scaleID || s.CreditHours <= 0 {
			continue
		}
		points += s.GPA * float64(s.CreditHours)
		hours += s.CreditHours
	}
	if hours == 0 {
		return Summary{}
	}
	return Summary{Average: points / float64(hours), CreditHours: hours}
}

// FormatAverage renders an average with the two-decimal display
// convention used throughout the app, e.g. "4.33".
func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.2f", avg)
}

// Sanitize normalizes caller input ahead of Average. Invalid fields are
// clamped or cleared so the record becomes incomplete instead of
// poisoning the calculation; nothing here raises.
func Sanitize(c CourseRecord) CourseRecord {
	if c.CreditHours < 0 {
		c.CreditHours = 0
	}
	return c
}
