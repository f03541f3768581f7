// Package gradescale defines the static grade-scale tables.
// Scales are defined once as package data and never mutated; exactly one
// scale is active at a time, selected by configuration.
package gradescale

// Grade maps a letter grade to its grade-point value. The mark range is
// on the raw percentage axis and is used only for display, never for the
// weighted-average calculation.
type Grade struct {
	Letter  string
	MarkMin float64
	MarkMax float64
	Points  float64
}

// Band is one classification band on the GPA axis. Ranges are closed on
// both ends; bands within a scale are non-overlapping and ordered from
// highest to lowest.
type Band struct {
	Code           string
	Min            float64
	Max            float64
	Classification string
}

// Scale is one immutable grading scale.
type Scale struct {
	ID     string
	Max    float64
	Grades []Grade
	Bands  []Band
}

// Scale identifiers.
const (
	FiveID = "5"
	FourID = "4"
)

// Five is the 5-point scale used by most Saudi universities.
var Five = Scale{
	ID:  FiveID,
	Max: 5.0,
	Grades: []Grade{
		{Letter: "A", MarkMin: 90, MarkMax: 100, Points: 5.00},
		{Letter: "B+", MarkMin: 85, MarkMax: 89, Points: 4.50},
		{Letter: "B", MarkMin: 80, MarkMax: 84, Points: 4.00},
		{Letter: "C+", MarkMin: 75, MarkMax: 79, Points: 3.50},
		{Letter: "C", MarkMin: 70, MarkMax: 74, Points: 3.00},
		{Letter: "D+", MarkMin: 65, MarkMax: 69, Points: 2.50},
		{Letter: "D", MarkMin: 60, MarkMax: 64, Points: 2.00},
		{Letter: "F", MarkMin: 0, MarkMax: 59, Points: 1.00},
	},
	Bands: []Band{
		{Code: "A+", Min: 4.75, Max: 5.00, Classification: "ممتاز مرتفع"},
		{Code: "A", Min: 4.50, Max: 4.74, Classification: "ممتاز"},
		{Code: "B+", Min: 4.00, Max: 4.49, Classification: "جيد جداً مرتفع"},
		{Code: "B", Min: 3.50, Max: 3.99, Classification: "جيد جداً"},
		{Code: "C+", Min: 3.00, Max: 3.49, Classification: "جيد مرتفع"},
		{Code: "C", Min: 2.50, Max: 2.99, Classification: "جيد"},
		{Code: "D+", Min: 2.00, Max: 2.49, Classification: "مقبول مرتفع"},
		{Code: "D", Min: 1.00, Max: 1.99, Classification: "مقبول"},
		{Code: "F", Min: 0.00, Max: 0.99, Classification: "راسب"},
	},
}

// Four is the 4-point scale.
var Four = Scale{
	ID:  FourID,
	Max: 4.0,
	Grades: []Grade{
		{Letter: "A", MarkMin: 90, MarkMax: 100, Points: 4.00},
		{Letter: "B+", MarkMin: 85, MarkMax: 89, Points: 3.50},
		{Letter: "B", MarkMin: 80, MarkMax: 84, Points: 3.00},
		{Letter: "C+", MarkMin: 75, MarkMax: 79, Points: 2.50},
		{Letter: "C", MarkMin: 70, MarkMax: 74, Points: 2.00},
		{Letter: "D+", MarkMin: 65, MarkMax: 69, Points: 1.50},
		{Letter: "D", MarkMin: 60, MarkMax: 64, Points: 1.00},
		{Letter: "F", MarkMin: 0, MarkMax: 59, Points: 0.00},
	},
	Bands: []Band{
		{Code: "A+", Min: 3.80, Max: 4.00, Classification: "ممتاز مرتفع"},
		{Code: "A", Min: 3.50, Max: 3.79, Classification: "ممتاز"},
		{Code: "B+", Min: 3.00, Max: 3.49, Classification: "جيد جداً مرتفع"},
		{Code: "B", Min: 2.50, Max: 2.99, Classification: "جيد جداً"},
		{Code: "C+", Min: 2.00, Max: 2.49, Classification: "جيد مرتفع"},
		{Code: "C", Min: 1.50, Max: 1.99, Classification: "جيد"},
		{Code: "D+", Min: 1.00, Max: 1.49, Classification: "مقبول مرتفع"},
		{Code: "D", Min: 0.50, Max: 0.99, Classification: "مقبول"},
		{Code: "F", Min: 0.00, Max: 0.49, Classification: "راسب"},
	},
}

// ByID returns the scale with the given identifier.
func ByID(id string) (Scale, bool) {
	switch id {
	case FiveID:
		return Five, true
	case FourID:
		return Four, true
	}
	return Scale{}, false
}

// Default is the scale used when configuration names none.
func Default() Scale {
	return Five
}

// Points looks up the grade-point value for a letter grade.
func (s Scale) Points(letter string) (float64, bool) {
	for _, g := range s.Grades {
		if g.Letter == letter {
			return g.Points, true
		}
	}
	return 0, false
}

// Classify maps an average onto a classification band. It is total:
// values above the top band clamp to the top band, values below the
// bottom band clamp to the bottom band, and a value exactly equal to a
// band's Max belongs to that band, not the next one up.
func (s Scale) Classify(avg float64) Band {
	for _, b := range s.Bands {
		if avg >= b.Min {
			return b
		}
	}
	return s.Bands[len(s.Bands)-1]
}

// GradeForMark returns the letter grade covering a raw percentage mark.
// Display helper only.
func (s Scale) GradeForMark(mark float64) (Grade, bool) {
	for _, g := range s.Grades {
		if mark >= g.MarkMin && mark <= g.MarkMax {
			return g, true
		}
	}
	return Grade{}, false
}
