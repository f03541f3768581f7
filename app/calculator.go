package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/muadel/muadel/domain/gpa"
	"github.com/muadel/muadel/domain/gradescale"
	"github.com/muadel/muadel/ports"
)

// Storage keys owned by the calculator.
const (
	semestersKey = "semesters"
	scaleKey     = "settings:scale"
	templateKey  = "template:courses"
)

var (
	// ErrNoCourses is returned when a semester has nothing to finalize.
	ErrNoCourses = errors.New("no complete courses to finalize")

	// ErrSemesterNotFound is returned for edits of unknown records.
	ErrSemesterNotFound = errors.New("semester not found")
)

// SemesterResult pairs an average with its classification for display.
type SemesterResult struct {
	Average        float64
	Classification gradescale.Band
}

// CalculatorService owns the GPA workflows: per-semester averages,
// the persisted semester history, the cumulative figure, and the saved
// course-list template.
type CalculatorService struct {
	store  ports.KVStore
	idgen  ports.IDGenerator
	logger zerolog.Logger

	mu    sync.RWMutex
	scale gradescale.Scale
}

// NewCalculatorService creates the calculator with the given active
// scale.
func NewCalculatorService(store ports.KVStore, idgen ports.IDGenerator, scale gradescale.Scale, logger zerolog.Logger) *CalculatorService {
	return &CalculatorService{store: store, idgen: idgen, scale: scale, logger: logger}
}

// Scale returns the active grade scale.
func (s *CalculatorService) Scale() gradescale.Scale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale
}

// SetScale switches the active scale and persists the choice. Existing
// semester records keep the scale they were computed under.
func (s *CalculatorService) SetScale(ctx context.Context, id string) error {
	scale, ok := gradescale.ByID(id)
	if !ok {
		return fmt.Errorf("unknown scale %q", id)
	}
	s.mu.Lock()
	s.scale = scale
	s.mu.Unlock()

	if err := s.store.Set(ctx, scaleKey, fmt.Sprintf("%q", id)); err != nil {
		// The in-memory switch already happened; persistence is a
		// convenience for the next launch.
		s.logger.Warn().Err(err).Msg("failed to persist scale selection")
	}
	return nil
}

// LoadScale restores the persisted scale selection, if any.
func (s *CalculatorService) LoadScale(ctx context.Context) {
	raw, ok, err := s.store.Get(ctx, scaleKey)
	if err != nil || !ok {
		return
	}
	var id string
	if json.Unmarshal([]byte(raw), &id) != nil {
		return
	}
	if scale, known := gradescale.ByID(id); known {
		s.mu.Lock()
		s.scale = scale
		s.mu.Unlock()
	}
}

// SemesterAverage computes the average and classification of a course
// list under the active scale. ok is false when no record counts.
func (s *CalculatorService) SemesterAverage(courses []gpa.CourseRecord) (SemesterResult, bool) {
	scale := s.Scale()
	avg, ok := gpa.Average(courses, scale)
	if !ok {
		return SemesterResult{}, false
	}
	return SemesterResult{Average: avg, Classification: scale.Classify(avg)}, true
}

// InteractiveCumulative blends a manually entered prior record with the
// current course list. With no complete courses it returns the prior
// figures unchanged.
func (s *CalculatorService) InteractiveCumulative(prevAvg float64, prevHours int, courses []gpa.CourseRecord) gpa.Summary {
	avg, ok := gpa.Average(courses, s.Scale())
	if !ok {
		return gpa.Summary{Average: prevAvg, CreditHours: prevHours}
	}
	var hours int
	for _, c := range courses {
		if c.Complete() {
			hours += c.CreditHours
		}
	}
	return gpa.Summary{
		Average:     gpa.Cumulative(prevAvg, prevHours, avg, hours),
		CreditHours: prevHours + hours,
	}
}

// FinalizeSemester computes the semester's average under the active
// scale and appends it to the persisted history.
func (s *CalculatorService) FinalizeSemester(ctx context.Context, label string, courses []gpa.CourseRecord) (gpa.SemesterRecord, error) {
	scale := s.Scale()
	avg, ok := gpa.Average(courses, scale)
	if !ok {
		return gpa.SemesterRecord{}, ErrNoCourses
	}

	var hours int
	kept := make([]gpa.CourseRecord, 0, len(courses))
	for _, c := range courses {
		if c.Complete() {
			kept = append(kept, c)
			hours += c.CreditHours
		}
	}

	rec := gpa.SemesterRecord{
		ID:          s.idgen.New(),
		Label:       label,
		GPA:         avg,
		CreditHours: hours,
		ScaleID:     scale.ID,
		Courses:     kept,
	}

	history, err := s.Semesters(ctx)
	if err != nil {
		return gpa.SemesterRecord{}, err
	}
	history = append(history, rec)
	if err := s.saveSemesters(ctx, history); err != nil {
		return gpa.SemesterRecord{}, err
	}

	s.logger.Info().
		Str("id", rec.ID).
		Str("scale", rec.ScaleID).
		Str("gpa", gpa.FormatAverage(rec.GPA)).
		Msg("semester finalized")
	return rec, nil
}

// Semesters returns the persisted history, oldest first.
func (s *CalculatorService) Semesters(ctx context.Context) ([]gpa.SemesterRecord, error) {
	raw, ok, err := s.store.Get(ctx, semestersKey)
	if err != nil {
		return nil, fmt.Errorf("load semesters: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var list []gpa.SemesterRecord
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode semesters: %w", err)
	}
	return list, nil
}

// EditSemester replaces a record's label and derived fields wholesale.
// The course list is not re-validated against the new GPA; callers edit
// derived fields directly and are trusted to keep them consistent.
func (s *CalculatorService) EditSemester(ctx context.Context, id, label string, newGPA float64, creditHours int) error {
	history, err := s.Semesters(ctx)
	if err != nil {
		return err
	}
	for i := range history {
		if history[i].ID != id {
			continue
		}
		history[i].Label = label
		history[i].GPA = newGPA
		history[i].CreditHours = creditHours
		return s.saveSemesters(ctx, history)
	}
	return ErrSemesterNotFound
}

// DeleteSemester removes a record from the history.
func (s *CalculatorService) DeleteSemester(ctx context.Context, id string) error {
	history, err := s.Semesters(ctx)
	if err != nil {
		return err
	}
	kept := history[:0]
	found := false
	for _, rec := range history {
		if rec.ID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return ErrSemesterNotFound
	}
	return s.saveSemesters(ctx, kept)
}

// Cumulative recomputes the cumulative figure across the history for
// the active scale. Never cached; always derived from the current set.
func (s *CalculatorService) Cumulative(ctx context.Context) (gpa.Summary, error) {
	history, err := s.Semesters(ctx)
	if err != nil {
		return gpa.Summary{}, err
	}
	return gpa.Aggregate(history, s.Scale().ID), nil
}

// SaveTemplate persists a course list for reuse next term.
func (s *CalculatorService) SaveTemplate(ctx context.Context, courses []gpa.CourseRecord) error {
	raw, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, templateKey, string(raw))
}

// LoadTemplate returns the saved course list, if any.
func (s *CalculatorService) LoadTemplate(ctx context.Context) ([]gpa.CourseRecord, error) {
	raw, ok, err := s.store.Get(ctx, templateKey)
	if err != nil || !ok {
		return nil, err
	}
	var courses []gpa.CourseRecord
	if err := json.Unmarshal([]byte(raw), &courses); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	return courses, nil
}

func (s *CalculatorService) saveSemesters(ctx context.Context, list []gpa.SemesterRecord) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, semestersKey, string(raw)); err != nil {
		return fmt.Errorf("save semesters: %w", err)
	}
	return nil
}
