package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/muadel/muadel/domain/cv"
	"github.com/muadel/muadel/ports"
)

const profileKey = "cv:profile"

// CVService persists the user's CV profile and renders it to HTML.
type CVService struct {
	store  ports.KVStore
	logger zerolog.Logger
}

// NewCVService creates the CV builder service.
func NewCVService(store ports.KVStore, logger zerolog.Logger) *CVService {
	return &CVService{store: store, logger: logger}
}

// Profile returns the stored profile, or an empty one when nothing has
// been saved yet.
func (s *CVService) Profile(ctx context.Context) (cv.Profile, error) {
	raw, ok, err := s.store.Get(ctx, profileKey)
	if err != nil {
		return cv.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return cv.Profile{}, nil
	}
	var p cv.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return cv.Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// Save replaces the stored profile wholesale.
func (s *CVService) Save(ctx context.Context, p cv.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, profileKey, string(raw)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	s.logger.Debug().Str("name", p.FullName).Msg("profile saved")
	return nil
}

// Render produces the styled HTML document for the stored profile.
func (s *CVService) Render(ctx context.Context) (string, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return "", err
	}
	return cv.Render(p)
}
