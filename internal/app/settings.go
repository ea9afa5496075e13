package app

import (
	"context"

	"smart-note-service/internal/domain"
)

// Settings returns the current user settings.
func (s *Store) Settings(ctx context.Context) (domain.UserSettings, error) {
	if err := s.wait(ctx); err != nil {
		return domain.UserSettings{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

// UpdateSettings merges patch over the current settings and returns the result.
func (s *Store) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.UserSettings, error) {
	if err := s.wait(ctx); err != nil {
		return domain.UserSettings{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = patch.Apply(s.settings)
	if err := s.persistLocked(ctx); err != nil {
		return domain.UserSettings{}, err
	}
	return s.settings, nil
}
