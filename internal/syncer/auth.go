package syncer

import (
	"context"

	"github.com/five82/reviewdesk/internal/state"
)

// CheckAuthStatus refreshes the Auth container. Any failure resets it to
// the anonymous state. It reports whether the backend answered.
func (s *Syncer) CheckAuthStatus(ctx context.Context) bool {
	status, err := s.backend.AuthStatus(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("check auth status failed")
		s.store.Auth.Set(state.Anonymous())
		return false
	}
	if !status.Authenticated {
		s.store.Auth.Set(state.Anonymous())
		return true
	}
	s.store.Auth.Set(state.Authenticated(status.User))
	return true
}

// Logout ends the session and resets the Auth container.
func (s *Syncer) Logout(ctx context.Context) bool {
	if err := s.backend.Logout(ctx); err != nil {
		s.log.Error().Err(err).Msg("logout failed")
		return false
	}
	s.store.Auth.Set(state.Anonymous())
	return true
}
