package syncer

import (
	"context"

	"github.com/five82/reviewdesk/internal/api"
)

const (
	networkErrorMessage = "Network error occurred while resolving flag"
	resolveFailedText   = "Failed to resolve flag"
)

// ResolveResult is the outcome of ResolveWithAction.
type ResolveResult struct {
	Success bool
	Message string
}

// FlagReview reports a review and marks it in FlaggedReviews. Marks are
// never cleared.
func (s *Syncer) FlagReview(ctx context.Context, reviewID, reason string) bool {
	ack, err := s.backend.FlagReview(ctx, reviewID, reason)
	if err != nil {
		s.log.Error().Err(err).Str("review_id", reviewID).Str("server_error", api.ServerMessage(err)).Msg("flag review failed")
		return false
	}
	if !ack.Success {
		s.log.Warn().Str("review_id", reviewID).Str("server_error", ack.Error).Msg("flag review rejected")
		return false
	}
	s.store.FlaggedReviews.Update(func(flagged map[string]bool) map[string]bool {
		flagged[reviewID] = true
		return flagged
	})
	return true
}

// GetFlags lists open moderation flags, or an empty list on failure.
func (s *Syncer) GetFlags(ctx context.Context) []api.Flag {
	flags, err := s.backend.Flags(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("get flags failed")
		return []api.Flag{}
	}
	if flags == nil {
		return []api.Flag{}
	}
	return flags
}

// ResolveFlag closes a flag without taking action on the content.
func (s *Syncer) ResolveFlag(ctx context.Context, flagID string) bool {
	ack, err := s.backend.ResolveFlag(ctx, flagID, nil)
	if err != nil {
		s.log.Error().Err(err).Str("flag_id", flagID).Msg("resolve flag failed")
		return false
	}
	return ack.Success
}

// ResolveWithAction closes a flag applying action to the flagged content.
// redacted is only sent for api.ActionRedactContent.
func (s *Syncer) ResolveWithAction(ctx context.Context, flagID, action, redacted string) ResolveResult {
	res := &api.Resolution{Action: action}
	if action == api.ActionRedactContent && redacted != "" {
		res.RedactedContent = &redacted
	}

	ack, err := s.backend.ResolveFlag(ctx, flagID, res)
	if err != nil {
		msg := api.ServerMessage(err)
		if msg == "" {
			msg = networkErrorMessage
		}
		s.log.Error().Err(err).Str("flag_id", flagID).Str("action", action).Msg("resolve flag failed")
		return ResolveResult{Success: false, Message: msg}
	}
	if !ack.Success {
		msg := ack.Error
		if msg == "" {
			msg = ack.Message
		}
		if msg == "" {
			msg = resolveFailedText
		}
		s.log.Warn().Str("flag_id", flagID).Str("action", action).Str("server_error", msg).Msg("resolve flag rejected")
		return ResolveResult{Success: false, Message: msg}
	}
	return ResolveResult{Success: true, Message: ack.Message}
}

// GetContentForModeration returns the flagged item, or nil.
func (s *Syncer) GetContentForModeration(ctx context.Context, contentType, contentID string) *api.ModerationContent {
	content, err := s.backend.ModerationContent(ctx, contentType, contentID)
	if err != nil {
		s.log.Error().Err(err).Str("content_type", contentType).Str("content_id", contentID).Msg("get moderation content failed")
		return nil
	}
	return &content
}
