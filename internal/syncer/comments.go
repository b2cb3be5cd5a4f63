package syncer

import (
	"context"

	"github.com/five82/reviewdesk/internal/api"
)

// FetchComments replaces the Comments container with the thread of
// productID. A failure clears it.
func (s *Syncer) FetchComments(ctx context.Context, productID string) {
	comments, err := s.backend.Comments(ctx, ArticleKey(productID))
	if err != nil {
		s.log.Error().Err(err).Str("product_id", productID).Msg("fetch comments failed")
		s.store.Comments.Set([]api.Comment{})
		return
	}
	s.store.Comments.Set(comments)
}

// AddComment posts a comment, or a reply when parentID is non-nil, and
// reloads the thread.
func (s *Syncer) AddComment(ctx context.Context, productID, content string, parentID *string) bool {
	err := s.backend.CreateComment(ctx, api.NewComment{
		ArticleID: ArticleKey(productID),
		Content:   content,
		ParentID:  parentID,
	})
	if err != nil {
		s.log.Error().Err(err).Str("product_id", productID).Msg("add comment failed")
		return false
	}
	s.FetchComments(ctx, productID)
	return true
}

// RemoveComment deletes a comment and reloads the thread.
func (s *Syncer) RemoveComment(ctx context.Context, commentID, productID string) bool {
	if err := s.backend.DeleteComment(ctx, commentID); err != nil {
		s.log.Error().Err(err).Str("comment_id", commentID).Msg("remove comment failed")
		return false
	}
	s.FetchComments(ctx, productID)
	return true
}

// RedactComment replaces a comment's visible text and reloads the thread.
func (s *Syncer) RedactComment(ctx context.Context, commentID, redacted, productID string) bool {
	if err := s.backend.RedactComment(ctx, commentID, redacted); err != nil {
		s.log.Error().Err(err).Str("comment_id", commentID).Msg("redact comment failed")
		return false
	}
	s.FetchComments(ctx, productID)
	return true
}

// FlagComment reports a comment. It succeeds only when the backend answers
// {"success": true}.
func (s *Syncer) FlagComment(ctx context.Context, commentID, reason string) bool {
	ack, err := s.backend.FlagComment(ctx, commentID, reason)
	if err != nil {
		s.log.Error().Err(err).Str("comment_id", commentID).Str("server_error", api.ServerMessage(err)).Msg("flag comment failed")
		return false
	}
	if !ack.Success {
		s.log.Warn().Str("comment_id", commentID).Str("server_error", ack.Error).Msg("flag comment rejected")
		return false
	}
	return true
}

// Thread groups comments by parent for display. Top-level comments come
// first in backend order; replies to unknown parents are treated as
// top-level.
type Thread struct {
	Comment api.Comment
	Replies []Thread
}

// BuildThreads arranges a flat comment list into reply trees.
func BuildThreads(comments []api.Comment) []Thread {
	known := make(map[api.ID]bool, len(comments))
	for _, c := range comments {
		known[c.ID] = true
	}
	children := make(map[api.ID][]api.Comment)
	var roots []api.Comment
	for _, c := range comments {
		if c.ParentID != nil && *c.ParentID != "" && *c.ParentID != c.ID && known[*c.ParentID] {
			children[*c.ParentID] = append(children[*c.ParentID], c)
			continue
		}
		roots = append(roots, c)
	}

	visited := make(map[api.ID]bool, len(comments))
	var build func(c api.Comment) Thread
	build = func(c api.Comment) Thread {
		visited[c.ID] = true
		t := Thread{Comment: c}
		for _, child := range children[c.ID] {
			if visited[child.ID] {
				continue
			}
			t.Replies = append(t.Replies, build(child))
		}
		return t
	}

	threads := make([]Thread, 0, len(roots))
	for _, c := range roots {
		threads = append(threads, build(c))
	}
	return threads
}
