package syncer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/five82/reviewdesk/internal/api"
)

// VoteOnReview casts vote on a review and records the resulting direction
// in UserVotes. The aggregate is only returned, never stored.
func (s *Syncer) VoteOnReview(ctx context.Context, reviewID string, vote api.VoteType) api.VoteResult {
	res, err := s.backend.VoteReview(ctx, reviewID, vote)
	if err != nil {
		s.log.Error().Err(err).Str("review_id", reviewID).Str("vote", string(vote)).Msg("vote on review failed")
		return api.VoteResult{Success: false}
	}
	if !res.Success {
		s.log.Warn().Str("review_id", reviewID).Str("server_error", res.Error).Msg("vote on review rejected")
		return res
	}
	recorded := vote
	if res.Action == api.VoteActionRemoved {
		recorded = api.VoteNone
	}
	s.store.UserVotes.Update(func(votes map[string]api.VoteType) map[string]api.VoteType {
		votes[reviewID] = recorded
		return votes
	})
	return res
}

// VoteOnComment casts vote on a comment. Nothing is written to the store.
func (s *Syncer) VoteOnComment(ctx context.Context, commentID string, vote api.VoteType) api.VoteResult {
	res, err := s.backend.VoteComment(ctx, commentID, vote)
	if err != nil {
		s.log.Error().Err(err).Str("comment_id", commentID).Str("vote", string(vote)).Msg("vote on comment failed")
		return api.VoteResult{Success: false}
	}
	if !res.Success {
		s.log.Warn().Str("comment_id", commentID).Str("server_error", res.Error).Msg("vote on comment rejected")
	}
	return res
}

// GetReviewVotes returns the vote aggregate of a review, or nil.
func (s *Syncer) GetReviewVotes(ctx context.Context, reviewID string) *api.VoteInfo {
	info, err := s.backend.ReviewVotes(ctx, reviewID)
	if err != nil {
		s.log.Error().Err(err).Str("review_id", reviewID).Msg("get review votes failed")
		return nil
	}
	return &info
}

// GetCommentVotes returns the vote aggregate of a comment, or nil.
func (s *Syncer) GetCommentVotes(ctx context.Context, commentID string) *api.VoteInfo {
	info, err := s.backend.CommentVotes(ctx, commentID)
	if err != nil {
		s.log.Error().Err(err).Str("comment_id", commentID).Msg("get comment votes failed")
		return nil
	}
	return &info
}

// GetUserVote returns the current user's vote on a review and records it in
// UserVotes. VoteNone covers both "no vote" and any failure, including the
// expected 401 for anonymous sessions.
func (s *Syncer) GetUserVote(ctx context.Context, reviewID string) api.VoteType {
	vote, ok := s.lookupReviewVote(ctx, reviewID)
	if !ok {
		return api.VoteNone
	}
	s.store.UserVotes.Update(func(votes map[string]api.VoteType) map[string]api.VoteType {
		votes[reviewID] = vote
		return votes
	})
	return vote
}

// GetUserCommentVote returns the current user's vote on a comment.
func (s *Syncer) GetUserCommentVote(ctx context.Context, commentID string) api.VoteType {
	vote, err := s.backend.CommentUserVote(ctx, commentID)
	if err != nil {
		s.logVoteLookup(err, "comment_id", commentID)
		return api.VoteNone
	}
	return vote
}

// LoadUserVotesForProduct looks up the user's vote on every review of
// product concurrently, then merges all answers into UserVotes with a
// single update. Reviews without an id are skipped and failed lookups merge
// as VoteNone.
func (s *Syncer) LoadUserVotesForProduct(ctx context.Context, product *api.Product) {
	if product == nil {
		s.log.Error().Msg("load user votes: no product")
		return
	}
	ids := make([]string, 0, len(product.Reviews))
	for _, r := range product.Reviews {
		if r.ID != "" {
			ids = append(ids, string(r.ID))
		}
	}
	if len(ids) == 0 {
		return
	}
	if s.fanout != nil {
		s.fanout.ObserveFanout(len(ids))
	}

	results := make([]api.VoteType, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	if s.voteConcurrency > 0 {
		g.SetLimit(s.voteConcurrency)
	}
	for i, id := range ids {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("vote lookup %s: %v", id, r)
				}
			}()
			results[i], _ = s.lookupReviewVote(gctx, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("product_id", string(product.ID)).Msg("load user votes failed")
		return
	}

	s.store.UserVotes.Update(func(votes map[string]api.VoteType) map[string]api.VoteType {
		for i, id := range ids {
			votes[id] = results[i]
		}
		return votes
	})
}

// lookupReviewVote fetches a review vote without touching the store.
func (s *Syncer) lookupReviewVote(ctx context.Context, reviewID string) (api.VoteType, bool) {
	vote, err := s.backend.ReviewUserVote(ctx, reviewID)
	if err != nil {
		s.logVoteLookup(err, "review_id", reviewID)
		return api.VoteNone, false
	}
	return vote, true
}

func (s *Syncer) logVoteLookup(err error, key, id string) {
	if api.IsUnauthorized(err) {
		s.log.Debug().Str(key, id).Msg("vote lookup skipped: not authenticated")
		return
	}
	s.log.Error().Err(err).Str(key, id).Msg("vote lookup failed")
}
