package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reviewdesk/internal/api"
	"github.com/five82/reviewdesk/internal/state"
)

// Messages

type snapshotMsg state.Snapshot

type statusMsg struct {
	text string
	err  bool
}

type detailLoadedMsg struct {
	reviewVotes map[string]api.VoteInfo
	status      statusMsg
}

type voteMsg struct {
	id       string
	comment  bool
	result   api.VoteResult
	userVote api.VoteType
	votes    *api.VoteInfo
}

type flagsMsg []api.Flag

type modContentMsg struct {
	content *api.ModerationContent
}

// watchStore subscribes to every container of store and signals on the
// returned channel whenever one changes. A pending signal absorbs further
// changes until it is received.
func watchStore(store *state.Store) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	notify := func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	unsubs := []func(){
		store.Auth.Subscribe(func(state.AuthState) { notify() }),
		store.Products.Subscribe(func([]api.Product) { notify() }),
		store.CurrentProduct.Subscribe(func(*api.Product) { notify() }),
		store.Comments.Subscribe(func([]api.Comment) { notify() }),
		store.UserVotes.Subscribe(func(map[string]api.VoteType) { notify() }),
		store.FlaggedReviews.Subscribe(func(map[string]bool) { notify() }),
	}
	return ch, func() {
		for _, unsubscribe := range unsubs {
			unsubscribe()
		}
	}
}

// Commands

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func waitForChange(ctx context.Context, store *state.Store, changes <-chan struct{}) tea.Cmd {
	if store == nil || changes == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			return snapshotMsg(store.Snapshot())
		}
	}
}

func (m Model) refreshProductsCmd() tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		s.CheckAuthStatus(ctx)
		s.FetchProducts(ctx)
		return statusMsg{text: "Catalog refreshed"}
	}
}

func (m Model) searchCmd(term string) tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		s.SearchProducts(ctx, term)
		return statusMsg{text: "Search: " + term}
	}
}

func (m Model) loadMoreCmd() tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		if !s.FetchMoreProducts(ctx) {
			return statusMsg{text: "No more products"}
		}
		return statusMsg{text: "Loaded more products"}
	}
}

func (m Model) openProductCmd(id string) tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		product := s.FetchProductByID(ctx, id)
		if product == nil {
			return detailLoadedMsg{status: statusMsg{text: "Product unavailable", err: true}}
		}
		s.FetchComments(ctx, id)
		s.LoadUserVotesForProduct(ctx, product)

		votes := make(map[string]api.VoteInfo, len(product.Reviews))
		for _, r := range product.Reviews {
			if r.ID == "" {
				continue
			}
			if info := s.GetReviewVotes(ctx, string(r.ID)); info != nil {
				votes[string(r.ID)] = *info
			}
		}
		return detailLoadedMsg{reviewVotes: votes, status: statusMsg{text: product.Title}}
	}
}

func (m Model) voteReviewCmd(id string, vote api.VoteType) tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		res := s.VoteOnReview(ctx, id, vote)
		msg := voteMsg{id: id, result: res, votes: res.Votes}
		if !res.Success {
			msg.userVote = s.GetUserVote(ctx, id)
		}
		return msg
	}
}

func (m Model) voteCommentCmd(id string, vote api.VoteType) tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		res := s.VoteOnComment(ctx, id, vote)
		msg := voteMsg{id: id, comment: true, result: res, votes: res.Votes}
		if res.Success {
			msg.userVote = s.GetUserCommentVote(ctx, id)
			if msg.votes == nil {
				msg.votes = s.GetCommentVotes(ctx, id)
			}
		}
		return msg
	}
}

func (m Model) flagReviewCmd(id, reason string) tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		if !s.FlagReview(ctx, id, reason) {
			return statusMsg{text: "Could not flag review", err: true}
		}
		return statusMsg{text: "Review flagged"}
	}
}

func (m Model) flagCommentCmd(id, reason string) tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		if !s.FlagComment(ctx, id, reason) {
			return statusMsg{text: "Could not flag comment", err: true}
		}
		return statusMsg{text: "Comment flagged"}
	}
}

func (m Model) addCommentCmd(productID, content string, parentID *string) tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		if !s.AddComment(ctx, productID, content, parentID) {
			return statusMsg{text: "Could not post comment", err: true}
		}
		return statusMsg{text: "Comment posted"}
	}
}

func (m Model) removeCommentCmd(commentID, productID string) tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		if !s.RemoveComment(ctx, commentID, productID) {
			return statusMsg{text: "Could not remove comment", err: true}
		}
		return statusMsg{text: "Comment removed"}
	}
}

func (m Model) redactCommentCmd(commentID, text, productID string) tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		if !s.RedactComment(ctx, commentID, text, productID) {
			return statusMsg{text: "Could not redact comment", err: true}
		}
		return statusMsg{text: "Comment redacted"}
	}
}

func (m Model) loadFlagsCmd() tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		return flagsMsg(s.GetFlags(ctx))
	}
}

func (m Model) loadContentCmd(flag api.Flag) tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		return modContentMsg{content: s.GetContentForModeration(ctx, flag.ContentType, string(flag.ContentID))}
	}
}

// resolveCmd closes a flag, applying action when it is non-empty, and then
// reloads the flag list.
func (m Model) resolveCmd(flagID, action, redacted string) tea.Cmd {
	s, ctx := m.syncer, m.ctx
	resolve := func() tea.Msg {
		if action == "" {
			if !s.ResolveFlag(ctx, flagID) {
				return statusMsg{text: "Could not resolve flag", err: true}
			}
			return statusMsg{text: "Flag resolved"}
		}
		res := s.ResolveWithAction(ctx, flagID, action, redacted)
		text := res.Message
		if text == "" {
			text = "Flag resolved"
		}
		return statusMsg{text: text, err: !res.Success}
	}
	return tea.Sequence(resolve, m.loadFlagsCmd())
}

func (m Model) logoutCmd() tea.Cmd {
	s, ctx := m.syncer, m.ctx
	return func() tea.Msg {
		if !s.Logout(ctx) {
			return statusMsg{text: "Logout failed", err: true}
		}
		return statusMsg{text: "Logged out"}
	}
}
