package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reviewdesk/internal/api"
	"github.com/five82/reviewdesk/internal/syncer"
)

// threadRow is one comment of a flattened reply tree.
type threadRow struct {
	comment api.Comment
	depth   int
}

func flattenThreads(threads []syncer.Thread) []threadRow {
	var rows []threadRow
	var walk func(ts []syncer.Thread, depth int)
	walk = func(ts []syncer.Thread, depth int) {
		for _, t := range ts {
			rows = append(rows, threadRow{comment: t.Comment, depth: depth})
			walk(t.Replies, depth+1)
		}
	}
	walk(threads, 0)
	return rows
}

// currentProduct returns the product the detail view was opened for, or nil
// while it is still loading.
func (m Model) currentProduct() *api.Product {
	p := m.snapshot.CurrentProduct
	if p == nil || string(p.ID) != m.openProductID {
		return nil
	}
	return p
}

func (m Model) currentReviews() []api.Review {
	if p := m.currentProduct(); p != nil {
		return p.Reviews
	}
	return nil
}

func (m Model) commentRows() []threadRow {
	return flattenThreads(syncer.BuildThreads(m.snapshot.Comments))
}

// handleDetailKey processes keyboard input for the product detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	reviews := m.currentReviews()
	rows := m.commentRows()

	switch {
	case key.Matches(msg, m.keys.Focus):
		if m.detailFocus == paneReviews {
			m.detailFocus = paneComments
		} else {
			m.detailFocus = paneReviews
		}
	case key.Matches(msg, m.keys.Down):
		if m.detailFocus == paneReviews {
			m.selectedReview = clamp(m.selectedReview+1, len(reviews))
		} else {
			m.selectedComment = clamp(m.selectedComment+1, len(rows))
		}
	case key.Matches(msg, m.keys.Up):
		if m.detailFocus == paneReviews {
			m.selectedReview = clamp(m.selectedReview-1, len(reviews))
		} else {
			m.selectedComment = clamp(m.selectedComment-1, len(rows))
		}
	case key.Matches(msg, m.keys.Top):
		if m.detailFocus == paneReviews {
			m.selectedReview = 0
		} else {
			m.selectedComment = 0
		}
	case key.Matches(msg, m.keys.Bottom):
		if m.detailFocus == paneReviews {
			m.selectedReview = clamp(len(reviews)-1, len(reviews))
		} else {
			m.selectedComment = clamp(len(rows)-1, len(rows))
		}
	case key.Matches(msg, m.keys.PageDown):
		m.detailViewport.HalfPageDown()
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.detailViewport.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		if m.openProductID != "" {
			return m, m.openProductCmd(m.openProductID)
		}
	case key.Matches(msg, m.keys.Comment):
		if m.currentProduct() == nil {
			return m, nil
		}
		m.prompt = newPrompt(promptComment, "Comment", "", "")
		return m, m.prompt.focus()
	case key.Matches(msg, m.keys.VoteUp), key.Matches(msg, m.keys.VoteDown):
		vote := api.VoteUp
		if key.Matches(msg, m.keys.VoteDown) {
			vote = api.VoteDown
		}
		return m.voteSelected(vote, reviews, rows)
	case key.Matches(msg, m.keys.Flag):
		return m.flagSelected(reviews, rows)
	case key.Matches(msg, m.keys.Reply):
		if c, ok := m.selectedCommentRow(rows); ok {
			m.prompt = newPrompt(promptReply, "Reply to "+commentAuthor(c.comment), string(c.comment.ID), "")
			return m, m.prompt.focus()
		}
	case key.Matches(msg, m.keys.Remove):
		if c, ok := m.selectedCommentRow(rows); ok && m.snapshot.Auth.IsModerator {
			return m, m.removeCommentCmd(string(c.comment.ID), m.openProductID)
		}
	case key.Matches(msg, m.keys.Redact):
		if c, ok := m.selectedCommentRow(rows); ok && m.snapshot.Auth.IsModerator {
			m.prompt = newPrompt(promptRedactComment, "Redacted text", string(c.comment.ID), c.comment.DisplayContent())
			return m, m.prompt.focus()
		}
	}

	m.syncDetailViewport()
	return m, nil
}

func (m Model) selectedCommentRow(rows []threadRow) (threadRow, bool) {
	if m.detailFocus != paneComments || len(rows) == 0 {
		return threadRow{}, false
	}
	return rows[clamp(m.selectedComment, len(rows))], true
}

func (m Model) voteSelected(vote api.VoteType, reviews []api.Review, rows []threadRow) (tea.Model, tea.Cmd) {
	if m.detailFocus == paneComments {
		if c, ok := m.selectedCommentRow(rows); ok {
			return m, m.voteCommentCmd(string(c.comment.ID), vote)
		}
		return m, nil
	}
	if len(reviews) == 0 {
		return m, nil
	}
	r := reviews[clamp(m.selectedReview, len(reviews))]
	if r.ID == "" {
		m.status = statusMsg{text: "This review cannot be voted on", err: true}
		return m, nil
	}
	return m, m.voteReviewCmd(string(r.ID), vote)
}

func (m Model) flagSelected(reviews []api.Review, rows []threadRow) (tea.Model, tea.Cmd) {
	if m.detailFocus == paneComments {
		if c, ok := m.selectedCommentRow(rows); ok {
			m.prompt = newPrompt(promptFlagComment, "Flag reason", string(c.comment.ID), "")
			return m, m.prompt.focus()
		}
		return m, nil
	}
	if len(reviews) == 0 {
		return m, nil
	}
	r := reviews[clamp(m.selectedReview, len(reviews))]
	if r.ID == "" {
		m.status = statusMsg{text: "This review cannot be flagged", err: true}
		return m, nil
	}
	if m.snapshot.IsFlagged(string(r.ID)) {
		m.status = statusMsg{text: "Already flagged"}
		return m, nil
	}
	m.prompt = newPrompt(promptFlagReview, "Flag reason", string(r.ID), "")
	return m, m.prompt.focus()
}

// applyVote folds a vote outcome into the view-local aggregates.
func (m *Model) applyVote(msg voteMsg) {
	if !msg.result.Success {
		text := "Vote failed"
		if msg.result.Error != "" {
			text = msg.result.Error
		}
		m.status = statusMsg{text: text, err: true}
		return
	}
	if msg.comment {
		if msg.votes != nil {
			m.commentVotes[msg.id] = *msg.votes
		}
		m.commentUserVotes[msg.id] = msg.userVote
	} else if msg.votes != nil {
		m.reviewVotes[msg.id] = *msg.votes
	}
	m.status = statusMsg{text: "Vote " + msg.result.Action}
}

// syncDetailViewport re-renders the detail body and scrolls the selected
// entry into view.
func (m *Model) syncDetailViewport() {
	if !m.ready || m.currentView != ViewDetail {
		return
	}
	body, line := m.renderDetailBody()
	m.detailViewport.SetContent(body)
	if line < 0 {
		return
	}
	if line < m.detailViewport.YOffset {
		m.detailViewport.SetYOffset(line)
	} else if line >= m.detailViewport.YOffset+m.detailViewport.Height {
		m.detailViewport.SetYOffset(line - m.detailViewport.Height + 1)
	}
}

// renderDetailBody renders the product, its reviews and the comment thread.
// It returns the line index of the selected entry, or -1.
func (m Model) renderDetailBody() (string, int) {
	styles := m.theme.Styles()
	p := m.currentProduct()
	if p == nil {
		return styles.MutedText.Render("Loading product..."), -1
	}

	width := m.width - 2
	if width < 20 {
		width = 20
	}
	now := time.Now()

	var lines []string
	add := func(s string) { lines = append(lines, strings.Split(s, "\n")...) }

	add(styles.Text.Bold(true).Render(p.Title))
	meta := []string{}
	if p.Brand != "" {
		meta = append(meta, p.Brand)
	}
	if p.Category != "" {
		meta = append(meta, p.Category)
	}
	meta = append(meta, formatPrice(p.Price, p.DiscountPercentage), fmt.Sprintf("%s %.1f", stars(p.Rating), p.Rating), fmt.Sprintf("%d in stock", p.Stock))
	add(styles.MutedText.Render(strings.Join(meta, " · ")))
	if p.Description != "" {
		add(lipgloss.NewStyle().Width(width).Render(p.Description))
	}
	add("")

	selectedLine := -1
	focusReviews := m.detailFocus == paneReviews

	add(sectionTitle(styles, fmt.Sprintf("Reviews (%d)", len(p.Reviews)), focusReviews))
	if len(p.Reviews) == 0 {
		add(styles.FaintText.Render("  No reviews"))
	}
	for i, r := range p.Reviews {
		selected := focusReviews && i == m.selectedReview
		if selected {
			selectedLine = len(lines)
		}
		add(m.renderReview(r, selected, width, now))
	}
	add("")

	rows := m.commentRows()
	add(sectionTitle(styles, fmt.Sprintf("Comments (%d)", len(rows)), !focusReviews))
	if len(rows) == 0 {
		add(styles.FaintText.Render("  No comments yet. Press c to write one."))
	}
	for i, row := range rows {
		selected := !focusReviews && i == m.selectedComment
		if selected {
			selectedLine = len(lines)
		}
		add(m.renderComment(row, selected, width, now))
	}

	return strings.Join(lines, "\n"), selectedLine
}

func sectionTitle(styles Styles, title string, focused bool) string {
	if focused {
		return styles.AccentText.Bold(true).Render("▸ " + title)
	}
	return styles.MutedText.Render("  " + title)
}

func (m Model) renderReview(r api.Review, selected bool, width int, now time.Time) string {
	styles := m.theme.Styles()
	id := string(r.ID)

	head := []string{styles.WarningText.Render(stars(r.Rating)), styles.Text.Render(r.ReviewerName)}
	if age := humanizeAge(r.ParsedDate(), now); age != "" {
		head = append(head, styles.FaintText.Render(age))
	}
	if id != "" {
		if info, ok := m.reviewVotes[id]; ok {
			head = append(head, styles.MutedText.Render(fmt.Sprintf("▲%d ▼%d", info.Upvotes, info.Downvotes)))
		}
		if vote, ok := m.snapshot.UserVote(id); ok && vote != api.VoteNone {
			head = append(head, styles.Badge(string(vote), strings.ToUpper(string(vote))))
		}
		if m.snapshot.IsFlagged(id) {
			head = append(head, styles.Badge("flagged", "FLAGGED"))
		}
	}

	marker := "  "
	if selected {
		marker = "▶ "
	}
	body := lipgloss.NewStyle().Width(width - 4).Render(r.Comment)
	return marker + strings.Join(head, " ") + "\n" + indent(body, 4)
}

func (m Model) renderComment(row threadRow, selected bool, width int, now time.Time) string {
	styles := m.theme.Styles()
	c := row.comment
	id := string(c.ID)
	pad := 2 + row.depth*2

	head := []string{styles.Text.Render(commentAuthor(c))}
	if age := humanizeAge(c.ParsedCreatedAt(), now); age != "" {
		head = append(head, styles.FaintText.Render(age))
	}
	votes := c.Votes
	if info, ok := m.commentVotes[id]; ok {
		votes = &info
	}
	if votes != nil {
		head = append(head, styles.MutedText.Render(fmt.Sprintf("%+d", votes.Score)))
	}
	if vote := m.commentUserVotes[id]; vote != api.VoteNone {
		head = append(head, styles.Badge(string(vote), strings.ToUpper(string(vote))))
	}
	switch {
	case c.IsRemoved:
		head = append(head, styles.Badge("removed", "REMOVED"))
	case c.RedactedContent != nil && *c.RedactedContent != "":
		head = append(head, styles.Badge("redacted", "REDACTED"))
	}

	marker := strings.Repeat(" ", pad)
	if selected {
		marker = strings.Repeat(" ", pad-2) + "▶ "
	}
	text := c.DisplayContent()
	bodyStyle := styles.Text
	if c.IsRemoved {
		bodyStyle = styles.FaintText
	}
	body := bodyStyle.Width(maxInt(width-pad-2, 10)).Render(text)
	return marker + strings.Join(head, " ") + "\n" + indent(body, pad+2)
}

func commentAuthor(c api.Comment) string {
	if c.UserName != "" {
		return c.UserName
	}
	if c.UserEmail != "" {
		return c.UserEmail
	}
	return "anonymous"
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
