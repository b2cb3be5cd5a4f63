package api

import (
	"bytes"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// ID is a server-assigned identifier. The backend emits product ids as JSON
// numbers and comment/review ids as strings; both decode into ID.
type ID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits numeric ids as numbers so they round-trip unchanged.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// User mirrors the user object embedded in /api/auth/status.
type User struct {
	Email       string `json:"email" validate:"required"`
	Name        string `json:"name,omitempty"`
	IsModerator bool   `json:"is_moderator"`
}

// DisplayName prefers the name and falls back to the email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// AuthStatus mirrors /api/auth/status.
type AuthStatus struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user" validate:"required_if=Authenticated true"`
}

// Review is a product review embedded in the product payload. Reviews coming
// from the upstream catalog usually carry no id and cannot be voted on.
type Review struct {
	ID            ID      `json:"id,omitempty"`
	Rating        float64 `json:"rating" validate:"gte=0,lte=5"`
	Comment       string  `json:"comment"`
	Date          string  `json:"date"`
	ReviewerName  string  `json:"reviewerName"`
	ReviewerEmail string  `json:"reviewerEmail"`
}

// ParsedDate returns Date as time.Time, or the zero time.
func (r Review) ParsedDate() time.Time {
	return parseTime(r.Date)
}

// Product mirrors a single catalog product. Only the fields the client
// renders are modelled.
type Product struct {
	ID                 ID       `json:"id" validate:"required"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Brand              string   `json:"brand,omitempty"`
	Price              float64  `json:"price" validate:"gte=0"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Thumbnail          string   `json:"thumbnail,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	Reviews            []Review `json:"reviews,omitempty" validate:"dive"`
}

// ProductList mirrors /api/products and /api/products/search.
type ProductList struct {
	Products []Product `json:"products" validate:"dive"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// Comment mirrors a comment document. Comments and product reviews share one
// namespace on the backend; ArticleID carries the "product_<id>" key.
type Comment struct {
	ID              ID        `json:"_id" validate:"required"`
	ArticleID       string    `json:"article_id"`
	Content         string    `json:"content"`
	UserEmail       string    `json:"user_email"`
	UserName        string    `json:"user_name"`
	CreatedAt       string    `json:"created_at"`
	IsRemoved       bool      `json:"is_removed"`
	RedactedContent *string   `json:"redacted_content"`
	ParentID        *ID       `json:"parent_id,omitempty"`
	Votes           *VoteInfo `json:"votes,omitempty"`
}

const removedCommentText = "[removed by moderator]"

// DisplayContent returns the text a reader should see: a removal marker,
// the moderator's redaction, or the original content.
func (c Comment) DisplayContent() string {
	if c.IsRemoved {
		return removedCommentText
	}
	if c.RedactedContent != nil && *c.RedactedContent != "" {
		return *c.RedactedContent
	}
	return c.Content
}

// ParsedCreatedAt returns CreatedAt as time.Time, or the zero time.
func (c Comment) ParsedCreatedAt() time.Time {
	return parseTime(c.CreatedAt)
}

// NewComment is the body of POST /api/comments. ParentID is always encoded,
// as null for top-level comments.
type NewComment struct {
	ArticleID string  `json:"article_id"`
	Content   string  `json:"content"`
	ParentID  *string `json:"parent_id"`
}

// VoteType is the direction of a user's vote. VoteNone stands for "no vote".
type VoteType string

const (
	VoteNone VoteType = ""
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Valid reports whether v is a direction that can be submitted.
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// VoteInfo is the read-only aggregate the backend returns for a voteable entity.
type VoteInfo struct {
	Upvotes   int `json:"upvotes" validate:"gte=0"`
	Downvotes int `json:"downvotes" validate:"gte=0"`
	Score     int `json:"score"`
}

// VoteAction values reported by the vote endpoints.
const (
	VoteActionAdded   = "added"
	VoteActionRemoved = "removed"
	VoteActionChanged = "changed"
)

// VoteResult mirrors the response of the vote endpoints.
type VoteResult struct {
	Success bool      `json:"success"`
	Votes   *VoteInfo `json:"votes,omitempty"`
	Action  string    `json:"action,omitempty"`
	Error   string    `json:"error,omitempty"`
}

type voteRequest struct {
	VoteType VoteType `json:"vote_type"`
}

type userVoteResponse struct {
	Vote *VoteType `json:"vote" validate:"omitempty,oneof=up down"`
}

type flagRequest struct {
	Reason string `json:"reason"`
}

type redactRequest struct {
	RedactedContent string `json:"redacted_content"`
}

// Ack is the generic {success, message, error} envelope of mutating calls.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Moderation resolutions.
const (
	ActionDismiss       = "dismiss"
	ActionRemoveContent = "remove_content"
	ActionRedactContent = "redact_content"
)

// Resolution is the body of PATCH /api/moderation/flags/:id/resolve.
// RedactedContent is only meaningful for ActionRedactContent.
type Resolution struct {
	Action          string  `json:"action"`
	RedactedContent *string `json:"redacted_content,omitempty"`
}

// Flag is a user report awaiting moderation.
type Flag struct {
	ID          ID     `json:"_id" validate:"required"`
	ContentType string `json:"content_type" validate:"omitempty,oneof=review comment"`
	ContentID   ID     `json:"content_id"`
	Reason      string `json:"reason"`
	ReportedBy  string `json:"reported_by"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type flagList struct {
	Flags []Flag `json:"flags" validate:"dive"`
}

// ModerationContent is the flagged item as shown to a moderator.
type ModerationContent struct {
	ContentType     string  `json:"content_type"`
	ContentID       ID      `json:"content_id" validate:"required"`
	Content         string  `json:"content"`
	Author          string  `json:"author"`
	CreatedAt       string  `json:"created_at"`
	IsRemoved       bool    `json:"is_removed"`
	RedactedContent *string `json:"redacted_content"`
	ProductID       ID      `json:"product_id,omitempty"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.RFC1123, time.RFC1123Z} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
