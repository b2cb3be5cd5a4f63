package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
)

// Backend defines the REST surface the synchronization layer depends on.
// It is implemented by *Client.
type Backend interface {
	AuthStatus(ctx context.Context) (AuthStatus, error)
	Logout(ctx context.Context) error

	Products(ctx context.Context, q ProductQuery) (ProductList, error)
	SearchProducts(ctx context.Context, term string) (ProductList, error)
	Product(ctx context.Context, id string) (Product, error)

	Comments(ctx context.Context, articleID string) ([]Comment, error)
	CreateComment(ctx context.Context, c NewComment) error
	DeleteComment(ctx context.Context, id string) error
	RedactComment(ctx context.Context, id, content string) error
	FlagComment(ctx context.Context, id, reason string) (Ack, error)

	VoteComment(ctx context.Context, id string, vote VoteType) (VoteResult, error)
	CommentVotes(ctx context.Context, id string) (VoteInfo, error)
	CommentUserVote(ctx context.Context, id string) (VoteType, error)

	VoteReview(ctx context.Context, id string, vote VoteType) (VoteResult, error)
	ReviewVotes(ctx context.Context, id string) (VoteInfo, error)
	ReviewUserVote(ctx context.Context, id string) (VoteType, error)
	FlagReview(ctx context.Context, id, reason string) (Ack, error)

	Flags(ctx context.Context) ([]Flag, error)
	ResolveFlag(ctx context.Context, id string, res *Resolution) (Ack, error)
	ModerationContent(ctx context.Context, contentType, id string) (ModerationContent, error)
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// RequestObserver receives one call per completed request. status is zero
// when the request never produced a response.
type RequestObserver interface {
	ObserveRequest(method, path string, status int, elapsed time.Duration)
}

// Client talks to the review service HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	validate  *validator.Validate
	observer  RequestObserver
}

const (
	defaultBaseURL   = "127.0.0.1:8000"
	defaultUserAgent = "reviewdesk/0.1"
	maxErrorBody     = 64 * 1024
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithObserver attaches a request observer, typically a metrics collector.
func WithObserver(o RequestObserver) Option {
	return func(c *Client) { c.observer = o }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the given base URL or host:port. The default
// http.Client has no timeout; requests end when the context does.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// AuthStatus retrieves the current session's authentication state.
func (c *Client) AuthStatus(ctx context.Context) (AuthStatus, error) {
	var payload AuthStatus
	if err := c.do(ctx, http.MethodGet, "/api/auth/status", nil, &payload); err != nil {
		return AuthStatus{}, err
	}
	return payload, nil
}

// Logout ends the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/auth/logout", nil, nil)
}

// ProductQuery configures /api/products requests.
type ProductQuery struct {
	Limit int `url:"limit,omitempty"`
	Skip  int `url:"skip,omitempty"`
}

// Products retrieves one page of the catalog.
func (c *Client) Products(ctx context.Context, q ProductQuery) (ProductList, error) {
	values, err := query.Values(q)
	if err != nil {
		return ProductList{}, fmt.Errorf("encode query: %w", err)
	}
	rel := &url.URL{Path: "/api/products", RawQuery: values.Encode()}
	var payload ProductList
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return ProductList{}, err
	}
	return payload, nil
}

type searchQuery struct {
	Term string `url:"q"`
}

// SearchProducts runs a catalog search.
func (c *Client) SearchProducts(ctx context.Context, term string) (ProductList, error) {
	values, err := query.Values(searchQuery{Term: term})
	if err != nil {
		return ProductList{}, fmt.Errorf("encode query: %w", err)
	}
	rel := &url.URL{Path: "/api/products/search", RawQuery: values.Encode()}
	var payload ProductList
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return ProductList{}, err
	}
	return payload, nil
}

// Product retrieves a single product.
func (c *Client) Product(ctx context.Context, id string) (Product, error) {
	var payload Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &payload); err != nil {
		return Product{}, err
	}
	return payload, nil
}

type commentsQuery struct {
	ArticleID string `url:"article_id"`
}

// Comments retrieves every comment stored under articleID.
func (c *Client) Comments(ctx context.Context, articleID string) ([]Comment, error) {
	values, err := query.Values(commentsQuery{ArticleID: articleID})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	rel := &url.URL{Path: "/api/comments", RawQuery: values.Encode()}
	var payload []Comment
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateComment posts a new comment or reply.
func (c *Client) CreateComment(ctx context.Context, nc NewComment) error {
	return c.do(ctx, http.MethodPost, "/api/comments", nc, nil)
}

// DeleteComment removes a comment (moderators only).
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, commentPath(id, ""), nil, nil)
}

// RedactComment replaces the visible text of a comment (moderators only).
func (c *Client) RedactComment(ctx context.Context, id, content string) error {
	return c.do(ctx, http.MethodPatch, commentPath(id, "redact"), redactRequest{RedactedContent: content}, nil)
}

// FlagComment reports a comment.
func (c *Client) FlagComment(ctx context.Context, id, reason string) (Ack, error) {
	var payload Ack
	if err := c.do(ctx, http.MethodPost, commentPath(id, "flag"), flagRequest{Reason: reason}, &payload); err != nil {
		return Ack{}, err
	}
	return payload, nil
}

// VoteComment casts or toggles a vote on a comment.
func (c *Client) VoteComment(ctx context.Context, id string, vote VoteType) (VoteResult, error) {
	return c.vote(ctx, commentPath(id, "vote"), vote)
}

// CommentVotes retrieves the vote aggregate of a comment.
func (c *Client) CommentVotes(ctx context.Context, id string) (VoteInfo, error) {
	return c.votes(ctx, commentPath(id, "votes"))
}

// CommentUserVote retrieves the current user's vote on a comment.
func (c *Client) CommentUserVote(ctx context.Context, id string) (VoteType, error) {
	return c.userVote(ctx, commentPath(id, "user-vote"))
}

// VoteReview casts or toggles a vote on a review.
func (c *Client) VoteReview(ctx context.Context, id string, vote VoteType) (VoteResult, error) {
	return c.vote(ctx, reviewPath(id, "vote"), vote)
}

// ReviewVotes retrieves the vote aggregate of a review.
func (c *Client) ReviewVotes(ctx context.Context, id string) (VoteInfo, error) {
	return c.votes(ctx, reviewPath(id, "votes"))
}

// ReviewUserVote retrieves the current user's vote on a review.
func (c *Client) ReviewUserVote(ctx context.Context, id string) (VoteType, error) {
	return c.userVote(ctx, reviewPath(id, "user-vote"))
}

// FlagReview reports a review.
func (c *Client) FlagReview(ctx context.Context, id, reason string) (Ack, error) {
	var payload Ack
	if err := c.do(ctx, http.MethodPost, reviewPath(id, "flag"), flagRequest{Reason: reason}, &payload); err != nil {
		return Ack{}, err
	}
	return payload, nil
}

// Flags lists the open moderation flags.
func (c *Client) Flags(ctx context.Context) ([]Flag, error) {
	var payload flagList
	if err := c.do(ctx, http.MethodGet, "/api/moderation/flags", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Flags, nil
}

// ResolveFlag closes a flag. A nil res sends no body.
func (c *Client) ResolveFlag(ctx context.Context, id string, res *Resolution) (Ack, error) {
	path := "/api/moderation/flags/" + url.PathEscape(id) + "/resolve"
	var body any
	if res != nil {
		body = res
	}
	var payload Ack
	if err := c.do(ctx, http.MethodPatch, path, body, &payload); err != nil {
		return Ack{}, err
	}
	return payload, nil
}

// ModerationContent retrieves the flagged item for review.
func (c *Client) ModerationContent(ctx context.Context, contentType, id string) (ModerationContent, error) {
	path := "/api/moderation/content/" + url.PathEscape(contentType) + "/" + url.PathEscape(id)
	var payload ModerationContent
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return ModerationContent{}, err
	}
	return payload, nil
}

func (c *Client) vote(ctx context.Context, path string, vote VoteType) (VoteResult, error) {
	if !vote.Valid() {
		return VoteResult{}, fmt.Errorf("invalid vote type %q", vote)
	}
	var payload VoteResult
	if err := c.do(ctx, http.MethodPost, path, voteRequest{VoteType: vote}, &payload); err != nil {
		return VoteResult{}, err
	}
	return payload, nil
}

func (c *Client) votes(ctx context.Context, path string) (VoteInfo, error) {
	var payload VoteInfo
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return VoteInfo{}, err
	}
	return payload, nil
}

func (c *Client) userVote(ctx context.Context, path string) (VoteType, error) {
	var payload userVoteResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return VoteNone, err
	}
	if payload.Vote == nil {
		return VoteNone, nil
	}
	return *payload.Vote, nil
}

func commentPath(id, suffix string) string {
	p := "/api/comments/" + url.PathEscape(id)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

func reviewPath(id, suffix string) string {
	return "/api/reviews/" + url.PathEscape(id) + "/" + suffix
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path %q: %w", path, err)
	}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, rel.Path, 0, start)
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.observe(method, rel.Path, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:  method,
			Path:    rel.Path,
			Status:  resp.StatusCode,
			Message: readErrorMessage(resp.Body),
		}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrMalformedResponse, err)
	}
	if err := c.check(dest); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, rel.Path, err)
	}
	return nil
}

// check validates a decoded payload against its validate tags. Slices of
// structs are validated element by element.
func (c *Client) check(dest any) error {
	v := reflect.Indirect(reflect.ValueOf(dest))
	switch v.Kind() {
	case reflect.Struct:
		return c.validate.Struct(v.Interface())
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			elem := reflect.Indirect(v.Index(i))
			if elem.Kind() != reflect.Struct {
				continue
			}
			if err := c.validate.Struct(elem.Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	default:
		return nil
	}
}

func (c *Client) observe(method, path string, status int, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveRequest(method, path, status, time.Since(start))
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	if u.Host == "" {
		return nil, errors.New("api base has no host")
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
