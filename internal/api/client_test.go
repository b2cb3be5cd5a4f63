package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultBaseURL {
		t.Fatalf("host = %q, want %q", u.Host, defaultBaseURL)
	}

	u, err = parseBaseURL("https://reviews.example.com:8443/app?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_ProductEndpointsEncodeQueries(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	queries := map[string]url.Values{}
	var gotUserAgent, gotRequestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries[r.URL.Path] = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/products":
			_, _ = io.WriteString(w, `{"products":[{"id":1,"title":"Phone","price":9.5,"reviews":[{"rating":4,"comment":"ok"}]}],"total":1}`)
		case "/api/products/search":
			_, _ = io.WriteString(w, `{"products":[{"id":"2","title":"Lamp"}]}`)
		case "/api/products/7":
			_, _ = io.WriteString(w, `{"id":7,"title":"Chair"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	list, err := c.Products(ctx, ProductQuery{Limit: 30, Skip: 60})
	if err != nil {
		t.Fatalf("Products returned error: %v", err)
	}
	if len(list.Products) != 1 || list.Products[0].ID != "1" || len(list.Products[0].Reviews) != 1 {
		t.Fatalf("Products = %#v, want one product id=1 with one review", list)
	}

	found, err := c.SearchProducts(ctx, "desk lamp")
	if err != nil {
		t.Fatalf("SearchProducts returned error: %v", err)
	}
	if len(found.Products) != 1 || found.Products[0].ID != "2" {
		t.Fatalf("SearchProducts = %#v, want id=2", found)
	}

	p, err := c.Product(ctx, "7")
	if err != nil {
		t.Fatalf("Product returned error: %v", err)
	}
	if p.Title != "Chair" {
		t.Fatalf("Product title = %q, want Chair", p.Title)
	}

	mu.Lock()
	defer mu.Unlock()
	if q := queries["/api/products"]; q.Get("limit") != "30" || q.Get("skip") != "60" {
		t.Fatalf("products query = %v, want limit=30 skip=60", q)
	}
	if q := queries["/api/products/search"]; q.Get("q") != "desk lamp" {
		t.Fatalf("search query = %v, want q=desk lamp", q)
	}
	if !strings.HasPrefix(gotUserAgent, "reviewdesk/") {
		t.Fatalf("User-Agent = %q, want reviewdesk/*", gotUserAgent)
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-ID header missing")
	}
}

func TestClient_MutationsSendJSONBodies(t *testing.T) {
	t.Parallel()

	type captured struct {
		method      string
		contentType string
		body        string
	}
	var mu sync.Mutex
	got := map[string]captured{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		got[r.URL.Path] = captured{method: r.Method, contentType: r.Header.Get("Content-Type"), body: string(raw)}
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/reviews/r1/vote":
			_, _ = io.WriteString(w, `{"success":true,"action":"added","votes":{"upvotes":1,"downvotes":0,"score":1}}`)
		default:
			_, _ = io.WriteString(w, `{"success":true}`)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if err := c.CreateComment(ctx, NewComment{ArticleID: "product_42", Content: "hello"}); err != nil {
		t.Fatalf("CreateComment returned error: %v", err)
	}
	if err := c.RedactComment(ctx, "c1", "[redacted]"); err != nil {
		t.Fatalf("RedactComment returned error: %v", err)
	}
	res, err := c.VoteReview(ctx, "r1", VoteUp)
	if err != nil {
		t.Fatalf("VoteReview returned error: %v", err)
	}
	if !res.Success || res.Action != VoteActionAdded || res.Votes == nil || res.Votes.Score != 1 {
		t.Fatalf("VoteReview = %#v, want added with score 1", res)
	}
	if _, err := c.ResolveFlag(ctx, "f1", nil); err != nil {
		t.Fatalf("ResolveFlag returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if c := got["/api/comments"]; c.method != http.MethodPost || c.contentType != "application/json" ||
		c.body != `{"article_id":"product_42","content":"hello","parent_id":null}` {
		t.Fatalf("create comment request = %#v", c)
	}
	if c := got["/api/comments/c1/redact"]; c.method != http.MethodPatch || c.body != `{"redacted_content":"[redacted]"}` {
		t.Fatalf("redact request = %#v", c)
	}
	if c := got["/api/reviews/r1/vote"]; c.body != `{"vote_type":"up"}` {
		t.Fatalf("vote request body = %q", c.body)
	}
	if c := got["/api/moderation/flags/f1/resolve"]; c.method != http.MethodPatch || c.body != "" || c.contentType != "" {
		t.Fatalf("resolve request = %#v, want PATCH without body", c)
	}
}

func TestClient_VoteRejectsUnknownDirection(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.VoteComment(context.Background(), "c1", VoteType("sideways")); err == nil {
		t.Fatalf("VoteComment returned nil error, want error")
	}
}

func TestClient_UserVoteNullAndUnauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/reviews/a/user-vote":
			_, _ = io.WriteString(w, `{"vote":"down"}`)
		case "/api/reviews/b/user-vote":
			_, _ = io.WriteString(w, `{"vote":null}`)
		case "/api/comments/c/user-vote":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"Authentication required"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if v, err := c.ReviewUserVote(ctx, "a"); err != nil || v != VoteDown {
		t.Fatalf("ReviewUserVote(a) = %q, %v; want down", v, err)
	}
	if v, err := c.ReviewUserVote(ctx, "b"); err != nil || v != VoteNone {
		t.Fatalf("ReviewUserVote(b) = %q, %v; want none", v, err)
	}
	_, err = c.CommentUserVote(ctx, "c")
	if !IsUnauthorized(err) {
		t.Fatalf("CommentUserVote error = %v, want 401", err)
	}
	if msg := ServerMessage(err); msg != "Authentication required" {
		t.Fatalf("ServerMessage = %q, want Authentication required", msg)
	}
}

func TestClient_HTTPErrorDecodeErrorAndValidation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/status":
			_, _ = w.Write([]byte("{not-json"))
		case "/api/products":
			http.Error(w, `{"error":"upstream down"}`, http.StatusInternalServerError)
		case "/api/comments":
			// comment without an id fails validation
			_, _ = io.WriteString(w, `[{"content":"orphan"}]`)
		case "/api/reviews/x/user-vote":
			_, _ = io.WriteString(w, `{"vote":"sideways"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.AuthStatus(ctx)
	if !errors.Is(err, ErrMalformedResponse) || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("AuthStatus error = %v, want malformed decode error", err)
	}

	_, err = c.Products(ctx, ProductQuery{})
	if StatusCode(err) != http.StatusInternalServerError || ServerMessage(err) != "upstream down" {
		t.Fatalf("Products error = %v, want status 500 with server message", err)
	}

	_, err = c.Comments(ctx, "product_1")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("Comments error = %v, want ErrMalformedResponse", err)
	}

	_, err = c.ReviewUserVote(ctx, "x")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("ReviewUserVote error = %v, want ErrMalformedResponse", err)
	}
}

func TestAuthStatus_AuthenticatedRequiresUser(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"authenticated":true}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.AuthStatus(context.Background()); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("AuthStatus error = %v, want ErrMalformedResponse", err)
	}
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingObserver) ObserveRequest(method, path string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, method+" "+path+" "+http.StatusText(status))
}

func TestClient_ObserverSeesEveryRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"upvotes":2,"downvotes":1,"score":1}`)
	}))
	t.Cleanup(server.Close)

	obs := &recordingObserver{}
	c, err := NewClient(server.URL, WithObserver(obs))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	info, err := c.CommentVotes(context.Background(), "c9")
	if err != nil {
		t.Fatalf("CommentVotes returned error: %v", err)
	}
	if info.Upvotes != 2 || info.Score != 1 {
		t.Fatalf("CommentVotes = %#v", info)
	}
	if len(obs.calls) != 1 || obs.calls[0] != "GET /api/comments/c9/votes OK" {
		t.Fatalf("observer calls = %v", obs.calls)
	}
}

func TestCommentDisplayContent(t *testing.T) {
	redacted := "[redacted]"
	cases := []struct {
		name string
		in   Comment
		want string
	}{
		{"plain", Comment{Content: "hi"}, "hi"},
		{"redacted", Comment{Content: "rude", RedactedContent: &redacted}, "[redacted]"},
		{"removed", Comment{Content: "rude", IsRemoved: true, RedactedContent: &redacted}, removedCommentText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.DisplayContent(); got != tc.want {
				t.Fatalf("DisplayContent = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIDAcceptsNumbersAndStrings(t *testing.T) {
	var id ID
	if err := id.UnmarshalJSON([]byte(`42`)); err != nil || id != "42" {
		t.Fatalf("UnmarshalJSON(42) = %q, %v", id, err)
	}
	if err := id.UnmarshalJSON([]byte(`"abc"`)); err != nil || id != "abc" {
		t.Fatalf("UnmarshalJSON(\"abc\") = %q, %v", id, err)
	}
	if out, _ := ID("42").MarshalJSON(); string(out) != "42" {
		t.Fatalf("MarshalJSON(42) = %s", out)
	}
	if out, _ := ID("007").MarshalJSON(); string(out) != `"007"` {
		t.Fatalf("MarshalJSON(007) = %s", out)
	}
}
