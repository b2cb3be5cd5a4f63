package state

import (
	"maps"
	"slices"

	"github.com/five82/reviewdesk/internal/api"
)

// AuthState is the client's view of the session.
type AuthState struct {
	IsAuthenticated bool
	User            *api.User
	IsModerator     bool
}

// Authenticated builds the state for a signed-in user. IsModerator is always
// derived from the user record.
func Authenticated(user *api.User) AuthState {
	if user == nil {
		return AuthState{IsAuthenticated: true}
	}
	u := *user
	return AuthState{IsAuthenticated: true, User: &u, IsModerator: u.IsModerator}
}

// Anonymous is the default, signed-out state.
func Anonymous() AuthState {
	return AuthState{}
}

// Store owns every container the client keeps in sync with the backend.
// Containers are independent; nothing keeps Products and CurrentProduct,
// or any other pair, consistent with each other.
type Store struct {
	Auth           *Container[AuthState]
	Products       *Container[[]api.Product]
	CurrentProduct *Container[*api.Product]
	Comments       *Container[[]api.Comment]
	UserVotes      *Container[map[string]api.VoteType]
	FlaggedReviews *Container[map[string]bool]
}

// NewStore returns a store with every container at its default value.
func NewStore() *Store {
	return &Store{
		Auth:           NewContainer(Anonymous(), cloneAuth),
		Products:       NewContainer([]api.Product{}, cloneSlice[api.Product]),
		CurrentProduct: NewContainer[*api.Product](nil, cloneProduct),
		Comments:       NewContainer([]api.Comment{}, cloneSlice[api.Comment]),
		UserVotes:      NewContainer(map[string]api.VoteType{}, cloneMap[string, api.VoteType]),
		FlaggedReviews: NewContainer(map[string]bool{}, cloneMap[string, bool]),
	}
}

// Snapshot is a point-in-time copy of every container. The fields are read
// one container at a time, so two fields may reflect different moments.
type Snapshot struct {
	Auth           AuthState
	Products       []api.Product
	CurrentProduct *api.Product
	Comments       []api.Comment
	UserVotes      map[string]api.VoteType
	FlaggedReviews map[string]bool
}

// Snapshot returns copies of all container values.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Auth:           s.Auth.Get(),
		Products:       s.Products.Get(),
		CurrentProduct: s.CurrentProduct.Get(),
		Comments:       s.Comments.Get(),
		UserVotes:      s.UserVotes.Get(),
		FlaggedReviews: s.FlaggedReviews.Get(),
	}
}

// UserVote returns the recorded vote for id and whether one was recorded.
func (s Snapshot) UserVote(id string) (api.VoteType, bool) {
	v, ok := s.UserVotes[id]
	return v, ok
}

// IsFlagged reports whether the current user flagged review id.
func (s Snapshot) IsFlagged(id string) bool {
	return s.FlaggedReviews[id]
}

func cloneAuth(a AuthState) AuthState {
	if a.User != nil {
		u := *a.User
		a.User = &u
	}
	return a
}

func cloneProduct(p *api.Product) *api.Product {
	if p == nil {
		return nil
	}
	dup := *p
	dup.Reviews = slices.Clone(p.Reviews)
	dup.Tags = slices.Clone(p.Tags)
	return &dup
}

// cloneSlice keeps the empty-vs-nil distinction out of the store: an empty
// result is always stored as a non-nil empty slice.
func cloneSlice[E any](in []E) []E {
	if len(in) == 0 {
		return []E{}
	}
	return slices.Clone(in)
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	if in == nil {
		return map[K]V{}
	}
	return maps.Clone(in)
}
