package syncer

import (
	"github.com/rs/zerolog"

	"github.com/five82/reviewdesk/internal/api"
	"github.com/five82/reviewdesk/internal/state"
)

const defaultProductLimit = 30

// FanoutObserver receives the number of lookups issued by each vote fan-out.
type FanoutObserver interface {
	ObserveFanout(n int)
}

// Options configure a Syncer.
type Options struct {
	Logger          *zerolog.Logger
	ProductLimit    int // zero uses 30
	VoteConcurrency int // zero or negative runs every lookup at once
	Fanout          FanoutObserver
}

// Syncer runs the operations that keep a state.Store in line with the
// backend. Every exported method is total: failures are logged and encoded
// in the return value, never returned as errors.
type Syncer struct {
	backend         api.Backend
	store           *state.Store
	log             zerolog.Logger
	productLimit    int
	voteConcurrency int
	fanout          FanoutObserver
}

// New builds a Syncer writing into store.
func New(backend api.Backend, store *state.Store, opts Options) *Syncer {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	limit := opts.ProductLimit
	if limit <= 0 {
		limit = defaultProductLimit
	}
	return &Syncer{
		backend:         backend,
		store:           store,
		log:             logger.With().Str("component", "syncer").Logger(),
		productLimit:    limit,
		voteConcurrency: opts.VoteConcurrency,
		fanout:          opts.Fanout,
	}
}

// Store returns the store the syncer writes into.
func (s *Syncer) Store() *state.Store {
	return s.store
}

// ArticleKey maps a product id onto the comment namespace it shares with
// articles on the backend.
func ArticleKey(productID string) string {
	return "product_" + productID
}
