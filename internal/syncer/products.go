package syncer

import (
	"context"

	"github.com/five82/reviewdesk/internal/api"
)

// FetchProducts loads the first catalog page. An empty page leaves the
// current list alone; a failure clears it.
func (s *Syncer) FetchProducts(ctx context.Context) {
	list, err := s.backend.Products(ctx, api.ProductQuery{Limit: s.productLimit})
	if err != nil {
		s.log.Error().Err(err).Msg("fetch products failed")
		s.store.Products.Set([]api.Product{})
		return
	}
	if len(list.Products) > 0 {
		s.store.Products.Set(list.Products)
	}
}

// FetchMoreProducts appends the next catalog page to the list. It reports
// whether anything was appended.
func (s *Syncer) FetchMoreProducts(ctx context.Context) bool {
	skip := len(s.store.Products.Get())
	list, err := s.backend.Products(ctx, api.ProductQuery{Limit: s.productLimit, Skip: skip})
	if err != nil {
		s.log.Error().Err(err).Int("skip", skip).Msg("fetch more products failed")
		return false
	}
	if len(list.Products) == 0 {
		return false
	}
	s.store.Products.Update(func(current []api.Product) []api.Product {
		return append(current, list.Products...)
	})
	return true
}

// SearchProducts replaces the list with the search result, which may be empty.
func (s *Syncer) SearchProducts(ctx context.Context, term string) {
	list, err := s.backend.SearchProducts(ctx, term)
	if err != nil {
		s.log.Error().Err(err).Str("query", term).Msg("search products failed")
		s.store.Products.Set([]api.Product{})
		return
	}
	s.store.Products.Set(list.Products)
}

// FetchProductByID loads one product into CurrentProduct and returns it. It
// returns nil, leaving CurrentProduct untouched, on any failure.
func (s *Syncer) FetchProductByID(ctx context.Context, id string) *api.Product {
	product, err := s.backend.Product(ctx, id)
	if err != nil {
		if status := api.StatusCode(err); status != 0 {
			s.log.Warn().Int("status", status).Str("product_id", id).Msg("product not available")
			return nil
		}
		s.log.Error().Err(err).Str("product_id", id).Msg("fetch product failed")
		return nil
	}
	s.store.CurrentProduct.Set(&product)
	return &product
}
