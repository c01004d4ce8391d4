package client

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tecpap/backend/internal/domain/client"
	"github.com/tecpap/backend/internal/domain/order"
	"github.com/tecpap/backend/internal/domain/shared"
)

// Service handles client identity queries for the HTTP boundary
type Service struct {
	clientRepo client.Repository
	orderRepo  order.Repository
	resolver   *IdentityResolver
}

// NewService creates a new client Service
func NewService(clientRepo client.Repository, orderRepo order.Repository, resolver *IdentityResolver) *Service {
	return &Service{
		clientRepo: clientRepo,
		orderRepo:  orderRepo,
		resolver:   resolver,
	}
}

// Get returns a single client identity
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	identity, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToClientResponse(identity), nil
}

// List returns client identities matching the filter, with the total count
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*ClientResponse], error) {
	identities, err := s.clientRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.clientRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*ClientResponse, len(identities))
	for i := range identities {
		responses[i] = ToClientResponse(&identities[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Match runs a fuzzy name lookup against the known identities
func (s *Service) Match(ctx context.Context, name string) (*FuzzyMatchResponse, error) {
	identity, score, err := s.resolver.FuzzyFind(ctx, name)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return &FuzzyMatchResponse{Found: false}, nil
	}
	return &FuzzyMatchResponse{
		Client: ToClientResponse(identity),
		Score:  score,
		Found:  true,
	}, nil
}

// Preferences derives a client's ordering defaults from their most recent
// order. A client with no history still gets a response, with zero counts
// and no last-order fields.
func (s *Service) Preferences(ctx context.Context, id uuid.UUID) (*PreferencesResponse, error) {
	identity, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &PreferencesResponse{
		ClientID:   identity.ID,
		ClientName: identity.Name,
	}

	orders, err := s.orderRepo.FindByClient(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.OrderCount = int64(len(orders))
	resp.FavoriteProductType = favoriteProductType(orders)
	resp.AverageQuantity = averageQuantity(orders)

	latest, err := s.orderRepo.FindLatestByClient(ctx, id, false)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return resp, nil
		}
		return nil, err
	}

	resp.LastOrderID = &latest.ID
	resp.LastArticleCode = latest.ArticleCode
	resp.LastProductType = latest.ProductType
	resp.LastUnit = latest.Unit
	resp.LastCurrency = latest.Currency
	if !latest.Quantity.IsZero() {
		q := latest.Quantity
		resp.LastQuantity = &q
	}
	if !latest.UnitPrice.IsZero() {
		p := latest.UnitPrice
		resp.LastUnitPrice = &p
	}
	return resp, nil
}

// favoriteProductType returns the most frequent non-empty product type;
// ties break toward the more recent order.
func favoriteProductType(orders []order.Order) string {
	counts := make(map[string]int)
	best := ""
	for _, o := range orders {
		if o.ProductType == "" {
			continue
		}
		counts[o.ProductType]++
		if best == "" || counts[o.ProductType] > counts[best] {
			best = o.ProductType
		}
	}
	return best
}

// averageQuantity averages the non-zero ordered quantities, nil when the
// history carries none.
func averageQuantity(orders []order.Order) *decimal.Decimal {
	sum := decimal.Zero
	n := 0
	for _, o := range orders {
		if o.Quantity.IsZero() {
			continue
		}
		sum = sum.Add(o.Quantity)
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum.DivRound(decimal.NewFromInt(int64(n)), 2)
	return &avg
}
