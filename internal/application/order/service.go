package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tecpap/backend/internal/domain/audit"
	"github.com/tecpap/backend/internal/domain/order"
	"github.com/tecpap/backend/internal/domain/shared"
)

// Service handles order queries and the manual correction surface
type Service struct {
	orderRepo order.Repository
	auditRepo audit.Repository
	logger    *zap.Logger
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository, auditRepo audit.Repository, logger *zap.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Get returns a single order
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// List returns orders matching the filter, with the total count
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*OrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListByClient returns all orders for one client, newest first
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	responses := make([]*OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses, nil
}

// UpdateFields applies a partial update to an order. Quantities go through
// the aggregate so RemainingToDeliver is re-derived on every change.
func (s *Service) UpdateFields(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var changed []string

	if req.Quantity != nil || req.QuantityDelivered != nil {
		if err := o.SetQuantities(req.Quantity, req.QuantityDelivered); err != nil {
			return nil, err
		}
		if req.Quantity != nil {
			changed = append(changed, "quantite")
		}
		if req.QuantityDelivered != nil {
			changed = append(changed, "quantite_livree")
		}
	}

	apply := func(field string, dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
			changed = append(changed, field)
		}
	}
	apply("code_article", &o.ArticleCode, req.ArticleCode)
	apply("type_produit", &o.ProductType, req.ProductType)
	apply("nature_produit", &o.ProductNature, req.ProductNature)
	apply("unite", &o.Unit, req.Unit)
	apply("devise", &o.Currency, req.Currency)
	apply("date_commande", &o.OrderDate, req.OrderDate)
	apply("date_livraison", &o.DeliveryDate, req.DeliveryDate)
	apply("informations_supplementaires", &o.ExtraInfo, req.ExtraInfo)

	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}
		o.UnitPrice = *req.UnitPrice
		changed = append(changed, "prix_unitaire")
	}
	if req.TotalPrice != nil {
		if req.TotalPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Total price cannot be negative")
		}
		o.TotalPrice = *req.TotalPrice
		changed = append(changed, "prix_total")
	}

	if len(changed) == 0 {
		return ToOrderResponse(o), nil
	}

	o.Touch()
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.audit(ctx, "order_updated", o, strings.Join(changed, ","))

	return ToOrderResponse(o), nil
}

// UpdateStatus transitions an order between pending, validated and rejected
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	status := order.Status(req.Status)
	if !order.ValidStatus(status) {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown status %q", req.Status))
	}

	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch status {
	case order.StatusValidated:
		if err := o.Validate(req.ValidatedBy); err != nil {
			return nil, err
		}
	case order.StatusRejected:
		if err := o.Reject(); err != nil {
			return nil, err
		}
	case order.StatusPending:
		o.Status = order.StatusPending
		o.ValidatedAt = nil
		o.ValidatedBy = ""
		o.Touch()
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.audit(ctx, "order_status_changed", o, string(status))

	return ToOrderResponse(o), nil
}

// Stats returns the dashboard aggregates
func (s *Service) Stats(ctx context.Context) (order.Stats, error) {
	return s.orderRepo.Stats(ctx)
}

func (s *Service) audit(ctx context.Context, action string, o *order.Order, details string) {
	entry := audit.NewEntry(action, "orders", &o.ID, details)
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to append audit entry", zap.Error(err))
	}
}
