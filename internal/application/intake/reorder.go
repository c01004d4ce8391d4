package intake

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appclient "github.com/tecpap/backend/internal/application/client"
	"github.com/tecpap/backend/internal/domain/order"
	"github.com/tecpap/backend/internal/domain/shared"
)

// DefaultConfidenceFloor is the confidence a backfilled draft is raised to
// when the extraction scored it lower.
const DefaultConfidenceFloor = 85

// Outcome describes what reorder inference did with a draft.
type Outcome int

const (
	// OutcomeNotReorder means the classifier saw no reorder intent or gave
	// no candidate name. The draft is untouched.
	OutcomeNotReorder Outcome = iota
	// OutcomeApplied means history was found and missing fields were
	// backfilled from the client's reference order.
	OutcomeApplied
	// OutcomeHistoryNotFound means reorder intent was detected but the
	// client has no prior order to copy from. The draft proceeds as a
	// regular order.
	OutcomeHistoryNotFound
)

// ReorderService backfills drafts that express reorder intent ("la commande
// habituelle") from the client's order history.
type ReorderService struct {
	orderRepo       order.Repository
	resolver        *appclient.IdentityResolver
	confidenceFloor int
	logger          *zap.Logger
}

// NewReorderService creates a new ReorderService
func NewReorderService(orderRepo order.Repository, resolver *appclient.IdentityResolver, confidenceFloor int, logger *zap.Logger) *ReorderService {
	if confidenceFloor <= 0 {
		confidenceFloor = DefaultConfidenceFloor
	}
	return &ReorderService{
		orderRepo:       orderRepo,
		resolver:        resolver,
		confidenceFloor: confidenceFloor,
		logger:          logger,
	}
}

// Infer applies reorder inference to a draft in place. The classifier result
// has already been obtained by the caller; Infer decides whether to act on
// it, locates the reference order, and backfills the draft's missing fields.
//
// Only absent fields are filled. Values the draft already carries always win
// over history. Each backfilled field is recorded on the draft.
func (s *ReorderService) Infer(ctx context.Context, draft *order.Draft, result order.ClassifierResult) (Outcome, error) {
	if !result.IsReorder || result.CandidateName == "" {
		return OutcomeNotReorder, nil
	}

	identity, _, err := s.resolver.FuzzyFind(ctx, result.CandidateName)
	if err != nil {
		return OutcomeNotReorder, err
	}
	if identity == nil {
		s.logger.Info("reorder intent but no matching client",
			zap.String("candidate", result.CandidateName))
		return OutcomeHistoryNotFound, nil
	}

	reference, err := s.referenceOrder(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Info("reorder intent but client has no history",
				zap.String("client", identity.Name))
			return OutcomeHistoryNotFound, nil
		}
		return OutcomeNotReorder, err
	}

	// The matched identity's canonical name overrides whatever fragment the
	// extraction produced, so the gate binds to the right client.
	draft.CustomerName = identity.Name

	s.backfill(draft, reference)

	// A backfilled draft is at least as trustworthy as the floor.
	if draft.ReorderInferred && draft.Confidence < s.confidenceFloor {
		draft.Confidence = s.confidenceFloor
	}

	s.logger.Info("reorder inference applied",
		zap.String("client", identity.Name),
		zap.String("reference_order", reference.ID.String()),
		zap.Strings("backfilled", draft.BackfilledFields))
	return OutcomeApplied, nil
}

// referenceOrder picks the order history is copied from: the most recent
// validated order, falling back to the most recent order of any status.
func (s *ReorderService) referenceOrder(ctx context.Context, clientID uuid.UUID) (*order.Order, error) {
	reference, err := s.orderRepo.FindLatestByClient(ctx, clientID, true)
	if err == nil {
		return reference, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return s.orderRepo.FindLatestByClient(ctx, clientID, false)
}

func (s *ReorderService) backfill(draft *order.Draft, ref *order.Order) {
	if draft.ProductType == "" && ref.ProductType != "" {
		draft.ProductType = ref.ProductType
		draft.MarkBackfilled(order.FieldProductType)
	}
	if draft.ProductNature == "" && ref.ProductNature != "" {
		draft.ProductNature = ref.ProductNature
		draft.MarkBackfilled(order.FieldProductNature)
	}
	if draft.Quantity == nil && !ref.Quantity.IsZero() {
		q := ref.Quantity
		draft.Quantity = &q
		draft.MarkBackfilled(order.FieldQuantity)
	}
	if draft.Unit == "" && ref.Unit != "" {
		draft.Unit = ref.Unit
		draft.MarkBackfilled(order.FieldUnit)
	}
	if draft.UnitPrice == nil && !ref.UnitPrice.IsZero() {
		p := ref.UnitPrice
		draft.UnitPrice = &p
		draft.MarkBackfilled(order.FieldUnitPrice)
	}
	if draft.TotalPrice == nil && !ref.TotalPrice.IsZero() {
		p := ref.TotalPrice
		draft.TotalPrice = &p
		draft.MarkBackfilled(order.FieldTotalPrice)
	}
	if draft.Currency == "" && ref.Currency != "" {
		draft.Currency = ref.Currency
		draft.MarkBackfilled(order.FieldCurrency)
	}
	if draft.ArticleCode == "" && ref.ArticleCode != "" {
		draft.ArticleCode = ref.ArticleCode
		draft.ReorderInferred = true
	}
}
