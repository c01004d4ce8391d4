package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appclient "github.com/tecpap/backend/internal/application/client"
	"github.com/tecpap/backend/internal/domain/article"
	"github.com/tecpap/backend/internal/domain/audit"
	"github.com/tecpap/backend/internal/domain/catalog"
	"github.com/tecpap/backend/internal/domain/client"
	"github.com/tecpap/backend/internal/domain/order"
	"github.com/tecpap/backend/internal/domain/shared"
)

// IngestionService is the single write path for orders. It validates the
// draft, resolves the client, runs reorder inference, selects an article
// code, and persists exactly one canonical order per idempotency key.
type IngestionService struct {
	orderRepo   order.Repository
	catalogRepo catalog.Repository
	auditRepo   audit.Repository
	resolver    *appclient.IdentityResolver
	reorder     *ReorderService
	classifier  Classifier
	idempotency shared.IdempotencyStore
	idemCfg     shared.IdempotencyConfig
	logger      *zap.Logger
}

// NewIngestionService creates a new IngestionService
func NewIngestionService(
	orderRepo order.Repository,
	catalogRepo catalog.Repository,
	auditRepo audit.Repository,
	resolver *appclient.IdentityResolver,
	reorder *ReorderService,
	classifier Classifier,
	idempotency shared.IdempotencyStore,
	idemCfg shared.IdempotencyConfig,
	logger *zap.Logger,
) *IngestionService {
	return &IngestionService{
		orderRepo:   orderRepo,
		catalogRepo: catalogRepo,
		auditRepo:   auditRepo,
		resolver:    resolver,
		reorder:     reorder,
		classifier:  classifier,
		idempotency: idempotency,
		idemCfg:     idemCfg,
		logger:      logger,
	}
}

// Ingest pushes one extracted draft through the gate. It returns the
// canonical order's response and whether this call created it. Replays of
// an already-ingested draft succeed with Created=false and the existing
// order; they are not errors.
func (s *IngestionService) Ingest(ctx context.Context, draft *order.Draft) (*IngestResponse, error) {
	// Step 1: caller errors are rejected before any side effect.
	if draft == nil || draft.IsEmpty() {
		return nil, shared.ErrEmptyDraft
	}
	if !draft.IsOrder {
		return nil, shared.ErrNotAnOrder
	}

	// Step 2: advisory fast path. A cache hit means some earlier call got
	// far enough to persist; only hits are trusted, misses prove nothing.
	if existing := s.replayFromCache(ctx, draft); existing != nil {
		return s.replayResponse(existing), nil
	}

	// Step 3: resolve the client identity.
	name := s.effectiveName(draft)
	identity, clientCreated, err := s.resolver.ResolveOrCreate(ctx, name, draft.CustomerEmail, draft.CustomerPhone)
	if err != nil {
		return nil, err
	}

	// Step 4: reorder inference. Classifier failure degrades to a zero
	// result; it never blocks ingestion.
	result, err := s.classifier.Classify(ctx, draft)
	if err != nil {
		s.logger.Warn("classifier unavailable, treating as regular order", zap.Error(err))
		result = order.ClassifierResult{}
	}
	if _, err := s.reorder.Infer(ctx, draft, result); err != nil {
		return nil, err
	}

	// Step 5: article code and catalog binding.
	articleCode := s.selectArticleCode(draft)
	productID := s.matchProduct(ctx, draft.ProductType)

	o := order.NewFromDraft(draft, identity.ID, articleCode, productID)

	if err := s.orderRepo.Create(ctx, o); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost the dedup race or replayed a processed draft. The row
			// that won the unique index is the canonical one.
			winner, ferr := s.findExisting(ctx, draft)
			if ferr != nil {
				return nil, ferr
			}
			s.markProcessed(ctx, draft)
			return s.replayResponse(winner), nil
		}
		return nil, err
	}

	s.markProcessed(ctx, draft)
	s.auditCreate(ctx, o, identity, clientCreated)

	s.logger.Info("order ingested",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
		zap.String("client", identity.Name),
		zap.Bool("reorder_inferred", o.ReorderInferred))

	return &IngestResponse{
		OrderID:          o.ID,
		OrderNumber:      o.OrderNumber,
		Created:          true,
		ClientID:         identity.ID,
		ClientName:       identity.Name,
		ClientCreated:    clientCreated,
		ArticleCode:      o.ArticleCode,
		ProductID:        o.ProductID,
		ReorderInferred:  o.ReorderInferred,
		BackfilledFields: o.BackfilledFieldList(),
	}, nil
}

// effectiveName applies the channel naming rules for drafts without a
// usable extracted name: chat synthesizes from the phone number, mail falls
// back to the sender address local part, anything else to the generic
// fallback.
func (s *IngestionService) effectiveName(draft *order.Draft) string {
	if !client.IsPlaceholderName(draft.CustomerName) {
		return draft.CustomerName
	}

	switch draft.Channel {
	case order.ChannelChat:
		return client.PlaceholderFromPhone(draft.CustomerPhone)
	case order.ChannelMail:
		if local, _, ok := strings.Cut(draft.CustomerEmail, "@"); ok && strings.TrimSpace(local) != "" {
			return local
		}
	}
	if draft.CustomerName != "" {
		return draft.CustomerName
	}
	return client.FallbackName
}

// selectArticleCode picks the order's article code: an explicit draft code
// always wins; otherwise text suggestion from the product description,
// falling back to a direct encode of the structured hints when the
// suggestion carries no real attribute.
func (s *IngestionService) selectArticleCode(draft *order.Draft) string {
	if code := strings.TrimSpace(draft.ArticleCode); code != "" {
		return code
	}

	suggested := article.SuggestFromText(strings.TrimSpace(draft.ProductNature + " " + draft.ProductType))
	if !article.IsBareDefault(suggested) {
		return suggested
	}

	if draft.PaperType != "" || draft.Grammage > 0 || draft.Laize > 0 || draft.SupplierHint != "" {
		encoded := article.Encode(article.Attributes{
			PaperType: article.PaperType(draft.PaperType),
			Grammage:  draft.Grammage,
			Laize:     draft.Laize,
			Supplier:  draft.SupplierHint,
		})
		if !article.IsBareDefault(encoded) {
			return encoded
		}
	}

	return suggested
}

// matchProduct binds the draft to a catalog product when its type matches
// one. No match is not an error; the order simply has no product link.
func (s *IngestionService) matchProduct(ctx context.Context, productType string) *uuid.UUID {
	if strings.TrimSpace(productType) == "" {
		return nil
	}
	product, err := s.catalogRepo.FindByTypeLike(ctx, productType)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("catalog lookup failed", zap.Error(err))
		}
		return nil
	}
	return &product.ID
}

// replayFromCache returns the existing order when the idempotency cache
// remembers one of the draft's keys, nil otherwise.
func (s *IngestionService) replayFromCache(ctx context.Context, draft *order.Draft) *order.Order {
	if !s.idemCfg.Enabled || !draft.HasIdempotencyKey() {
		return nil
	}
	for _, key := range s.cacheKeys(draft) {
		hit, err := s.idempotency.IsProcessed(ctx, key)
		if err != nil {
			s.logger.Warn("idempotency cache unavailable", zap.Error(err))
			return nil
		}
		if !hit {
			continue
		}
		existing, err := s.findExisting(ctx, draft)
		if err != nil {
			// Stale cache entry; fall through to the DB gate.
			s.logger.Warn("idempotency cache hit without a matching order",
				zap.String("key", key))
			return nil
		}
		return existing
	}
	return nil
}

// findExisting locates the canonical order for a draft by its idempotency
// keys, order number first.
func (s *IngestionService) findExisting(ctx context.Context, draft *order.Draft) (*order.Order, error) {
	if number := strings.TrimSpace(draft.OrderNumber); number != "" {
		if o, err := s.orderRepo.FindByOrderNumber(ctx, number); err == nil {
			return o, nil
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	if messageID := strings.TrimSpace(draft.ExternalMessageID); messageID != "" {
		return s.orderRepo.FindByExternalMessageID(ctx, messageID)
	}
	return nil, shared.ErrNotFound
}

func (s *IngestionService) cacheKeys(draft *order.Draft) []string {
	var keys []string
	if number := strings.TrimSpace(draft.OrderNumber); number != "" {
		keys = append(keys, "order_number:"+number)
	}
	if messageID := strings.TrimSpace(draft.ExternalMessageID); messageID != "" {
		keys = append(keys, "message_id:"+messageID)
	}
	return keys
}

func (s *IngestionService) markProcessed(ctx context.Context, draft *order.Draft) {
	if !s.idemCfg.Enabled {
		return
	}
	for _, key := range s.cacheKeys(draft) {
		if _, err := s.idempotency.MarkProcessed(ctx, key, s.idemCfg.TTL); err != nil {
			s.logger.Warn("failed to record idempotency key",
				zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *IngestionService) auditCreate(ctx context.Context, o *order.Order, identity *client.Identity, clientCreated bool) {
	details := fmt.Sprintf("order %s for client %s", o.OrderNumber, identity.Name)
	if o.OrderNumber == "" {
		details = fmt.Sprintf("order %s for client %s", o.ID, identity.Name)
	}
	entry := audit.NewEntry("order_created", "orders", &o.ID, details)
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to append audit entry", zap.Error(err))
	}
	if clientCreated {
		centry := audit.NewEntry("client_created", "client_identities", &identity.ID, identity.Name)
		if err := s.auditRepo.Append(ctx, centry); err != nil {
			s.logger.Warn("failed to append audit entry", zap.Error(err))
		}
	}
}

// replayResponse builds the response for a draft whose order already exists.
func (s *IngestionService) replayResponse(o *order.Order) *IngestResponse {
	return &IngestResponse{
		OrderID:          o.ID,
		OrderNumber:      o.OrderNumber,
		Created:          false,
		ClientID:         o.ClientID,
		ArticleCode:      o.ArticleCode,
		ProductID:        o.ProductID,
		ReorderInferred:  o.ReorderInferred,
		BackfilledFields: o.BackfilledFieldList(),
	}
}
