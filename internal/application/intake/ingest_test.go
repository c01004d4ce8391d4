package intake

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appclient "github.com/tecpap/backend/internal/application/client"
	"github.com/tecpap/backend/internal/domain/catalog"
	"github.com/tecpap/backend/internal/domain/client"
	"github.com/tecpap/backend/internal/domain/order"
	"github.com/tecpap/backend/internal/domain/shared"
)

type gateFixture struct {
	orderRepo   *MockOrderRepository
	clientRepo  *MockClientRepository
	catalogRepo *MockCatalogRepository
	auditRepo   *MockAuditRepository
	classifier  *MockClassifier
	store       *fakeIdempotencyStore
	svc         *IngestionService
}

func newGateFixture() *gateFixture {
	f := &gateFixture{
		orderRepo:   new(MockOrderRepository),
		clientRepo:  new(MockClientRepository),
		catalogRepo: new(MockCatalogRepository),
		auditRepo:   new(MockAuditRepository),
		classifier:  new(MockClassifier),
		store:       newFakeIdempotencyStore(),
	}
	logger := zap.NewNop()
	resolver := appclient.NewIdentityResolver(f.clientRepo, appclient.DefaultFuzzyThreshold, logger)
	reorder := NewReorderService(f.orderRepo, resolver, DefaultConfidenceFloor, logger)
	f.svc = NewIngestionService(
		f.orderRepo, f.catalogRepo, f.auditRepo,
		resolver, reorder, f.classifier,
		f.store, shared.DefaultIdempotencyConfig(), logger,
	)
	return f
}

func (f *gateFixture) expectNewClient(identity *client.Identity) {
	f.clientRepo.On("FindByNormalizedName", mock.Anything, identity.NameNormalized).Return(nil, shared.ErrNotFound)
	f.clientRepo.On("Create", mock.Anything, mock.AnythingOfType("*client.Identity")).Return(nil)
}

func validDraft() *order.Draft {
	return &order.Draft{
		Channel:           order.ChannelMail,
		OrderNumber:       "CMD-2024-001",
		ExternalMessageID: "msg-42",
		CustomerName:      "Boulangerie Atlas",
		CustomerEmail:     "contact@atlas.ma",
		ProductType:       "Sachets fond plat",
		ProductNature:     "kraft blanchi 100g laize 28 mondi",
		Quantity:          dec("500"),
		Unit:              "kg",
		Confidence:        92,
		IsOrder:           true,
	}
}

func TestIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty drafts", func(t *testing.T) {
		f := newGateFixture()
		_, err := f.svc.Ingest(ctx, &order.Draft{IsOrder: true})
		assert.ErrorIs(t, err, shared.ErrEmptyDraft)

		_, err = f.svc.Ingest(ctx, nil)
		assert.ErrorIs(t, err, shared.ErrEmptyDraft)
	})

	t.Run("rejects drafts the extractor did not flag as orders", func(t *testing.T) {
		f := newGateFixture()
		draft := validDraft()
		draft.IsOrder = false
		_, err := f.svc.Ingest(ctx, draft)
		assert.ErrorIs(t, err, shared.ErrNotAnOrder)
	})

	t.Run("creates a canonical order from a fresh draft", func(t *testing.T) {
		f := newGateFixture()
		draft := validDraft()

		identity, err := client.NewIdentity(draft.CustomerName, draft.CustomerEmail, "")
		require.NoError(t, err)
		f.expectNewClient(identity)
		f.classifier.On("Classify", mock.Anything, draft).Return(order.ClassifierResult{}, nil)

		product := catalog.Product{BaseEntity: shared.NewBaseEntity(), Type: "Sachets fond plat", Code: "SFP"}
		f.catalogRepo.On("FindByTypeLike", mock.Anything, "Sachets fond plat").Return(&product, nil)

		var created *order.Order
		f.orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*order.Order) }).
			Return(nil)
		f.auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.Ingest(ctx, draft)
		require.NoError(t, err)
		assert.True(t, resp.Created)
		assert.Equal(t, "CMD-2024-001", resp.OrderNumber)
		assert.Equal(t, "KB100L28MON", resp.ArticleCode)
		require.NotNil(t, resp.ProductID)
		assert.Equal(t, product.ID, *resp.ProductID)

		require.NotNil(t, created)
		assert.Equal(t, order.StatusPending, created.Status)
		assert.True(t, created.RemainingToDeliver.Equal(decimal.RequireFromString("500")))

		// Both idempotency keys were recorded after the insert.
		hit, _ := f.store.IsProcessed(ctx, "order_number:CMD-2024-001")
		assert.True(t, hit)
		hit, _ = f.store.IsProcessed(ctx, "message_id:msg-42")
		assert.True(t, hit)
	})

	t.Run("duplicate insert resolves to the existing order", func(t *testing.T) {
		f := newGateFixture()
		draft := validDraft()

		identity, err := client.NewIdentity(draft.CustomerName, "", "")
		require.NoError(t, err)
		winning := order.NewFromDraft(draft, identity.ID, "KB100L28MON", nil)

		f.clientRepo.On("FindByNormalizedName", mock.Anything, identity.NameNormalized).Return(identity, nil)
		f.clientRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
		f.classifier.On("Classify", mock.Anything, draft).Return(order.ClassifierResult{}, nil)
		f.catalogRepo.On("FindByTypeLike", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		f.orderRepo.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)
		f.orderRepo.On("FindByOrderNumber", mock.Anything, "CMD-2024-001").Return(winning, nil)

		resp, err := f.svc.Ingest(ctx, draft)
		require.NoError(t, err)
		assert.False(t, resp.Created)
		assert.Equal(t, winning.ID, resp.OrderID)
		f.auditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("cache hit short-circuits before any write", func(t *testing.T) {
		f := newGateFixture()
		draft := validDraft()

		identity, err := client.NewIdentity(draft.CustomerName, "", "")
		require.NoError(t, err)
		existing := order.NewFromDraft(draft, identity.ID, "KB100L28MON", nil)

		f.store.keys["order_number:CMD-2024-001"] = true
		f.orderRepo.On("FindByOrderNumber", mock.Anything, "CMD-2024-001").Return(existing, nil)

		resp, err := f.svc.Ingest(ctx, draft)
		require.NoError(t, err)
		assert.False(t, resp.Created)
		assert.Equal(t, existing.ID, resp.OrderID)
		f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.clientRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("stale cache hit falls through to the database gate", func(t *testing.T) {
		f := newGateFixture()
		draft := validDraft()

		identity, err := client.NewIdentity(draft.CustomerName, draft.CustomerEmail, "")
		require.NoError(t, err)
		f.store.keys["order_number:CMD-2024-001"] = true

		f.orderRepo.On("FindByOrderNumber", mock.Anything, "CMD-2024-001").Return(nil, shared.ErrNotFound)
		f.orderRepo.On("FindByExternalMessageID", mock.Anything, "msg-42").Return(nil, shared.ErrNotFound)
		f.expectNewClient(identity)
		f.classifier.On("Classify", mock.Anything, draft).Return(order.ClassifierResult{}, nil)
		f.catalogRepo.On("FindByTypeLike", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
		f.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.Ingest(ctx, draft)
		require.NoError(t, err)
		assert.True(t, resp.Created)
	})

	t.Run("classifier failure degrades to a regular order", func(t *testing.T) {
		f := newGateFixture()
		draft := validDraft()

		identity, err := client.NewIdentity(draft.CustomerName, draft.CustomerEmail, "")
		require.NoError(t, err)
		f.expectNewClient(identity)
		f.classifier.On("Classify", mock.Anything, draft).
			Return(order.ClassifierResult{}, errors.New("timeout"))
		f.catalogRepo.On("FindByTypeLike", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
		f.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.Ingest(ctx, draft)
		require.NoError(t, err)
		assert.True(t, resp.Created)
		assert.False(t, resp.ReorderInferred)
	})

	t.Run("chat draft without a name synthesizes a WhatsApp placeholder", func(t *testing.T) {
		f := newGateFixture()
		draft := validDraft()
		draft.Channel = order.ChannelChat
		draft.CustomerName = ""
		draft.CustomerEmail = ""
		draft.CustomerPhone = "+212600000001"

		f.clientRepo.On("FindByPhone", mock.Anything, "+212600000001").Return(nil, shared.ErrNotFound)
		f.clientRepo.On("Create", mock.Anything, mock.AnythingOfType("*client.Identity")).Return(nil)
		f.classifier.On("Classify", mock.Anything, draft).Return(order.ClassifierResult{}, nil)
		f.catalogRepo.On("FindByTypeLike", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
		f.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.Ingest(ctx, draft)
		require.NoError(t, err)
		assert.True(t, resp.Created)
		assert.Equal(t, "Client WhatsApp +212600000001", resp.ClientName)
		assert.True(t, resp.ClientCreated)
	})

	t.Run("mail draft without a name falls back to the sender local part", func(t *testing.T) {
		f := newGateFixture()
		draft := validDraft()
		draft.CustomerName = ""
		draft.CustomerEmail = "atlas.commandes@gmail.com"

		f.clientRepo.On("FindByNormalizedName", mock.Anything, "atlas commandes").Return(nil, shared.ErrNotFound)
		f.clientRepo.On("Create", mock.Anything, mock.AnythingOfType("*client.Identity")).Return(nil)
		f.classifier.On("Classify", mock.Anything, draft).Return(order.ClassifierResult{}, nil)
		f.catalogRepo.On("FindByTypeLike", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
		f.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.Ingest(ctx, draft)
		require.NoError(t, err)
		assert.Equal(t, "atlas.commandes", resp.ClientName)
	})
}

func TestSelectArticleCode(t *testing.T) {
	f := newGateFixture()

	t.Run("explicit draft code wins", func(t *testing.T) {
		draft := validDraft()
		draft.ArticleCode = "KE90L25"
		assert.Equal(t, "KE90L25", f.svc.selectArticleCode(draft))
	})

	t.Run("suggestion from product description", func(t *testing.T) {
		draft := validDraft()
		assert.Equal(t, "KB100L28MON", f.svc.selectArticleCode(draft))
	})

	t.Run("structured hints rescue a bare suggestion", func(t *testing.T) {
		draft := validDraft()
		draft.ProductNature = "commande habituelle"
		draft.ProductType = ""
		draft.Grammage = 90
		draft.Laize = 25
		assert.Equal(t, "KE90L25", f.svc.selectArticleCode(draft))
	})

	t.Run("nothing usable falls back to the default code", func(t *testing.T) {
		draft := validDraft()
		draft.ProductNature = ""
		draft.ProductType = "carton"
		assert.Equal(t, "KE80", f.svc.selectArticleCode(draft))
	})
}
