package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewFromDraft(t *testing.T) {
	clientID := uuid.New()

	t.Run("derives remaining quantity at creation", func(t *testing.T) {
		draft := &Draft{
			Channel:           ChannelMail,
			OrderNumber:       "CMD-2024-001",
			ExternalMessageID: "msg-42",
			ProductType:       "Sachets fond plat",
			Quantity:          dec("500"),
			QuantityDelivered: dec("120"),
			Unit:              "kg",
			UnitPrice:         dec("12.50"),
			TotalPrice:        dec("6250"),
			Currency:          "MAD",
			Confidence:        92,
		}

		o := NewFromDraft(draft, clientID, "KE80", nil)
		assert.Equal(t, "CMD-2024-001", o.OrderNumber)
		assert.Equal(t, "msg-42", o.ExternalMessageID)
		assert.Equal(t, clientID, o.ClientID)
		assert.Equal(t, "KE80", o.ArticleCode)
		assert.Equal(t, StatusPending, o.Status)
		assert.True(t, o.RemainingToDeliver.Equal(decimal.RequireFromString("380")))
	})

	t.Run("defaults channel and currency", func(t *testing.T) {
		o := NewFromDraft(&Draft{OrderNumber: "CMD-1"}, clientID, "KE80", nil)
		assert.Equal(t, ChannelOther, o.Channel)
		assert.Equal(t, DefaultCurrency, o.Currency)
		assert.True(t, o.Quantity.IsZero())
		assert.True(t, o.RemainingToDeliver.IsZero())
	})

	t.Run("carries reorder provenance", func(t *testing.T) {
		draft := &Draft{OrderNumber: "CMD-2"}
		draft.MarkBackfilled(FieldQuantity)
		draft.MarkBackfilled(FieldUnit)

		o := NewFromDraft(draft, clientID, "KE80", nil)
		assert.True(t, o.ReorderInferred)
		assert.Equal(t, []string{FieldQuantity, FieldUnit}, o.BackfilledFieldList())
	})
}

func TestSetQuantities(t *testing.T) {
	clientID := uuid.New()

	t.Run("re-derives remaining", func(t *testing.T) {
		o := NewFromDraft(&Draft{Quantity: dec("100")}, clientID, "KE80", nil)

		require.NoError(t, o.SetQuantities(nil, dec("30")))
		assert.True(t, o.RemainingToDeliver.Equal(decimal.RequireFromString("70")))

		require.NoError(t, o.SetQuantities(dec("200"), nil))
		assert.True(t, o.RemainingToDeliver.Equal(decimal.RequireFromString("170")))
	})

	t.Run("rejects negative quantities", func(t *testing.T) {
		o := NewFromDraft(&Draft{Quantity: dec("100")}, clientID, "KE80", nil)
		assert.Error(t, o.SetQuantities(dec("-1"), nil))
		assert.Error(t, o.SetQuantities(nil, dec("-1")))
	})

	t.Run("over-delivery yields negative remaining", func(t *testing.T) {
		o := NewFromDraft(&Draft{Quantity: dec("100")}, clientID, "KE80", nil)
		require.NoError(t, o.SetQuantities(nil, dec("130")))
		assert.True(t, o.RemainingToDeliver.Equal(decimal.RequireFromString("-30")))
	})
}

func TestStatusTransitions(t *testing.T) {
	clientID := uuid.New()

	t.Run("validate stamps reviewer and time", func(t *testing.T) {
		o := NewFromDraft(&Draft{OrderNumber: "CMD-3"}, clientID, "KE80", nil)
		require.NoError(t, o.Validate("ops@tecpap.ma"))
		assert.Equal(t, StatusValidated, o.Status)
		assert.Equal(t, "ops@tecpap.ma", o.ValidatedBy)
		require.NotNil(t, o.ValidatedAt)

		assert.Error(t, o.Validate("ops@tecpap.ma"))
	})

	t.Run("reject is idempotent in error", func(t *testing.T) {
		o := NewFromDraft(&Draft{OrderNumber: "CMD-4"}, clientID, "KE80", nil)
		require.NoError(t, o.Reject())
		assert.Equal(t, StatusRejected, o.Status)
		assert.Error(t, o.Reject())
	})
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusValidated))
	assert.True(t, ValidStatus(StatusRejected))
	assert.False(t, ValidStatus("archived"))
}

func TestDraft(t *testing.T) {
	t.Run("empty detection", func(t *testing.T) {
		assert.True(t, (&Draft{}).IsEmpty())
		assert.True(t, (&Draft{Confidence: 50}).IsEmpty())
		assert.False(t, (&Draft{CustomerPhone: "+212600000001"}).IsEmpty())
		assert.False(t, (&Draft{Quantity: dec("1")}).IsEmpty())
	})

	t.Run("idempotency key detection", func(t *testing.T) {
		assert.False(t, (&Draft{}).HasIdempotencyKey())
		assert.True(t, (&Draft{OrderNumber: "CMD-1"}).HasIdempotencyKey())
		assert.True(t, (&Draft{ExternalMessageID: "msg-1"}).HasIdempotencyKey())
	})
}
