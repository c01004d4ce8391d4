package order

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Channel identifies the transport a draft arrived on.
type Channel string

const (
	ChannelMail  Channel = "mail"
	ChannelChat  Channel = "chat"
	ChannelOther Channel = "other"
)

// Draft is the unvalidated, partially populated order record produced by
// the external extraction step. Nothing in it is guaranteed present except
// the validity flag; optional numerics are pointers so that "absent" and
// "zero" stay distinct for reorder backfill.
type Draft struct {
	Channel Channel `json:"channel"`

	// Idempotency keys supplied by the transport layer.
	ExternalMessageID string `json:"email_id,omitempty"`
	OrderNumber       string `json:"numero_commande,omitempty"`

	CustomerName  string `json:"entreprise_cliente,omitempty"`
	CustomerEmail string `json:"email_from,omitempty"`
	CustomerPhone string `json:"telephone,omitempty"`

	ProductType   string `json:"type_produit,omitempty"`
	ProductNature string `json:"nature_produit,omitempty"`
	ArticleCode   string `json:"code_article,omitempty"`

	// Structured paper attribute hints, when extraction produced them.
	PaperType    string `json:"type_papier,omitempty"`
	Grammage     int    `json:"grammage,omitempty"`
	Laize        int    `json:"laize,omitempty"`
	SupplierHint string `json:"fournisseur,omitempty"`

	Quantity          *decimal.Decimal `json:"quantite,omitempty"`
	Unit              string           `json:"unite,omitempty"`
	QuantityDelivered *decimal.Decimal `json:"quantite_livree,omitempty"`

	UnitPrice  *decimal.Decimal `json:"prix_unitaire,omitempty"`
	TotalPrice *decimal.Decimal `json:"prix_total,omitempty"`
	Currency   string           `json:"devise,omitempty"`

	OrderDate    string `json:"date_commande,omitempty"`
	DeliveryDate string `json:"date_livraison,omitempty"`
	ExtraInfo    string `json:"informations_supplementaires,omitempty"`

	SourceSubject string `json:"email_subject,omitempty"`

	Confidence int  `json:"confiance"`
	IsOrder    bool `json:"est_bon_commande"`

	// Provenance set by reorder inference, never by extraction.
	ReorderInferred  bool     `json:"-"`
	BackfilledFields []string `json:"-"`
}

// Backfillable field names, matching the extraction contract's JSON keys.
const (
	FieldProductType   = "type_produit"
	FieldProductNature = "nature_produit"
	FieldQuantity      = "quantite"
	FieldUnit          = "unite"
	FieldUnitPrice     = "prix_unitaire"
	FieldTotalPrice    = "prix_total"
	FieldCurrency      = "devise"
)

// IsEmpty reports whether the draft carries no usable data at all: no
// idempotency key, no customer hint, and no product content.
func (d *Draft) IsEmpty() bool {
	return strings.TrimSpace(d.OrderNumber) == "" &&
		strings.TrimSpace(d.ExternalMessageID) == "" &&
		strings.TrimSpace(d.CustomerName) == "" &&
		strings.TrimSpace(d.CustomerEmail) == "" &&
		strings.TrimSpace(d.CustomerPhone) == "" &&
		strings.TrimSpace(d.ProductType) == "" &&
		strings.TrimSpace(d.ProductNature) == "" &&
		d.Quantity == nil
}

// HasIdempotencyKey reports whether the transport supplied any key usable
// for deduplication.
func (d *Draft) HasIdempotencyKey() bool {
	return strings.TrimSpace(d.OrderNumber) != "" || strings.TrimSpace(d.ExternalMessageID) != ""
}

// MarkBackfilled records that a field value was copied from order history.
func (d *Draft) MarkBackfilled(field string) {
	d.BackfilledFields = append(d.BackfilledFields, field)
	d.ReorderInferred = true
}

// ClassifierResult is the opaque output of the external reorder-intent
// classifier. A zero value means "not a reorder", which is also the degraded
// result when the classifier call fails or times out.
type ClassifierResult struct {
	IsReorder     bool   `json:"is_reorder"`
	CandidateName string `json:"candidate_name,omitempty"`
	Confidence    int    `json:"confidence"`
}
