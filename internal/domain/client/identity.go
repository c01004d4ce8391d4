package client

import (
	"fmt"
	"strings"

	"github.com/tecpap/backend/internal/domain/shared"
)

// FallbackName is used when a draft carries no name, phone, or email at all.
const FallbackName = "Client Inconnu"

// placeholderPrefixes are channel-synthesized names that must never be
// treated as genuine customer names during resolution.
var placeholderPrefixes = []string{
	"client whatsapp",
	"client inconnu",
}

// Identity is the canonical customer record the intake pipeline binds
// orders to. It is the aggregate root for client resolution.
type Identity struct {
	shared.BaseEntity
	Name           string
	NameNormalized string
	Email          string
	Phone          string
	Placeholder    bool
}

// NewIdentity creates a new client identity from a display name and
// optional contact fields. The name is kept verbatim for display; its
// normalized form is derived for uniqueness and matching.
func NewIdentity(name, email, phone string) (*Identity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}

	return &Identity{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		NameNormalized: NormalizeName(name),
		Email:          strings.ToLower(strings.TrimSpace(email)),
		Phone:          strings.TrimSpace(phone),
		Placeholder:    IsPlaceholderName(name),
	}, nil
}

// FillContact backfills contact fields that are still empty. Existing
// values are never overwritten; identities are only ever enriched.
// Returns true if anything changed.
func (i *Identity) FillContact(email, phone string) bool {
	changed := false
	if i.Email == "" && email != "" {
		i.Email = strings.ToLower(strings.TrimSpace(email))
		changed = true
	}
	if i.Phone == "" && phone != "" {
		i.Phone = strings.TrimSpace(phone)
		changed = true
	}
	if changed {
		i.Touch()
	}
	return changed
}

// Tokens returns the identity's normalized name token set.
func (i *Identity) Tokens() []string {
	return strings.Fields(i.NameNormalized)
}

// IsPlaceholderName reports whether a raw name is empty or one of the
// channel-synthesized placeholders (e.g. a name built from a phone number).
func IsPlaceholderName(raw string) bool {
	normalized := NormalizeName(raw)
	if normalized == "" {
		return true
	}
	for _, prefix := range placeholderPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}
	return false
}

// PlaceholderFromPhone synthesizes a display name for a chat contact that
// sent no usable name.
func PlaceholderFromPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return FallbackName
	}
	return fmt.Sprintf("Client WhatsApp %s", phone)
}
