package client

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/tecpap/backend/internal/domain/client"
	"github.com/tecpap/backend/internal/domain/shared"
)

// DefaultFuzzyThreshold is the minimum token overlap score for a fuzzy
// match to bind a draft to an existing identity.
const DefaultFuzzyThreshold = 0.3

// IdentityResolver binds incoming drafts to canonical client identities.
// Resolution never fails a draft outright: a draft with no usable contact
// data still resolves, to a placeholder identity.
type IdentityResolver struct {
	clientRepo     client.Repository
	fuzzyThreshold float64
	logger         *zap.Logger
}

// NewIdentityResolver creates a new IdentityResolver
func NewIdentityResolver(clientRepo client.Repository, fuzzyThreshold float64, logger *zap.Logger) *IdentityResolver {
	if fuzzyThreshold <= 0 {
		fuzzyThreshold = DefaultFuzzyThreshold
	}
	return &IdentityResolver{
		clientRepo:     clientRepo,
		fuzzyThreshold: fuzzyThreshold,
		logger:         logger,
	}
}

// ResolveOrCreate resolves a raw customer name plus optional contact fields
// to an identity, creating one when nothing matches. Returns the identity
// and whether it was created by this call.
//
// Placeholder names (empty, "Client WhatsApp ...") never match or create
// real identities by name; they resolve through phone or email instead.
// Concurrent creation of the same name is resolved by the unique index on
// the normalized name: the loser re-fetches the winner's row.
func (r *IdentityResolver) ResolveOrCreate(ctx context.Context, name, email, phone string) (*client.Identity, bool, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	if client.IsPlaceholderName(name) {
		return r.resolvePlaceholder(ctx, name, email, phone)
	}

	// Exact match on the normalized name.
	normalized := client.NormalizeName(name)
	existing, err := r.clientRepo.FindByNormalizedName(ctx, normalized)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}
	if existing != nil {
		r.enrich(ctx, existing, email, phone)
		return existing, false, nil
	}

	// No fuzzy matching here: a new name gets a new identity. Fuzzy
	// lookup is reserved for reorder inference, which never creates.
	identity, err := client.NewIdentity(name, email, phone)
	if err != nil {
		return nil, false, err
	}
	if err := r.clientRepo.Create(ctx, identity); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost the race; the winner's row is authoritative.
			winner, ferr := r.clientRepo.FindByNormalizedName(ctx, normalized)
			if ferr != nil {
				return nil, false, ferr
			}
			r.enrich(ctx, winner, email, phone)
			return winner, false, nil
		}
		return nil, false, err
	}

	r.logger.Info("created client identity",
		zap.String("name", identity.Name),
		zap.String("id", identity.ID.String()))
	return identity, true, nil
}

// FuzzyFind returns the best identity whose name overlaps the search name
// above the threshold, or nil when nothing qualifies. Placeholder identities
// never participate. Candidates are scanned in first-seen order and ties
// keep the earliest, so resolution is deterministic.
func (r *IdentityResolver) FuzzyFind(ctx context.Context, name string) (*client.Identity, float64, error) {
	searchTokens := client.Tokenize(name)
	if len(searchTokens) == 0 {
		return nil, 0, nil
	}

	candidates, err := r.clientRepo.FindAllOrdered(ctx)
	if err != nil {
		return nil, 0, err
	}

	var best *client.Identity
	bestScore := 0.0
	for i := range candidates {
		c := &candidates[i]
		if c.Placeholder {
			continue
		}
		score := client.TokenOverlapScore(searchTokens, c.NameNormalized)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}

	if best == nil || bestScore < r.fuzzyThreshold {
		return nil, 0, nil
	}
	return best, bestScore, nil
}

// resolvePlaceholder handles drafts whose name is unusable. Contact fields
// are tried in order of reliability: phone, then email. When neither binds,
// a placeholder identity is created so the order still has an owner.
func (r *IdentityResolver) resolvePlaceholder(ctx context.Context, name, email, phone string) (*client.Identity, bool, error) {
	if phone != "" {
		existing, err := r.clientRepo.FindByPhone(ctx, phone)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, false, err
		}
		if existing != nil {
			r.enrich(ctx, existing, email, "")
			return existing, false, nil
		}
	}
	if email != "" {
		existing, err := r.clientRepo.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, false, err
		}
		if existing != nil {
			r.enrich(ctx, existing, "", phone)
			return existing, false, nil
		}
	}

	if name == "" || client.NormalizeName(name) == "" {
		name = client.PlaceholderFromPhone(phone)
	}

	identity, err := client.NewIdentity(name, email, phone)
	if err != nil {
		return nil, false, err
	}
	if err := r.clientRepo.Create(ctx, identity); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			winner, ferr := r.clientRepo.FindByNormalizedName(ctx, identity.NameNormalized)
			if ferr != nil {
				return nil, false, ferr
			}
			return winner, false, nil
		}
		return nil, false, err
	}

	r.logger.Info("created placeholder identity",
		zap.String("name", identity.Name),
		zap.String("id", identity.ID.String()))
	return identity, true, nil
}

// enrich backfills contact fields on a matched identity. Failures are
// logged, not propagated: enrichment must never fail a resolution.
func (r *IdentityResolver) enrich(ctx context.Context, identity *client.Identity, email, phone string) {
	if !identity.FillContact(email, phone) {
		return
	}
	if err := r.clientRepo.Save(ctx, identity); err != nil {
		r.logger.Warn("failed to enrich client contact",
			zap.String("id", identity.ID.String()),
			zap.Error(err))
	}
}
