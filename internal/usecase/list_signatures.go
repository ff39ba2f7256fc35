package usecase

import (
	"context"

	"signet/internal/domain"
)

const defaultPrefixLen = 64

type ListSignaturesRequest struct {
	Username   string
	Credential string
}

// ListSignatures re-verifies the caller's credential before exposing the
// identity's own signature list, newest first.
type ListSignatures struct {
	Identities IdentityRepository
	Signatures SignatureRepository
	Hasher     CredentialHasher
	PrefixLen  int
}

func (uc *ListSignatures) Execute(ctx context.Context, req ListSignaturesRequest) ([]domain.SignatureSummary, error) {
	if req.Username == "" || req.Credential == "" {
		return nil, domain.ErrInvalidRequest
	}

	identity, err := uc.Identities.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if err := uc.Hasher.Compare(identity.CredentialHash, req.Credential); err != nil {
		return nil, err
	}

	sigs, err := uc.Signatures.ListByOwner(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	prefixLen := uc.PrefixLen
	if prefixLen <= 0 {
		prefixLen = defaultPrefixLen
	}
	out := make([]domain.SignatureSummary, 0, len(sigs))
	for _, sig := range sigs {
		out = append(out, domain.SignatureSummary{
			ID:         sig.ID,
			TextPrefix: textPrefix(sig.OriginalText, prefixLen),
			CreatedAt:  sig.CreatedAt,
		})
	}
	return out, nil
}

// textPrefix truncates on rune boundaries so a multi-byte character is
// never split mid-sequence.
func textPrefix(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
