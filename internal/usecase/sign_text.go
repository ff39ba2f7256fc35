package usecase

import (
	"context"
	"fmt"
	"time"

	"signet/internal/domain"
)

type SignTextRequest struct {
	IdentityID int64
	Text       string
	Origin     string
}

// SignText borrows the identity's private key for the duration of one call:
// digest the text, sign the digest, persist a single new record. The text
// goes into the record verbatim so re-hashing at verification time is
// reproducible byte for byte.
type SignText struct {
	Identities IdentityRepository
	Signatures SignatureRepository
	Crypto     CryptoService
	Policy     PolicyEngine
	NewID      IDGenerator
	Clock      Clock
}

func (uc *SignText) Execute(ctx context.Context, req SignTextRequest) (*domain.Signature, error) {
	if req.IdentityID <= 0 {
		return nil, domain.ErrInvalidRequest
	}

	if uc.Policy != nil {
		result, err := uc.Policy.Evaluate(ctx, domain.PolicyInput{
			Operation: "sign",
			Origin:    req.Origin,
			TextBytes: len(req.Text),
		})
		if err != nil {
			return nil, err
		}
		if !result.Allow {
			return nil, domain.ErrPolicyDenied
		}
	}

	identity, err := uc.Identities.GetByID(ctx, req.IdentityID)
	if err != nil {
		return nil, err
	}

	digest := uc.Crypto.DigestText(req.Text)
	value, err := uc.Crypto.SignDigest(identity.PrivateKeyPEM, digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSigningFailure, err)
	}

	id, err := uc.NewID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSigningFailure, err)
	}

	sig := domain.Signature{
		ID:             id,
		OwnerID:        identity.ID,
		OriginalText:   req.Text,
		SignatureValue: value,
		Algorithm:      domain.AlgorithmSHA256RSA,
		CreatedAt:      uc.now(),
	}
	if err := uc.Signatures.Create(ctx, sig); err != nil {
		return nil, err
	}
	return &sig, nil
}

func (uc *SignText) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock().UTC()
	}
	return time.Now().UTC()
}
