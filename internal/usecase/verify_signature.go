package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"signet/internal/domain"
)

type VerifySignatureRequest struct {
	SignatureID     string
	RequesterOrigin string
}

// VerifySignature recomputes the digest of the stored text and checks the
// stored signature value against it with the signatory's public key. An
// audit entry is appended for both outcomes; the append is best-effort and
// its failure never blocks the verdict.
type VerifySignature struct {
	Signatures SignatureRepository
	Identities IdentityRepository
	Crypto     CryptoService
	Audit      VerificationLogRepository
	Clock      Clock
}

func (uc *VerifySignature) Execute(ctx context.Context, req VerifySignatureRequest) (*domain.VerificationResult, error) {
	if req.SignatureID == "" {
		return nil, domain.ErrSignatureNotFound
	}

	sig, err := uc.Signatures.GetByID(ctx, req.SignatureID)
	if err != nil {
		return nil, err
	}

	// A signature whose owning identity is gone is indistinguishable from
	// one that never existed.
	owner, err := uc.Identities.GetByID(ctx, sig.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrSignatureNotFound
		}
		return nil, err
	}

	digest := uc.Crypto.DigestText(sig.OriginalText)
	valid := uc.Crypto.VerifyDigest(owner.PublicKeyPEM, digest, sig.SignatureValue)

	uc.appendAudit(ctx, sig.ID, valid, req.RequesterOrigin)

	if !valid {
		return &domain.VerificationResult{Status: domain.VerificationInvalid}, nil
	}
	return &domain.VerificationResult{
		Status:            domain.VerificationValid,
		SignatoryUsername: owner.Username,
		Algorithm:         sig.Algorithm,
		SignedAt:          sig.CreatedAt,
	}, nil
}

func (uc *VerifySignature) appendAudit(ctx context.Context, signatureID string, valid bool, origin string) {
	if uc.Audit == nil {
		return
	}
	err := uc.Audit.Append(ctx, domain.VerificationLogEntry{
		SignatureID:    signatureID,
		WasValid:       valid,
		VerifierOrigin: origin,
		VerifiedAt:     uc.now(),
	})
	if err != nil {
		log.Printf("verification audit append failed for %s: %v", signatureID, err)
	}
}

func (uc *VerifySignature) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock().UTC()
	}
	return time.Now().UTC()
}
