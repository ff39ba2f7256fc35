package usecase

import (
	"context"
	"time"

	"signet/internal/domain"
)

type Clock func() time.Time

// IDGenerator yields a fresh random identifier with negligible collision
// probability. Uniqueness is enforced by the store, not here.
type IDGenerator func() (string, error)

type IdentityRepository interface {
	Create(ctx context.Context, identity domain.Identity) (domain.Identity, error)
	GetByID(ctx context.Context, id int64) (*domain.Identity, error)
	GetByUsername(ctx context.Context, username string) (*domain.Identity, error)
}

type SignatureRepository interface {
	Create(ctx context.Context, sig domain.Signature) error
	GetByID(ctx context.Context, id string) (*domain.Signature, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Signature, error)
}

type VerificationLogRepository interface {
	Append(ctx context.Context, entry domain.VerificationLogEntry) error
}

type KeyProvisioner interface {
	Provision() (domain.KeyPair, error)
}

type CryptoService interface {
	DigestText(text string) []byte
	SignDigest(privateKeyPEM string, digest []byte) (string, error)
	VerifyDigest(publicKeyPEM string, digest []byte, signatureHex string) bool
}

type CredentialHasher interface {
	Hash(credential string) (string, error)
	Compare(hash, credential string) error
}

type PolicyEngine interface {
	Evaluate(ctx context.Context, input domain.PolicyInput) (domain.PolicyResult, error)
}
