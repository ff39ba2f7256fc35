package usecase

import (
	"context"

	"signet/internal/domain"
)

type ProvisionIdentityRequest struct {
	Username   string
	Credential string
	Origin     string
}

// ProvisionIdentity creates an identity together with its key pair. The
// credential is hashed before anything is persisted, key generation failure
// aborts the whole request, and a store failure after key generation leaves
// no orphaned key material behind.
type ProvisionIdentity struct {
	Identities IdentityRepository
	Keys       KeyProvisioner
	Hasher     CredentialHasher
	Policy     PolicyEngine
}

func (uc *ProvisionIdentity) Execute(ctx context.Context, req ProvisionIdentityRequest) (*domain.Identity, error) {
	if req.Username == "" || req.Credential == "" {
		return nil, domain.ErrInvalidRequest
	}

	if uc.Policy != nil {
		result, err := uc.Policy.Evaluate(ctx, domain.PolicyInput{
			Operation: "provision_identity",
			Username:  req.Username,
			Origin:    req.Origin,
		})
		if err != nil {
			return nil, err
		}
		if !result.Allow {
			return nil, domain.ErrPolicyDenied
		}
	}

	credentialHash, err := uc.Hasher.Hash(req.Credential)
	if err != nil {
		return nil, err
	}

	pair, err := uc.Keys.Provision()
	if err != nil {
		return nil, err
	}

	created, err := uc.Identities.Create(ctx, domain.Identity{
		Username:       req.Username,
		CredentialHash: credentialHash,
		PublicKeyPEM:   pair.PublicKeyPEM,
		PrivateKeyPEM:  pair.PrivateKeyPEM,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
