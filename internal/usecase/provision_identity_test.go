package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"signet/internal/domain"
)

func TestProvisionIdentityStoresKeyPairWithRecord(t *testing.T) {
	repo := newMemIdentityRepo()
	uc := &ProvisionIdentity{
		Identities: repo,
		Keys:       &countingProvisioner{pair: testKeyPair(t)},
		Hasher:     stubHasher{},
	}

	identity, err := uc.Execute(context.Background(), ProvisionIdentityRequest{
		Username:   "alice",
		Credential: "secret123",
	})
	if err != nil {
		t.Fatalf("provisioning identity: %v", err)
	}
	if identity.ID == 0 {
		t.Fatal("expected assigned identity id")
	}
	if !strings.Contains(identity.PublicKeyPEM, "PUBLIC KEY") {
		t.Fatal("expected public key PEM on the stored identity")
	}
	if !strings.Contains(identity.PrivateKeyPEM, "PRIVATE KEY") {
		t.Fatal("expected private key PEM on the stored identity")
	}
	if identity.CredentialHash == "secret123" || identity.CredentialHash == "" {
		t.Fatal("expected credential to be hashed before persisting")
	}
}

func TestProvisionIdentityDuplicateUsername(t *testing.T) {
	repo := newMemIdentityRepo()
	uc := &ProvisionIdentity{
		Identities: repo,
		Keys:       &countingProvisioner{pair: testKeyPair(t)},
		Hasher:     stubHasher{},
	}

	first, err := uc.Execute(context.Background(), ProvisionIdentityRequest{Username: "bob", Credential: "pw"})
	if err != nil {
		t.Fatalf("provisioning first identity: %v", err)
	}
	_, err = uc.Execute(context.Background(), ProvisionIdentityRequest{Username: "bob", Credential: "pw"})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	stored, err := repo.GetByID(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("reloading first identity: %v", err)
	}
	if stored.PrivateKeyPEM != first.PrivateKeyPEM {
		t.Fatal("expected first identity's key pair to be unaffected")
	}
}

func TestProvisionIdentityKeyGenerationFailureAbortsCreation(t *testing.T) {
	repo := newMemIdentityRepo()
	uc := &ProvisionIdentity{
		Identities: repo,
		Keys:       &countingProvisioner{err: domain.ErrKeyGeneration},
		Hasher:     stubHasher{},
	}

	_, err := uc.Execute(context.Background(), ProvisionIdentityRequest{Username: "carol", Credential: "pw"})
	if !errors.Is(err, domain.ErrKeyGeneration) {
		t.Fatalf("expected ErrKeyGeneration, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("expected no store write after key generation failure, got %d", repo.createCalls)
	}
}

func TestProvisionIdentityPolicyDeny(t *testing.T) {
	provisioner := &countingProvisioner{pair: testKeyPair(t)}
	uc := &ProvisionIdentity{
		Identities: newMemIdentityRepo(),
		Keys:       provisioner,
		Hasher:     stubHasher{},
		Policy:     &staticPolicy{result: domain.PolicyResult{Allow: false}},
	}

	_, err := uc.Execute(context.Background(), ProvisionIdentityRequest{Username: "dave", Credential: "pw"})
	if !errors.Is(err, domain.ErrPolicyDenied) {
		t.Fatalf("expected ErrPolicyDenied, got %v", err)
	}
	if provisioner.calls != 0 {
		t.Fatal("expected no key generation after policy denial")
	}
}

func TestProvisionIdentityRequiresUsernameAndCredential(t *testing.T) {
	uc := &ProvisionIdentity{
		Identities: newMemIdentityRepo(),
		Keys:       &countingProvisioner{pair: testKeyPair(t)},
		Hasher:     stubHasher{},
	}

	for _, req := range []ProvisionIdentityRequest{
		{Username: "", Credential: "pw"},
		{Username: "erin", Credential: ""},
	} {
		if _, err := uc.Execute(context.Background(), req); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest for %+v, got %v", req, err)
		}
	}
}
