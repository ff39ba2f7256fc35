package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"

	"signet/internal/domain"
	"signet/internal/infra/keys"
)

type memIdentityRepo struct {
	mu          sync.Mutex
	nextID      int64
	identities  map[int64]domain.Identity
	createErr   error
	createCalls int
}

func newMemIdentityRepo() *memIdentityRepo {
	return &memIdentityRepo{identities: make(map[int64]domain.Identity)}
}

func (r *memIdentityRepo) Create(_ context.Context, identity domain.Identity) (domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		return domain.Identity{}, r.createErr
	}
	for _, existing := range r.identities {
		if existing.Username == identity.Username {
			return domain.Identity{}, domain.ErrDuplicateUsername
		}
	}
	r.nextID++
	identity.ID = r.nextID
	r.identities[identity.ID] = identity
	return identity, nil
}

func (r *memIdentityRepo) GetByID(_ context.Context, id int64) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	identity, ok := r.identities[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	return &identity, nil
}

func (r *memIdentityRepo) GetByUsername(_ context.Context, username string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, identity := range r.identities {
		if identity.Username == username {
			out := identity
			return &out, nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *memIdentityRepo) delete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.identities, id)
}

type memSignatureRepo struct {
	mu         sync.Mutex
	signatures map[string]domain.Signature
	createErr  error
}

func newMemSignatureRepo() *memSignatureRepo {
	return &memSignatureRepo{signatures: make(map[string]domain.Signature)}
}

func (r *memSignatureRepo) Create(_ context.Context, sig domain.Signature) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.signatures[sig.ID]; ok {
		return domain.ErrPersistenceConflict
	}
	r.signatures[sig.ID] = sig
	return nil
}

func (r *memSignatureRepo) GetByID(_ context.Context, id string) (*domain.Signature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sig, ok := r.signatures[id]
	if !ok {
		return nil, domain.ErrSignatureNotFound
	}
	return &sig, nil
}

func (r *memSignatureRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.Signature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Signature
	for _, sig := range r.signatures {
		if sig.OwnerID == ownerID {
			out = append(out, sig)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memSignatureRepo) put(sig domain.Signature) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signatures[sig.ID] = sig
}

type memAuditRepo struct {
	mu        sync.Mutex
	entries   []domain.VerificationLogEntry
	appendErr error
}

func (r *memAuditRepo) Append(_ context.Context, entry domain.VerificationLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memAuditRepo) all() []domain.VerificationLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.VerificationLogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

type staticPolicy struct {
	result    domain.PolicyResult
	err       error
	lastInput *domain.PolicyInput
}

func (p *staticPolicy) Evaluate(_ context.Context, input domain.PolicyInput) (domain.PolicyResult, error) {
	p.lastInput = &input
	if p.err != nil {
		return domain.PolicyResult{}, p.err
	}
	return p.result, nil
}

type countingProvisioner struct {
	pair  domain.KeyPair
	err   error
	calls int
}

func (p *countingProvisioner) Provision() (domain.KeyPair, error) {
	p.calls++
	if p.err != nil {
		return domain.KeyPair{}, p.err
	}
	return p.pair, nil
}

type stubHasher struct{}

func (stubHasher) Hash(credential string) (string, error) { return "hashed:" + credential, nil }

func (stubHasher) Compare(hash, credential string) error {
	if hash != "hashed:"+credential {
		return domain.ErrInvalidCredential
	}
	return nil
}

type stubCrypto struct {
	signErr error
	valid   bool
}

func (c *stubCrypto) DigestText(text string) []byte { return []byte("digest:" + text) }

func (c *stubCrypto) SignDigest(string, []byte) (string, error) {
	if c.signErr != nil {
		return "", c.signErr
	}
	return "deadbeef", nil
}

func (c *stubCrypto) VerifyDigest(string, []byte, string) bool { return c.valid }

func testKeyPair(t *testing.T) domain.KeyPair {
	t.Helper()
	// Smaller keys keep the test fast; the scheme is identical.
	pair, err := (&keys.Provisioner{Bits: 1024}).Provision()
	if err != nil {
		t.Fatalf("provisioning key pair: %v", err)
	}
	return pair
}

func staticID(id string) IDGenerator {
	return func() (string, error) { return id, nil }
}
