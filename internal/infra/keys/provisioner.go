package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"signet/internal/domain"
)

const defaultBits = 2048

// Provisioner generates one RSA key pair per identity creation. A failure
// here aborts the enclosing creation entirely; there are no retries and no
// partial identity is ever persisted.
type Provisioner struct {
	Bits int
}

func NewProvisioner() *Provisioner {
	return &Provisioner{Bits: defaultBits}
}

func (p *Provisioner) Provision() (domain.KeyPair, error) {
	bits := p.Bits
	if bits <= 0 {
		bits = defaultBits
	}
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("%w: %v", domain.ErrKeyGeneration, err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("%w: %v", domain.ErrKeyGeneration, err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("%w: %v", domain.ErrKeyGeneration, err)
	}

	return domain.KeyPair{
		PublicKeyPEM:  string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})),
		PrivateKeyPEM: string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})),
	}, nil
}
