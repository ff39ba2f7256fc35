package crypto

import (
	stdcrypto "crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
)

type Service struct{}

// DigestText computes the SHA-256 digest of the exact byte sequence of text.
// No normalization happens here: the same bytes must produce the same digest
// at signing and verification time.
func (s *Service) DigestText(text string) []byte {
	sum := sha256.Sum256([]byte(text))
	return sum[:]
}

// SignDigest signs a text digest with the PKCS#8-encoded RSA private key and
// returns the hex-encoded signature. The digest is hashed once more inside
// the PKCS#1 v1.5 primitive; VerifyDigest mirrors that exactly.
func (s *Service) SignDigest(privateKeyPEM string, digest []byte) (string, error) {
	key, err := parsePrivateKey(privateKeyPEM)
	if err != nil {
		return "", err
	}
	hashed := sha256.Sum256(digest)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, stdcrypto.SHA256, hashed[:])
	if err != nil {
		return "", fmt.Errorf("signing digest: %w", err)
	}
	return hex.EncodeToString(sig), nil
}

// VerifyDigest checks a hex-encoded signature against a text digest using
// the SPKI-encoded RSA public key. It is a pure check with two outcomes:
// any malformed input — bad PEM, bad hex, truncated signature — is an
// invalid signature, never an error.
func (s *Service) VerifyDigest(publicKeyPEM string, digest []byte, signatureHex string) bool {
	pub, err := parsePublicKey(publicKeyPEM)
	if err != nil {
		return false
	}
	sig, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false
	}
	hashed := sha256.Sum256(digest)
	return rsa.VerifyPKCS1v15(pub, stdcrypto.SHA256, hashed[:], sig) == nil
}

func parsePrivateKey(privateKeyPEM string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(privateKeyPEM))
	if block == nil {
		return nil, errors.New("no PEM block in private key")
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("unexpected private key type %T", parsed)
	}
	return key, nil
}

func parsePublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("no PEM block in public key")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unexpected public key type %T", parsed)
	}
	return pub, nil
}
