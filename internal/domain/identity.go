package domain

import "time"

// Identity owns exactly one key pair, generated atomically with the record.
// The private key never crosses the process boundary.
type Identity struct {
	ID             int64
	Username       string
	CredentialHash string
	PublicKeyPEM   string
	PrivateKeyPEM  string
	CreatedAt      time.Time
}

// KeyPair holds a freshly provisioned asymmetric key pair in PEM encoding:
// SPKI for the public half, PKCS#8 for the private half.
type KeyPair struct {
	PublicKeyPEM  string
	PrivateKeyPEM string
}
