package domain

import "time"

// AlgorithmSHA256RSA is the only scheme this service produces: a SHA-256
// digest of the original text signed with RSA PKCS#1 v1.5 over SHA-256,
// hex encoded. The field stays on the record so it is self-describing.
const AlgorithmSHA256RSA = "sha256-rsa"

type Signature struct {
	ID             string
	OwnerID        int64
	OriginalText   string
	SignatureValue string
	Algorithm      string
	CreatedAt      time.Time
}

type VerificationStatus string

const (
	VerificationValid   VerificationStatus = "VALID"
	VerificationInvalid VerificationStatus = "INVALID"
)

// VerificationResult carries signatory details only on a VALID outcome.
// An INVALID verdict must not reveal whose key the check ran against.
type VerificationResult struct {
	Status            VerificationStatus
	SignatoryUsername string
	Algorithm         string
	SignedAt          time.Time
}

// VerificationLogEntry is a historical fact: it survives deletion of the
// signature it refers to and is never updated once written.
type VerificationLogEntry struct {
	ID             int64
	SignatureID    string
	WasValid       bool
	VerifierOrigin string
	VerifiedAt     time.Time
}

type SignatureSummary struct {
	ID         string
	TextPrefix string
	CreatedAt  time.Time
}
