package db

import "time"

type IdentityModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	Username       string    `gorm:"uniqueIndex;not null"`
	CredentialHash string    `gorm:"not null"`
	PublicKey      string    `gorm:"type:text;not null"`
	PrivateKey     string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (IdentityModel) TableName() string { return "identities" }

type SignatureModel struct {
	ID             string    `gorm:"primaryKey;size:36"`
	OwnerID        int64     `gorm:"index;not null"`
	OriginalText   string    `gorm:"type:text;not null"`
	SignatureValue string    `gorm:"type:text;not null"`
	Algorithm      string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (SignatureModel) TableName() string { return "signatures" }

// VerificationLogModel deliberately has no foreign key on signature_id:
// entries outlive the signatures they describe.
type VerificationLogModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	SignatureID    string    `gorm:"index;size:36;not null"`
	WasValid       bool      `gorm:"not null"`
	VerifierOrigin string    `gorm:"not null"`
	VerifiedAt     time.Time `gorm:"not null"`
}

func (VerificationLogModel) TableName() string { return "verification_logs" }
