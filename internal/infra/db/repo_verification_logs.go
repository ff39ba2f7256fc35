package db

import (
	"context"
	"time"

	"signet/internal/domain"

	"gorm.io/gorm"
)

type VerificationLogRepository struct {
	db *gorm.DB
}

func NewVerificationLogRepository(db *gorm.DB) *VerificationLogRepository {
	return &VerificationLogRepository{db: db}
}

// Append writes one audit row per verification attempt. Entries are never
// updated or deleted.
func (r *VerificationLogRepository) Append(ctx context.Context, entry domain.VerificationLogEntry) error {
	if r.db == nil {
		return errDBUnavailable
	}
	verifiedAt := entry.VerifiedAt
	if verifiedAt.IsZero() {
		verifiedAt = time.Now().UTC()
	}
	model := VerificationLogModel{
		SignatureID:    entry.SignatureID,
		WasValid:       entry.WasValid,
		VerifierOrigin: entry.VerifierOrigin,
		VerifiedAt:     verifiedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *VerificationLogRepository) ListBySignature(ctx context.Context, signatureID string) ([]domain.VerificationLogEntry, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []VerificationLogModel
	err := r.db.WithContext(ctx).
		Where("signature_id = ?", signatureID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.VerificationLogEntry, 0, len(models))
	for _, model := range models {
		out = append(out, domain.VerificationLogEntry{
			ID:             model.ID,
			SignatureID:    model.SignatureID,
			WasValid:       model.WasValid,
			VerifierOrigin: model.VerifierOrigin,
			VerifiedAt:     model.VerifiedAt.UTC(),
		})
	}
	return out, nil
}
