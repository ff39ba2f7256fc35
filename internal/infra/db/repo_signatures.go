package db

import (
	"context"
	"errors"
	"time"

	"signet/internal/domain"

	"gorm.io/gorm"
)

type SignatureRepository struct {
	db *gorm.DB
}

func NewSignatureRepository(db *gorm.DB) *SignatureRepository {
	return &SignatureRepository{db: db}
}

// Create inserts the signature record as-is. Identifier uniqueness is not
// re-checked beforehand; the primary key constraint is the sole collision
// guard and a hit surfaces as ErrPersistenceConflict.
func (r *SignatureRepository) Create(ctx context.Context, sig domain.Signature) error {
	if r.db == nil {
		return errDBUnavailable
	}
	createdAt := sig.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	model := SignatureModel{
		ID:             sig.ID,
		OwnerID:        sig.OwnerID,
		OriginalText:   sig.OriginalText,
		SignatureValue: sig.SignatureValue,
		Algorithm:      sig.Algorithm,
		CreatedAt:      createdAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrPersistenceConflict
		}
		return err
	}
	return nil
}

func (r *SignatureRepository) GetByID(ctx context.Context, id string) (*domain.Signature, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model SignatureModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSignatureNotFound
		}
		return nil, err
	}
	sig := signatureFromModel(model)
	return &sig, nil
}

func (r *SignatureRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Signature, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []SignatureModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Signature, 0, len(models))
	for _, model := range models {
		out = append(out, signatureFromModel(model))
	}
	return out, nil
}

func signatureFromModel(model SignatureModel) domain.Signature {
	return domain.Signature{
		ID:             model.ID,
		OwnerID:        model.OwnerID,
		OriginalText:   model.OriginalText,
		SignatureValue: model.SignatureValue,
		Algorithm:      model.Algorithm,
		CreatedAt:      model.CreatedAt.UTC(),
	}
}
