package db

import (
	"context"
	"errors"
	"time"

	"signet/internal/domain"

	"gorm.io/gorm"
)

type IdentityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// Create persists the identity and its key pair in one insert. On a
// username collision nothing is written and the caller's generated key
// material is simply discarded with the request.
func (r *IdentityRepository) Create(ctx context.Context, identity domain.Identity) (domain.Identity, error) {
	if r.db == nil {
		return domain.Identity{}, errDBUnavailable
	}
	createdAt := identity.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	model := IdentityModel{
		Username:       identity.Username,
		CredentialHash: identity.CredentialHash,
		PublicKey:      identity.PublicKeyPEM,
		PrivateKey:     identity.PrivateKeyPEM,
		CreatedAt:      createdAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Identity{}, domain.ErrDuplicateUsername
		}
		return domain.Identity{}, err
	}
	return identityFromModel(model), nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, id int64) (*domain.Identity, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model IdentityModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}
	identity := identityFromModel(model)
	return &identity, nil
}

func (r *IdentityRepository) GetByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model IdentityModel
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}
	identity := identityFromModel(model)
	return &identity, nil
}

func identityFromModel(model IdentityModel) domain.Identity {
	return domain.Identity{
		ID:             model.ID,
		Username:       model.Username,
		CredentialHash: model.CredentialHash,
		PublicKeyPEM:   model.PublicKey,
		PrivateKeyPEM:  model.PrivateKey,
		CreatedAt:      model.CreatedAt.UTC(),
	}
}
