package postgres

import (
	"context"

	"github.com/edhub-platform/school-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvitationPostgreSQL struct {
	db *gorm.DB
}

func (r *InvitationPostgreSQL) Create(ctx context.Context, invitation *models.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *InvitationPostgreSQL) GetByID(ctx context.Context, id string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		Preload("School").
		First(&invitation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationPostgreSQL) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		Preload("School").
		First(&invitation, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationPostgreSQL) GetByTokenLocked(ctx context.Context, token string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&invitation, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationPostgreSQL) GetPending(ctx context.Context, email, schoolID string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		Where("email = ? AND school_id = ? AND status = ?", email, schoolID, models.InvitationPending).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationPostgreSQL) Update(ctx context.Context, invitation *models.Invitation) error {
	return r.db.WithContext(ctx).Save(invitation).Error
}

func (r *InvitationPostgreSQL) ListBySchool(ctx context.Context, schoolID string) ([]*models.Invitation, error) {
	var invitations []*models.Invitation
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("created_at DESC").
		Find(&invitations).Error
	return invitations, err
}
