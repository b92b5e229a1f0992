package repositories

import (
	"errors"
	"time"

	"buddymatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrDuplicateProposal = errors.New("open proposal already exists for this pair")
)

type ProposalRepository interface {
	Create(proposal *models.Proposal) error
	FindByID(id string) (*models.Proposal, error)
	FindOpenByPair(user1ID, user2ID string) (*models.Proposal, error)
	Update(proposal *models.Proposal) error
	HasOpenInvolving(userID string) (bool, error)
	CloseExpired(now time.Time) (int64, error)
}

type ProposalRepositoryImpl struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &ProposalRepositoryImpl{db: db}
}

// Create inserts an open proposal. The partial unique index on
// (user1_id, user2_id) WHERE NOT closed closes the check-then-insert race;
// a violation surfaces as ErrDuplicateProposal.
func (r *ProposalRepositoryImpl) Create(proposal *models.Proposal) error {
	err := r.db.Create(proposal).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateProposal
	}
	return err
}

func (r *ProposalRepositoryImpl) FindByID(id string) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := r.db.First(&proposal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) FindOpenByPair(user1ID, user2ID string) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.First(&proposal,
		"user1_id = ? AND user2_id = ? AND closed = false", user1ID, user2ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) Update(proposal *models.Proposal) error {
	return r.db.Save(proposal).Error
}

func (r *ProposalRepositoryImpl) HasOpenInvolving(userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Proposal{}).
		Where("closed = false").
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Count(&count).Error
	return count > 0, err
}

// CloseExpired bulk-closes every open proposal past its deadline. Used by
// the expiry worker; per-proposal lazy checks cover the gap in between.
func (r *ProposalRepositoryImpl) CloseExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.Proposal{}).
		Where("closed = false AND expires_at < ?", now).
		Updates(map[string]interface{}{
			"status":     models.ProposalStatusExpired,
			"closed":     true,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
