package repositories

import (
	"errors"

	"buddymatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrDuplicateMatch = errors.New("active match already exists for this pair")
)

type MatchRepository interface {
	Create(match *models.Match) error
	FindByID(id string) (*models.Match, error)
	FindActiveByPair(user1ID, user2ID string) (*models.Match, error)
	HasActiveInvolving(userID string) (bool, error)
	Update(match *models.Match) error
	ListAll() ([]models.Match, error)
}

type MatchRepositoryImpl struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &MatchRepositoryImpl{db: db}
}

// Create inserts a match. The partial unique index on (user1_id, user2_id)
// WHERE active guards against concurrent duplicate creation.
func (r *MatchRepositoryImpl) Create(match *models.Match) error {
	err := r.db.Create(match).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMatch
	}
	return err
}

func (r *MatchRepositoryImpl) FindByID(id string) (*models.Match, error) {
	var match models.Match
	if err := r.db.First(&match, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *MatchRepositoryImpl) FindActiveByPair(user1ID, user2ID string) (*models.Match, error) {
	var match models.Match
	err := r.db.First(&match,
		"user1_id = ? AND user2_id = ? AND active = true", user1ID, user2ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *MatchRepositoryImpl) HasActiveInvolving(userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Match{}).
		Where("active = true").
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *MatchRepositoryImpl) Update(match *models.Match) error {
	return r.db.Save(match).Error
}

func (r *MatchRepositoryImpl) ListAll() ([]models.Match, error) {
	var matches []models.Match
	err := r.db.Order("created_at ASC").Find(&matches).Error
	return matches, err
}
