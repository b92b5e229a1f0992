package repositories

import (
	"errors"
	"time"

	"buddymatch_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPairScoreNotFound = errors.New("pair score not found")
)

// PairScoreRepository persists the score cache. All pair arguments must
// already be canonical (user1 < user2); callers canonicalize.
type PairScoreRepository interface {
	FindByPair(user1ID, user2ID string) (*models.PairScore, error)
	Upsert(score *models.PairScore) error
	DeleteByPair(user1ID, user2ID string) error
	InvalidateInvolving(userIDs ...string) (int64, error)
}

type PairScoreRepositoryImpl struct {
	db *gorm.DB
}

func NewPairScoreRepository(db *gorm.DB) PairScoreRepository {
	return &PairScoreRepositoryImpl{db: db}
}

func (r *PairScoreRepositoryImpl) FindByPair(user1ID, user2ID string) (*models.PairScore, error) {
	var score models.PairScore
	err := r.db.First(&score, "user1_id = ? AND user2_id = ?", user1ID, user2ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPairScoreNotFound
		}
		return nil, err
	}
	return &score, nil
}

// Upsert overwrites the single row for the pair; recomputes never append.
func (r *PairScoreRepositoryImpl) Upsert(score *models.PairScore) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score", "matchable", "scoring_results", "latest_update", "updated_at",
		}),
	}).Create(score).Error
}

func (r *PairScoreRepositoryImpl) DeleteByPair(user1ID, user2ID string) error {
	return r.db.
		Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).
		Delete(&models.PairScore{}).Error
}

// InvalidateInvolving flags every cached score touching any of the given
// users as unmatchable. A single conditional UPDATE, not row iteration, so
// the predicate stays correct under concurrent proposal creation.
func (r *PairScoreRepositoryImpl) InvalidateInvolving(userIDs ...string) (int64, error) {
	result := r.db.Model(&models.PairScore{}).
		Where("user1_id IN ? OR user2_id IN ?", userIDs, userIDs).
		Where("matchable = ?", true).
		Updates(map[string]interface{}{
			"matchable":  false,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
