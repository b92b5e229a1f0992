package repositories

import (
	"time"

	"buddymatch_backend/internal/models"

	"gorm.io/gorm"
)

// ActivityRepository derives per-match activity signals from the message
// and call tables. Read-only: the matching core never writes activity.
type ActivityRepository interface {
	SignalsForMatch(matchID string) (models.ActivitySignals, error)
}

type ActivityRepositoryImpl struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

func (r *ActivityRepositoryImpl) SignalsForMatch(matchID string) (models.ActivitySignals, error) {
	var signals models.ActivitySignals

	var msgStats struct {
		Count int64
		First *time.Time
		Last  *time.Time
	}
	err := r.db.Model(&models.Message{}).
		Select("COUNT(*) AS count, MIN(created_at) AS first, MAX(created_at) AS last").
		Where("match_id = ?", matchID).
		Scan(&msgStats).Error
	if err != nil {
		return signals, err
	}

	var callStats struct {
		Count int64
		First *time.Time
		Last  *time.Time
	}
	err = r.db.Model(&models.CallSession{}).
		Select("COUNT(*) AS count, MIN(created_at) AS first, MAX(created_at) AS last").
		Where("match_id = ?", matchID).
		Scan(&callStats).Error
	if err != nil {
		return signals, err
	}

	signals.MessageCount = msgStats.Count
	signals.CallCount = callStats.Count
	signals.FirstContactAt = earlierOf(msgStats.First, callStats.First)
	signals.LastContactAt = laterOf(msgStats.Last, callStats.Last)
	return signals, nil
}

func earlierOf(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil || a.Before(*b) {
		return a
	}
	return b
}

func laterOf(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil || a.After(*b) {
		return a
	}
	return b
}
