package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ScoreBreakdown is the per-dimension contribution of a computed pair score.
type ScoreBreakdown struct {
	Language     float64 `json:"language"`
	Distance     float64 `json:"distance"`
	Availability float64 `json:"availability"`
}

// PairScore caches the last computed compatibility result for an unordered
// user pair. User1ID < User2ID always holds (canonical ordering); at most
// one row exists per pair.
type PairScore struct {
	BaseModel
	User1ID        string  `gorm:"type:uuid;not null;uniqueIndex:idx_pair_scores_pair,priority:1"`
	User2ID        string  `gorm:"type:uuid;not null;uniqueIndex:idx_pair_scores_pair,priority:2"`
	Score          float64 `gorm:"not null"`
	Matchable      bool    `gorm:"not null;default:false"`
	ScoringResults datatypes.JSON
	LatestUpdate   time.Time `gorm:"not null"`
}

func (p *PairScore) GetBreakdown() ScoreBreakdown {
	var b ScoreBreakdown
	if len(p.ScoringResults) > 0 {
		_ = json.Unmarshal(p.ScoringResults, &b)
	}
	return b
}

func (p *PairScore) SetBreakdown(b ScoreBreakdown) {
	data, _ := json.Marshal(b)
	p.ScoringResults = data
}
