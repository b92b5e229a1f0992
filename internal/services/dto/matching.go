package dto

import (
	"time"

	"buddymatch_backend/internal/models"
)

// PairScoreResult is the scoring outcome returned to callers.
type PairScoreResult struct {
	User1ID      string                `json:"user1_id"`
	User2ID      string                `json:"user2_id"`
	Score        float64               `json:"score"`
	Matchable    bool                  `json:"matchable"`
	Breakdown    models.ScoreBreakdown `json:"breakdown"`
	LatestUpdate time.Time             `json:"latest_update"`
}

type ScorePairRequest struct {
	UserAID        string `json:"user_a_id" binding:"required,uuid"`
	UserBID        string `json:"user_b_id" binding:"required,uuid"`
	ForceRecompute bool   `json:"force_recompute"`
}

type CreateProposalRequest struct {
	UserAID string `json:"user_a_id" binding:"required,uuid"`
	UserBID string `json:"user_b_id" binding:"required,uuid"`
}

type CreateMatchRequest struct {
	UserAID     string   `json:"user_a_id" binding:"required,uuid"`
	UserBID     string   `json:"user_b_id" binding:"required,uuid"`
	ConfirmedBy []string `json:"confirmed_by" binding:"omitempty,dive,uuid"`
	Support     bool     `json:"support"`
}

type ReportMatchRequest struct {
	Kind   string `json:"kind" binding:"required,oneof=report unmatch"`
	Reason string `json:"reason" binding:"required"`
}

type ProposalResponse struct {
	ProposalID string    `json:"proposal_id"`
	Status     string    `json:"status"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type MatchResponse struct {
	MatchID     string   `json:"match_id"`
	Active      bool     `json:"active"`
	Confirmed   bool     `json:"confirmed"`
	ConfirmedBy []string `json:"confirmed_by"`
	Support     bool     `json:"support"`
}

type BucketResponse struct {
	MatchID string `json:"match_id"`
	Bucket  string `json:"bucket"`
}

// JourneyReport maps bucket name to member match ids.
type JourneyReport map[string][]string
