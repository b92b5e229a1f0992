package services

import (
	"time"

	"buddymatch_backend/internal/algorithms"
	"buddymatch_backend/internal/appErrors"
	"buddymatch_backend/internal/models"
	"buddymatch_backend/internal/repositories"
	"buddymatch_backend/internal/services/dto"
)

type ScoringService interface {
	// ScorePair returns the cached score for the unordered pair, recomputing
	// when forced or when the cache predates either user's last profile
	// change.
	ScorePair(userAID, userBID string, forceRecompute bool) (*dto.PairScoreResult, error)
}

type scoringService struct {
	userRepo      repositories.UserRepository
	pairScoreRepo repositories.PairScoreRepository
	scorer        *algorithms.Scorer
	now           func() time.Time
}

func NewScoringService(
	userRepo repositories.UserRepository,
	pairScoreRepo repositories.PairScoreRepository,
	scorer *algorithms.Scorer,
) ScoringService {
	return &scoringService{
		userRepo:      userRepo,
		pairScoreRepo: pairScoreRepo,
		scorer:        scorer,
		now:           time.Now,
	}
}

func (s *scoringService) ScorePair(userAID, userBID string, forceRecompute bool) (*dto.PairScoreResult, error) {
	if userAID == userBID {
		return nil, appErrors.ErrSelfPairing
	}

	user1ID, user2ID := models.CanonicalPair(userAID, userBID)

	user1, err := s.userRepo.FindByID(user1ID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	user2, err := s.userRepo.FindByID(user2ID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	if !forceRecompute {
		cached, err := s.pairScoreRepo.FindByPair(user1ID, user2ID)
		if err == nil && !isStale(cached, user1, user2) {
			return pairScoreResult(cached), nil
		}
		if err != nil && !appErrors.Is(err, repositories.ErrPairScoreNotFound) {
			return nil, appErrors.InternalError(err)
		}
	}

	result := s.compute(user1, user2)

	score := &models.PairScore{
		User1ID:      user1ID,
		User2ID:      user2ID,
		Score:        result.Total,
		Matchable:    result.Matchable,
		LatestUpdate: s.now(),
	}
	score.SetBreakdown(result.Breakdown)

	if err := s.pairScoreRepo.Upsert(score); err != nil {
		return nil, appErrors.InternalError(err)
	}

	return pairScoreResult(score), nil
}

// compute orders the pair for the scorer: scoring is defined for one seeker
// and one supporter. Any other role combination is not matchable.
func (s *scoringService) compute(user1, user2 *models.User) algorithms.Result {
	switch {
	case user1.Role == models.UserRoleSeeker && user2.Role == models.UserRoleSupporter:
		return s.scorer.Score(user1, user2)
	case user2.Role == models.UserRoleSeeker && user1.Role == models.UserRoleSupporter:
		return s.scorer.Score(user2, user1)
	default:
		return algorithms.Result{}
	}
}

// isStale reports whether the cache predates either user's last material
// profile change. Staleness is explicit, never silently tolerated.
func isStale(score *models.PairScore, user1, user2 *models.User) bool {
	return score.LatestUpdate.Before(user1.ProfileUpdatedAt) ||
		score.LatestUpdate.Before(user2.ProfileUpdatedAt)
}

func pairScoreResult(score *models.PairScore) *dto.PairScoreResult {
	return &dto.PairScoreResult{
		User1ID:      score.User1ID,
		User2ID:      score.User2ID,
		Score:        score.Score,
		Matchable:    score.Matchable,
		Breakdown:    score.GetBreakdown(),
		LatestUpdate: score.LatestUpdate,
	}
}

func mapUserErr(err error) error {
	if appErrors.Is(err, repositories.ErrUserNotFound) {
		return appErrors.ErrUserNotFound
	}
	return appErrors.InternalError(err)
}
