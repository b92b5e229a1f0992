package services

import (
	"time"

	"buddymatch_backend/internal/appErrors"
	"buddymatch_backend/internal/models"
	"buddymatch_backend/internal/repositories"
)

type MatchService interface {
	// Create builds a match by direct operator action. Support pairings
	// bypass the matchability check; the duplicate-active guard always
	// applies.
	Create(userAID, userBID string, confirmedBy []string, support bool) (*models.Match, error)

	// CreateFromProposal converts a confirmed proposal into a match. The
	// pair was vetted at proposal time, so matchability is not re-checked.
	CreateFromProposal(proposal *models.Proposal, confirmingUserID string) (*models.Match, error)

	// Confirm records a participant's acceptance. Once both sides have
	// confirmed, the match becomes confirmed and never reverts.
	Confirm(matchID, actingUserID string) (*models.Match, error)

	// ReportOrUnmatch deactivates the match and appends to the report log.
	// A second report on an already-inactive match is rejected.
	ReportOrUnmatch(matchID, actingUserID string, kind models.ReportKind, reason string) error

	// GetMatching returns the match only when the requesting user is a
	// participant. The authorization lives at this layer, not just HTTP.
	GetMatching(userID, matchID string) (*models.Match, error)
}

type matchService struct {
	matchRepo      repositories.MatchRepository
	pairScoreRepo  repositories.PairScoreRepository
	userRepo       repositories.UserRepository
	scoringService ScoringService
	now            func() time.Time
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	pairScoreRepo repositories.PairScoreRepository,
	userRepo repositories.UserRepository,
	scoringService ScoringService,
) MatchService {
	return &matchService{
		matchRepo:      matchRepo,
		pairScoreRepo:  pairScoreRepo,
		userRepo:       userRepo,
		scoringService: scoringService,
		now:            time.Now,
	}
}

func (s *matchService) Create(userAID, userBID string, confirmedBy []string, support bool) (*models.Match, error) {
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

	if !support {
		// Support pairings may involve staff accounts; regular matches are
		// strictly seeker/supporter.
		if !user1.IsMatchableRole() || !user2.IsMatchableRole() {
			return nil, appErrors.ErrInvalidUserRole
		}
		result, err := s.scoringService.ScorePair(user1ID, user2ID, true)
		if err != nil {
			return nil, err
		}
		if !result.Matchable {
			return nil, appErrors.ErrPairNotMatchable
		}
	}

	return s.insert(user1ID, user2ID, confirmedBy, support)
}

func (s *matchService) CreateFromProposal(proposal *models.Proposal, confirmingUserID string) (*models.Match, error) {
	return s.insert(proposal.User1ID, proposal.User2ID, []string{confirmingUserID}, false)
}

func (s *matchService) insert(user1ID, user2ID string, confirmedBy []string, support bool) (*models.Match, error) {
	// Pre-check for a friendly error; the partial unique index is what
	// actually closes the race.
	if _, err := s.matchRepo.FindActiveByPair(user1ID, user2ID); err == nil {
		return nil, appErrors.ErrDuplicateMatch
	} else if !appErrors.Is(err, repositories.ErrMatchNotFound) {
		return nil, appErrors.InternalError(err)
	}

	match := &models.Match{
		User1ID:         user1ID,
		User2ID:         user2ID,
		Active:          true,
		SupportMatching: support,
	}
	match.SetConfirmedBy(nil)
	for _, id := range confirmedBy {
		match.AddConfirmation(id)
	}
	match.Confirmed = bothConfirmed(match)

	if err := s.matchRepo.Create(match); err != nil {
		if appErrors.Is(err, repositories.ErrDuplicateMatch) {
			return nil, appErrors.ErrDuplicateMatch
		}
		return nil, appErrors.InternalError(err)
	}

	// The cached pre-match score no longer represents "not yet matched";
	// other scores touching either user go unmatchable in one update.
	if err := s.pairScoreRepo.DeleteByPair(user1ID, user2ID); err != nil {
		return nil, appErrors.InternalError(err)
	}
	if _, err := s.pairScoreRepo.InvalidateInvolving(user1ID, user2ID); err != nil {
		return nil, appErrors.InternalError(err)
	}

	return match, nil
}

func (s *matchService) Confirm(matchID, actingUserID string) (*models.Match, error) {
	match, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		return nil, mapMatchErr(err)
	}
	if !match.HasParticipant(actingUserID) {
		return nil, appErrors.ErrNotParticipant
	}
	if !match.Active {
		return nil, appErrors.ErrMatchInactive
	}

	match.AddConfirmation(actingUserID)
	if bothConfirmed(match) {
		match.Confirmed = true
	}

	if err := s.matchRepo.Update(match); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return match, nil
}

func (s *matchService) ReportOrUnmatch(matchID, actingUserID string, kind models.ReportKind, reason string) error {
	if kind != models.ReportKindReport && kind != models.ReportKindUnmatch {
		return appErrors.ValidationError("kind must be 'report' or 'unmatch'")
	}

	match, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		return mapMatchErr(err)
	}
	if match.SupportMatching {
		return appErrors.ErrSupportMatchReport
	}
	if !match.HasParticipant(actingUserID) {
		return appErrors.ErrNotParticipant
	}
	if !match.Active {
		return appErrors.ErrMatchInactive
	}

	match.Active = false
	match.AppendReport(models.ReportEntry{
		Kind:    kind,
		Reason:  reason,
		ActorID: actingUserID,
		At:      s.now(),
	})

	if err := s.matchRepo.Update(match); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *matchService) GetMatching(userID, matchID string) (*models.Match, error) {
	match, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		return nil, mapMatchErr(err)
	}
	if !match.HasParticipant(userID) {
		return nil, appErrors.ErrNotParticipant
	}
	return match, nil
}

func bothConfirmed(match *models.Match) bool {
	confirmed := map[string]bool{}
	for _, id := range match.GetConfirmedBy() {
		confirmed[id] = true
	}
	return confirmed[match.User1ID] && confirmed[match.User2ID]
}

func mapMatchErr(err error) error {
	if appErrors.Is(err, repositories.ErrMatchNotFound) {
		return appErrors.ErrMatchNotFound
	}
	return appErrors.InternalError(err)
}
