package services

import (
	"time"

	"buddymatch_backend/internal/appErrors"
	"buddymatch_backend/internal/models"
	"buddymatch_backend/internal/repositories"
)

type ProposalService interface {
	// Create opens a proposal for the unordered pair. Fails when an open
	// proposal already exists for the pair or when either user is in an
	// active match.
	Create(userAID, userBID string) (*models.Proposal, error)

	// Confirm closes the proposal and converts it into a match. Only the
	// seeker side may confirm; an expired proposal is closed as expired
	// instead (fail closed).
	Confirm(proposalID, actingUserID string) (*models.Match, error)

	// Deny closes the proposal without a match; both users return to
	// searching.
	Deny(proposalID, actingUserID string) error

	// IsExpired evaluates the lazy expiry predicate. The close side effect
	// is explicit, opt-in and idempotent.
	IsExpired(proposalID string, closeIfExpired bool) (bool, error)

	// MarkViewed records that a participant has seen the proposal.
	MarkViewed(proposalID, actingUserID string) error
}

type proposalService struct {
	proposalRepo  repositories.ProposalRepository
	matchRepo     repositories.MatchRepository
	pairScoreRepo repositories.PairScoreRepository
	userRepo      repositories.UserRepository
	matchService  MatchService
	ttl           time.Duration
	now           func() time.Time
}

func NewProposalService(
	proposalRepo repositories.ProposalRepository,
	matchRepo repositories.MatchRepository,
	pairScoreRepo repositories.PairScoreRepository,
	userRepo repositories.UserRepository,
	matchService MatchService,
	ttl time.Duration,
) ProposalService {
	return &proposalService{
		proposalRepo:  proposalRepo,
		matchRepo:     matchRepo,
		pairScoreRepo: pairScoreRepo,
		userRepo:      userRepo,
		matchService:  matchService,
		ttl:           ttl,
		now:           time.Now,
	}
}

func (s *proposalService) Create(userAID, userBID string) (*models.Proposal, error) {
	if userAID == userBID {
		return nil, appErrors.ErrSelfPairing
	}

	user1ID, user2ID := models.CanonicalPair(userAID, userBID)

	if _, err := s.userRepo.FindByID(user1ID); err != nil {
		return nil, mapUserErr(err)
	}
	if _, err := s.userRepo.FindByID(user2ID); err != nil {
		return nil, mapUserErr(err)
	}

	for _, id := range []string{user1ID, user2ID} {
		busy, err := s.matchRepo.HasActiveInvolving(id)
		if err != nil {
			return nil, appErrors.InternalError(err)
		}
		if busy {
			return nil, appErrors.ErrUserAlreadyMatched
		}
	}

	// Friendly pre-check; the partial unique index closes the race.
	if _, err := s.proposalRepo.FindOpenByPair(user1ID, user2ID); err == nil {
		return nil, appErrors.ErrDuplicateProposal
	} else if !appErrors.Is(err, repositories.ErrProposalNotFound) {
		return nil, appErrors.InternalError(err)
	}

	// An open proposal holds both sides: neither user can be proposed to
	// anyone else until it closes.
	for _, id := range []string{user1ID, user2ID} {
		held, err := s.proposalRepo.HasOpenInvolving(id)
		if err != nil {
			return nil, appErrors.InternalError(err)
		}
		if held {
			return nil, appErrors.ErrUserInOpenProposal
		}
	}

	proposal := &models.Proposal{
		User1ID:   user1ID,
		User2ID:   user2ID,
		Status:    models.ProposalStatusOpen,
		ExpiresAt: s.now().Add(s.ttl),
	}

	if err := s.proposalRepo.Create(proposal); err != nil {
		if appErrors.Is(err, repositories.ErrDuplicateProposal) {
			return nil, appErrors.ErrDuplicateProposal
		}
		return nil, appErrors.InternalError(err)
	}

	// The pair is spoken for: drop its cached score and flag every other
	// cached score touching either user as unmatchable while the proposal
	// is pending. Re-activation is lazy, on the next score request.
	if err := s.pairScoreRepo.DeleteByPair(user1ID, user2ID); err != nil {
		return nil, appErrors.InternalError(err)
	}
	if _, err := s.pairScoreRepo.InvalidateInvolving(user1ID, user2ID); err != nil {
		return nil, appErrors.InternalError(err)
	}

	return proposal, nil
}

func (s *proposalService) Confirm(proposalID, actingUserID string) (*models.Match, error) {
	proposal, err := s.proposalRepo.FindByID(proposalID)
	if err != nil {
		return nil, mapProposalErr(err)
	}
	if !proposal.HasParticipant(actingUserID) {
		return nil, appErrors.ErrNotParticipant
	}

	actingUser, err := s.userRepo.FindByID(actingUserID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	if actingUser.Role != models.UserRoleSeeker {
		return nil, appErrors.ErrWrongConfirmRole
	}

	if proposal.Closed {
		return nil, appErrors.ErrProposalClosed
	}

	if proposal.IsExpired(s.now()) {
		// Fail closed: confirming an expired proposal expires it instead.
		proposal.Status = models.ProposalStatusExpired
		proposal.Closed = true
		if err := s.proposalRepo.Update(proposal); err != nil {
			return nil, appErrors.InternalError(err)
		}
		return nil, appErrors.ErrProposalExpired
	}

	// Create the match first: if it cannot be created (the pair gained an
	// active match in the meantime) the proposal stays open and can still
	// be denied, never stranded as CONFIRMED without a match.
	match, err := s.matchService.CreateFromProposal(proposal, actingUserID)
	if err != nil {
		return nil, err
	}

	proposal.Status = models.ProposalStatusConfirmed
	proposal.Closed = true
	if err := s.proposalRepo.Update(proposal); err != nil {
		return nil, appErrors.InternalError(err)
	}

	return match, nil
}

func (s *proposalService) Deny(proposalID, actingUserID string) error {
	proposal, err := s.proposalRepo.FindByID(proposalID)
	if err != nil {
		return mapProposalErr(err)
	}
	if !proposal.HasParticipant(actingUserID) {
		return appErrors.ErrNotParticipant
	}
	if proposal.Closed {
		return appErrors.ErrProposalClosed
	}

	proposal.Status = models.ProposalStatusDenied
	proposal.Closed = true
	if err := s.proposalRepo.Update(proposal); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *proposalService) IsExpired(proposalID string, closeIfExpired bool) (bool, error) {
	proposal, err := s.proposalRepo.FindByID(proposalID)
	if err != nil {
		return false, mapProposalErr(err)
	}

	expired := proposal.Status == models.ProposalStatusExpired || proposal.IsExpired(s.now())
	if !expired {
		return false, nil
	}

	// Calling again on an already-closed proposal is a no-op, not an error.
	if closeIfExpired && !proposal.Closed {
		proposal.Status = models.ProposalStatusExpired
		proposal.Closed = true
		if err := s.proposalRepo.Update(proposal); err != nil {
			return true, appErrors.InternalError(err)
		}
	}

	return true, nil
}

func (s *proposalService) MarkViewed(proposalID, actingUserID string) error {
	proposal, err := s.proposalRepo.FindByID(proposalID)
	if err != nil {
		return mapProposalErr(err)
	}
	if !proposal.HasParticipant(actingUserID) {
		return appErrors.ErrNotParticipant
	}

	if proposal.User1ID == actingUserID {
		proposal.ViewedByUser1 = true
	} else {
		proposal.ViewedByUser2 = true
	}
	if err := s.proposalRepo.Update(proposal); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func mapProposalErr(err error) error {
	if appErrors.Is(err, repositories.ErrProposalNotFound) {
		return appErrors.ErrProposalNotFound
	}
	return appErrors.InternalError(err)
}
