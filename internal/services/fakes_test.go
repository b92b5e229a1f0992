package services

import (
	"time"

	"buddymatch_backend/internal/algorithms"
	"buddymatch_backend/internal/geo"
	"buddymatch_backend/internal/models"
	"buddymatch_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the storage-layer guarantees the
// real repositories get from the partial unique indexes, so the services
// under test see the same contract.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) TouchProfile(userID string, at time.Time) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.ProfileUpdatedAt = at
	return nil
}

func (r *fakeUserRepo) AssignOrganization(userID, organizationID string) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.OrganizationID = &organizationID
	return nil
}

func (r *fakeUserRepo) CountByOrganization(organizationID string) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.OrganizationID != nil && *user.OrganizationID == organizationID {
			count++
		}
	}
	return count, nil
}

type fakePairScoreRepo struct {
	scores map[string]*models.PairScore
}

func newFakePairScoreRepo() *fakePairScoreRepo {
	return &fakePairScoreRepo{scores: map[string]*models.PairScore{}}
}

func pairKey(user1ID, user2ID string) string {
	return user1ID + "|" + user2ID
}

func (r *fakePairScoreRepo) FindByPair(user1ID, user2ID string) (*models.PairScore, error) {
	score, ok := r.scores[pairKey(user1ID, user2ID)]
	if !ok {
		return nil, repositories.ErrPairScoreNotFound
	}
	return score, nil
}

func (r *fakePairScoreRepo) Upsert(score *models.PairScore) error {
	if score.ID == "" {
		score.ID = uuid.NewString()
	}
	r.scores[pairKey(score.User1ID, score.User2ID)] = score
	return nil
}

func (r *fakePairScoreRepo) DeleteByPair(user1ID, user2ID string) error {
	delete(r.scores, pairKey(user1ID, user2ID))
	return nil
}

func (r *fakePairScoreRepo) InvalidateInvolving(userIDs ...string) (int64, error) {
	involved := map[string]bool{}
	for _, id := range userIDs {
		involved[id] = true
	}

	var affected int64
	for _, score := range r.scores {
		if score.Matchable && (involved[score.User1ID] || involved[score.User2ID]) {
			score.Matchable = false
			affected++
		}
	}
	return affected, nil
}

type fakeProposalRepo struct {
	proposals map[string]*models.Proposal
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{proposals: map[string]*models.Proposal{}}
}

func (r *fakeProposalRepo) Create(proposal *models.Proposal) error {
	for _, existing := range r.proposals {
		if !existing.Closed && existing.User1ID == proposal.User1ID && existing.User2ID == proposal.User2ID {
			return repositories.ErrDuplicateProposal
		}
	}
	if proposal.ID == "" {
		proposal.ID = uuid.NewString()
	}
	r.proposals[proposal.ID] = proposal
	return nil
}

func (r *fakeProposalRepo) FindByID(id string) (*models.Proposal, error) {
	proposal, ok := r.proposals[id]
	if !ok {
		return nil, repositories.ErrProposalNotFound
	}
	return proposal, nil
}

func (r *fakeProposalRepo) FindOpenByPair(user1ID, user2ID string) (*models.Proposal, error) {
	for _, proposal := range r.proposals {
		if !proposal.Closed && proposal.User1ID == user1ID && proposal.User2ID == user2ID {
			return proposal, nil
		}
	}
	return nil, repositories.ErrProposalNotFound
}

func (r *fakeProposalRepo) Update(proposal *models.Proposal) error {
	r.proposals[proposal.ID] = proposal
	return nil
}

func (r *fakeProposalRepo) HasOpenInvolving(userID string) (bool, error) {
	for _, proposal := range r.proposals {
		if !proposal.Closed && proposal.HasParticipant(userID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProposalRepo) CloseExpired(now time.Time) (int64, error) {
	var closed int64
	for _, proposal := range r.proposals {
		if !proposal.Closed && proposal.IsExpired(now) {
			proposal.Status = models.ProposalStatusExpired
			proposal.Closed = true
			closed++
		}
	}
	return closed, nil
}

type fakeMatchRepo struct {
	matches map[string]*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[string]*models.Match{}}
}

func (r *fakeMatchRepo) Create(match *models.Match) error {
	for _, existing := range r.matches {
		if existing.Active && existing.User1ID == match.User1ID && existing.User2ID == match.User2ID {
			return repositories.ErrDuplicateMatch
		}
	}
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) FindByID(id string) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return match, nil
}

func (r *fakeMatchRepo) FindActiveByPair(user1ID, user2ID string) (*models.Match, error) {
	for _, match := range r.matches {
		if match.Active && match.User1ID == user1ID && match.User2ID == user2ID {
			return match, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) HasActiveInvolving(userID string) (bool, error) {
	for _, match := range r.matches {
		if match.Active && match.HasParticipant(userID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMatchRepo) Update(match *models.Match) error {
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) ListAll() ([]models.Match, error) {
	var all []models.Match
	for _, match := range r.matches {
		all = append(all, *match)
	}
	return all, nil
}

type fakeOrganizationRepo struct {
	organizations []models.Organization
}

func (r *fakeOrganizationRepo) Create(org *models.Organization) error {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	r.organizations = append(r.organizations, *org)
	return nil
}

func (r *fakeOrganizationRepo) FindByID(id string) (*models.Organization, error) {
	for i := range r.organizations {
		if r.organizations[i].ID == id {
			return &r.organizations[i], nil
		}
	}
	return nil, repositories.ErrOrganizationNotFound
}

func (r *fakeOrganizationRepo) ListByGroup(group string) ([]models.Organization, error) {
	var out []models.Organization
	for _, org := range r.organizations {
		if org.SupportsGroup(group) {
			out = append(out, org)
		}
	}
	return out, nil
}

type fakeActivityRepo struct {
	signals map[string]models.ActivitySignals
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{signals: map[string]models.ActivitySignals{}}
}

func (r *fakeActivityRepo) SignalsForMatch(matchID string) (models.ActivitySignals, error) {
	return r.signals[matchID], nil
}

// fixture wires the services over the fakes, with a controllable clock.

const (
	seekerID    = "11111111-1111-1111-1111-111111111111"
	supporterID = "22222222-2222-2222-2222-222222222222"
	bystanderID = "33333333-3333-3333-3333-333333333333"
)

type fixture struct {
	userRepo      *fakeUserRepo
	pairScoreRepo *fakePairScoreRepo
	proposalRepo  *fakeProposalRepo
	matchRepo     *fakeMatchRepo
	activityRepo  *fakeActivityRepo

	scoring  *scoringService
	match    *matchService
	proposal *proposalService

	clock time.Time
}

func newFixture() *fixture {
	f := &fixture{
		userRepo:      newFakeUserRepo(),
		pairScoreRepo: newFakePairScoreRepo(),
		proposalRepo:  newFakeProposalRepo(),
		matchRepo:     newFakeMatchRepo(),
		activityRepo:  newFakeActivityRepo(),
		clock:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	scorer := algorithms.NewScorer(
		geo.NewStaticResolver(map[string]geo.Coordinates{
			"10115": {Lat: 52.5323, Lon: 13.3846},
			"10117": {Lat: 52.5170, Lon: 13.3889},
			"20095": {Lat: 53.5503, Lon: 10.0007},
		}),
		algorithms.Weights{Language: 0.4, Distance: 0.3, Availability: 0.3},
		50,
	)

	now := func() time.Time { return f.clock }

	f.scoring = NewScoringService(f.userRepo, f.pairScoreRepo, scorer).(*scoringService)
	f.scoring.now = now
	f.match = NewMatchService(f.matchRepo, f.pairScoreRepo, f.userRepo, f.scoring).(*matchService)
	f.match.now = now
	f.proposal = NewProposalService(
		f.proposalRepo, f.matchRepo, f.pairScoreRepo, f.userRepo, f.match,
		72*time.Hour,
	).(*proposalService)
	f.proposal.now = now

	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

// addSeeker and addSupporter create a compatible pair by default.

func (f *fixture) addSeeker(id string) *models.User {
	u := &models.User{
		BaseModel:           models.BaseModel{ID: id},
		Role:                models.UserRoleSeeker,
		Gender:              "female",
		PostalCode:          "10115",
		DesiredPartnerLevel: 2,
		ProfileUpdatedAt:    f.clock.Add(-time.Hour),
	}
	u.SetLanguages([]models.LanguageSkill{{Language: "de", Level: 2}})
	u.SetAvailability(models.Availability{"monday": {"evening"}})
	_ = f.userRepo.Create(u)
	return u
}

func (f *fixture) addSupporter(id string) *models.User {
	u := &models.User{
		BaseModel:           models.BaseModel{ID: id},
		Role:                models.UserRoleSupporter,
		Gender:              "male",
		PostalCode:          "10117",
		DesiredPartnerLevel: 2,
		ProfileUpdatedAt:    f.clock.Add(-time.Hour),
	}
	u.SetLanguages([]models.LanguageSkill{{Language: "de", Level: 2}})
	u.SetAvailability(models.Availability{"monday": {"evening"}})
	_ = f.userRepo.Create(u)
	return u
}
