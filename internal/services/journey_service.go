package services

import (
	"fmt"
	"time"

	"buddymatch_backend/internal/appErrors"
	"buddymatch_backend/internal/models"
	"buddymatch_backend/internal/repositories"
	"buddymatch_backend/internal/services/dto"
)

// Bucket names. Mutually exclusive lifecycle classifications.
const (
	BucketSupportMatch       = "Support Match"
	BucketMatchReported      = "Match Reported"
	BucketMatchUnmatched     = "Match Unmatched"
	BucketMatchNoConfirm     = "Match No Confirm"
	BucketMatchSingleConfirm = "Match Single Party Confirm"
	BucketMatchNoContact     = "Match Confirmed No Contact"
	BucketOngoingMatch       = "Ongoing Match"
	BucketGhostedMatch       = "Ghosted Match"
	BucketFreePlayMatch      = "Free Play Match"
	BucketCompletedMatch     = "Completed Match"
	BucketFailedMatch        = "Failed Match"
)

// JourneyThresholds are configuration constants for the lifecycle buckets.
type JourneyThresholds struct {
	InactivityDays   int
	MaturityWeeks    int
	MinContactVolume int
}

// MatchView is everything a bucket predicate may look at: the match row,
// its derived activity signals, and the evaluation time. Predicates are
// read-only; classification never mutates.
type MatchView struct {
	Match   models.Match
	Signals models.ActivitySignals
	Now     time.Time
}

// Bucket is a named predicate. Buckets live in a plain ordered list; the
// name never drives any lookup.
type Bucket struct {
	Name    string
	Matches func(MatchView) bool
}

type JourneyService interface {
	ClassifyMatch(matchID string) (string, error)
	// ClassifyAllMatches buckets every match in the store.
	ClassifyAllMatches() (dto.JourneyReport, error)
	// CategorizeAll buckets an explicit slice of matches; no implicit
	// default scope.
	CategorizeAll(matches []models.Match) (dto.JourneyReport, error)
}

type journeyService struct {
	matchRepo    repositories.MatchRepository
	activityRepo repositories.ActivityRepository
	buckets      []Bucket
	now          func() time.Time
}

func NewJourneyService(
	matchRepo repositories.MatchRepository,
	activityRepo repositories.ActivityRepository,
	thresholds JourneyThresholds,
) JourneyService {
	return &journeyService{
		matchRepo:    matchRepo,
		activityRepo: activityRepo,
		buckets:      buildBuckets(thresholds),
		now:          time.Now,
	}
}

// buildBuckets constructs the ordered bucket list. The predicates partition
// the match state space; ClassifyOne verifies the partition on every call.
func buildBuckets(t JourneyThresholds) []Bucket {
	inactivity := time.Duration(t.InactivityDays) * 24 * time.Hour
	maturity := time.Duration(t.MaturityWeeks) * 7 * 24 * time.Hour

	dormant := func(v MatchView) bool {
		if v.Signals.LastContactAt == nil {
			return true
		}
		return v.Now.Sub(*v.Signals.LastContactAt) >= inactivity
	}
	mature := func(v MatchView) bool {
		return v.Now.Sub(v.Match.CreatedAt) >= maturity
	}
	ordinary := func(v MatchView) bool {
		return !v.Match.SupportMatching
	}
	liveConfirmed := func(v MatchView) bool {
		return ordinary(v) && v.Match.Active && v.Match.Confirmed && v.Signals.HasContact()
	}

	return []Bucket{
		{
			// Staff pairings are excluded from ordinary lifecycle bucketing.
			Name:    BucketSupportMatch,
			Matches: func(v MatchView) bool { return v.Match.SupportMatching },
		},
		{
			Name: BucketMatchReported,
			Matches: func(v MatchView) bool {
				return ordinary(v) && !v.Match.Active &&
					v.Match.LastReportKind() == models.ReportKindReport
			},
		},
		{
			Name: BucketMatchUnmatched,
			Matches: func(v MatchView) bool {
				return ordinary(v) && !v.Match.Active &&
					v.Match.LastReportKind() != models.ReportKindReport
			},
		},
		{
			Name: BucketMatchNoConfirm,
			Matches: func(v MatchView) bool {
				return ordinary(v) && v.Match.Active && !v.Match.Confirmed &&
					len(v.Match.GetConfirmedBy()) == 0
			},
		},
		{
			Name: BucketMatchSingleConfirm,
			Matches: func(v MatchView) bool {
				return ordinary(v) && v.Match.Active && !v.Match.Confirmed &&
					len(v.Match.GetConfirmedBy()) == 1
			},
		},
		{
			Name: BucketMatchNoContact,
			Matches: func(v MatchView) bool {
				return ordinary(v) && v.Match.Active && v.Match.Confirmed &&
					!v.Signals.HasContact()
			},
		},
		{
			Name: BucketOngoingMatch,
			Matches: func(v MatchView) bool {
				return liveConfirmed(v) && !mature(v) && !dormant(v)
			},
		},
		{
			Name: BucketGhostedMatch,
			Matches: func(v MatchView) bool {
				return liveConfirmed(v) && !mature(v) && dormant(v)
			},
		},
		{
			Name: BucketFreePlayMatch,
			Matches: func(v MatchView) bool {
				return liveConfirmed(v) && mature(v) && !dormant(v)
			},
		},
		{
			Name: BucketCompletedMatch,
			Matches: func(v MatchView) bool {
				return liveConfirmed(v) && mature(v) && dormant(v) &&
					v.Signals.ContactVolume() >= int64(t.MinContactVolume)
			},
		},
		{
			Name: BucketFailedMatch,
			Matches: func(v MatchView) bool {
				return liveConfirmed(v) && mature(v) && dormant(v) &&
					v.Signals.ContactVolume() < int64(t.MinContactVolume)
			},
		},
	}
}

// ClassifyOne evaluates every bucket predicate and requires exactly one hit.
// Zero or multiple hits mean the predicates are not a partition — a bug in
// the bucket definitions, surfaced loudly rather than resolved first-wins.
func ClassifyOne(buckets []Bucket, view MatchView) (string, error) {
	var hits []string
	for _, bucket := range buckets {
		if bucket.Matches(view) {
			hits = append(hits, bucket.Name)
		}
	}

	if len(hits) != 1 {
		return "", appErrors.ClassifierConflict(fmt.Errorf(
			"match %s classified into %d buckets %v, want exactly 1",
			view.Match.ID, len(hits), hits))
	}
	return hits[0], nil
}

func (s *journeyService) ClassifyMatch(matchID string) (string, error) {
	match, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		return "", mapMatchErr(err)
	}

	signals, err := s.activityRepo.SignalsForMatch(match.ID)
	if err != nil {
		return "", appErrors.InternalError(err)
	}

	return ClassifyOne(s.buckets, MatchView{
		Match:   *match,
		Signals: signals,
		Now:     s.now(),
	})
}

func (s *journeyService) ClassifyAllMatches() (dto.JourneyReport, error) {
	matches, err := s.matchRepo.ListAll()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return s.CategorizeAll(matches)
}

func (s *journeyService) CategorizeAll(matches []models.Match) (dto.JourneyReport, error) {
	report := dto.JourneyReport{}
	now := s.now()

	for _, match := range matches {
		signals, err := s.activityRepo.SignalsForMatch(match.ID)
		if err != nil {
			return nil, appErrors.InternalError(err)
		}

		bucket, err := ClassifyOne(s.buckets, MatchView{
			Match:   match,
			Signals: signals,
			Now:     now,
		})
		if err != nil {
			return nil, err
		}
		report[bucket] = append(report[bucket], match.ID)
	}

	return report, nil
}
