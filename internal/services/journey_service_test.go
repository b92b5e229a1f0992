package services

import (
	"testing"
	"time"

	"buddymatch_backend/internal/appErrors"
	"buddymatch_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testThresholds = JourneyThresholds{
	InactivityDays:   14,
	MaturityWeeks:    12,
	MinContactVolume: 10,
}

var journeyNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// viewOpt mutates a baseline view: an active, confirmed, ordinary match with
// recent contact, young enough to not be mature.
type viewOpt func(*MatchView)

func makeView(opts ...viewOpt) MatchView {
	recent := journeyNow.Add(-24 * time.Hour)
	view := MatchView{
		Match: models.Match{
			BaseModel: models.BaseModel{
				ID:        uuid.NewString(),
				CreatedAt: journeyNow.Add(-7 * 24 * time.Hour),
			},
			Active:    true,
			Confirmed: true,
		},
		Signals: models.ActivitySignals{
			MessageCount:   20,
			FirstContactAt: &recent,
			LastContactAt:  &recent,
		},
		Now: journeyNow,
	}
	view.Match.SetConfirmedBy([]string{seekerID, supporterID})

	for _, opt := range opts {
		opt(&view)
	}
	return view
}

func support() viewOpt {
	return func(v *MatchView) { v.Match.SupportMatching = true }
}

func reported(kind models.ReportKind) viewOpt {
	return func(v *MatchView) {
		v.Match.Active = false
		v.Match.AppendReport(models.ReportEntry{Kind: kind, ActorID: seekerID, At: journeyNow})
	}
}

func unconfirmed(confirmedBy ...string) viewOpt {
	return func(v *MatchView) {
		v.Match.Confirmed = false
		v.Match.SetConfirmedBy(confirmedBy)
	}
}

func noContact() viewOpt {
	return func(v *MatchView) {
		v.Signals = models.ActivitySignals{}
	}
}

func age(d time.Duration) viewOpt {
	return func(v *MatchView) { v.Match.CreatedAt = journeyNow.Add(-d) }
}

func lastContact(ago time.Duration) viewOpt {
	return func(v *MatchView) {
		at := journeyNow.Add(-ago)
		v.Signals.LastContactAt = &at
	}
}

func volume(n int64) viewOpt {
	return func(v *MatchView) { v.Signals.MessageCount = n; v.Signals.CallCount = 0 }
}

func TestClassifyOne_EveryBucket(t *testing.T) {
	buckets := buildBuckets(testThresholds)

	cases := []struct {
		name string
		view MatchView
		want string
	}{
		{"support pairing", makeView(support()), BucketSupportMatch},
		{"support pairing inactive", makeView(support(), reported(models.ReportKindReport)), BucketSupportMatch},
		{"reported", makeView(reported(models.ReportKindReport)), BucketMatchReported},
		{"unmatched", makeView(reported(models.ReportKindUnmatch)), BucketMatchUnmatched},
		{"no confirmations", makeView(unconfirmed()), BucketMatchNoConfirm},
		{"single confirmation", makeView(unconfirmed(seekerID)), BucketMatchSingleConfirm},
		{"confirmed without contact", makeView(noContact()), BucketMatchNoContact},
		{"ongoing", makeView(), BucketOngoingMatch},
		{"ghosted", makeView(lastContact(20 * 24 * time.Hour)), BucketGhostedMatch},
		{"free play", makeView(age(13 * 7 * 24 * time.Hour)), BucketFreePlayMatch},
		{
			"completed",
			makeView(age(13*7*24*time.Hour), lastContact(20*24*time.Hour), volume(10)),
			BucketCompletedMatch,
		},
		{
			"failed",
			makeView(age(13*7*24*time.Hour), lastContact(20*24*time.Hour), volume(9)),
			BucketFailedMatch,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ClassifyOne(buckets, tc.view)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyOne_Boundaries(t *testing.T) {
	buckets := buildBuckets(testThresholds)

	// Exactly at the inactivity threshold counts as dormant.
	got, err := ClassifyOne(buckets, makeView(lastContact(14*24*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, BucketGhostedMatch, got)

	// One second short of it does not.
	got, err = ClassifyOne(buckets, makeView(lastContact(14*24*time.Hour-time.Second)))
	require.NoError(t, err)
	assert.Equal(t, BucketOngoingMatch, got)

	// Exactly at the maturity threshold counts as mature.
	got, err = ClassifyOne(buckets, makeView(age(12*7*24*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, BucketFreePlayMatch, got)
}

func TestClassifyOne_ConflictIsAnError(t *testing.T) {
	overlapping := []Bucket{
		{Name: "a", Matches: func(MatchView) bool { return true }},
		{Name: "b", Matches: func(MatchView) bool { return true }},
	}

	_, err := ClassifyOne(overlapping, makeView())
	require.Error(t, err)
	var appErr *appErrors.AppError
	require.True(t, appErrors.As(err, &appErr))
	assert.Equal(t, appErrors.CodeClassifierConflict, appErr.Code)
}

func TestClassifyOne_NoHitIsAnError(t *testing.T) {
	none := []Bucket{
		{Name: "a", Matches: func(MatchView) bool { return false }},
	}

	_, err := ClassifyOne(none, makeView())
	require.Error(t, err)
	var appErr *appErrors.AppError
	require.True(t, appErrors.As(err, &appErr))
	assert.Equal(t, appErrors.CodeClassifierConflict, appErr.Code)
}

func TestJourneyService_ClassifyAllMatches(t *testing.T) {
	f := newFixture()
	journey := NewJourneyService(f.matchRepo, f.activityRepo, testThresholds).(*journeyService)
	journey.now = func() time.Time { return f.clock }

	ongoing := makeView()
	ongoing.Match.ID = ""
	require.NoError(t, f.matchRepo.Create(&ongoing.Match))
	f.activityRepo.signals[ongoing.Match.ID] = ongoing.Signals

	supportView := makeView(support())
	supportView.Match.ID = ""
	require.NoError(t, f.matchRepo.Create(&supportView.Match))

	report, err := journey.ClassifyAllMatches()
	require.NoError(t, err)

	assert.Equal(t, []string{ongoing.Match.ID}, report[BucketOngoingMatch])
	assert.Equal(t, []string{supportView.Match.ID}, report[BucketSupportMatch])
}

func TestJourneyService_ClassifyMatch(t *testing.T) {
	f := newFixture()
	journey := NewJourneyService(f.matchRepo, f.activityRepo, testThresholds).(*journeyService)
	journey.now = func() time.Time { return f.clock }

	view := makeView(unconfirmed(seekerID))
	view.Match.ID = ""
	require.NoError(t, f.matchRepo.Create(&view.Match))

	bucket, err := journey.ClassifyMatch(view.Match.ID)
	require.NoError(t, err)
	assert.Equal(t, BucketMatchSingleConfirm, bucket)

	_, err = journey.ClassifyMatch("missing")
	assert.ErrorIs(t, err, appErrors.ErrMatchNotFound)
}
