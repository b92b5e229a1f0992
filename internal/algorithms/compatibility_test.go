package algorithms

import (
	"testing"

	"buddymatch_backend/internal/geo"
	"buddymatch_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWeights = Weights{Language: 0.4, Distance: 0.3, Availability: 0.3}

// Berlin Mitte, Berlin (next postal code over) and Hamburg.
var testPostalTable = map[string]geo.Coordinates{
	"10115": {Lat: 52.5323, Lon: 13.3846},
	"10117": {Lat: 52.5170, Lon: 13.3889},
	"20095": {Lat: 53.5503, Lon: 10.0007},
}

func newTestScorer() *Scorer {
	return NewScorer(geo.NewStaticResolver(testPostalTable), testWeights, 50)
}

func newSeeker() *models.User {
	u := &models.User{
		Role:                models.UserRoleSeeker,
		Gender:              "female",
		PostalCode:          "10115",
		DesiredPartnerLevel: 2,
	}
	u.SetLanguages([]models.LanguageSkill{{Language: "de", Level: 2}})
	u.SetAvailability(models.Availability{
		"monday": {"morning", "evening"},
		"friday": {"evening"},
	})
	return u
}

func newSupporter() *models.User {
	u := &models.User{
		Role:                models.UserRoleSupporter,
		Gender:              "male",
		PostalCode:          "10117",
		DesiredPartnerLevel: 2,
	}
	u.SetLanguages([]models.LanguageSkill{{Language: "de", Level: 2}})
	u.SetAvailability(models.Availability{
		"monday": {"evening"},
	})
	return u
}

func TestLanguageCompatibility_Table(t *testing.T) {
	// Exact desired level always scores highest.
	for level := 0; level <= 3; level++ {
		assert.Equal(t, 1.0, LanguageCompatibility(level, level))
	}

	// A partner below the desired level can be incompatible outright.
	assert.Equal(t, 0.0, LanguageCompatibility(1, 0))
	assert.Equal(t, 0.0, LanguageCompatibility(3, 0))
	assert.Equal(t, 0.0, LanguageCompatibility(3, 1))

	// Above the desired level degrades but stays positive.
	assert.Equal(t, 0.75, LanguageCompatibility(0, 1))
	assert.Equal(t, 0.75, LanguageCompatibility(1, 2))

	// Out of range is incompatible, never a panic.
	assert.Equal(t, 0.0, LanguageCompatibility(-1, 2))
	assert.Equal(t, 0.0, LanguageCompatibility(2, 4))
}

func TestScore_CompatiblePair(t *testing.T) {
	scorer := newTestScorer()

	result := scorer.Score(newSeeker(), newSupporter())

	require.True(t, result.Matchable)
	assert.Equal(t, 1.0, result.Breakdown.Language)
	assert.Greater(t, result.Breakdown.Distance, 0.9) // ~1.7 km of a 50 km max
	assert.Equal(t, 1.0, result.Breakdown.Availability)
	assert.Greater(t, result.Total, 0.0)
	assert.LessOrEqual(t, result.Total, 1.0)
}

func TestScore_SameRolePairNotScored(t *testing.T) {
	scorer := newTestScorer()

	result := scorer.Score(newSeeker(), newSeeker())

	assert.False(t, result.Matchable)
	assert.Equal(t, 0.0, result.Total)
}

func TestScore_DistanceBeyondMaxFailsHard(t *testing.T) {
	scorer := newTestScorer()
	supporter := newSupporter()
	supporter.PostalCode = "20095" // Hamburg, ~255 km

	result := scorer.Score(newSeeker(), supporter)

	assert.False(t, result.Matchable)
	assert.Equal(t, 0.0, result.Breakdown.Distance)
	// Other dimensions still contribute to the reported total.
	assert.Equal(t, 1.0, result.Breakdown.Language)
}

func TestScore_UnknownPostalCodeFailsHard(t *testing.T) {
	scorer := newTestScorer()
	supporter := newSupporter()
	supporter.PostalCode = "99999"

	result := scorer.Score(newSeeker(), supporter)

	assert.False(t, result.Matchable)
	assert.Equal(t, 0.0, result.Breakdown.Distance)
}

func TestScore_NoSharedLanguageFailsHard(t *testing.T) {
	scorer := newTestScorer()
	supporter := newSupporter()
	supporter.SetLanguages([]models.LanguageSkill{{Language: "fr", Level: 2}})

	result := scorer.Score(newSeeker(), supporter)

	assert.False(t, result.Matchable)
	assert.Equal(t, 0.0, result.Breakdown.Language)
}

func TestScore_WeakerDirectionCounts(t *testing.T) {
	scorer := newTestScorer()
	seeker := newSeeker()
	supporter := newSupporter()

	// Forward direction is perfect, backward is incompatible: the supporter
	// wants level 3 but the seeker only offers level 2.
	supporter.DesiredPartnerLevel = 3
	seeker.SetLanguages([]models.LanguageSkill{{Language: "de", Level: 1}})

	result := scorer.Score(seeker, supporter)

	assert.False(t, result.Matchable)
	assert.Equal(t, 0.0, result.Breakdown.Language)
}

func TestScore_BestSharedLanguageWins(t *testing.T) {
	scorer := newTestScorer()
	seeker := newSeeker()
	supporter := newSupporter()

	seeker.SetLanguages([]models.LanguageSkill{
		{Language: "de", Level: 2},
		{Language: "en", Level: 1},
	})
	supporter.SetLanguages([]models.LanguageSkill{
		{Language: "de", Level: 1}, // weaker: desired 2 vs actual 1 = 0.5
		{Language: "en", Level: 2}, // desired 2 vs actual 2 = 1.0, but backward desired 2 vs actual 1 = 0.5
	})

	result := scorer.Score(seeker, supporter)

	assert.Equal(t, 0.5, result.Breakdown.Language)
}

func TestScore_GenderPreferenceMustBeMutual(t *testing.T) {
	scorer := newTestScorer()

	seeker := newSeeker()
	supporter := newSupporter()
	seeker.PartnerGenderPref = "female" // supporter is male

	result := scorer.Score(seeker, supporter)
	assert.False(t, result.Matchable)

	seeker.PartnerGenderPref = "male"
	supporter.PartnerGenderPref = "female"
	result = scorer.Score(seeker, supporter)
	assert.True(t, result.Matchable)

	// "any" and empty both mean no preference.
	supporter.PartnerGenderPref = "any"
	result = scorer.Score(seeker, supporter)
	assert.True(t, result.Matchable)
}

func TestScore_IdenticalPostalCodeScoresFullDistance(t *testing.T) {
	scorer := newTestScorer()
	supporter := newSupporter()
	supporter.PostalCode = "10115"

	result := scorer.Score(newSeeker(), supporter)

	assert.Equal(t, 1.0, result.Breakdown.Distance)
}

func TestScore_DistanceMonotonic(t *testing.T) {
	scorer := newTestScorer()
	seeker := newSeeker()

	near := newSupporter()
	near.PostalCode = "10115"
	farther := newSupporter()
	farther.PostalCode = "10117"

	nearResult := scorer.Score(seeker, near)
	fartherResult := scorer.Score(seeker, farther)

	assert.Greater(t, nearResult.Breakdown.Distance, fartherResult.Breakdown.Distance)
	assert.Greater(t, nearResult.Total, fartherResult.Total)
}

func TestAvailabilityOverlap(t *testing.T) {
	full := models.Availability{"monday": {"morning", "evening"}}
	partial := models.Availability{"monday": {"evening"}, "tuesday": {"morning"}}
	disjoint := models.Availability{"sunday": {"morning"}}

	// Shared cells normalized by the smaller grid.
	assert.Equal(t, 1.0, availabilityOverlap(full, full))
	assert.Equal(t, 0.5, availabilityOverlap(full, partial))
	assert.Equal(t, 0.0, availabilityOverlap(full, disjoint))
	assert.Equal(t, 0.0, availabilityOverlap(full, models.Availability{}))
	assert.Equal(t, 0.0, availabilityOverlap(models.Availability{}, models.Availability{}))
}
