package algorithms

import (
	"buddymatch_backend/internal/geo"
	"buddymatch_backend/internal/models"
)

// Weights are configuration constants, not data. They must sum to 1.
type Weights struct {
	Language     float64
	Distance     float64
	Availability float64
}

// Result of scoring one ordered (seeker, supporter) pair.
type Result struct {
	Total     float64
	Matchable bool
	Breakdown models.ScoreBreakdown
}

// languageTable maps (desired partner level, actual level) to a normalized
// language compatibility value. A zero entry means incompatible; diagonal
// entries score highest. Immutable, loaded once.
var languageTable = [4][4]float64{
	{1.00, 0.75, 0.50, 0.25},
	{0.00, 1.00, 0.75, 0.50},
	{0.00, 0.50, 1.00, 0.75},
	{0.00, 0.00, 0.50, 1.00},
}

// LanguageCompatibility looks up the table entry for a desired/actual level
// pair. Out-of-range levels are incompatible.
func LanguageCompatibility(desiredLevel, actualLevel int) float64 {
	if desiredLevel < 0 || desiredLevel > 3 || actualLevel < 0 || actualLevel > 3 {
		return 0
	}
	return languageTable[desiredLevel][actualLevel]
}

type Scorer struct {
	resolver      geo.Resolver
	weights       Weights
	maxDistanceKM float64
}

func NewScorer(resolver geo.Resolver, weights Weights, maxDistanceKM float64) *Scorer {
	return &Scorer{
		resolver:      resolver,
		weights:       weights,
		maxDistanceKM: maxDistanceKM,
	}
}

// Score computes the weighted compatibility of a seeker/supporter pair.
// Matchable is true only when every hard constraint passes: a non-zero
// language entry for some shared language, mutual gender preference, and
// distance resolvable and within the configured maximum. Score magnitude
// never overrides a failed hard constraint.
func (s *Scorer) Score(seeker, supporter *models.User) Result {
	breakdown := models.ScoreBreakdown{}

	// Same-role pairs are not scored.
	if seeker.Role != models.UserRoleSeeker || supporter.Role != models.UserRoleSupporter {
		return Result{Total: 0, Matchable: false, Breakdown: breakdown}
	}

	languageScore := s.languageScore(seeker, supporter)
	breakdown.Language = languageScore

	distanceScore, distanceOK := s.distanceScore(seeker, supporter)
	breakdown.Distance = distanceScore

	breakdown.Availability = availabilityOverlap(seeker.GetAvailability(), supporter.GetAvailability())

	total := s.weights.Language*breakdown.Language +
		s.weights.Distance*breakdown.Distance +
		s.weights.Availability*breakdown.Availability

	matchable := languageScore > 0 &&
		distanceOK &&
		genderPreferenceSatisfied(seeker, supporter) &&
		genderPreferenceSatisfied(supporter, seeker)

	return Result{Total: total, Matchable: matchable, Breakdown: breakdown}
}

// languageScore takes the best shared language. Each shared language is
// rated in both directions (each side's desired level against the other's
// actual level) and the weaker direction counts.
func (s *Scorer) languageScore(a, b *models.User) float64 {
	levelsB := map[string]int{}
	for _, skill := range b.GetLanguages() {
		levelsB[skill.Language] = skill.Level
	}

	best := 0.0
	for _, skill := range a.GetLanguages() {
		levelB, shared := levelsB[skill.Language]
		if !shared {
			continue
		}
		forward := LanguageCompatibility(a.DesiredPartnerLevel, levelB)
		backward := LanguageCompatibility(b.DesiredPartnerLevel, skill.Level)
		value := forward
		if backward < value {
			value = backward
		}
		if value > best {
			best = value
		}
	}
	return best
}

// distanceScore normalizes distance to [0,1]. A lookup failure or a
// distance beyond the maximum yields 0 and fails the hard constraint.
func (s *Scorer) distanceScore(a, b *models.User) (float64, bool) {
	distance, ok := geo.Distance(s.resolver, a.PostalCode, b.PostalCode)
	if !ok {
		return 0, false
	}

	if distance > s.maxDistanceKM {
		return 0, false
	}
	return 1 - distance/s.maxDistanceKM, true
}

// availabilityOverlap counts shared day/slot cells normalized by the smaller
// grid. An empty intersection scores 0.
func availabilityOverlap(a, b models.Availability) float64 {
	totalA := 0
	cells := map[string]bool{}
	for day, slots := range a {
		for _, slot := range slots {
			cells[day+"/"+slot] = true
			totalA++
		}
	}

	totalB := 0
	shared := 0
	for day, slots := range b {
		for _, slot := range slots {
			totalB++
			if cells[day+"/"+slot] {
				shared++
			}
		}
	}

	if totalA == 0 || totalB == 0 {
		return 0
	}

	smaller := totalA
	if totalB < smaller {
		smaller = totalB
	}
	return float64(shared) / float64(smaller)
}

func genderPreferenceSatisfied(who, other *models.User) bool {
	pref := who.PartnerGenderPref
	return pref == "" || pref == "any" || pref == other.Gender
}
