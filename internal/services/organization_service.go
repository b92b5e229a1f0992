package services

import (
	"buddymatch_backend/internal/appErrors"
	"buddymatch_backend/internal/geo"
	"buddymatch_backend/internal/models"
	"buddymatch_backend/internal/repositories"
)

// OrganizationWeights and capacity bounds are configuration constants.
type OrganizationWeights struct {
	Distance    float64
	Capacity    float64
	MinCapacity int
	MaxCapacity int
}

type OrganizationService interface {
	// FindMatch returns the best-fit organization for the user, or nil
	// when no candidate survives the hard filters. A preselected
	// organization bypasses scoring entirely.
	FindMatch(userID string) (*models.Organization, error)

	// Assign records the pairing of a user to an organization.
	Assign(userID, organizationID string) error
}

type organizationService struct {
	orgRepo  repositories.OrganizationRepository
	userRepo repositories.UserRepository
	resolver geo.Resolver
	weights  OrganizationWeights
}

func NewOrganizationService(
	orgRepo repositories.OrganizationRepository,
	userRepo repositories.UserRepository,
	resolver geo.Resolver,
	weights OrganizationWeights,
) OrganizationService {
	return &organizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
		resolver: resolver,
		weights:  weights,
	}
}

func (s *organizationService) FindMatch(userID string) (*models.Organization, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	if user.PreselectedOrganizationID != nil {
		org, err := s.orgRepo.FindByID(*user.PreselectedOrganizationID)
		if err != nil {
			return nil, mapOrgErr(err)
		}
		return org, nil
	}

	// Candidates come back in id order, which makes the keep-first tie
	// break deterministic.
	candidates, err := s.orgRepo.ListByGroup(user.RequestedGroup)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	var best *models.Organization
	bestTotal := 0.0

	for i := range candidates {
		org := &candidates[i]

		if user.OrganizationID != nil && *user.OrganizationID == org.ID {
			continue
		}

		distanceScore := s.distanceScore(user, org)
		if distanceScore == 0 {
			// Out of reach or unresolvable: hard exclusion, not a low score.
			continue
		}

		matched, err := s.userRepo.CountByOrganization(org.ID)
		if err != nil {
			return nil, appErrors.InternalError(err)
		}
		if matched >= int64(org.Capacity) {
			continue
		}

		capacityScore := s.capacityScore(org.Capacity - int(matched))

		total := s.weights.Distance*distanceScore + s.weights.Capacity*capacityScore
		if best == nil || total > bestTotal {
			best = org
			bestTotal = total
		}
	}

	return best, nil
}

func (s *organizationService) Assign(userID, organizationID string) error {
	if _, err := s.orgRepo.FindByID(organizationID); err != nil {
		return mapOrgErr(err)
	}
	if err := s.userRepo.AssignOrganization(userID, organizationID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// distanceScore normalizes against the organization's own maximum distance.
func (s *organizationService) distanceScore(user *models.User, org *models.Organization) float64 {
	distance, ok := geo.Distance(s.resolver, user.PostalCode, org.PostalCode)
	if !ok || distance > org.MaxDistanceKM || org.MaxDistanceKM <= 0 {
		return 0
	}
	return 1 - distance/org.MaxDistanceKM
}

// capacityScore is a linear normalization of remaining capacity over the
// configured [min, max] range; undefined (zero) outside the range.
func (s *organizationService) capacityScore(remaining int) float64 {
	if remaining < s.weights.MinCapacity || remaining > s.weights.MaxCapacity {
		return 0
	}
	span := s.weights.MaxCapacity - s.weights.MinCapacity
	if span == 0 {
		return 1
	}
	return float64(remaining-s.weights.MinCapacity) / float64(span)
}

func mapOrgErr(err error) error {
	if appErrors.Is(err, repositories.ErrOrganizationNotFound) {
		return appErrors.ErrOrganizationNotFound
	}
	return appErrors.InternalError(err)
}
