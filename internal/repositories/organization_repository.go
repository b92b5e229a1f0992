package repositories

import (
	"errors"

	"buddymatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
)

type OrganizationRepository interface {
	Create(org *models.Organization) error
	FindByID(id string) (*models.Organization, error)
	ListByGroup(group string) ([]models.Organization, error)
}

type OrganizationRepositoryImpl struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &OrganizationRepositoryImpl{db: db}
}

func (r *OrganizationRepositoryImpl) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

func (r *OrganizationRepositoryImpl) FindByID(id string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

// ListByGroup returns organizations supporting the group in id order. The
// fixed ordering keeps tie-breaking in the matcher deterministic.
func (r *OrganizationRepositoryImpl) ListByGroup(group string) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.
		Where("? = ANY(supported_groups)", group).
		Order("id ASC").
		Find(&orgs).Error
	return orgs, err
}
