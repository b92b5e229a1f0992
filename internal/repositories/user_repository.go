package repositories

import (
	"errors"
	"time"

	"buddymatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	TouchProfile(userID string, at time.Time) error
	AssignOrganization(userID, organizationID string) error
	CountByOrganization(organizationID string) (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// TouchProfile bumps the profile-change timestamp used for score staleness.
func (r *UserRepositoryImpl) TouchProfile(userID string, at time.Time) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("profile_updated_at", at).Error
}

func (r *UserRepositoryImpl) AssignOrganization(userID, organizationID string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("organization_id", organizationID).Error
}

func (r *UserRepositoryImpl) CountByOrganization(organizationID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error
	return count, err
}
