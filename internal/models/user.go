package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// LanguageSkill is one entry of a user's language list.
// Level runs 0 (none) to 3 (fluent).
type LanguageSkill struct {
	Language string `json:"language"`
	Level    int    `json:"level"`
}

// Availability is a day × time-slot grid, weekday name to slot labels.
type Availability map[string][]string

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null"`
	Status       UserStatus `gorm:"type:varchar(20);default:'pending'"`
	IsVerified   bool       `gorm:"default:false"`
	Unresponsive bool       `gorm:"default:false"`
	Category     UserCategory `gorm:"type:varchar(20);default:'normal'"`

	// Scoring attributes
	Gender              string `gorm:"type:varchar(20)"`
	PartnerGenderPref   string `gorm:"type:varchar(20)"` // empty = no preference
	PostalCode          string `gorm:"type:varchar(10);index"`
	DesiredPartnerLevel int    `gorm:"default:0"`
	Languages           datatypes.JSON
	Availability        datatypes.JSON

	// Bumped whenever a scoring-relevant attribute changes; the score cache
	// compares against it to detect staleness.
	ProfileUpdatedAt time.Time `gorm:"default:now()"`

	// Organization matching
	OrganizationID            *string `gorm:"type:uuid;index"`
	PreselectedOrganizationID *string `gorm:"type:uuid"`
	RequestedGroup            string  `gorm:"type:varchar(50)"`
}

func (u *User) GetLanguages() []LanguageSkill {
	var skills []LanguageSkill
	if len(u.Languages) > 0 {
		_ = json.Unmarshal(u.Languages, &skills)
	}
	return skills
}

func (u *User) SetLanguages(skills []LanguageSkill) {
	data, _ := json.Marshal(skills)
	u.Languages = data
}

func (u *User) GetAvailability() Availability {
	grid := Availability{}
	if len(u.Availability) > 0 {
		_ = json.Unmarshal(u.Availability, &grid)
	}
	return grid
}

func (u *User) SetAvailability(grid Availability) {
	data, _ := json.Marshal(grid)
	u.Availability = data
}

// IsMatchableRole reports whether the user holds one of the two roles the
// scorer is defined for.
func (u *User) IsMatchableRole() bool {
	return u.Role == UserRoleSeeker || u.Role == UserRoleSupporter
}
