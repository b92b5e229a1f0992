package models

import "github.com/lib/pq"

// Organization is a partner organization a standalone user can be matched
// to by support-group overlap, distance and remaining capacity.
type Organization struct {
	BaseModel
	Name            string         `gorm:"not null"`
	PostalCode      string         `gorm:"type:varchar(10);not null"`
	SupportedGroups pq.StringArray `gorm:"type:text[]"`
	MaxDistanceKM   float64        `gorm:"not null"`
	Capacity        int            `gorm:"not null"`
}

// SupportsGroup reports whether the organization serves the given group.
func (o *Organization) SupportsGroup(group string) bool {
	for _, g := range o.SupportedGroups {
		if g == group {
			return true
		}
	}
	return false
}
