package models

import "time"

// Proposal is a tentative pairing awaiting one-sided confirmation. The pair
// is canonical (User1ID < User2ID). One open proposal per pair is enforced
// by a partial unique index created in database/migrate.go.
type Proposal struct {
	BaseModel
	User1ID string         `gorm:"type:uuid;not null;index"`
	User2ID string         `gorm:"type:uuid;not null;index"`
	Status  ProposalStatus `gorm:"type:varchar(20);not null;default:'open'"`
	Closed  bool           `gorm:"not null;default:false"`

	ExpiresAt time.Time `gorm:"not null"`

	// Per-side view tracking, ordered like the canonical pair.
	ViewedByUser1 bool `gorm:"not null;default:false"`
	ViewedByUser2 bool `gorm:"not null;default:false"`
}

// HasParticipant reports whether the given user is one of the two sides.
func (p *Proposal) HasParticipant(userID string) bool {
	return p.User1ID == userID || p.User2ID == userID
}

// IsExpired is the pure time predicate; closing is the caller's explicit
// decision, never a side effect of reading.
func (p *Proposal) IsExpired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
