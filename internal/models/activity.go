package models

import "time"

// Message and CallSession rows are written by the chat/video subsystems;
// the matching core only ever reads them to derive activity signals.

type Message struct {
	BaseModel
	MatchID  string `gorm:"type:uuid;not null;index"`
	SenderID string `gorm:"type:uuid;not null"`
	Content  string `gorm:"not null"`
}

type CallSession struct {
	BaseModel
	MatchID   string     `gorm:"type:uuid;not null;index"`
	StartedBy string     `gorm:"type:uuid;not null"`
	EndedAt   *time.Time
}

// ActivitySignals are the derived per-match counters and timestamps the
// journey classifier consumes.
type ActivitySignals struct {
	MessageCount   int64
	CallCount      int64
	FirstContactAt *time.Time
	LastContactAt  *time.Time
}

// ContactVolume is the combined message and call count.
func (a ActivitySignals) ContactVolume() int64 {
	return a.MessageCount + a.CallCount
}

// HasContact reports whether the pair ever exchanged a message or call.
func (a ActivitySignals) HasContact() bool {
	return a.FirstContactAt != nil
}
