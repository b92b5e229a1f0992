package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ReportEntry is one immutable element of a match's report/unmatch log.
type ReportEntry struct {
	Kind    ReportKind `json:"kind"`
	Reason  string     `json:"reason"`
	ActorID string     `json:"actor_id"`
	At      time.Time  `json:"at"`
}

// Match is a confirmed or operator-created pairing. The pair is canonical
// (User1ID < User2ID); one active match per pair is enforced by a partial
// unique index. Matches are never hard-deleted.
type Match struct {
	BaseModel
	User1ID string `gorm:"type:uuid;not null;index"`
	User2ID string `gorm:"type:uuid;not null;index"`

	Active    bool `gorm:"not null;default:true"`
	Confirmed bool `gorm:"not null;default:false"` // monotonic: never reverts

	ConfirmedBy     datatypes.JSON
	SupportMatching bool `gorm:"not null;default:false"`
	ReportUnmatch   datatypes.JSON
}

func (m *Match) HasParticipant(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) GetConfirmedBy() []string {
	var ids []string
	if len(m.ConfirmedBy) > 0 {
		_ = json.Unmarshal(m.ConfirmedBy, &ids)
	}
	return ids
}

func (m *Match) SetConfirmedBy(ids []string) {
	data, _ := json.Marshal(ids)
	m.ConfirmedBy = data
}

// AddConfirmation records a user's confirmation, idempotently.
func (m *Match) AddConfirmation(userID string) {
	ids := m.GetConfirmedBy()
	for _, id := range ids {
		if id == userID {
			return
		}
	}
	m.SetConfirmedBy(append(ids, userID))
}

func (m *Match) GetReportLog() []ReportEntry {
	var entries []ReportEntry
	if len(m.ReportUnmatch) > 0 {
		_ = json.Unmarshal(m.ReportUnmatch, &entries)
	}
	return entries
}

// AppendReport adds an entry to the report log. Prior entries are never
// removed.
func (m *Match) AppendReport(entry ReportEntry) {
	entries := append(m.GetReportLog(), entry)
	data, _ := json.Marshal(entries)
	m.ReportUnmatch = data
}

// LastReportKind returns the kind of the newest log entry, or "" when the
// log is empty.
func (m *Match) LastReportKind() ReportKind {
	entries := m.GetReportLog()
	if len(entries) == 0 {
		return ""
	}
	return entries[len(entries)-1].Kind
}
