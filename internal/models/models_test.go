package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	a, b := CanonicalPair("bbb", "aaa")
	assert.Equal(t, "aaa", a)
	assert.Equal(t, "bbb", b)

	a, b = CanonicalPair("aaa", "bbb")
	assert.Equal(t, "aaa", a)
	assert.Equal(t, "bbb", b)
}

func TestMatchConfirmationsIdempotent(t *testing.T) {
	m := &Match{}
	m.AddConfirmation("u1")
	m.AddConfirmation("u1")
	m.AddConfirmation("u2")

	assert.Equal(t, []string{"u1", "u2"}, m.GetConfirmedBy())
}

func TestMatchReportLogAppendOnly(t *testing.T) {
	m := &Match{}
	assert.Equal(t, ReportKind(""), m.LastReportKind())

	m.AppendReport(ReportEntry{Kind: ReportKindUnmatch, ActorID: "u1", At: time.Now()})
	m.AppendReport(ReportEntry{Kind: ReportKindReport, ActorID: "u2", At: time.Now()})

	log := m.GetReportLog()
	assert.Len(t, log, 2)
	assert.Equal(t, ReportKindUnmatch, log[0].Kind)
	assert.Equal(t, ReportKindReport, m.LastReportKind())
}

func TestProposalIsExpired(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &Proposal{ExpiresAt: deadline}

	assert.False(t, p.IsExpired(deadline.Add(-time.Second)))
	assert.False(t, p.IsExpired(deadline))
	assert.True(t, p.IsExpired(deadline.Add(time.Second)))
}

func TestUserLanguageAndAvailabilityRoundTrip(t *testing.T) {
	u := &User{}
	assert.Empty(t, u.GetLanguages())
	assert.Empty(t, u.GetAvailability())

	u.SetLanguages([]LanguageSkill{{Language: "de", Level: 2}})
	u.SetAvailability(Availability{"monday": {"evening"}})

	assert.Equal(t, 2, u.GetLanguages()[0].Level)
	assert.Equal(t, []string{"evening"}, u.GetAvailability()["monday"])
}
