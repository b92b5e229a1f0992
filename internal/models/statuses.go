package models

type UserStatus string
type UserRole string
type UserCategory string
type ProposalStatus string
type ReportKind string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	// Seekers ask for support and confirm proposals; supporters provide it
	// and stay passive while a proposal is open.
	UserRoleSeeker    UserRole = "seeker"
	UserRoleSupporter UserRole = "supporter"
	UserRoleSupport   UserRole = "support"
	UserRoleAdmin     UserRole = "admin"

	UserCategoryNormal UserCategory = "normal"
	UserCategorySpam   UserCategory = "spam"
	UserCategoryTest   UserCategory = "test"

	ProposalStatusOpen      ProposalStatus = "open"
	ProposalStatusConfirmed ProposalStatus = "confirmed"
	ProposalStatusDenied    ProposalStatus = "denied"
	ProposalStatusExpired   ProposalStatus = "expired"

	ReportKindReport  ReportKind = "report"
	ReportKindUnmatch ReportKind = "unmatch"
)
