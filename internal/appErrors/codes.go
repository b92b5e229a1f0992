package appErrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeSelfPairing      ErrorCode = "SELF_PAIRING"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"

	// Resources
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodePairScoreNotFound    ErrorCode = "PAIR_SCORE_NOT_FOUND"
	CodeProposalNotFound     ErrorCode = "PROPOSAL_NOT_FOUND"
	CodeMatchNotFound        ErrorCode = "MATCH_NOT_FOUND"
	CodeOrganizationNotFound ErrorCode = "ORGANIZATION_NOT_FOUND"

	// Matching business logic
	CodeDuplicateProposal  ErrorCode = "DUPLICATE_PROPOSAL"
	CodeDuplicateMatch     ErrorCode = "DUPLICATE_MATCH"
	CodeProposalClosed     ErrorCode = "PROPOSAL_CLOSED"
	CodeProposalExpired    ErrorCode = "PROPOSAL_EXPIRED"
	CodePairNotMatchable   ErrorCode = "PAIR_NOT_MATCHABLE"
	CodeUserAlreadyMatched ErrorCode = "USER_ALREADY_MATCHED"
	CodeUserInOpenProposal ErrorCode = "USER_IN_OPEN_PROPOSAL"
	CodeNotParticipant     ErrorCode = "NOT_PARTICIPANT"
	CodeWrongConfirmRole   ErrorCode = "WRONG_CONFIRM_ROLE"
	CodeSupportMatchReport ErrorCode = "SUPPORT_MATCH_REPORT"
	CodeMatchInactive      ErrorCode = "MATCH_INACTIVE"

	// System errors
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError      ErrorCode = "DATABASE_ERROR"
	CodeClassifierConflict ErrorCode = "CLASSIFIER_CONFLICT"
)
