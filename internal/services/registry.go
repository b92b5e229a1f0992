package services

// ServiceContainer bundles every service for wiring in internal/app.
type ServiceContainer struct {
	AuthService         AuthService
	ScoringService      ScoringService
	ProposalService     ProposalService
	MatchService        MatchService
	JourneyService      JourneyService
	OrganizationService OrganizationService
}
