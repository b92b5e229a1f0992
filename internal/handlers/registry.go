package handlers

// AppHandlers bundles every handler for route registration.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	MatchingHandler     *MatchingHandler
	JourneyHandler      *JourneyHandler
	OrganizationHandler *OrganizationHandler
}
