package handlers

import (
	"net/http"

	"buddymatch_backend/internal/appErrors"
	"buddymatch_backend/internal/middleware"
	"buddymatch_backend/internal/models"
	"buddymatch_backend/internal/services"
	"buddymatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	*BaseHandler
	scoringService  services.ScoringService
	proposalService services.ProposalService
	matchService    services.MatchService
}

func NewMatchingHandler(
	base *BaseHandler,
	scoringService services.ScoringService,
	proposalService services.ProposalService,
	matchService services.MatchService,
) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:     base,
		scoringService:  scoringService,
		proposalService: proposalService,
		matchService:    matchService,
	}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup) {
	matching := r.Group("/matching")
	matching.Use(middleware.AuthMiddleware())
	{
		matching.POST("/score", h.ScorePair)

		matching.POST("/proposals", h.CreateProposal)
		matching.POST("/proposals/:proposalId/confirm", h.ConfirmProposal)
		matching.POST("/proposals/:proposalId/deny", h.DenyProposal)
		matching.GET("/proposals/:proposalId/expired", h.IsProposalExpired)
		matching.POST("/proposals/:proposalId/viewed", h.MarkProposalViewed)

		matching.GET("/matches/:matchId", h.GetMatch)
		matching.POST("/matches/:matchId/confirm", h.ConfirmMatch)
		matching.POST("/matches/:matchId/report", h.ReportOrUnmatch)
	}

	// Direct match creation is an operator action.
	admin := r.Group("/admin/matching")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleSupport))
	{
		admin.POST("/matches", h.CreateMatch)
	}
}

func (h *MatchingHandler) ScorePair(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.ScorePairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.HandleValidationError(c, err)
		return
	}

	result, err := h.scoringService.ScorePair(req.UserAID, req.UserBID, req.ForceRecompute)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MatchingHandler) CreateProposal(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.HandleValidationError(c, err)
		return
	}

	proposal, err := h.proposalService.Create(req.UserAID, req.UserBID)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ProposalResponse{
		ProposalID: proposal.ID,
		Status:     string(proposal.Status),
		ExpiresAt:  proposal.ExpiresAt,
	})
}

func (h *MatchingHandler) ConfirmProposal(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	match, err := h.proposalService.Confirm(c.Param("proposalId"), userID)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, matchResponse(match))
}

func (h *MatchingHandler) DenyProposal(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.proposalService.Deny(c.Param("proposalId"), userID); err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MatchingHandler) IsProposalExpired(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	closeIfExpired := c.Query("close_if_expired") == "true"
	expired, err := h.proposalService.IsExpired(c.Param("proposalId"), closeIfExpired)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expired": expired})
}

func (h *MatchingHandler) MarkProposalViewed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.proposalService.MarkViewed(c.Param("proposalId"), userID); err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MatchingHandler) CreateMatch(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.HandleValidationError(c, err)
		return
	}

	match, err := h.matchService.Create(req.UserAID, req.UserBID, req.ConfirmedBy, req.Support)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, matchResponse(match))
}

func (h *MatchingHandler) GetMatch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	match, err := h.matchService.GetMatching(userID, c.Param("matchId"))
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, matchResponse(match))
}

func (h *MatchingHandler) ConfirmMatch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	match, err := h.matchService.Confirm(c.Param("matchId"), userID)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, matchResponse(match))
}

func (h *MatchingHandler) ReportOrUnmatch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReportMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.HandleValidationError(c, err)
		return
	}

	err := h.matchService.ReportOrUnmatch(
		c.Param("matchId"), userID, models.ReportKind(req.Kind), req.Reason)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func matchResponse(match *models.Match) dto.MatchResponse {
	return dto.MatchResponse{
		MatchID:     match.ID,
		Active:      match.Active,
		Confirmed:   match.Confirmed,
		ConfirmedBy: match.GetConfirmedBy(),
		Support:     match.SupportMatching,
	}
}
