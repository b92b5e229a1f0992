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

type JourneyHandler struct {
	*BaseHandler
	journeyService services.JourneyService
}

func NewJourneyHandler(base *BaseHandler, journeyService services.JourneyService) *JourneyHandler {
	return &JourneyHandler{
		BaseHandler:    base,
		journeyService: journeyService,
	}
}

func (h *JourneyHandler) RegisterRoutes(r *gin.RouterGroup) {
	journey := r.Group("/journey")
	journey.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleSupport))
	{
		journey.GET("/matches/:matchId", h.ClassifyMatch)
		journey.GET("/report", h.ClassifyAllMatches)
	}
}

func (h *JourneyHandler) ClassifyMatch(c *gin.Context) {
	bucket, err := h.journeyService.ClassifyMatch(c.Param("matchId"))
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BucketResponse{
		MatchID: c.Param("matchId"),
		Bucket:  bucket,
	})
}

func (h *JourneyHandler) ClassifyAllMatches(c *gin.Context) {
	report, err := h.journeyService.ClassifyAllMatches()
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
