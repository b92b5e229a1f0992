package handlers

import (
	"net/http"

	"buddymatch_backend/internal/appErrors"
	"buddymatch_backend/internal/middleware"
	"buddymatch_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	*BaseHandler
	organizationService services.OrganizationService
}

func NewOrganizationHandler(base *BaseHandler, organizationService services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		BaseHandler:         base,
		organizationService: organizationService,
	}
}

func (h *OrganizationHandler) RegisterRoutes(r *gin.RouterGroup) {
	orgs := r.Group("/organizations")
	orgs.Use(middleware.AuthMiddleware())
	{
		orgs.GET("/match", h.FindMatch)
		orgs.POST("/:organizationId/assign", h.Assign)
	}
}

// FindMatch returns the best-fit organization for the caller, or 404 when
// no candidate survives the filters.
func (h *OrganizationHandler) FindMatch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	org, err := h.organizationService.FindMatch(userID)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	if org == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No suitable organization found"})
		return
	}

	c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandler) Assign(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.organizationService.Assign(userID, c.Param("organizationId")); err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
