package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolworks/campus-api/internal/models"
	"github.com/schoolworks/campus-api/internal/service"
	appErrors "github.com/schoolworks/campus-api/pkg/errors"
	"github.com/schoolworks/campus-api/pkg/response"
)

// ViewHandler resolves which attendance view a client should render.
type ViewHandler struct{}

// NewViewHandler constructs handler.
func NewViewHandler() *ViewHandler {
	return &ViewHandler{}
}

// Resolve godoc
// @Summary Resolve the attendance view for the caller's role and context
// @Tags Views
// @Accept json
// @Produce json
// @Param payload body models.NavigationContext true "Navigation context"
// @Success 200 {object} response.Envelope
// @Router /views/resolve [post]
func (h *ViewHandler) Resolve(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var nav models.NavigationContext
	if err := c.ShouldBindJSON(&nav); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	state, err := service.ResolveView(claims.Role, nav)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}
