package handler

import (
	"context"
	"net/http"
	"strconv"

	"septic-canary/internal/apperrors"
	"septic-canary/internal/models"

	"github.com/gin-gonic/gin"
)

// PropertyHandler handles property details requests
type PropertyHandler struct {
	service PropertyService
}

// Service interface for dependency injection
type PropertyService interface {
	LookupPropertyDetails(context.Context, models.LookupRequest) (*models.PropertyDetails, error)
}

// NewPropertyHandler creates a new property details handler
func NewPropertyHandler(svc PropertyService) *PropertyHandler {
	return &PropertyHandler{service: svc}
}

// GetPropertyDetails handles GET /api/v1/property/details requests
//
//	@Summary		Look up property details
//	@Description	Reports whether the property at the given address uses a septic system.
//	@Tags			property
//	@Produce		json
//	@Param			street	query		string	true	"Street address of the property"
//	@Param			unit	query		string	false	"Unit within the building at street"
//	@Param			city	query		string	false	"City containing the property"
//	@Param			state	query		string	false	"State containing the property"
//	@Param			zip		query		string	false	"ZIP code containing the property"
//	@Success		200		{object}	models.PropertyDetails
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		BasicAuth
//	@Router			/api/v1/property/details [get]
func (h *PropertyHandler) GetPropertyDetails(c *gin.Context) {
	var req models.LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		RespondError(c, apperrors.InvalidRequest("'street' must be specified"))
		return
	}

	details, err := h.service.LookupPropertyDetails(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// ErrorResponse is the body of every non-200 response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RespondError writes err as a {"detail": ...} response with the headers its kind requires.
func RespondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)

	switch appErr.Code {
	case apperrors.CodeUnauthorized:
		c.Header("WWW-Authenticate", "Basic")
	case apperrors.CodeRateLimited:
		if appErr.HasRetryAfter {
			c.Header("Retry-After", strconv.FormatInt(appErr.RetryAfter, 10))
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPStatus, ErrorResponse{Detail: appErr.Message})
}
