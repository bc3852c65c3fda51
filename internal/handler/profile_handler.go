package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bookswap/internal/model"
	"bookswap/internal/service"
)

// ProfileHandler serves the caller's own profile and library.
type ProfileHandler struct {
	profiles service.ProfileService
	listings service.ListingService
	logger   *zap.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles service.ProfileService, listings service.ListingService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, listings: listings, logger: logger}
}

// ProfileRequest represents a profile update. preferred_method is EMAIL, PHONE or empty.
type ProfileRequest struct {
	DisplayName     string `json:"display_name" validate:"max=80"`
	PublicContact   bool   `json:"public_contact"`
	PreferredMethod string `json:"preferred_method"`
	ContactEmail    string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone    string `json:"contact_phone" validate:"omitempty,e164"`
}

// GetProfile godoc
// @Summary Get my profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	claims, err := actor(c)
	if err != nil {
		return err
	}

	user, err := h.profiles.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return failure(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateProfile godoc
// @Summary Update my profile and contact preferences
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileRequest true "Profile"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	claims, err := actor(c)
	if err != nil {
		return err
	}

	var req ProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.profiles.UpdateProfile(c.Request().Context(), claims.UserID, service.ProfileUpdate{
		DisplayName:     req.DisplayName,
		PublicContact:   req.PublicContact,
		PreferredMethod: model.ContactMethod(req.PreferredMethod),
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
	})
	if err != nil {
		return failure(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Library godoc
// @Summary List my listings, available or not
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ListingResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/listings [get]
func (h *ProfileHandler) Library(c echo.Context) error {
	claims, err := actor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListings(h.listings.Library(c.Request().Context(), claims.UserID)))
}
