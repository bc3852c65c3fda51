package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bookswap/internal/service"
)

// SwapHandler handles swap request endpoints.
type SwapHandler struct {
	swaps  service.SwapService
	logger *zap.Logger
}

// NewSwapHandler creates a new swap handler.
func NewSwapHandler(swaps service.SwapService, logger *zap.Logger) *SwapHandler {
	return &SwapHandler{swaps: swaps, logger: logger}
}

// SwapRequest represents a swap request on a listing.
type SwapRequest struct {
	Message string `json:"message" validate:"max=500"`
}

// Request godoc
// @Summary Request a swap for a listing
// @Tags swaps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Param request body SwapRequest false "Message to the owner"
// @Success 201 {object} SwapResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /listings/{id}/swaps [post]
func (h *SwapHandler) Request(c echo.Context) error {
	claims, err := actor(c)
	if err != nil {
		return err
	}
	listingID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req SwapRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.swaps.Request(c.Request().Context(), claims.UserID, listingID, req.Message)
	if err != nil {
		return failure(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, toSwap(*view))
}

// Inbox godoc
// @Summary List swap requests on my listings, newest first
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Success 200 {array} SwapResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /swaps/inbox [get]
func (h *SwapHandler) Inbox(c echo.Context) error {
	claims, err := actor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSwaps(h.swaps.Inbox(c.Request().Context(), claims.UserID)))
}

// Outbox godoc
// @Summary List swap requests I made, newest first
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Success 200 {array} SwapResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /swaps/outbox [get]
func (h *SwapHandler) Outbox(c echo.Context) error {
	claims, err := actor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSwaps(h.swaps.Outbox(c.Request().Context(), claims.UserID)))
}

// Detail godoc
// @Summary Get a swap with both participants' contacts
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Param id path int true "Swap ID"
// @Success 200 {object} SwapDetailResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /swaps/{id} [get]
func (h *SwapHandler) Detail(c echo.Context) error {
	claims, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.swaps.Detail(c.Request().Context(), claims.UserID, id)
	if err != nil {
		return failure(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, SwapDetailResponse{
		SwapResponse:     toSwap(detail.SwapView),
		OwnerContact:     detail.OwnerContact,
		RequesterContact: detail.RequesterContact,
	})
}

// Accept godoc
// @Summary Accept a pending swap on my listing
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Param id path int true "Swap ID"
// @Success 200 {object} SwapResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /swaps/{id}/accept [post]
func (h *SwapHandler) Accept(c echo.Context) error {
	return h.transition(c, h.swaps.Accept)
}

// Decline godoc
// @Summary Decline a pending swap on my listing
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Param id path int true "Swap ID"
// @Success 200 {object} SwapResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /swaps/{id}/decline [post]
func (h *SwapHandler) Decline(c echo.Context) error {
	return h.transition(c, h.swaps.Decline)
}

// Complete godoc
// @Summary Mark an accepted swap as completed
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Param id path int true "Swap ID"
// @Success 200 {object} SwapResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /swaps/{id}/complete [post]
func (h *SwapHandler) Complete(c echo.Context) error {
	return h.transition(c, h.swaps.Complete)
}

// Cancel godoc
// @Summary Cancel an accepted swap I requested
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Param id path int true "Swap ID"
// @Success 200 {object} SwapResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /swaps/{id}/cancel [post]
func (h *SwapHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.swaps.Cancel)
}

func (h *SwapHandler) transition(c echo.Context, fn func(ctx context.Context, actorID, swapID int64) (*service.SwapView, error)) error {
	claims, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	view, err := fn(c.Request().Context(), claims.UserID, id)
	if err != nil {
		return failure(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, toSwap(*view))
}
