package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bookswap/internal/listing"
	"bookswap/internal/model"
	"bookswap/internal/service"
)

// ListingHandler handles listing endpoints.
type ListingHandler struct {
	listings service.ListingService
	logger   *zap.Logger
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(listings service.ListingService, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{listings: listings, logger: logger}
}

// ListingRequest creates or edits a listing. A new listing is available unless available is false.
// On edit, omitting available or images keeps the current value; an empty images array clears them.
type ListingRequest struct {
	Title     string    `json:"title" validate:"max=200"`
	Author    string    `json:"author" validate:"max=200"`
	ISBN      string    `json:"isbn" validate:"max=20"`
	Condition string    `json:"condition"`
	Notes     string    `json:"notes" validate:"max=2000"`
	Available *bool     `json:"available"`
	Images    *[]string `json:"images"`
}

func (r ListingRequest) form() listing.Form {
	f := listing.Form{
		Title:     r.Title,
		Author:    r.Author,
		ISBN:      r.ISBN,
		Condition: model.Condition(r.Condition),
		Notes:     r.Notes,
	}
	if r.Available != nil {
		f.Available = *r.Available
		f.AvailableSet = true
	}
	if r.Images != nil {
		f.Images = *r.Images
		f.ImagesSet = true
	}
	return f
}

// Browse godoc
// @Summary List available listings, newest first
// @Tags listings
// @Produce json
// @Success 200 {array} ListingResponse
// @Router /listings [get]
func (h *ListingHandler) Browse(c echo.Context) error {
	return c.JSON(http.StatusOK, toListings(h.listings.Browse(c.Request().Context())))
}

// Detail godoc
// @Summary Get a listing with its owner's contact and the book's ratings
// @Description The owner's contact is shown when public, or to a viewer holding an accepted swap on the listing.
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} ListingDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings/{id} [get]
func (h *ListingHandler) Detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.listings.Detail(c.Request().Context(), viewer(c), id)
	if err != nil {
		return failure(c, h.logger, err)
	}

	resp := ListingDetailResponse{
		ListingResponse: toListing(detail.ListingView),
		OwnerContact:    detail.OwnerContact,
		Ratings:         detail.Ratings,
	}
	if r := detail.MyRating; r != nil {
		resp.MyRating = &RatingResponse{
			Difficulty: r.Difficulty,
			Emotion:    r.Emotion,
			Enjoyment:  r.Enjoyment,
			UpdatedAt:  r.UpdatedAt,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create a listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ListingRequest true "Listing"
// @Success 201 {object} ListingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	return h.save(c, 0, http.StatusCreated)
}

// Update godoc
// @Summary Edit one of my listings
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Param request body ListingRequest true "Listing"
// @Success 200 {object} ListingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return h.save(c, id, http.StatusOK)
}

func (h *ListingHandler) save(c echo.Context, listingID int64, status int) error {
	claims, err := actor(c)
	if err != nil {
		return err
	}

	var req ListingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.listings.Save(c.Request().Context(), claims.UserID, listingID, req.form())
	if err != nil {
		return failure(c, h.logger, err)
	}
	return c.JSON(status, toListing(*view))
}

// Delete godoc
// @Summary Delete one of my listings
// @Tags listings
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	claims, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.listings.Delete(c.Request().Context(), claims.UserID, id); err != nil {
		return failure(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
