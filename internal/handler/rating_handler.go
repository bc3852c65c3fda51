package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bookswap/internal/rating"
	"bookswap/internal/service"
)

// RatingHandler handles book rating endpoints.
type RatingHandler struct {
	ratings service.RatingService
	logger  *zap.Logger
}

// NewRatingHandler creates a new rating handler.
func NewRatingHandler(ratings service.RatingService, logger *zap.Logger) *RatingHandler {
	return &RatingHandler{ratings: ratings, logger: logger}
}

// RatingRequest holds scores from 1 to 5.
type RatingRequest struct {
	Difficulty int `json:"difficulty"`
	Emotion    int `json:"emotion"`
	Enjoyment  int `json:"enjoyment"`
}

// Averages godoc
// @Summary Get a book's rating averages
// @Tags ratings
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} query.Averages
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id}/ratings [get]
func (h *RatingHandler) Averages(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	avg, err := h.ratings.Averages(c.Request().Context(), id)
	if err != nil {
		return failure(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, avg)
}

// Rate godoc
// @Summary Rate a book, replacing my earlier rating
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param request body RatingRequest true "Scores"
// @Success 200 {object} query.Averages
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id}/rating [put]
func (h *RatingHandler) Rate(c echo.Context) error {
	claims, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req RatingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	avg, err := h.ratings.SaveRating(c.Request().Context(), claims.UserID, id, rating.Scores{
		Difficulty: req.Difficulty,
		Emotion:    req.Emotion,
		Enjoyment:  req.Enjoyment,
	})
	if err != nil {
		return failure(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, avg)
}
