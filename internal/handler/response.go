package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bookswap/internal/auth"
	"bookswap/internal/contact"
	"bookswap/internal/errors"
	"bookswap/internal/model"
	"bookswap/internal/query"
	"bookswap/internal/service"
)

// UserResponse is the caller's own profile.
type UserResponse struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	DisplayName     string    `json:"display_name"`
	Role            string    `json:"role"`
	PublicContact   bool      `json:"public_contact"`
	PreferredMethod string    `json:"preferred_method"`
	ContactEmail    string    `json:"contact_email"`
	ContactPhone    string    `json:"contact_phone"`
	CreatedAt       time.Time `json:"created_at"`
}

// UserSummaryResponse is how other members appear.
type UserSummaryResponse struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

// BookResponse represents a book.
type BookResponse struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn,omitempty"`
}

// ListingResponse represents a listing with its book and owner.
type ListingResponse struct {
	ID        int64               `json:"id"`
	Book      BookResponse        `json:"book"`
	Owner     UserSummaryResponse `json:"owner"`
	Condition string              `json:"condition"`
	Notes     string              `json:"notes"`
	Available bool                `json:"available"`
	Images    []string            `json:"images"`
	CreatedAt time.Time           `json:"created_at"`
}

// RatingResponse is one user's rating of a book.
type RatingResponse struct {
	Difficulty int       `json:"difficulty"`
	Emotion    int       `json:"emotion"`
	Enjoyment  int       `json:"enjoyment"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListingDetailResponse adds contact and ratings to a listing.
type ListingDetailResponse struct {
	ListingResponse
	OwnerContact contact.Contact `json:"owner_contact"`
	Ratings      query.Averages  `json:"ratings"`
	MyRating     *RatingResponse `json:"my_rating,omitempty"`
}

// SwapResponse represents a swap request.
type SwapResponse struct {
	ID             int64               `json:"id"`
	Status         string              `json:"status"`
	Message        string              `json:"message"`
	ListingID      int64               `json:"listing_id"`
	ListingMissing bool                `json:"listing_missing,omitempty"`
	Book           BookResponse        `json:"book"`
	Owner          UserSummaryResponse `json:"owner"`
	Requester      UserSummaryResponse `json:"requester"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// SwapDetailResponse adds both participants' contacts to a swap.
type SwapDetailResponse struct {
	SwapResponse
	OwnerContact     contact.Contact `json:"owner_contact"`
	RequesterContact contact.Contact `json:"requester_contact"`
}

// MessageResponse carries a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		DisplayName:     u.DisplayName,
		Role:            u.Role,
		PublicContact:   u.PublicContact,
		PreferredMethod: string(u.PreferredMethod),
		ContactEmail:    u.ContactEmail,
		ContactPhone:    u.ContactPhone,
		CreatedAt:       u.CreatedAt,
	}
}

func toSummary(u service.UserSummary) UserSummaryResponse {
	return UserSummaryResponse{ID: u.ID, DisplayName: u.DisplayName}
}

func toBook(b model.Book) BookResponse {
	return BookResponse{ID: b.ID, Title: b.Title, Author: b.Author, ISBN: b.ISBN}
}

func toListing(v service.ListingView) ListingResponse {
	images := v.Listing.Images
	if images == nil {
		images = []string{}
	}
	return ListingResponse{
		ID:        v.Listing.ID,
		Book:      toBook(v.Book),
		Owner:     toSummary(v.Owner),
		Condition: string(v.Listing.Condition),
		Notes:     v.Listing.Notes,
		Available: v.Listing.Available,
		Images:    images,
		CreatedAt: v.Listing.CreatedAt,
	}
}

func toListings(views []service.ListingView) []ListingResponse {
	out := make([]ListingResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toListing(v))
	}
	return out
}

func toSwap(v service.SwapView) SwapResponse {
	return SwapResponse{
		ID:             v.Swap.ID,
		Status:         string(v.Swap.Status),
		Message:        v.Swap.Message,
		ListingID:      v.Swap.ListingID,
		ListingMissing: v.ListingMissing,
		Book:           toBook(v.Book),
		Owner:          toSummary(v.Owner),
		Requester:      toSummary(v.Requester),
		CreatedAt:      v.Swap.CreatedAt,
		UpdatedAt:      v.Swap.UpdatedAt,
	}
}

func toSwaps(views []service.SwapView) []SwapResponse {
	out := make([]SwapResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toSwap(v))
	}
	return out
}

// failure converts a service error into the HTTP error echo renders. Unexpected errors are logged and
// reported as a generic 500.
func failure(c echo.Context, logger *zap.Logger, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if errors.KindOf(err) == "" {
		logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	return nil
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid "+name, "INVALID_ID")
	}
	return id, nil
}

func actor(c echo.Context) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHORIZED",
		})
	}
	return claims, nil
}

// viewer returns the caller's id on routes where authentication is optional, 0 for anonymous callers.
func viewer(c echo.Context) int64 {
	if claims, ok := auth.ClaimsFrom(c); ok {
		return claims.UserID
	}
	return 0
}
