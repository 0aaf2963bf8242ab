package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mickeyAlem27/Super-backend/internal/core/domain"
	"github.com/mickeyAlem27/Super-backend/internal/transport/http/middleware"
	"github.com/mickeyAlem27/Super-backend/internal/usecase"
)

// ProfileHandler exposes profile retrieval and mutation for the authenticated
// account.
type ProfileHandler struct {
	accounts *usecase.AccountService
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(accounts *usecase.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// Get returns the authenticated account's profile. A soft-deleted account
// resolves to 404 even with a valid token.
func (h *ProfileHandler) Get(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	account, err := h.accounts.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "account not found"},
		}, http.StatusInternalServerError, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{User: newAccountView(*account)})
}

// Update applies a partial profile mutation. Password and email fields in the
// request body are never bound, so attempts to change them are dropped.
func (h *ProfileHandler) Update(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid profile payload"))
		return
	}

	update := domain.AccountUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		PhoneNo:   req.PhoneNo,
		OTP:       req.OTP,
		Verified:  req.Verified,
	}

	account, err := h.accounts.UpdateProfile(c.Request.Context(), accountID, update)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "account not found"},
			{Err: usecase.ErrAccountConflict, Status: http.StatusBadRequest, Message: "phone number already registered"},
		}, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Message: "Profile updated successfully",
		User:    newAccountView(*account),
	})
}
