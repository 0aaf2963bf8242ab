package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mickeyAlem27/Super-backend/internal/transport/http/middleware"
	"github.com/mickeyAlem27/Super-backend/internal/usecase"
)

// PasswordHandler exposes password change and reset-request endpoints.
type PasswordHandler struct {
	accounts *usecase.AccountService
	resets   *usecase.PasswordResetService
}

// NewPasswordHandler constructs a PasswordHandler.
func NewPasswordHandler(accounts *usecase.AccountService, resets *usecase.PasswordResetService) *PasswordHandler {
	return &PasswordHandler{accounts: accounts, resets: resets}
}

// Change rotates the authenticated account's password after verifying the
// current one. Previously issued tokens stay valid until expiry.
func (h *PasswordHandler) Change(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid password payload"))
		return
	}

	if err := h.accounts.ChangePassword(c.Request.Context(), accountID, req.CurrentPassword, req.NewPassword); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusBadRequest, Message: "current password is incorrect"},
			{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "account not found"},
		}, http.StatusInternalServerError, "failed to change password")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}

// Forgot initiates a password reset for the supplied email. Delivery of the
// reset instructions is not implemented; the stored token is the artifact.
func (h *PasswordHandler) Forgot(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid reset payload"))
		return
	}

	if err := h.resets.Request(c.Request.Context(), req.Email); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "account not found"},
		}, http.StatusInternalServerError, "failed to request password reset")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password reset instructions sent"})
}
