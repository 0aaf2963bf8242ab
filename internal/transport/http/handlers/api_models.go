package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mickeyAlem27/Super-backend/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// AccountView is the outward-facing representation of an account. The
// credential digest has no field here.
type AccountView struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	PhoneNo   string    `json:"phoneNo"`
	Email     string    `json:"email"`
	OTP       string    `json:"otp,omitempty"`
	Verified  bool      `json:"verified"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newAccountView(account domain.Account) AccountView {
	return AccountView{
		ID:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		PhoneNo:   account.PhoneNo,
		Email:     account.Email,
		OTP:       account.OTP,
		Verified:  account.Verified,
		IsDeleted: account.IsDeleted,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// RegisterRequest defines the account registration payload.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	PhoneNo   string `json:"phoneNo" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	OTP       string `json:"otp"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message string      `json:"message"`
	User    AccountView `json:"user"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned for a successful login.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    AccountView `json:"user"`
}

// ProfileResponse wraps the account view for profile endpoints.
type ProfileResponse struct {
	Message string      `json:"message,omitempty"`
	User    AccountView `json:"user"`
}

// UpdateProfileRequest carries a partial profile mutation. Password and email
// fields are not bound: changing either requires its dedicated endpoint.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	PhoneNo   *string `json:"phoneNo"`
	OTP       *string `json:"otp"`
	Verified  *bool   `json:"verified"`
}

// ChangePasswordRequest carries the credential rotation payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ForgotPasswordRequest initiates a password reset for the given email.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// DeleteResponse is returned after a hard deletion, echoing the removed record.
type DeleteResponse struct {
	Message string      `json:"message"`
	User    AccountView `json:"user"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadyResponse reports dependency readiness.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
