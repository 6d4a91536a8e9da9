package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusplace/backend/internal/app/models/dto"
	"github.com/campusplace/backend/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. Controllers call it
// for every non-nil service error so status codes stay consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	code, errorCode, message := classifyError(err)

	errorDetail := dto.NewErrorDetail(errorCode, message)

	// Custom errors carry a caller-facing message and optional details.
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		if customErr.Message != "" {
			errorDetail.Message = customErr.Message
		}
		if customErr.Details != nil {
			errorDetail = errorDetail.WithDetails(customErr.Details)
		}
	}

	c.JSON(code, dto.NewErrorResponse(errorDetail))
}

func classifyError(err error) (int, dto.ErrorCode, string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password"
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"
	case errors.Is(err, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account not enabled"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"
	case errors.Is(err, apperrors.ErrResetTokenUsed):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Reset token already used"
	case errors.Is(err, apperrors.ErrResetTokenInvalid):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Reset token is invalid or expired"
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"
	case errors.Is(err, apperrors.ErrEnrollmentNoExists):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Enrollment number already exists"
	case errors.Is(err, apperrors.ErrDriveAlreadyExists):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "A drive with this title and company already exists"
	case errors.Is(err, apperrors.ErrAlreadyApplied):
		return http.StatusConflict, dto.ErrorCodeResourceConflict, "Already applied to this drive"
	case errors.Is(err, apperrors.ErrNotApplied):
		return http.StatusConflict, dto.ErrorCodeResourceConflict, "Student has not applied to this drive"
	case errors.Is(err, apperrors.ErrDriveExpired):
		return http.StatusConflict, dto.ErrorCodeResourceConflict, "Drive application window has closed"
	case errors.Is(err, apperrors.ErrProfileIncomplete):
		return http.StatusForbidden, dto.ErrorCodeForbidden, "Profile incomplete"
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorCodeResourceConflict, "Resource conflict"
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request"
	case errors.Is(err, apperrors.ErrUserNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"
	case errors.Is(err, apperrors.ErrStudentNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"
	case errors.Is(err, apperrors.ErrDriveNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Drive not found"
	case errors.Is(err, apperrors.ErrLedgerNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Drive ledger not found"
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Application not found"
	case errors.Is(err, apperrors.ErrNotificationNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Notification not found"
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"
	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"
	}
}
