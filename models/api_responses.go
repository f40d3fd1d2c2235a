package models

import (
	"time"

	"github.com/gin-gonic/gin"
)

type ApiResponse struct {
	Status  string       `json:"status" example:"success"`
	Data    any          `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Rate    *RateLimiter `json:"rate_limit,omitempty"`
}

type RateLimiter struct {
	Limit          int       `json:"limit"`
	Remaining      int       `json:"remaining"`
	ResetAt        time.Time `json:"reset_at"`
	ResetInSeconds int       `json:"reset_in_seconds"`
}

// helper to fetch rate limiter info from Gin context
func getRateFromContext(c *gin.Context) *RateLimiter {
	if c == nil {
		return nil
	}
	if rate, exists := c.Get("rateLimiter"); exists {
		if rl, ok := rate.(*RateLimiter); ok {
			return rl
		}
	}
	return nil
}

func SuccessResponse(c *gin.Context, data any) ApiResponse {
	return ApiResponse{
		Status: "success",
		Data:   data,
		Rate:   getRateFromContext(c),
	}
}

func ErrorResponse(c *gin.Context, message string) ApiResponse {
	return ApiResponse{
		Status:  "error",
		Message: message,
		Rate:    getRateFromContext(c),
	}
}
