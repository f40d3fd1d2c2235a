package product_controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ginagitwhat123/PaganiniViolin/repository"
)

// ─────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "9"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = repository.DefaultPageSize
	}

	return page, limit
}

// parsePrice returns nil for absent or malformed values, so a bad bound
// reads as "unfiltered" instead of poisoning the query.
func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
