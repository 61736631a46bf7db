package pagination

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultLimit is the page size used when the request does not set one.
const DefaultLimit = 50

// LimitFromContext reads the "limit" query parameter. A missing value yields
// def; zero means no limit. Negative or non-numeric values are rejected.
func LimitFromContext(c *gin.Context, def int64) (int64, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("limit must be a non-negative integer")
	}
	return limit, nil
}
