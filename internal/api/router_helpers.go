package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vsuet/accounting/internal/middleware"
	"github.com/vsuet/accounting/internal/models"
)

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(middleware.RequestIDKey); exists {
			fields["request_id"] = rid
		}
		log.WithFields(fields).Info("request")
	}
}

// maxPaginationLimit caps the maximum number of items per page.
const maxPaginationLimit = 1000

// maxPaginationOffset caps the maximum offset for paginated queries.
const maxPaginationOffset = 100000

func parseLimit(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}

	return min(v, maxPaginationLimit)
}

func parseOffset(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}

	return min(v, maxPaginationOffset)
}

// parseID parses a positive integer path parameter.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id must be a positive integer")
	}

	return id, nil
}

// optionalID parses an optional positive integer query parameter.
func optionalID(c *gin.Context, key string) (*int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil //nolint:nilnil // absent parameter.
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%s must be a positive integer", key)
	}

	return &id, nil
}

// optionalBool parses an optional boolean query parameter.
func optionalBool(c *gin.Context, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil //nolint:nilnil // absent parameter.
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a boolean", key)
	}

	return &v, nil
}

// flag parses a boolean query parameter that defaults to false.
func flag(c *gin.Context, key string) (bool, error) {
	v, err := optionalBool(c, key)
	if err != nil || v == nil {
		return false, err
	}

	return *v, nil
}

// optionalDate parses an optional YYYY-MM-DD query parameter.
func optionalDate(c *gin.Context, key string) (*models.Date, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil //nolint:nilnil // absent parameter.
	}

	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	return &d, nil
}

// dateRange parses the date_from and date_to query parameters.
func dateRange(c *gin.Context) (models.DateRange, error) {
	from, err := optionalDate(c, "date_from")
	if err != nil {
		return models.DateRange{}, err
	}

	to, err := optionalDate(c, "date_to")
	if err != nil {
		return models.DateRange{}, err
	}

	return models.DateRange{From: from, To: to}, nil
}

// optionalTime parses an optional RFC3339 query parameter.
func optionalTime(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil //nolint:nilnil // absent parameter.
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format, use RFC3339", key)
	}

	return &t, nil
}
