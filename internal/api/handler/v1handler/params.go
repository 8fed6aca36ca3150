package v1handler

import (
	"strconv"

	"jobboard/pkg/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// idParam parses the :id path parameter as a UUID.
func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})

		return uuid.Nil, false
	}

	return id, true
}

// uintQuery reads a non-negative integer query parameter, falling back to def
// when absent or malformed.
func uintQuery(c *gin.Context, name string, def uint) uint {
	raw := c.Query(name)
	if raw == "" {
		return def
	}

	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return def
	}

	return uint(v)
}

// intPtrQuery reads an optional integer query parameter, nil when absent or
// malformed.
func intPtrQuery(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}

	return &v
}

// floatQuery reads an optional float query parameter, 0 when absent or
// malformed.
func floatQuery(c *gin.Context, name string) float64 {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}

	return v
}

// boolQuery reads an optional boolean query parameter.
func boolQuery(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(c.Query(name))
	if err != nil {
		return false
	}

	return v
}

// csvQuery reads a comma-separated query parameter as a clean list.
func csvQuery(c *gin.Context, name string) []string {
	return domain.SplitCSV(c.Query(name))
}
