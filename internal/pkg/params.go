package pkg

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/sitecms/internal/domain"
)

// ParseID extracts and validates the "id" URL parameter.
func ParseID(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 || id > uint64(^uint(0)) {
		return 0, domain.ValidationFailed("invalid id: " + idStr)
	}
	return uint(id), nil
}

// FormatID renders a primary key for logs and audit entries.
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
