package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ComingSoon answers for the consultation and photo gallery modules, which
// are scheduled but not live yet. The entities are already migrated so the
// rollout will not need a data migration.
func ComingSoon(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotImplemented, gin.H{
			"module":  module,
			"message": "Próximamente",
		})
	}
}
