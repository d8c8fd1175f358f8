package httpctrl

import (
	"net/http"

	"github.com/gin-gonic/gin"

	refreshuc "marketwatch/internal/usecase/refresh"
)

// RefreshController exposes a manual trigger for one scheduling pass,
// intended for operators; mount it behind the admin-key middleware.
type RefreshController struct {
	Orch *refreshuc.Orchestrator
}

func NewRefreshController(orch *refreshuc.Orchestrator) *RefreshController {
	return &RefreshController{Orch: orch}
}

func (c *RefreshController) Register(r *gin.Engine, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), c.trigger)
	r.POST("/api/refresh", handlers...)
}

func (c *RefreshController) trigger(ctx *gin.Context) {
	sum, err := c.Orch.RunScheduledPass(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"due":           sum.Due,
		"batches":       sum.Batches,
		"failedBatches": sum.Failed,
		"updated":       sum.Updated,
		"skipped":       sum.Skipped,
		"took":          sum.Took.String(),
	})
}
