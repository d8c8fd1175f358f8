package httpctrl

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketwatch/internal/domain/items"
	statsuc "marketwatch/internal/usecase/stats"
)

type StatsController struct {
	UC *statsuc.Interactor
}

func NewStatsController(uc *statsuc.Interactor) *StatsController { return &StatsController{UC: uc} }

func (c *StatsController) Register(r *gin.Engine) {
	r.GET("/api/stats", c.get)
}

func (c *StatsController) get(ctx *gin.Context) {
	out := c.UC.Execute(ctx.Request.Context())
	ctx.JSON(http.StatusOK, gin.H{
		"worldName":  out.WorldName,
		"totalItems": out.TotalItems,
		"classifications": gin.H{
			"hot":  out.PerTier[items.TierHot],
			"mild": out.PerTier[items.TierMild],
			"cold": out.PerTier[items.TierCold],
		},
		"refreshIntervals": gin.H{
			"hot":  out.Intervals[items.TierHot].String(),
			"mild": out.Intervals[items.TierMild].String(),
			"cold": out.Intervals[items.TierCold].String(),
		},
	})
}
