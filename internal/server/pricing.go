package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	quotedomain "github.com/attestra/attestra/internal/quote/domain"
)

// GetPricingConfig exposes the current pricing configuration snapshot so the
// console can render rate cards without a calculation round trip.
func (s *Server) GetPricingConfig(c *gin.Context) {
	cfg := s.pricing.Snapshot()

	multipliers := make(map[string]string, len(cfg.ComplexityMultipliers))
	for tier, multiplier := range cfg.ComplexityMultipliers {
		multipliers[string(tier)] = multiplier.String()
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"base_rate":              cfg.BaseRate,
		"words_per_page":         cfg.WordsPerPage,
		"complexity_multipliers": multipliers,
		"min_billable_pages":     cfg.MinBillablePages,
		"rush_multiplier":        cfg.RushMultiplier,
		"same_day_multiplier":    cfg.SameDayMultiplier,
		"standard_days":          cfg.StandardDays,
		"rush_days":              cfg.RushDays,
	}})
}

// PreviewQuote prices a caller-supplied snapshot without persisting anything.
func (s *Server) PreviewQuote(c *gin.Context) {
	var req quotedomain.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	totals, err := s.quoteSvc.Preview(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": totals})
}
