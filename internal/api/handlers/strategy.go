package handlers

import (
	"net/http"

	"battery-dispatch/internal/api/models"
	"battery-dispatch/internal/strategy"

	"github.com/gin-gonic/gin"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	tiers := strategy.DefaultPriceTiers()
	strategies := []models.StrategyInfo{
		{
			Name:        strategy.SelfConsumption.String(),
			Label:       strategy.SelfConsumption.Label(),
			Description: "Self-consumption. Stores PV surplus and covers deficits from the battery; the grid only takes what is left.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name:        strategy.PriceOptimized.String(),
			Label:       strategy.PriceOptimized.Label(),
			Description: "Price-optimized. Force-charges in cheap hours, discharges for deficits in expensive hours, otherwise self-consumption.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "cheap_below",
					Type:        "float",
					Description: "Buy price below which the battery is charged from the grid",
					Default:     tiers.CheapBelow,
				},
				{
					Name:        "expensive_above",
					Type:        "float",
					Description: "Buy price above which deficits are covered from the battery",
					Default:     tiers.ExpensiveAbove,
				},
			},
		},
	}
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
