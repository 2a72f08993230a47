package handlers

import (
	"net/http"

	"siteworks/models"
	"siteworks/services/intelligence"
	"siteworks/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIHandler serves the project assistant endpoints.
type AIHandler struct {
	AI intelligence.AIService
}

// ProjectHealthHandler returns an assistant-written health summary.
func (h *AIHandler) ProjectHealthHandler(c *gin.Context) {
	resp, err := h.AI.ProjectHealth(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.GetLogger().Error("ProjectHealth failed", zap.Error(err))
		c.JSON(statusForLookup(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FinancialForecastHandler returns a cash-flow outlook.
func (h *AIHandler) FinancialForecastHandler(c *gin.Context) {
	resp, err := h.AI.FinancialForecast(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.GetLogger().Error("FinancialForecast failed", zap.Error(err))
		c.JSON(statusForLookup(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AskHandler answers a free-form question about a project.
func (h *AIHandler) AskHandler(c *gin.Context) {
	var req models.AIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
		return
	}
	req.UserID = c.GetString("userID")

	resp, err := h.AI.Ask(c.Request.Context(), req)
	if err != nil {
		utils.GetLogger().Error("Ask failed", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
