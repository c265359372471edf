// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reading-tracker/backend/internal/application/usecase/stats"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
	"github.com/reading-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/reading-tracker/backend/internal/integration/entrypoint/middleware"
)

// StatsController handles reading statistics endpoints.
type StatsController struct {
	statsUseCase *stats.ReadingStatsUseCase
}

// NewStatsController creates a new stats controller instance.
func NewStatsController(statsUseCase *stats.ReadingStatsUseCase) *StatsController {
	return &StatsController{
		statsUseCase: statsUseCase,
	}
}

// Get handles GET /stats requests. An optional "year" query parameter scopes
// the per-year figures; it defaults to the current year.
func (c *StatsController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := stats.ReadingStatsInput{
		UserID: userID,
	}

	if yearParam := ctx.Query("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil || year < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid year parameter",
			})
			return
		}
		input.Year = year
	}

	output, err := c.statsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute statistics",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatsResponse(output))
}
