// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/usecase/progress"
	"github.com/reading-tracker/backend/internal/application/usecase/reading"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
	"github.com/reading-tracker/backend/internal/domain/valueobject"
	"github.com/reading-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/reading-tracker/backend/internal/integration/entrypoint/middleware"
)

// ReadingEntryController handles reading shelf endpoints.
type ReadingEntryController struct {
	addUseCase          *reading.AddEntryUseCase
	changeStatusUseCase *reading.ChangeStatusUseCase
	updatePageUseCase   *reading.UpdatePageUseCase
	reviewUseCase       *reading.ReviewEntryUseCase
	removeUseCase       *reading.RemoveEntryUseCase
	listUseCase         *reading.ListEntriesUseCase
	historyUseCase      *reading.GetHistoryUseCase
}

// NewReadingEntryController creates a new reading entry controller instance.
func NewReadingEntryController(
	addUseCase *reading.AddEntryUseCase,
	changeStatusUseCase *reading.ChangeStatusUseCase,
	updatePageUseCase *reading.UpdatePageUseCase,
	reviewUseCase *reading.ReviewEntryUseCase,
	removeUseCase *reading.RemoveEntryUseCase,
	listUseCase *reading.ListEntriesUseCase,
	historyUseCase *reading.GetHistoryUseCase,
) *ReadingEntryController {
	return &ReadingEntryController{
		addUseCase:          addUseCase,
		changeStatusUseCase: changeStatusUseCase,
		updatePageUseCase:   updatePageUseCase,
		reviewUseCase:       reviewUseCase,
		removeUseCase:       removeUseCase,
		listUseCase:         listUseCase,
		historyUseCase:      historyUseCase,
	}
}

// Create handles POST /entries requests.
func (c *ReadingEntryController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingEntryFields),
		})
		return
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid book ID format",
			Code:  string(domainerror.ErrCodeMissingEntryFields),
		})
		return
	}

	input := reading.AddEntryInput{
		UserID: userID,
		BookID: bookID,
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReadingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToReadingEntryResponse(output.Entry))
}

// ChangeStatus handles PUT /entries/:id/status requests.
func (c *ReadingEntryController) ChangeStatus(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	var req dto.ChangeStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidStatus),
		})
		return
	}

	input := reading.ChangeStatusInput{
		EntryID:      entryID,
		UserID:       userID,
		TargetStatus: entity.ReadingStatus(req.Status),
	}

	output, err := c.changeStatusUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReadingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StatusChangeResponse{
		Entry:       dto.ToReadingEntryResponse(output.Entry),
		FailedGoals: goalFailureIDs(output.GoalFailures),
	})
}

// UpdatePage handles PUT /entries/:id/page requests.
func (c *ReadingEntryController) UpdatePage(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	var req dto.UpdatePageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidPage),
		})
		return
	}

	input := reading.UpdatePageInput{
		EntryID:     entryID,
		UserID:      userID,
		CurrentPage: req.CurrentPage,
	}

	output, err := c.updatePageUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReadingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReadingEntryResponse(output.Entry))
}

// Review handles PUT /entries/:id/review requests.
func (c *ReadingEntryController) Review(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	var req dto.ReviewEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidRating),
		})
		return
	}

	input := reading.ReviewEntryInput{
		EntryID:        entryID,
		UserID:         userID,
		Rating:         req.Rating,
		ReflectionNote: req.ReflectionNote,
	}

	output, err := c.reviewUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReadingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReadingEntryResponse(output.Entry))
}

// Delete handles DELETE /entries/:id requests.
func (c *ReadingEntryController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	input := reading.RemoveEntryInput{
		EntryID: entryID,
		UserID:  userID,
	}

	_, err = c.removeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReadingError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// List handles GET /entries requests.
func (c *ReadingEntryController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := reading.ListEntriesInput{
		UserID: userID,
	}

	if statusParam := ctx.Query("status"); statusParam != "" {
		status := entity.ReadingStatus(statusParam)
		if !valueobject.ValidStatus(status) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid status filter",
				Code:  string(domainerror.ErrCodeInvalidStatus),
			})
			return
		}
		input.Status = &status
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve entries",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryListResponse(output.Entries))
}

// History handles GET /entries/:id/history requests.
func (c *ReadingEntryController) History(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	input := reading.GetHistoryInput{
		EntryID: entryID,
		UserID:  userID,
	}

	output, err := c.historyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReadingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.EntryHistoryResponse{
		Entry:       dto.ToReadingEntryResponse(output.Entry),
		Transitions: dto.ToTransitionResponses(output.Transitions),
	})
}

// goalFailureIDs collects the IDs of goals whose counters could not be updated.
func goalFailureIDs(failures []progress.GoalUpdateFailure) []string {
	if len(failures) == 0 {
		return nil
	}
	ids := make([]string, 0, len(failures))
	for _, failure := range failures {
		ids = append(ids, failure.GoalID.String())
	}
	return ids
}

// handleReadingError handles reading entry errors and returns appropriate HTTP responses.
func (c *ReadingEntryController) handleReadingError(ctx *gin.Context, err error) {
	var readingErr *domainerror.ReadingError
	if errors.As(err, &readingErr) {
		statusCode := c.getStatusCodeForReadingError(readingErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: readingErr.Message,
			Code:  string(readingErr.Code),
		})
		return
	}

	var bookErr *domainerror.BookError
	if errors.As(err, &bookErr) {
		statusCode := http.StatusInternalServerError
		if bookErr.Code == domainerror.ErrCodeBookNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: bookErr.Message,
			Code:  string(bookErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForReadingError maps reading error codes to HTTP status codes.
func (c *ReadingEntryController) getStatusCodeForReadingError(code domainerror.ReadingErrorCode) int {
	switch code {
	case domainerror.ErrCodeEntryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeEntryAlreadyExists:
		return http.StatusConflict
	case domainerror.ErrCodeUnauthorizedEntry:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeInvalidStatus,
		domainerror.ErrCodeInvalidRating,
		domainerror.ErrCodeInvalidPage,
		domainerror.ErrCodeMissingEntryFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
