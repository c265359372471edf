// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/usecase/book"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
	"github.com/reading-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/reading-tracker/backend/internal/integration/entrypoint/middleware"
)

// BookController handles book catalog endpoints.
type BookController struct {
	addUseCase    *book.AddBookUseCase
	getUseCase    *book.GetBookUseCase
	listUseCase   *book.ListBooksUseCase
	searchUseCase *book.SearchBooksUseCase
}

// NewBookController creates a new book controller instance.
func NewBookController(
	addUseCase *book.AddBookUseCase,
	getUseCase *book.GetBookUseCase,
	listUseCase *book.ListBooksUseCase,
	searchUseCase *book.SearchBooksUseCase,
) *BookController {
	return &BookController{
		addUseCase:    addUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		searchUseCase: searchUseCase,
	}
}

// Create handles POST /books requests.
func (c *BookController) Create(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingBookTitle),
		})
		return
	}

	input := book.AddBookInput{
		Title:       req.Title,
		Authors:     req.Authors,
		PageCount:   req.PageCount,
		ISBN:        req.ISBN,
		CoverURL:    req.CoverURL,
		Description: req.Description,
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBookResponse(output.Book))
}

// Get handles GET /books/:id requests.
func (c *BookController) Get(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	bookID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid book ID format",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), book.GetBookInput{BookID: bookID})
	if err != nil {
		c.handleBookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBookResponse(output.Book))
}

// List handles GET /books requests.
func (c *BookController) List(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	input := book.ListBooksInput{
		Limit:  limit,
		Offset: offset,
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve books",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBookListResponse(output.Books))
}

// Search handles GET /books/search requests.
func (c *BookController) Search(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := book.SearchBooksInput{
		Query: ctx.Query("q"),
	}

	output, err := c.searchUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBookSearchResponse(output.Results))
}

// handleBookError handles book errors and returns appropriate HTTP responses.
func (c *BookController) handleBookError(ctx *gin.Context, err error) {
	var bookErr *domainerror.BookError
	if errors.As(err, &bookErr) {
		statusCode := c.getStatusCodeForBookError(bookErr.Code)
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

// getStatusCodeForBookError maps book error codes to HTTP status codes.
func (c *BookController) getStatusCodeForBookError(code domainerror.BookErrorCode) int {
	switch code {
	case domainerror.ErrCodeBookNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeMissingBookTitle,
		domainerror.ErrCodeInvalidPageCount:
		return http.StatusBadRequest
	case domainerror.ErrCodeBookSearchFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
