package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shelfmate/backend/internal/middleware"
	"shelfmate/backend/internal/model"
	"shelfmate/backend/internal/store"
)

type bookRequest struct {
	Title         string  `json:"title" binding:"required"`
	Authors       string  `json:"authors"`
	Publisher     string  `json:"publisher"`
	Year          string  `json:"year"`
	Binding       string  `json:"binding"`
	Language      string  `json:"language"`
	Edition       string  `json:"edition"`
	PurchasePrice float64 `json:"purchase_price"`
	CollectionID  string  `json:"collection_id"`
}

func (r *bookRequest) toRecord(userID, id string) model.BookRecord {
	return model.BookRecord{
		ID:            id,
		UserID:        userID,
		Title:         r.Title,
		Authors:       r.Authors,
		Publisher:     r.Publisher,
		Year:          r.Year,
		Binding:       r.Binding,
		Language:      r.Language,
		Edition:       r.Edition,
		PurchasePrice: r.PurchasePrice,
		CollectionID:  r.CollectionID,
		RecordType:    model.RecordTypeBook,
	}
}

// ListBooks returns the user's owned records. Wishlist-tagged entries come
// back from the store too; this endpoint filters them out.
func (h *Handler) ListBooks(c *gin.Context) {
	userID := middleware.UserID(c)
	records, err := h.store.QueryBooksByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list books failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load your books. Please try again.",
			"code":  "LOAD_FAILED",
		})
		return
	}

	books := make([]model.BookRecord, 0, len(records))
	for _, rec := range records {
		if !rec.IsWishlist() {
			books = append(books, rec)
		}
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

func (h *Handler) CreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: title is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	rec := req.toRecord(middleware.UserID(c), "")
	id, err := h.store.InsertBookRecord(c.Request.Context(), &rec)
	if err != nil {
		h.logger.Error("create book failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save the book. Please try again.",
			"code":  "SAVE_FAILED",
		})
		return
	}
	rec.ID = id
	c.JSON(http.StatusCreated, gin.H{"book": rec})
}

func (h *Handler) UpdateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: title is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	rec := req.toRecord(middleware.UserID(c), c.Param("id"))
	err := h.store.UpdateBookRecord(c.Request.Context(), &rec)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
			"code":  "BOOK_NOT_FOUND",
		})
		return
	}
	if err != nil {
		h.logger.Error("update book failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update the book. Please try again.",
			"code":  "SAVE_FAILED",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": rec})
}

func (h *Handler) DeleteBook(c *gin.Context) {
	err := h.store.DeleteBookRecord(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
			"code":  "BOOK_NOT_FOUND",
		})
		return
	}
	if err != nil {
		h.logger.Error("delete book failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete the book. Please try again.",
			"code":  "DELETE_FAILED",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
