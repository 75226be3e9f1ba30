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

// wishlistSource tags items saved from the recommendation flow.
const wishlistSource = "ai_recommendation"

type saveWishlistRequest struct {
	model.Recommendation
}

func (h *Handler) ListWishlist(c *gin.Context) {
	items, err := h.store.QueryWishlist(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.logger.Error("list wishlist failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load your wishlist. Please try again.",
			"code":  "LOAD_FAILED",
		})
		return
	}
	if items == nil {
		items = []model.WishlistItem{}
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": items})
}

// SaveWishlistItem persists an accepted recommendation. Saving an ISBN the
// user already wishlisted is a no-op that reports so, never a duplicate row.
func (h *Handler) SaveWishlistItem(c *gin.Context) {
	var req saveWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.ISBN13 == "" || req.Title == "" || req.Author == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: isbn13, title and author are required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	item := model.WishlistItem{
		UserID:         middleware.UserID(c),
		Recommendation: req.Recommendation,
		Source:         wishlistSource,
	}
	id, err := h.store.InsertWishlistItem(c.Request.Context(), &item)
	if errors.Is(err, store.ErrDuplicate) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Already in wishlist",
			"code":      "ALREADY_IN_WISHLIST",
			"duplicate": true,
		})
		return
	}
	if err != nil {
		h.logger.Error("save wishlist item failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save to wishlist. Please try again.",
			"code":  "SAVE_FAILED",
		})
		return
	}
	item.ID = id
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	err := h.store.DeleteWishlistItem(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Wishlist item not found",
			"code":  "ITEM_NOT_FOUND",
		})
		return
	}
	if err != nil {
		h.logger.Error("delete wishlist item failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove from wishlist. Please try again.",
			"code":  "DELETE_FAILED",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// PromoteWishlistItem turns a wishlist entry into an owned book record. The
// insert and the wishlist delete are two separate store calls; a crash in
// between leaves the item in both places rather than losing it.
func (h *Handler) PromoteWishlistItem(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	id := c.Param("id")

	item, err := h.store.GetWishlistItem(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Wishlist item not found",
			"code":  "ITEM_NOT_FOUND",
		})
		return
	}
	if err != nil {
		h.logger.Error("promote wishlist item failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to promote the item. Please try again.",
			"code":  "PROMOTE_FAILED",
		})
		return
	}

	rec := item.ToBookRecord()
	if _, err := h.store.InsertBookRecord(ctx, &rec); err != nil {
		h.logger.Error("promote insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add the book. Please try again.",
			"code":  "PROMOTE_FAILED",
		})
		return
	}

	if err := h.store.DeleteWishlistItem(ctx, userID, id); err != nil {
		// The book made it into the collection; the stale wishlist entry
		// can be removed manually.
		h.logger.Warn("promoted but wishlist cleanup failed",
			zap.String("item_id", id), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"book": rec})
}
