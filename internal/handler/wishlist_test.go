package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmate/backend/internal/middleware"
	"shelfmate/backend/internal/model"
	"shelfmate/backend/internal/store"
)

func newTestRouter(t *testing.T, st store.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := New(st, nil, nil)

	r := gin.New()
	api := r.Group("/api", middleware.Identity())
	api.GET("/books", h.ListBooks)
	api.POST("/books", h.CreateBook)
	api.GET("/wishlist", h.ListWishlist)
	api.POST("/wishlist", h.SaveWishlistItem)
	api.DELETE("/wishlist/:id", h.DeleteWishlistItem)
	api.POST("/wishlist/:id/promote", h.PromoteWishlistItem)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestWishlistRequiresIdentity(t *testing.T) {
	r := newTestRouter(t, store.NewMemory())

	w := doJSON(t, r, http.MethodGet, "/api/wishlist", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHENTICATED", decodeBody(t, w)["code"])
}

func TestSaveWishlistItemAndDuplicate(t *testing.T) {
	r := newTestRouter(t, store.NewMemory())
	rec := model.Recommendation{
		ISBN13: "9780441569595",
		Title:  "Neuromancer",
		Author: "William Gibson",
	}

	w := doJSON(t, r, http.MethodPost, "/api/wishlist", "u1", rec)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Saving the same ISBN again is acknowledged, not duplicated.
	w = doJSON(t, r, http.MethodPost, "/api/wishlist", "u1", rec)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Already in wishlist", body["message"])
	assert.Equal(t, "ALREADY_IN_WISHLIST", body["code"])
	assert.Equal(t, true, body["duplicate"])

	w = doJSON(t, r, http.MethodGet, "/api/wishlist", "u1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Wishlist []model.WishlistItem `json:"wishlist"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Wishlist, 1)
	assert.Equal(t, "ai_recommendation", listed.Wishlist[0].Source)
}

func TestSaveWishlistItemValidation(t *testing.T) {
	r := newTestRouter(t, store.NewMemory())

	w := doJSON(t, r, http.MethodPost, "/api/wishlist", "u1",
		model.Recommendation{Title: "No ISBN", Author: "X"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeBody(t, w)["code"])
}

func TestDeleteWishlistItemNotFound(t *testing.T) {
	r := newTestRouter(t, store.NewMemory())

	w := doJSON(t, r, http.MethodDelete, "/api/wishlist/missing", "u1", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ITEM_NOT_FOUND", decodeBody(t, w)["code"])
}

func TestPromoteWishlistItemMovesIntoCollection(t *testing.T) {
	st := store.NewMemory()
	id, err := st.InsertWishlistItem(context.Background(), &model.WishlistItem{
		UserID: "u1",
		Recommendation: model.Recommendation{
			ISBN13:    "9780553283686",
			Title:     "Hyperion",
			Author:    "Dan Simmons",
			Publisher: "Spectra",
			Year:      "1989",
		},
	})
	require.NoError(t, err)
	r := newTestRouter(t, st)

	w := doJSON(t, r, http.MethodPost, "/api/wishlist/"+id+"/promote", "u1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The entry now lives in the collection, not the wishlist.
	items, err := st.QueryWishlist(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, items)

	records, err := st.QueryBooksByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Hyperion", records[0].Title)
	assert.Equal(t, model.RecordTypeBook, records[0].RecordType)
}

func TestPromoteWishlistItemOtherUser(t *testing.T) {
	st := store.NewMemory()
	id, err := st.InsertWishlistItem(context.Background(), &model.WishlistItem{
		UserID: "u1",
		Recommendation: model.Recommendation{
			ISBN13: "9780000000001", Title: "T", Author: "A",
		},
	})
	require.NoError(t, err)
	r := newTestRouter(t, st)

	w := doJSON(t, r, http.MethodPost, "/api/wishlist/"+id+"/promote", "u2", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
