package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmate/backend/internal/model"
	"shelfmate/backend/internal/store"
)

func TestCreateBookRequiresTitle(t *testing.T) {
	r := newTestRouter(t, store.NewMemory())

	w := doJSON(t, r, http.MethodPost, "/api/books", "u1",
		map[string]string{"authors": "No Title"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeBody(t, w)["code"])
}

func TestCreateAndListBooks(t *testing.T) {
	r := newTestRouter(t, store.NewMemory())

	w := doJSON(t, r, http.MethodPost, "/api/books", "u1", map[string]any{
		"title":          "Dune",
		"authors":        "Frank Herbert",
		"publisher":      "Ace",
		"year":           "1965",
		"purchase_price": 12.5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/books", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Books []model.BookRecord `json:"books"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Books, 1)
	assert.Equal(t, "Dune", listed.Books[0].Title)
	assert.Equal(t, 12.5, listed.Books[0].PurchasePrice)
	assert.NotEmpty(t, listed.Books[0].ID)
}

func TestListBooksHidesWishlistEntries(t *testing.T) {
	st := store.NewMemory()
	st.Seed(model.BookRecord{UserID: "u1", Title: "Owned"})
	_, err := st.InsertWishlistItem(context.Background(), &model.WishlistItem{
		UserID: "u1",
		Recommendation: model.Recommendation{
			ISBN13: "9780000000001", Title: "Wanted", Author: "Someone",
		},
	})
	require.NoError(t, err)
	r := newTestRouter(t, st)

	w := doJSON(t, r, http.MethodGet, "/api/books", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Books []model.BookRecord `json:"books"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Books, 1)
	assert.Equal(t, "Owned", listed.Books[0].Title)
}
