package recommend

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmate/backend/internal/model"
	"shelfmate/backend/internal/store"
)

const testUser = "user-1"

func seededStore(t *testing.T) *store.Memory {
	t.Helper()
	st := store.NewMemory()
	st.Seed(
		model.BookRecord{UserID: testUser, Title: "Hyperion", Authors: "Dan Simmons", Publisher: "Spectra", Year: "1989"},
		model.BookRecord{UserID: testUser, Title: "The Fall of Hyperion", Authors: "Dan Simmons", Publisher: "Spectra", Year: "1990"},
		model.BookRecord{UserID: testUser, Title: "Dune", Authors: "Frank Herbert", Publisher: "Ace", Year: "1965"},
	)
	return st
}

func serviceAgainst(t *testing.T, st store.Store, handler http.HandlerFunc) (*Service, *int64) {
	t.Helper()
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(testProvider(srv.URL), srv.Client(), nil)
	return NewService(st, client, nil, nil), &calls
}

func TestServiceCollectionModeSuccess(t *testing.T) {
	svc, calls := serviceAgainst(t, seededStore(t), func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody(`[
			{"isbn13":"9780441569595","title":"Neuromancer","author":"William Gibson"},
			{"isbn13":"9780553283686","title":"A Fire Upon the Deep","author":"Vernor Vinge"},
			{"isbn13":"9780765319852","title":"Blindsight","author":"Peter Watts"}
		]`))
	})

	result, err := svc.GetRecommendations(context.Background(), testUser,
		model.RecommendationRequest{Mode: model.ModeCollection})

	require.NoError(t, err)
	assert.True(t, result.SearchEnabled)
	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, "Neuromancer", result.Recommendations[0].Title)
	assert.NotEmpty(t, result.SearchSources)
	assert.LessOrEqual(t, len(result.SearchSources), 5)
	assert.Equal(t, int64(1), *calls)
}

func TestServiceRemoteFailureFallsBackWithoutRetry(t *testing.T) {
	svc, calls := serviceAgainst(t, seededStore(t), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	result, err := svc.GetRecommendations(context.Background(), testUser,
		model.RecommendationRequest{Mode: model.ModeCollection})

	require.NoError(t, err)
	assert.False(t, result.SearchEnabled)
	require.Len(t, result.Recommendations, 1)
	assert.NotEmpty(t, result.Recommendations[0].ISBN13)
	assert.NotEmpty(t, result.SearchSources)
	assert.Equal(t, int64(1), *calls, "a paid endpoint is never retried")
}

func TestServiceUnparsableResponseFallsBack(t *testing.T) {
	svc, _ := serviceAgainst(t, seededStore(t), func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody("I'm sorry, I cannot produce recommendations today."))
	})

	result, err := svc.GetRecommendations(context.Background(), testUser,
		model.RecommendationRequest{Mode: model.ModeCollection})

	require.NoError(t, err)
	assert.False(t, result.SearchEnabled)
	assert.NotEmpty(t, result.Recommendations)
}

func TestServiceEmptyCollectionNeverCallsRemote(t *testing.T) {
	svc, calls := serviceAgainst(t, store.NewMemory(), func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody(`[{"isbn13":"9780000000001","title":"X","author":"Y"}]`))
	})

	_, err := svc.GetRecommendations(context.Background(), testUser,
		model.RecommendationRequest{Mode: model.ModeCollection})

	require.ErrorIs(t, err, ErrEmptyCollection)
	assert.Equal(t, int64(0), *calls)
}

func TestServiceWishlistOnlyCollectionIsEmpty(t *testing.T) {
	st := store.NewMemory()
	_, err := st.InsertWishlistItem(context.Background(), &model.WishlistItem{
		UserID: testUser,
		Recommendation: model.Recommendation{
			ISBN13: "9780000000009", Title: "Wanted", Author: "Someone",
		},
	})
	require.NoError(t, err)

	svc, calls := serviceAgainst(t, st, func(w http.ResponseWriter, r *http.Request) {})

	_, err = svc.GetRecommendations(context.Background(), testUser,
		model.RecommendationRequest{Mode: model.ModeCollection})

	require.ErrorIs(t, err, ErrEmptyCollection)
	assert.Equal(t, int64(0), *calls)
}

func TestServiceTasteModeSkipsStore(t *testing.T) {
	var sawTaste bool
	svc, _ := serviceAgainst(t, store.NewMemory(), func(w http.ResponseWriter, r *http.Request) {
		sawTaste = true
		fmt.Fprint(w, completionBody(`[{"isbn13":"9780441013593","title":"Dune","author":"Frank Herbert"}]`))
	})

	result, err := svc.GetRecommendations(context.Background(), testUser,
		model.RecommendationRequest{Mode: model.ModeTaste, Taste: "desert planets"})

	require.NoError(t, err)
	assert.True(t, sawTaste, "taste mode must not require a collection")
	assert.True(t, result.SearchEnabled)
}

func TestServiceTasteModeFallbackEchoesTaste(t *testing.T) {
	svc, _ := serviceAgainst(t, store.NewMemory(), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	result, err := svc.GetRecommendations(context.Background(), testUser,
		model.RecommendationRequest{Mode: model.ModeTaste, Taste: "locked-room mysteries"})

	require.NoError(t, err)
	assert.False(t, result.SearchEnabled)
	require.Len(t, result.Recommendations, 1)
	assert.Contains(t, result.Recommendations[0].Description, "locked-room mysteries")
}

func TestServiceUnknownModeRejected(t *testing.T) {
	svc, calls := serviceAgainst(t, seededStore(t), func(w http.ResponseWriter, r *http.Request) {})

	_, err := svc.GetRecommendations(context.Background(), testUser,
		model.RecommendationRequest{Mode: "surprise"})

	require.Error(t, err)
	assert.Equal(t, int64(0), *calls)
}

func TestServiceCancelledContextPropagates(t *testing.T) {
	svc, _ := serviceAgainst(t, seededStore(t), func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GetRecommendations(ctx, testUser,
		model.RecommendationRequest{Mode: model.ModeCollection})

	require.ErrorIs(t, err, context.Canceled)
}
