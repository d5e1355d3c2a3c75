package archivist

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedHandler serves pages[i] for the i-th request, with tokens[i] as the
// continuation header when non-empty.
func pagedHandler(t *testing.T, label string, pages [][]map[string]any, tokens []string) func(http.ResponseWriter, *http.Request, recordedRequest) {
	n := 0
	return func(w http.ResponseWriter, r *http.Request, _ recordedRequest) {
		require.Less(t, n, len(pages), "unexpected extra page request")
		if tokens[n] != "" {
			w.Header().Set(HeaderNextPageToken, tokens[n])
		}
		items := make([]any, len(pages[n]))
		for i, p := range pages[n] {
			items[i] = p
		}
		writeJSON(t, w, http.StatusOK, map[string]any{label: items})
		n++
	}
}

func assetN(i int) map[string]any {
	return map[string]any{"identity": fmt.Sprintf("assets/%d", i)}
}

func TestCursor_FollowsTokensInOrder(t *testing.T) {
	client, rec := newTestClient(t, pagedHandler(t, "assets",
		[][]map[string]any{
			{assetN(1), assetN(2)},
			{assetN(3)},
			{assetN(4), assetN(5)},
		},
		[]string{"tok-2", "tok-3", ""},
	))

	assets, err := client.Assets().List(nil, nil, WithPageSize(2)).Collect(context.Background())
	require.NoError(t, err)

	var ids []string
	for _, a := range assets {
		ids = append(ids, a.Identity())
	}
	assert.Equal(t, []string{"assets/1", "assets/2", "assets/3", "assets/4", "assets/5"}, ids)

	reqs := rec.all()
	require.Len(t, reqs, 3)
	assert.Equal(t, "page_size=2", reqs[0].RawQuery)
	assert.Equal(t, "page_size=2&page_token=tok-2", reqs[1].RawQuery,
		"a short page with a token must not end the sequence")
	assert.Equal(t, "page_size=2&page_token=tok-3", reqs[2].RawQuery)
}

func TestCursor_StopsWithoutTokenOnFullPage(t *testing.T) {
	client, rec := newTestClient(t, pagedHandler(t, "assets",
		[][]map[string]any{{assetN(1), assetN(2)}},
		[]string{""},
	))

	cursor := client.Assets().List(nil, nil, WithPageSize(2))
	page, err := cursor.NextPage(context.Background())
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.True(t, cursor.Done())

	page, err = cursor.NextPage(context.Background())
	require.NoError(t, err)
	assert.Nil(t, page)
	assert.Len(t, rec.all(), 1)
}

func TestCursor_EmptyFirstPage(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request, _ recordedRequest) {
		writeJSON(t, w, http.StatusOK, map[string]any{"assets": []any{}})
	})

	assets, err := client.Assets().List(nil, nil).Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, assets)
	assert.Len(t, rec.all(), 1)
}

func TestCursor_MissingLabelIsEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request, _ recordedRequest) {
		writeJSON(t, w, http.StatusOK, map[string]any{})
	})

	assets, err := client.Assets().List(nil, nil).Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestCursor_BodyTokenFallback(t *testing.T) {
	n := 0
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request, _ recordedRequest) {
		n++
		if n == 1 {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"assets":          []any{assetN(1)},
				"next_page_token": "body-token",
			})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"assets": []any{assetN(2)}})
	})

	assets, err := client.Assets().List(nil, nil).Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, assets, 2)

	reqs := rec.all()
	require.Len(t, reqs, 2)
	assert.Equal(t, "page_size=500&page_token=body-token", reqs[1].RawQuery)
}

func TestCursor_KeepsFiltersAcrossPages(t *testing.T) {
	client, rec := newTestClient(t, pagedHandler(t, "assets",
		[][]map[string]any{{assetN(1)}, {assetN(2)}},
		[]string{"next", ""},
	))

	_, err := client.Assets().List(nil, Attributes{"arc_display_type": "Door"}, WithPageSize(1)).
		Collect(context.Background())
	require.NoError(t, err)

	reqs := rec.all()
	require.Len(t, reqs, 2)
	assert.Equal(t, "page_size=1&attributes.arc_display_type=Door", reqs[0].RawQuery)
	assert.Equal(t, "page_size=1&page_token=next&attributes.arc_display_type=Door", reqs[1].RawQuery)
}

func TestCursor_ErrorStopsIteration(t *testing.T) {
	n := 0
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request, _ recordedRequest) {
		n++
		if n == 1 {
			w.Header().Set(HeaderNextPageToken, "more")
			writeJSON(t, w, http.StatusOK, map[string]any{"assets": []any{assetN(1)}})
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	assets, err := client.Assets().List(nil, nil).Collect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Len(t, assets, 1, "records before the failure are returned")
	assert.Len(t, rec.all(), 2)
}

func TestCursor_AllIsLazy(t *testing.T) {
	client, rec := newTestClient(t, pagedHandler(t, "assets",
		[][]map[string]any{{assetN(1), assetN(2)}, {assetN(3)}},
		[]string{"next", ""},
	))

	cursor := client.Assets().List(nil, nil)
	for asset, err := range cursor.All(context.Background()) {
		require.NoError(t, err)
		assert.Equal(t, "assets/1", asset.Identity())
		break
	}

	assert.Len(t, rec.all(), 1, "breaking early must not fetch more pages")
	assert.False(t, cursor.Done())
}

func TestCursor_InvalidBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request, _ recordedRequest) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"assets": "nope"}`))
	})

	_, err := client.Assets().List(nil, nil).NextPage(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArchivist)
}
