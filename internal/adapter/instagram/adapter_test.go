package instagram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"NightSync/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	cfg := &config.SourceConfig{
		BaseURL:    server.URL,
		Collection: "Instagram_posts",
		Timeout:    5,
		PageSize:   2,
		AuthToken:  "test-token",
	}
	return NewInstagramAdapter(cfg, logger).(*Adapter)
}

func TestFetchDocumentsPagination(t *testing.T) {
	var requests int
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/collections/Instagram_posts/documents", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2", r.URL.Query().Get("pageSize"))

		// 两页：第一页带nextPageToken，第二页结束
		if r.URL.Query().Get("pageToken") == "" {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"documents": []map[string]interface{}{
					{"id": "1", "title": "Night A"},
					{"id": "2", "title": "Night B"},
				},
				"nextPageToken": "page-2",
			})
			return
		}
		assert.Equal(t, "page-2", r.URL.Query().Get("pageToken"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"documents": []map[string]interface{}{
				{"id": "3", "title": "Night C"},
			},
		})
	})

	docs, err := a.FetchDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, requests)
	require.Len(t, docs, 3)
	assert.Equal(t, "1", docs[0].Str("id"))
	assert.Equal(t, "3", docs[2].Str("id"))
}

func TestFetchDocumentsUpstreamError(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := a.FetchDocuments(context.Background())
	assert.Error(t, err)
}

func TestFetchEngagement(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/Instagram_posts/documents/post-7", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":             "post-7",
			"likesCount":     float64(42),
			"videoViewCount": float64(900),
			"commentsCount":  float64(3),
		})
	})

	row, err := a.FetchEngagement(context.Background(), "post-7")
	require.NoError(t, err)
	assert.Equal(t, 42, row.Likes)
	assert.Equal(t, 900, row.Views)
	assert.Equal(t, 3, row.Comments)
}
