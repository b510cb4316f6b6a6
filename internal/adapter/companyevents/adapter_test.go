package companyevents

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

func TestFetchDocumentsLegacyArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/company-events", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "ce-1", "title": "Ladies Night", "companyName": "Cubo Club"},
			{"id": "ce-2", "title": "Live Jazz"},
		})
	}))
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	a := NewCompanyEventsAdapter(&config.SourceConfig{
		BaseURL: server.URL,
		Timeout: 5,
	}, logger)

	docs, err := a.FetchDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "ce-1", docs[0].Str("id"))
	assert.Equal(t, "Cubo Club", docs[0].Str("companyName"))
}

func TestFetchDocumentsBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	a := NewCompanyEventsAdapter(&config.SourceConfig{BaseURL: server.URL, Timeout: 5}, logger)

	_, err := a.FetchDocuments(context.Background())
	assert.Error(t, err)
}
