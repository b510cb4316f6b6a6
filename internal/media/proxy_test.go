package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProxy(t *testing.T, handler http.HandlerFunc) *ProxyClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewProxyClient(ProxyConfig{BaseURL: server.URL, Timeout: 5}, logger)
}

func TestProxyImageSuccess(t *testing.T) {
	client := newTestProxy(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proxyImage", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "https://scontent.cdninstagram.com/a.jpg", payload["imageUrl"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"dataUrl": "data:image/webp;base64,AAAA",
		})
	})

	dataURL, err := client.ProxyImage(context.Background(), "https://scontent.cdninstagram.com/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "data:image/webp;base64,AAAA", dataURL)
}

func TestProxyVideoSuccess(t *testing.T) {
	client := newTestProxy(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proxyVideo", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"proxyUrl": "https://fn/proxy?u=abc",
		})
	})

	proxyURL, err := client.ProxyVideo(context.Background(), "https://scontent.cdninstagram.com/v.mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://fn/proxy?u=abc", proxyURL)
}

func TestProxyUnsuccessfulResponse(t *testing.T) {
	// success=false：归一化为错误，调用方按"尝试下一候选"处理
	client := newTestProxy(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "fetch failed upstream",
		})
	})

	_, err := client.ProxyImage(context.Background(), "https://x/a.jpg")
	assert.Error(t, err)
}

func TestProxyTransportFailure(t *testing.T) {
	client := newTestProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.ProxyImage(context.Background(), "https://x/a.jpg")
	assert.Error(t, err)

	_, err = client.ProxyVideo(context.Background(), "https://x/v.mp4")
	assert.Error(t, err)
}

func TestProxyUnconfiguredBaseURL(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	client := NewProxyClient(ProxyConfig{}, logger)

	_, err := client.ProxyImage(context.Background(), "https://x/a.jpg")
	assert.Error(t, err)
}
