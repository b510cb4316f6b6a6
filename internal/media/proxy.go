package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ProxyClient 媒体代理函数客户端：把第三方CDN图片/视频转成浏览器可加载的形式
// 唯一职责：调用远端proxyImage/proxyVideo函数并归一化其响应
type ProxyClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// ProxyConfig 代理客户端配置
type ProxyConfig struct {
	BaseURL string
	Timeout int // 秒
	Proxy   string
}

// NewProxyClient 创建代理函数客户端
func NewProxyClient(cfg ProxyConfig, logger *logrus.Logger) *ProxyClient {
	transport := &http.Transport{
		MaxIdleConns:    10,
		IdleConnTimeout: 30 * time.Second,
	}
	if cfg.Proxy != "" {
		if proxyURL, err := url.Parse(cfg.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		} else {
			logger.WithError(err).WithField("proxy", cfg.Proxy).Warn("出站代理地址解析失败，将直连")
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15
	}
	return &ProxyClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second, Transport: transport},
		logger:     logger,
	}
}

// proxyResponse 远端函数的统一响应结构
type proxyResponse struct {
	Success  bool   `json:"success"`
	DataURL  string `json:"dataUrl"`
	ProxyURL string `json:"proxyUrl"`
	Error    string `json:"error"`
}

// ProxyImage 代理拉取第三方图片，返回base64 data URL
// 任何传输错误或success=false都返回错误，调用方按"尝试下一候选"处理，不上抛到接口层
func (c *ProxyClient) ProxyImage(ctx context.Context, imageURL string) (string, error) {
	resp, err := c.call(ctx, "/proxyImage", map[string]string{"imageUrl": imageURL})
	if err != nil {
		return "", err
	}
	if resp.DataURL == "" {
		return "", fmt.Errorf("代理函数未返回dataUrl")
	}
	return resp.DataURL, nil
}

// ProxyVideo 代理第三方视频，返回可直接播放的代理地址
func (c *ProxyClient) ProxyVideo(ctx context.Context, videoURL string) (string, error) {
	resp, err := c.call(ctx, "/proxyVideo", map[string]string{"videoUrl": videoURL})
	if err != nil {
		return "", err
	}
	if resp.ProxyURL == "" {
		return "", fmt.Errorf("代理函数未返回proxyUrl")
	}
	return resp.ProxyURL, nil
}

// call 调用远端函数并归一化{success, dataUrl|proxyUrl, error}响应
func (c *ProxyClient) call(ctx context.Context, path string, payload map[string]string) (*proxyResponse, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("代理函数base_url未配置")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用代理函数失败: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取代理函数响应失败: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("代理函数返回状态%d: %s", httpResp.StatusCode, string(raw))
	}

	var resp proxyResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("解析代理函数响应失败: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("代理函数执行失败: %s", resp.Error)
	}
	return &resp, nil
}
