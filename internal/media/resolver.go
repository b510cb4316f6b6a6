package media

import (
	"strings"

	"NightSync/internal/model"
)

// PlaceholderURL 所有候选都落空时的静态占位图
const PlaceholderURL = "/assets/placeholder_event.webp"

// 媒体字段优先级表（声明式候选列表，替代各页面里散落的嵌套条件判断）
var (
	// 视频字段：任一非空（去空白后）即胜出
	videoFields = []string{"optimizedVideourl", "webMVideourl", "videourl", "videoUrl", "VideoURL"}
	// WebP单图字段：固定检查顺序
	webPFields = []string{"webPImage1", "webPImage0", "webPImage2", "webPImage3", "webPImage4", "webPImage5", "webPImage6", "webPDisplayurl"}
	// 原始图片字段：固定检查顺序
	originalFields = []string{"Image1", "Image0", "Image2", "Image3", "Image4", "Image5", "Image6", "Displayurl"}
)

// 第三方图片CDN域名片段：命中则需走代理函数（跨域限制）
var cdnHostMarkers = []string{"cdninstagram.com", "fbcdn.net", "scontent"}

// WebP存储地址的标记token（文件名或路径中带webp）
var webPURLMarkers = []string{".webp", "_webp", "%2Fwebp"}

// Resolve 解析文档的可展示媒体列表（懒调用：渲染前才执行，不在同步时执行）
// 顺序确定：视频（若有）恒在图片之前；图片按固定字段优先级排列
// 所有候选落空时返回占位图，绝不向调用方抛错
func Resolve(doc model.RawDocument) []model.MediaItem {
	images := resolveImages(doc)

	var items []model.MediaItem
	if video := resolveVideo(doc); video != "" {
		// CDN视频大概率播放失败，仅当存在图片兜底时才展示
		if !IsCDNHosted(video) || len(images) > 0 {
			items = append(items, model.MediaItem{
				Kind:       model.MediaVideo,
				URL:        video,
				NeedsProxy: IsCDNHosted(video),
			})
		}
	}
	items = append(items, images...)

	if len(items) == 0 {
		items = append(items, model.MediaItem{Kind: model.MediaImage, URL: PlaceholderURL})
	}
	return items
}

// resolveVideo 按优先级取第一个非空视频地址
func resolveVideo(doc model.RawDocument) string {
	for _, field := range videoFields {
		if u := CleanURL(doc.Str(field)); u != "" {
			return u
		}
	}
	return ""
}

// resolveImages 按优先级枚举图片候选：商家图集 → WebP单图 → 原始图
func resolveImages(doc model.RawDocument) []model.MediaItem {
	var items []model.MediaItem
	seen := make(map[string]bool)

	appendItem := func(url string, needsProxy bool) {
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		items = append(items, model.MediaItem{Kind: model.MediaImage, URL: url, NeedsProxy: needsProxy})
	}

	// 1. 商家上传图集：首元素为主图，但存在WebP元素时优先用WebP
	if gallery := doc.StrList("imageUrls"); len(gallery) > 0 {
		primary := CleanURL(gallery[0])
		for _, raw := range gallery {
			if u := CleanURL(raw); IsWebP(u) {
				primary = u
				break
			}
		}
		appendItem(primary, false)
	}

	// 2. WebP单图字段：base64 data URL或带webp标记的存储地址才算候选
	for _, field := range webPFields {
		if u := CleanURL(doc.Str(field)); IsWebP(u) {
			appendItem(u, false)
		}
	}

	// 3. 原始图片字段：第三方CDN地址标记走代理，其余直接使用
	for _, field := range originalFields {
		u := CleanURL(doc.Str(field))
		appendItem(u, IsCDNHosted(u))
	}

	return items
}

// CleanURL 清洗存储值：去首尾空白并剥掉包裹的引号（兼容历史脏数据）
func CleanURL(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}
	return s
}

// IsWebP 判断是否WebP候选：base64 data URL或带webp标记token的存储地址
func IsWebP(url string) bool {
	if url == "" {
		return false
	}
	if strings.HasPrefix(url, "data:image/webp") {
		return true
	}
	lower := strings.ToLower(url)
	for _, marker := range webPURLMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsCDNHosted 判断地址是否来自已知第三方图片CDN
func IsCDNHosted(url string) bool {
	lower := strings.ToLower(url)
	for _, marker := range cdnHostMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
