package media

import (
	"testing"

	"NightSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVideoAlwaysFirst(t *testing.T) {
	doc := model.RawDocument{
		"optimizedVideourl": "http://x/v.mp4",
		"Displayurl":        "http://y/d.jpg",
	}
	items := Resolve(doc)
	require.NotEmpty(t, items)
	assert.Equal(t, model.MediaVideo, items[0].Kind)
	assert.Equal(t, "http://x/v.mp4", items[0].URL)
}

func TestResolveVideoFieldPriority(t *testing.T) {
	// optimizedVideourl空白时，按固定顺序取下一个候选
	doc := model.RawDocument{
		"optimizedVideourl": "   ",
		"webMVideourl":      "http://x/v.webm",
		"videourl":          "http://x/v.mp4",
	}
	items := Resolve(doc)
	require.NotEmpty(t, items)
	assert.Equal(t, "http://x/v.webm", items[0].URL)
}

func TestResolveCDNVideoSuppressedWithoutImageFallback(t *testing.T) {
	// CDN视频且无图片兜底：不展示大概率坏掉的视频，直接占位图
	doc := model.RawDocument{
		"videourl": "https://scontent.cdninstagram.com/v/clip.mp4",
	}
	items := Resolve(doc)
	require.Len(t, items, 1)
	assert.Equal(t, model.MediaImage, items[0].Kind)
	assert.Equal(t, PlaceholderURL, items[0].URL)

	// 同一文档有图片兜底时视频保留
	doc["Image0"] = "http://local/img.jpg"
	items = Resolve(doc)
	require.NotEmpty(t, items)
	assert.Equal(t, model.MediaVideo, items[0].Kind)
}

func TestResolveWebPPreferredOverOriginals(t *testing.T) {
	doc := model.RawDocument{
		"webPImage0": "data:image/webp;base64,AAAA",
		"Image1":     "http://cdn/a.jpg",
	}
	items := Resolve(doc)
	require.NotEmpty(t, items)
	assert.Equal(t, model.MediaImage, items[0].Kind)
	assert.Equal(t, "data:image/webp;base64,AAAA", items[0].URL)
}

func TestResolveWebPFieldOrder(t *testing.T) {
	// webPImage1先于webPImage0检查
	doc := model.RawDocument{
		"webPImage0": "https://storage/b_webp",
		"webPImage1": "https://storage/a.webp",
	}
	items := Resolve(doc)
	require.NotEmpty(t, items)
	assert.Equal(t, "https://storage/a.webp", items[0].URL)
}

func TestResolveOriginalFieldOrderAndProxyFlag(t *testing.T) {
	doc := model.RawDocument{
		"Image0":     "https://scontent.cdninstagram.com/a.jpg",
		"Image1":     "http://local/b.jpg",
		"Displayurl": "https://scontent.cdninstagram.com/d.jpg",
	}
	items := Resolve(doc)
	require.Len(t, items, 3)
	// Image1先于Image0，Displayurl最后
	assert.Equal(t, "http://local/b.jpg", items[0].URL)
	assert.False(t, items[0].NeedsProxy)
	assert.Equal(t, "https://scontent.cdninstagram.com/a.jpg", items[1].URL)
	assert.True(t, items[1].NeedsProxy) // 第三方CDN走代理
	assert.True(t, items[2].NeedsProxy)
}

func TestResolveGalleryPrefersWebPElement(t *testing.T) {
	doc := model.RawDocument{
		"imageUrls": []interface{}{
			"https://company/a.jpg",
			"https://company/b.webp",
		},
	}
	items := Resolve(doc)
	require.NotEmpty(t, items)
	assert.Equal(t, "https://company/b.webp", items[0].URL)
}

func TestResolvePlaceholderWhenNothingMatches(t *testing.T) {
	items := Resolve(model.RawDocument{"title": "no media"})
	require.Len(t, items, 1)
	assert.Equal(t, model.MediaImage, items[0].Kind)
	assert.Equal(t, PlaceholderURL, items[0].URL)
}

func TestCleanURLStripsQuotesAndSpace(t *testing.T) {
	cases := map[string]string{
		`"http://a/b.jpg"`:    "http://a/b.jpg",
		`  'http://a/b.jpg' `: "http://a/b.jpg",
		` http://a/b.jpg `:    "http://a/b.jpg",
		`"'http://a/b.jpg'"`:  "http://a/b.jpg", // 双层引号逐层剥离
		`""`:                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanURL(in))
	}
}

func TestIsWebP(t *testing.T) {
	assert.True(t, IsWebP("data:image/webp;base64,AAAA"))
	assert.True(t, IsWebP("https://storage/abc.webp?alt=media"))
	assert.True(t, IsWebP("https://storage/abc_webp_1"))
	assert.False(t, IsWebP("https://storage/abc.jpg"))
	assert.False(t, IsWebP(""))
}

func TestResolveQuotedVideoField(t *testing.T) {
	// 历史脏数据：字段值带包裹引号
	doc := model.RawDocument{
		"videoUrl": `"http://x/v.mp4"`,
		"Image0":   "http://local/i.jpg",
	}
	items := Resolve(doc)
	require.NotEmpty(t, items)
	assert.Equal(t, model.MediaVideo, items[0].Kind)
	assert.Equal(t, "http://x/v.mp4", items[0].URL)
}
