package normalize

import (
	"encoding/json"
	"strings"
	"time"

	"NightSync/internal/model"
)

// 标题兜底文案与caption截断长度
const (
	fallbackTitle = "Event"
	captionMaxLen = 50
)

// 场地名候选字段（按来源类型区分优先级：商家自建优先companyName，爬取数据优先fullname）
var (
	venueCandidatesCompany = []string{"companyName", "fullname", "venue", "club", "username"}
	venueCandidatesScraped = []string{"fullname", "companyName", "venue", "club", "username"}
)

// Normalize 将原始文档映射为统一Event（纯函数，无副作用）
// 仅当文档无法解析出稳定ID时返回nil（fail closed，丢弃该记录）
func Normalize(doc model.RawDocument, collection string, sourceType model.SourceType) *model.Event {
	id := doc.FirstStr("id", "postId", "documentId")
	if id == "" {
		return nil
	}

	event := &model.Event{
		Collection: collection,
		SourceID:   id,
		Source:     sourceType,
		Title:      resolveTitle(doc),
		Status:     model.StatusActive,
	}

	candidates := venueCandidatesScraped
	if sourceType == model.SourceCompany {
		candidates = venueCandidatesCompany
	}
	event.VenueName = doc.FirstStr(candidates...)
	event.VenueAlias = doc.Str("username")

	event.StartTime, event.EndTime = resolveDates(doc)

	// 互动数据：负值一律归零
	event.Likes = clampNonNegative(firstInt(doc, "likesCount", "likes"))
	event.Views = clampNonNegative(firstInt(doc, "videoViewCount", "viewsCount", "views"))
	event.Comments = clampNonNegative(firstInt(doc, "commentsCount", "comments"))

	// 原始文档整体保留，媒体解析在展示时按需进行
	raw, err := json.Marshal(doc)
	if err != nil {
		raw = []byte("{}")
	}
	event.RawDoc = raw

	return event
}

// resolveTitle 标题解析：title → caption截断 → 兜底文案
func resolveTitle(doc model.RawDocument) string {
	if t := doc.Str("title"); t != "" {
		return t
	}
	if c := doc.Str("caption"); c != "" {
		return truncate(c, captionMaxLen)
	}
	return fallbackTitle
}

// truncate 按rune截断，避免把多字节字符切坏
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// resolveDates 日期解析：eventDate/eventDateEnd优先，其次timestamp
// 解析失败返回nil开始时间——策略上保留该事件而非隐藏（避免标错日期的活动消失）
func resolveDates(doc model.RawDocument) (start, end *time.Time) {
	start = ParseTimestamp(doc["eventDate"])
	end = ParseTimestamp(doc["eventDateEnd"])
	if start == nil {
		start = ParseTimestamp(doc["timestamp"])
	}
	return start, end
}

// 日期字符串的候选格式（按出现频率排列）
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp 通用时间解析：兼容{seconds}对象、RFC3339/日期字符串、unix秒/毫秒数字
// 无法解析时返回nil
func ParseTimestamp(v interface{}) *time.Time {
	switch val := v.(type) {
	case map[string]interface{}:
		// Firestore风格的{seconds: N}对象
		if secs, ok := val["seconds"]; ok {
			if f, ok := secs.(float64); ok {
				t := time.Unix(int64(f), 0).UTC()
				return &t
			}
		}
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				t = t.UTC()
				return &t
			}
		}
	case float64:
		// 13位按毫秒处理，其余按秒
		if val > 1e12 {
			t := time.UnixMilli(int64(val)).UTC()
			return &t
		}
		if val > 0 {
			t := time.Unix(int64(val), 0).UTC()
			return &t
		}
	}
	return nil
}

func firstInt(doc model.RawDocument, keys ...string) int {
	for _, k := range keys {
		if _, ok := doc[k]; ok {
			return doc.Int(k)
		}
	}
	return 0
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
