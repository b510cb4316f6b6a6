package classify

import (
	"sort"
	"strings"

	"NightSync/internal/model"
)

// defaultClubNames 内置的club/festival名称表（配置未提供时使用）
// 静态配置，进程启动时加载一次
var defaultClubNames = []string{
	"RUST",
	"Club Malibu",
	"Cubo Club",
	"Planet Club",
	"Sunset Festival",
	"Bedroom Premium",
	"Megami Club",
	"The Face",
	"Mirage Summer Club",
	"Code Club",
}

// Classifier 场地分类器：按静态名称表把场地名归入club或bar
type Classifier struct {
	clubNames []string
}

// NewClassifier 创建分类器；names为空时使用内置默认表
func NewClassifier(names []string) *Classifier {
	if len(names) == 0 {
		names = defaultClubNames
	}
	return &Classifier{clubNames: names}
}

// Classify 场地分类：名称与club表做大小写不敏感的双向子串匹配，未命中默认bar
func (c *Classifier) Classify(venueName string) model.VenueKind {
	name := strings.ToLower(strings.TrimSpace(venueName))
	if name == "" {
		return model.VenueBar
	}
	for _, known := range c.clubNames {
		k := strings.ToLower(strings.TrimSpace(known))
		if k == "" {
			continue
		}
		if strings.Contains(name, k) || strings.Contains(k, name) {
			return model.VenueClub
		}
	}
	return model.VenueBar
}

// RankTrending 热度排序：views降序，并列时likes降序；前n个打trending标记
// 返回排序后的切片与入选trending的事件下标集合
func RankTrending(events []*model.Event, n int) ([]*model.Event, map[uint64]bool) {
	sorted := make([]*model.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return trendingLess(sorted[j], sorted[i])
	})
	picked := make(map[uint64]bool, n)
	for i, e := range sorted {
		if i >= n {
			break
		}
		picked[e.ID] = true
	}
	return sorted, picked
}

// trendingLess a是否应排在b之后（views, likes字典序比较）
func trendingLess(a, b *model.Event) bool {
	if a.Views != b.Views {
		return a.Views < b.Views
	}
	return a.Likes < b.Likes
}

// MatchFavorites 收藏过滤：场地名或username别名与收藏名单精确匹配（大小写不敏感）
func MatchFavorites(events []*model.Event, favoriteNames []string) []*model.Event {
	if len(favoriteNames) == 0 {
		return []*model.Event{}
	}
	favorites := make(map[string]bool, len(favoriteNames))
	for _, n := range favoriteNames {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			favorites[n] = true
		}
	}
	var matched []*model.Event
	for _, e := range events {
		if favorites[strings.ToLower(e.VenueName)] || favorites[strings.ToLower(e.VenueAlias)] {
			matched = append(matched, e)
		}
	}
	return matched
}

// RankExplore 发现页排序：开始时间升序，无日期的排最后；
// 已在trending/收藏中出现的事件被排除，避免跨栏目重复展示
func RankExplore(events []*model.Event, excluded map[uint64]bool) []*model.Event {
	var rest []*model.Event
	for _, e := range events {
		if excluded[e.ID] {
			continue
		}
		rest = append(rest, e)
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return exploreLess(rest[i], rest[j])
	})
	return rest
}

// exploreLess a是否应排在b之前（开始时间升序，nil最后）
func exploreLess(a, b *model.Event) bool {
	if a.StartTime == nil {
		return false
	}
	if b.StartTime == nil {
		return true
	}
	return a.StartTime.Before(*b.StartTime)
}
