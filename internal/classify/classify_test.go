package classify

import (
	"testing"
	"time"

	"NightSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyVenue(t *testing.T) {
	c := NewClassifier([]string{"RUST", "Sunset Festival"})

	cases := []struct {
		venue string
		want  model.VenueKind
	}{
		{"RUST", model.VenueClub},
		{"rust", model.VenueClub},            // 大小写不敏感
		{"RUST Beach Club", model.VenueClub}, // 名称包含已知club
		{"Sunset", model.VenueClub},          // 已知club包含名称（双向子串）
		{"Joe's Pub", model.VenueBar},
		{"", model.VenueBar}, // 空名称默认bar
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Classify(tc.venue), "venue=%q", tc.venue)
	}
}

func TestClassifyDefaultTable(t *testing.T) {
	// 未提供配置时使用内置默认表
	c := NewClassifier(nil)
	assert.Equal(t, model.VenueClub, c.Classify("RUST"))
	assert.Equal(t, model.VenueBar, c.Classify("Corner Pub"))
}

func event(id uint64, venue string, views, likes int, start *time.Time) *model.Event {
	return &model.Event{ID: id, VenueName: venue, Views: views, Likes: likes, StartTime: start}
}

func TestRankTrendingOrderAndPick(t *testing.T) {
	events := []*model.Event{
		event(1, "a", 10, 5, nil),
		event(2, "b", 30, 1, nil),
		event(3, "c", 10, 9, nil), // views并列时likes决胜
		event(4, "d", 20, 0, nil),
		event(5, "e", 1, 1, nil),
	}

	sorted, picked := RankTrending(events, 3)
	require.Len(t, sorted, 5)

	// (views, likes)字典序非增
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		assert.True(t, prev.Views > cur.Views ||
			(prev.Views == cur.Views && prev.Likes >= cur.Likes))
	}
	assert.Equal(t, uint64(2), sorted[0].ID)
	assert.Equal(t, uint64(4), sorted[1].ID)
	assert.Equal(t, uint64(3), sorted[2].ID)

	// 前3入选
	assert.Len(t, picked, 3)
	assert.True(t, picked[2] && picked[4] && picked[3])

	// 原切片不被打乱
	assert.Equal(t, uint64(1), events[0].ID)
}

func TestMatchFavorites(t *testing.T) {
	events := []*model.Event{
		{ID: 1, VenueName: "RUST", VenueAlias: "rust_official"},
		{ID: 2, VenueName: "Joe's Pub"},
		{ID: 3, VenueName: "Planet Club", VenueAlias: "planet_cb"},
	}

	// 场地名精确匹配（大小写不敏感）
	matched := MatchFavorites(events, []string{"rust"})
	require.Len(t, matched, 1)
	assert.Equal(t, uint64(1), matched[0].ID)

	// username别名也可匹配
	matched = MatchFavorites(events, []string{"PLANET_CB"})
	require.Len(t, matched, 1)
	assert.Equal(t, uint64(3), matched[0].ID)

	// 子串不算命中（收藏是精确匹配）
	matched = MatchFavorites(events, []string{"Joe"})
	assert.Empty(t, matched)

	// 空收藏名单
	assert.Empty(t, MatchFavorites(events, nil))
}

func TestRankExplore(t *testing.T) {
	early := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	events := []*model.Event{
		event(1, "a", 0, 0, &late),
		event(2, "b", 0, 0, nil), // 无日期排最后
		event(3, "c", 0, 0, &early),
		event(4, "d", 0, 0, &early),
	}

	// 已在其它栏目出现的事件被排除
	ranked := RankExplore(events, map[uint64]bool{4: true})
	require.Len(t, ranked, 3)
	assert.Equal(t, uint64(3), ranked[0].ID)
	assert.Equal(t, uint64(1), ranked[1].ID)
	assert.Equal(t, uint64(2), ranked[2].ID)
}
