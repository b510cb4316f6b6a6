package service

import (
	"testing"
	"time"

	"NightSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visEvent(id uint64, sourceID string, start, end *time.Time) *model.Event {
	return &model.Event{ID: id, SourceID: sourceID, StartTime: start, EndTime: end}
}

func TestFilterVisibleDropsLedgeredEvents(t *testing.T) {
	now := time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	events := []*model.Event{
		visEvent(1, "post-a", &future, nil),
		visEvent(2, "post-b", &future, nil), // 商家已删除
		visEvent(3, "post-c", &future, nil),
	}

	visible := FilterVisible(events, map[string]bool{"post-b": true}, now)
	require.Len(t, visible, 2)
	assert.Equal(t, "post-a", visible[0].SourceID)
	assert.Equal(t, "post-c", visible[1].SourceID)
}

func TestFilterVisibleDropsPastEvents(t *testing.T) {
	now := time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	events := []*model.Event{
		visEvent(1, "past", &past, nil),
		visEvent(2, "future", &future, nil),
	}
	visible := FilterVisible(events, nil, now)
	require.Len(t, visible, 1)
	assert.Equal(t, "future", visible[0].SourceID)
}

func TestFilterVisibleEndTimeKeepsOngoingEvent(t *testing.T) {
	// 开始已过但结束未到：活动进行中，仍然展示
	now := time.Date(2030, 1, 10, 23, 0, 0, 0, time.UTC)
	start := now.Add(-3 * time.Hour)
	end := now.Add(5 * time.Hour)

	visible := FilterVisible([]*model.Event{visEvent(1, "ongoing", &start, &end)}, nil, now)
	require.Len(t, visible, 1)

	// 结束时间已过则不再展示
	endedAt := now.Add(-time.Minute)
	visible = FilterVisible([]*model.Event{visEvent(2, "ended", &start, &endedAt)}, nil, now)
	assert.Empty(t, visible)
}

func TestFilterVisibleKeepsUndatedEvents(t *testing.T) {
	// 日期解析失败的事件保留
	now := time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)
	visible := FilterVisible([]*model.Event{visEvent(1, "undated", nil, nil)}, nil, now)
	require.Len(t, visible, 1)
	assert.Equal(t, "undated", visible[0].SourceID)
}

func TestFilterVisibleBoundary(t *testing.T) {
	// 截止时间等于now：不算过期
	now := time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)
	exact := now
	visible := FilterVisible([]*model.Event{visEvent(1, "exact", &exact, nil)}, nil, now)
	assert.Len(t, visible, 1)
}
