package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"NightSync/internal/repository"
	"NightSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FeedHandler 提供给前端的feed与列表查询接口
type FeedHandler struct {
	feedService *service.FeedService
	feedRepo    repository.FeedRepository
	logger      *logrus.Logger
}

// NewFeedHandler 创建FeedHandler
func NewFeedHandler(db *gorm.DB, logger *logrus.Logger) *FeedHandler {
	feedRepo := repository.NewFeedRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	visibility := service.NewVisibilityService(ledgerRepo, logger)
	svc := service.NewFeedService(feedRepo, visibility, logger)
	return &FeedHandler{
		feedService: svc,
		feedRepo:    feedRepo,
		logger:      logger,
	}
}

// GetFeed feed分栏接口
// GET /api/feed?venue_type=club&favorites=RUST,Megami%20Club
// 查询失败按"无活动"处理：返回空分栏而非错误横幅（页面级兜底）
func (h *FeedHandler) GetFeed(c *gin.Context) {
	venueKind := c.Query("venue_type")

	var favorites []string
	if raw := c.Query("favorites"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				favorites = append(favorites, name)
			}
		}
	}

	result, err := h.feedService.GetFeed(c.Request.Context(), venueKind, favorites)
	if err != nil {
		h.logger.WithError(err).Error("GetFeed failed")
		c.JSON(http.StatusOK, &service.FeedResult{
			Trending:  []service.EventSummary{},
			Favorites: []service.EventSummary{},
			Explore:   []service.EventSummary{},
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListEvents 事件列表接口
// GET /api/events?venue_type=club&status=active&source=scraped&page=1&page_size=20
func (h *FeedHandler) ListEvents(c *gin.Context) {
	filter := repository.FeedFilter{
		VenueKind: c.Query("venue_type"),
		Status:    c.DefaultQuery("status", "active"),
		Source:    c.Query("source"),
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.feedService.ListEvents(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListEvents failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListSources 已接入的文档来源列表
// GET /api/sources
func (h *FeedHandler) ListSources(c *gin.Context) {
	sources, err := h.feedRepo.GetSources(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("ListSources failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

// GetEventDetail 事件详情
// GET /api/events/:event_uuid
func (h *FeedHandler) GetEventDetail(c *gin.Context) {
	eventUUID := c.Param("event_uuid")
	if eventUUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_uuid is required"})
		return
	}

	result, err := h.feedService.GetEventDetail(c.Request.Context(), eventUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		h.logger.WithError(err).Error("GetEventDetail failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
