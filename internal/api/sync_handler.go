package api

import (
	"fmt"
	"net/http"
	"strconv"

	"NightSync/internal/adapter"
	"NightSync/internal/config"
	"NightSync/internal/interfaces"
	"NightSync/internal/repository"
	"NightSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SyncHandler 同步类接口：来源同步 / 过期清理 / 互动数据刷新
type SyncHandler struct {
	syncService       *service.SyncService
	expiryService     *service.ExpiryService
	engagementService *service.EngagementService
	logger            *logrus.Logger
}

// NewSyncHandler 创建SyncHandler
func NewSyncHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config, registry *adapter.SourceRegistry, fetchers map[string]interfaces.EngagementFetcher) *SyncHandler {
	feedRepo := repository.NewFeedRepository(db)
	eventRepo := repository.NewEventRepository(db)
	return &SyncHandler{
		syncService:       service.NewSyncService(db, logger, cfg, registry),
		expiryService:     service.NewExpiryService(feedRepo, eventRepo, logger),
		engagementService: service.NewEngagementService(feedRepo, eventRepo, fetchers, logger),
		logger:            logger,
	}
}

// SyncSourceHandler 同步指定来源数据
// POST /sync/source/:source
func (h *SyncHandler) SyncSourceHandler(c *gin.Context) {
	sourceName := c.Param("source")

	if err := h.syncService.SyncSource(c.Request.Context(), sourceName); err != nil {
		h.logger.Errorf("同步%s失败: %v", sourceName, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s同步成功", sourceName),
	})
}

// ExpiryHandler 过期清理
// POST /sync/expiry?limit=500
func (h *SyncHandler) ExpiryHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "500"))

	expired, err := h.expiryService.Run(c.Request.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("过期清理失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expired": expired})
}

// EngagementHandler 互动数据刷新
// POST /sync/engagement?limit=500
func (h *SyncHandler) EngagementHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "500"))

	updated, err := h.engagementService.Run(c.Request.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("互动数据刷新失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
