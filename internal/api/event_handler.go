package api

import (
	"errors"
	"net/http"

	"NightSync/internal/media"
	"NightSync/internal/repository"
	"NightSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventHandler 事件级操作：媒体懒解析 / 删除 / 重新发布
type EventHandler struct {
	mediaService    *service.MediaService
	deletionService *service.DeletionService
	logger          *logrus.Logger
}

// NewEventHandler 创建EventHandler
func NewEventHandler(db *gorm.DB, logger *logrus.Logger, proxyClient *media.ProxyClient) *EventHandler {
	feedRepo := repository.NewFeedRepository(db)
	return &EventHandler{
		mediaService:    service.NewMediaService(feedRepo, proxyClient, logger),
		deletionService: service.NewDeletionService(db, logger),
		logger:          logger,
	}
}

// GetEventMedia 媒体懒解析接口（渲染前调用，不在同步时解析）
// GET /api/events/:event_uuid/media
func (h *EventHandler) GetEventMedia(c *gin.Context) {
	eventUUID := c.Param("event_uuid")

	items, err := h.mediaService.GetMedia(c.Request.Context(), eventUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		h.logger.WithError(err).Error("GetEventMedia failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": items})
}

// deleteEventRequest 删除请求体
type deleteEventRequest struct {
	DeletedBy string `json:"deleted_by"`
}

// DeleteEvent 商家删除活动（copy-then-delete进台账）
// DELETE /api/events/:event_uuid
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	eventUUID := c.Param("event_uuid")

	var req deleteEventRequest
	_ = c.ShouldBindJSON(&req) // 请求体可为空，deleted_by可缺省

	if err := h.deletionService.DeleteEvent(c.Request.Context(), eventUUID, req.DeletedBy); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		h.logger.WithError(err).Error("DeleteEvent failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// RepublishEvent 重新发布（删台账行并恢复事件）
// POST /api/events/:event_uuid/republish
func (h *EventHandler) RepublishEvent(c *gin.Context) {
	eventUUID := c.Param("event_uuid")

	if err := h.deletionService.RepublishEvent(c.Request.Context(), eventUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		h.logger.WithError(err).Error("RepublishEvent failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event republished"})
}
