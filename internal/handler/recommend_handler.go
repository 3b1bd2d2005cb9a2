// Package handler 存放 Gin 的请求处理器。
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"paper-radar-go/internal/config"
	"paper-radar-go/internal/model"
	"paper-radar-go/internal/service"
	"paper-radar-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// RecommendHandler 结构体定义了推荐相关的处理器。
type RecommendHandler struct {
	profileService   service.ProfileService
	recommendService service.RecommendService
	cfg              config.RecommendConfig
}

// NewRecommendHandler 创建一个新的 RecommendHandler 实例。
func NewRecommendHandler(profileService service.ProfileService, recommendService service.RecommendService, cfg config.RecommendConfig) *RecommendHandler {
	return &RecommendHandler{
		profileService:   profileService,
		recommendService: recommendService,
		cfg:              cfg,
	}
}

// RecommendProfile 处理画像推荐请求：
// 偏好选择 + 可选自由文本 组成画像文本，有点赞记录时再做质心混合，
// 点赞过的文章不会出现在结果里。
func (h *RecommendHandler) RecommendProfile(c *gin.Context) {
	var req model.ProfileRecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("[RecommendHandler] 画像推荐请求体解析失败: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	profileText := h.profileService.BuildProfileText(req.Prefs)
	if req.Query != "" {
		enriched := h.profileService.BuildProfileFromText(req.Query)
		profileText = strings.TrimSpace(profileText + " " + enriched)
	}
	log.Infof("[RecommendHandler] 画像文本长度: %d, 点赞数: %d", len(profileText), len(req.LikedIDs))

	v := h.profileService.ProfileToVector(profileText)
	if len(req.LikedIDs) > 0 {
		v = h.profileService.UpdateProfile(v, req.LikedIDs, h.cfg.ProfileAlpha)
	}

	topK := req.TopK
	if topK <= 0 {
		topK = h.cfg.TopKMain
	}
	recs := h.recommendService.RecommendForProfile(v, topK, req.LikedIDs)

	log.Infof("[RecommendHandler] 画像推荐成功, 返回 %d 条结果", len(recs))
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": recs, "message": "success"})
}

// RecommendHot 处理热门推荐请求。
func (h *RecommendHandler) RecommendHot(c *gin.Context) {
	topK := h.parseTopK(c, h.cfg.TopKMain)
	recs := h.recommendService.RecommendHot(c.Request.Context(), topK)

	log.Infof("[RecommendHandler] 热门推荐成功, topK: %d, 返回 %d 条结果", topK, len(recs))
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": recs, "message": "success"})
}

// RecommendSimilar 处理相似文章推荐请求；未知 id 返回 404。
func (h *RecommendHandler) RecommendSimilar(c *gin.Context) {
	articleID := c.Param("articleId")
	topK := h.parseTopK(c, h.cfg.TopKSimilar)

	recs, err := h.recommendService.RecommendSimilar(articleID, topK)
	if err != nil {
		if errors.Is(err, service.ErrUnknownArticle) {
			log.Warnf("[RecommendHandler] 相似推荐失败, 未知文章 id: %s", articleID)
			c.JSON(http.StatusNotFound, gin.H{"error": "未知的文章 id"})
			return
		}
		log.Errorf("[RecommendHandler] 相似推荐服务返回错误: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "推荐失败"})
		return
	}

	log.Infof("[RecommendHandler] 相似推荐成功, articleId: %s, 返回 %d 条结果", articleID, len(recs))
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": recs, "message": "success"})
}

func (h *RecommendHandler) parseTopK(c *gin.Context, def int) int {
	topK, err := strconv.Atoi(c.DefaultQuery("topK", strconv.Itoa(def)))
	if err != nil || topK <= 0 {
		return def
	}
	return topK
}
