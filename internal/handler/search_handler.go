package handler

import (
	"net/http"

	"paper-radar-go/internal/config"
	"paper-radar-go/internal/service"
	"paper-radar-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// SearchHandler 结构体定义了标题检索的处理器。
type SearchHandler struct {
	recommendService service.RecommendService
	cfg              config.RecommendConfig
}

// NewSearchHandler 创建一个新的 SearchHandler 实例。
func NewSearchHandler(recommendService service.RecommendService, cfg config.RecommendConfig) *SearchHandler {
	return &SearchHandler{
		recommendService: recommendService,
		cfg:              cfg,
	}
}

// Search 是处理标题子串检索请求的 Gin 处理函数。
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		log.Warnf("[SearchHandler] 检索请求失败: q 参数为空")
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的查询参数"})
		return
	}

	results := h.recommendService.Search(query, h.cfg.SearchLimit)

	log.Infof("[SearchHandler] 检索成功, q: '%s', 返回 %d 条结果", query, len(results))
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": results, "message": "success"})
}
