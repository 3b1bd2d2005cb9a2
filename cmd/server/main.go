// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paper-radar-go/internal/config"
	"paper-radar-go/internal/corpus"
	"paper-radar-go/internal/handler"
	"paper-radar-go/internal/middleware"
	"paper-radar-go/internal/repository"
	"paper-radar-go/internal/service"
	"paper-radar-go/pkg/arxiv"
	"paper-radar-go/pkg/database"
	"paper-radar-go/pkg/log"
	"paper-radar-go/pkg/vectorizer"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化 Repository，按配置选择文章来源
	var articleRepo repository.ArticleRepository
	switch cfg.Data.Source {
	case "mysql":
		database.InitMySQL(cfg.Database.MySQL.DSN)
		articleRepo = repository.NewMySQLArticleRepository(database.DB)
	default:
		articleRepo = repository.NewCSVArticleRepository(cfg.Data.ArticlesPath)
	}
	keywordRepo := repository.NewCSVKeywordRepository(cfg.Data.KeywordsPath)

	// 4. 启动时一次性加载语料并拟合 TF-IDF 索引，之后全程只读
	articles, err := articleRepo.FindAll()
	if err != nil {
		log.Fatal("加载文章语料失败", err)
	}
	keywords, err := keywordRepo.FindAll()
	if err != nil {
		log.Fatal("加载关键词字典失败", err)
	}

	texts := make([]string, len(articles))
	for i, a := range articles {
		texts[i] = a.Text
	}
	vec, matrix := vectorizer.Fit(texts, cfg.TFIDF.MaxFeatures)

	store, err := corpus.NewStore(articles, matrix)
	if err != nil {
		log.Fatal("构建语料仓库失败", err)
	}
	log.Infof("语料仓库构建完成, 文章数: %d, 词表大小: %d", store.Len(), vec.NumFeatures())

	// 5. 初始化热点词缓存，按配置选择后端
	var trendCache repository.TrendCacheRepository
	if cfg.Trends.CacheBackend == "redis" {
		database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
		trendCache = repository.NewRedisTrendCacheRepository(database.RDB)
	} else {
		trendCache = repository.NewFileTrendCacheRepository(cfg.Trends.CacheDir)
	}

	// 6. 初始化 Service (依赖注入)
	arxivClient := arxiv.NewClient(cfg.Trends.Arxiv)
	trendService := service.NewTrendService(trendCache, arxivClient, store, cfg.Trends)
	profileService := service.NewProfileService(keywords, vec, store)
	recommendService := service.NewRecommendService(store, trendService, cfg.Recommend)

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 8. 注册路由
	apiV1 := r.Group("/api/v1")
	{
		recommend := apiV1.Group("/recommend")
		{
			recommend.POST("/profile", handler.NewRecommendHandler(profileService, recommendService, cfg.Recommend).RecommendProfile)
			recommend.GET("/hot", handler.NewRecommendHandler(profileService, recommendService, cfg.Recommend).RecommendHot)
			recommend.GET("/similar/:articleId", handler.NewRecommendHandler(profileService, recommendService, cfg.Recommend).RecommendSimilar)
		}

		apiV1.GET("/search", handler.NewSearchHandler(recommendService, cfg.Recommend).Search)
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
