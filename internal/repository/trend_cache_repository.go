package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"paper-radar-go/pkg/log"

	"github.com/go-redis/redis/v8"
)

// TrendCacheRepository 定义了热点词缓存的读写接口。
// 同一周期键的内容是幂等的，并发写采用 last-writer-wins，丢失一次写入无害。
type TrendCacheRepository interface {
	// Get 返回缓存的词列表；缓存未命中返回 (nil, nil)，不视为错误。
	Get(ctx context.Context, key string) ([]string, error)
	Put(ctx context.Context, key string, terms []string) error
}

type fileTrendCacheRepository struct {
	dir string
}

// NewFileTrendCacheRepository 创建一个以 JSON 文件为后端的热点词缓存。
// 每个周期键对应 <dir>/arxiv_trends_<key>.json，内容为字符串数组。
func NewFileTrendCacheRepository(dir string) TrendCacheRepository {
	return &fileTrendCacheRepository{dir: dir}
}

func (r *fileTrendCacheRepository) cachePath(key string) string {
	return filepath.Join(r.dir, fmt.Sprintf("arxiv_trends_%s.json", key))
}

// Get 读取周期键对应的缓存文件。
func (r *fileTrendCacheRepository) Get(_ context.Context, key string) ([]string, error) {
	data, err := os.ReadFile(r.cachePath(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取热点词缓存文件失败: %w", err)
	}
	var terms []string
	if err := json.Unmarshal(data, &terms); err != nil {
		return nil, fmt.Errorf("解析热点词缓存文件失败: %w", err)
	}
	return terms, nil
}

// Put 将词列表写入周期键对应的缓存文件。
func (r *fileTrendCacheRepository) Put(_ context.Context, key string, terms []string) error {
	if err := os.MkdirAll(r.dir, os.ModePerm); err != nil {
		return fmt.Errorf("创建热点词缓存目录失败: %w", err)
	}
	data, err := json.MarshalIndent(terms, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化热点词失败: %w", err)
	}
	if err := os.WriteFile(r.cachePath(key), data, 0o644); err != nil {
		return fmt.Errorf("写入热点词缓存文件失败: %w", err)
	}
	log.Infof("[TrendCache] 已写入文件缓存, key: %s, 词数: %d", key, len(terms))
	return nil
}

// redis 后端下缓存键的保留时间，跨过周期滚动后自然过期。
const redisTrendTTL = 48 * time.Hour

type redisTrendCacheRepository struct {
	redisClient *redis.Client
}

// NewRedisTrendCacheRepository 创建一个以 Redis 为后端的热点词缓存。
func NewRedisTrendCacheRepository(redisClient *redis.Client) TrendCacheRepository {
	return &redisTrendCacheRepository{redisClient: redisClient}
}

func redisTrendKey(key string) string {
	return fmt.Sprintf("trends:%s", key)
}

// Get 读取周期键对应的 Redis 缓存。
func (r *redisTrendCacheRepository) Get(ctx context.Context, key string) ([]string, error) {
	jsonData, err := r.redisClient.Get(ctx, redisTrendKey(key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取热点词 Redis 缓存失败: %w", err)
	}
	var terms []string
	if err := json.Unmarshal([]byte(jsonData), &terms); err != nil {
		return nil, fmt.Errorf("解析热点词 Redis 缓存失败: %w", err)
	}
	return terms, nil
}

// Put 将词列表写入 Redis，并让其在周期滚动后自然过期。
func (r *redisTrendCacheRepository) Put(ctx context.Context, key string, terms []string) error {
	data, err := json.Marshal(terms)
	if err != nil {
		return fmt.Errorf("序列化热点词失败: %w", err)
	}
	if err := r.redisClient.Set(ctx, redisTrendKey(key), data, redisTrendTTL).Err(); err != nil {
		return fmt.Errorf("写入热点词 Redis 缓存失败: %w", err)
	}
	log.Infof("[TrendCache] 已写入 Redis 缓存, key: %s, 词数: %d", key, len(terms))
	return nil
}
