package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"paper-radar-go/internal/config"
	"paper-radar-go/internal/corpus"
	"paper-radar-go/internal/repository"
	"paper-radar-go/pkg/arxiv"
	"paper-radar-go/pkg/log"
)

// TrendSource 标识一次热点词请求最终命中的来源。
type TrendSource string

const (
	TrendSourceCache  TrendSource = "cache"
	TrendSourceFeed   TrendSource = "feed"
	TrendSourceCorpus TrendSource = "corpus"
)

// TrendService 接口定义了热点词的获取操作。
// 内部按 缓存 -> 实时抓取 -> 语料兜底 的顺序依次尝试，任何一步的失败
// 都只记录原因并进入下一步，调用方永远能拿到一个词列表。
type TrendService interface {
	GetHotTerms(ctx context.Context, topN int) ([]string, TrendSource)
}

type trendService struct {
	cache repository.TrendCacheRepository
	feed  arxiv.Client
	store *corpus.Store
	cfg   config.TrendsConfig
	now   func() time.Time
}

// NewTrendService 创建一个新的 TrendService 实例。
func NewTrendService(cache repository.TrendCacheRepository, feed arxiv.Client, store *corpus.Store, cfg config.TrendsConfig) TrendService {
	return &trendService{
		cache: cache,
		feed:  feed,
		store: store,
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// GetHotTerms 返回当前周期的热点词。
//  1. 当期缓存命中则直接返回，周期内缓存永不视为过期；
//  2. 否则实时抓取 arXiv，成功后写入当期缓存再返回；
//  3. 抓取失败或为空则回退到语料统计，该结果不写缓存，
//     下次调用会重新走完整链路。
func (s *trendService) GetHotTerms(ctx context.Context, topN int) ([]string, TrendSource) {
	key := s.periodKey(s.now())

	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warnf("[TrendService] 读取热点词缓存失败, key: %s, error: %v", key, err)
	}
	if len(cached) > 0 {
		log.Infof("[TrendService] 热点词来自缓存, key: %s", key)
		return truncateTerms(cached, topN), TrendSourceCache
	}

	feedTerms, err := s.feed.FetchTrending(ctx, topN)
	if err != nil {
		log.Warnf("[TrendService] arXiv 抓取失败, 回退语料统计, error: %v", err)
	}
	if len(feedTerms) > 0 {
		if err := s.cache.Put(ctx, key, feedTerms); err != nil {
			log.Warnf("[TrendService] 写入热点词缓存失败, key: %s, error: %v", key, err)
		}
		log.Infof("[TrendService] 热点词来自 arXiv, 已写入缓存, key: %s", key)
		return truncateTerms(feedTerms, topN), TrendSourceFeed
	}

	log.Warnf("[TrendService] arXiv 无结果, 使用语料兜底热点词")
	return s.trendsFromCorpus(topN), TrendSourceCorpus
}

// periodKey 按配置粒度计算当前周期的缓存键。
func (s *trendService) periodKey(t time.Time) string {
	if s.cfg.Granularity == "weekly" {
		year, week := t.ISOWeek()
		return fmt.Sprintf("%dW%02d", year, week)
	}
	return t.Format("20060102")
}

// 语料兜底使用的轻量分词：小写化后去掉非字母数字字符。
var alnumPattern = regexp.MustCompile(`[^a-z0-9\s]`)

// 兜底分词的极简停用词表
var fallbackStopWords = map[string]bool{
	"the": true, "and": true, "of": true, "in": true, "for": true,
	"on": true, "a": true, "an": true, "to": true, "with": true, "by": true,
}

func simpleTokenize(text string) []string {
	cleaned := alnumPattern.ReplaceAllString(strings.ToLower(text), " ")
	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) <= 3 || fallbackStopWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// trendsFromCorpus 统计最近 recent_years 年文章全文中的高频词。
// 频次相同的词按字典序排列，保证结果确定。
func (s *trendService) trendsFromCorpus(topN int) []string {
	articles := s.store.Articles()
	if len(articles) == 0 {
		return nil
	}

	maxYear := articles[0].Year
	for _, a := range articles {
		if a.Year > maxYear {
			maxYear = a.Year
		}
	}
	cutoff := maxYear - s.cfg.RecentYears + 1

	counter := make(map[string]int)
	for _, a := range articles {
		if a.Year < cutoff {
			continue
		}
		for _, tok := range simpleTokenize(a.FullText()) {
			counter[tok]++
		}
	}

	terms := make([]string, 0, len(counter))
	for term := range counter {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counter[terms[i]] != counter[terms[j]] {
			return counter[terms[i]] > counter[terms[j]]
		}
		return terms[i] < terms[j]
	})
	return truncateTerms(terms, topN)
}

func truncateTerms(terms []string, topN int) []string {
	if topN > 0 && len(terms) > topN {
		return terms[:topN]
	}
	return terms
}
