package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"paper-radar-go/internal/config"
	"paper-radar-go/internal/corpus"
	"paper-radar-go/internal/model"
	"paper-radar-go/pkg/log"
	"paper-radar-go/pkg/vectorizer"
)

// ErrUnknownArticle 表示按 id 查找文章失败，是唯一会上抛给调用方的错误。
var ErrUnknownArticle = errors.New("unknown article id")

// 被排除文章的哨兵相似度，保证其排在任何合法得分（>= 0）之后。
const excludedScore = -1

// 热度综合得分的三路权重：趋势命中 / 年份 / 引用量。
const (
	hotTrendWeight = 0.5
	hotYearWeight  = 0.3
	hotCiteWeight  = 0.2
)

// RecommendService 接口定义了三种排序算法与标题检索。
// 所有方法都只读语料，不持有跨请求状态，相同输入的两次调用产出相同排序。
type RecommendService interface {
	RecommendForProfile(v vectorizer.Vector, topK int, excludeIDs []string) []model.Article
	RecommendSimilar(articleID string, topK int) ([]model.Article, error)
	RecommendHot(ctx context.Context, topK int) []model.Article
	Search(query string, limit int) []model.Article
}

type recommendService struct {
	store  *corpus.Store
	trends TrendService
	cfg    config.RecommendConfig
}

// NewRecommendService 创建一个新的 RecommendService 实例。
func NewRecommendService(store *corpus.Store, trends TrendService, cfg config.RecommendConfig) RecommendService {
	return &recommendService{store: store, trends: trends, cfg: cfg}
}

// RecommendForProfile 用画像向量对全部语料行做点积打分并取前 topK。
// excludeIDs 中的文章被压到哨兵得分，从而永远挤不进结果，
// 并列得分按语料原始顺序稳定排列。
func (s *recommendService) RecommendForProfile(v vectorizer.Vector, topK int, excludeIDs []string) []model.Article {
	sims := make([]float64, s.store.Len())
	for i := range sims {
		sims[i] = v.Dot(s.store.Vector(i))
	}
	for _, id := range excludeIDs {
		if i, ok := s.store.Lookup(id); ok {
			sims[i] = excludedScore
		}
	}
	return s.takeTop(sims, topK)
}

// RecommendSimilar 返回与指定文章最相似的 topK 篇文章。
// id 不存在时返回 ErrUnknownArticle；文章自身被压到哨兵得分，不会推荐自己。
func (s *recommendService) RecommendSimilar(articleID string, topK int) ([]model.Article, error) {
	idx, ok := s.store.Lookup(articleID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArticle, articleID)
	}

	vec := s.store.Vector(idx)
	sims := make([]float64, s.store.Len())
	for i := range sims {
		sims[i] = vec.Dot(s.store.Vector(i))
	}
	sims[idx] = excludedScore

	return s.takeTop(sims, topK), nil
}

// RecommendHot 按 0.5*趋势命中数 + 0.3*年份归一 + 0.2*引用归一 排序取前 topK。
// 趋势命中数是热点词在小写全文中作为子串出现的个数；
// 年份与引用量做 min-max 归一化，语料范围退化（min == max）时按 0 处理。
func (s *recommendService) RecommendHot(ctx context.Context, topK int) []model.Article {
	n := s.store.Len()
	if n == 0 {
		return nil
	}

	terms, source := s.trends.GetHotTerms(ctx, s.cfg.HotTerms)
	log.Infof("[RecommendService] 热点词来源: %s, 词数: %d", source, len(terms))
	lowerTerms := make([]string, len(terms))
	for i, t := range terms {
		lowerTerms[i] = strings.ToLower(t)
	}

	articles := s.store.Articles()
	minYear, maxYear := articles[0].Year, articles[0].Year
	minCite, maxCite := articles[0].CiteNb, articles[0].CiteNb
	for _, a := range articles {
		if a.Year < minYear {
			minYear = a.Year
		}
		if a.Year > maxYear {
			maxYear = a.Year
		}
		if a.CiteNb < minCite {
			minCite = a.CiteNb
		}
		if a.CiteNb > maxCite {
			maxCite = a.CiteNb
		}
	}

	scores := make([]float64, n)
	for i, a := range articles {
		text := strings.ToLower(a.FullText())
		trendScore := 0
		for _, term := range lowerTerms {
			if term != "" && strings.Contains(text, term) {
				trendScore++
			}
		}
		scores[i] = hotTrendWeight*float64(trendScore) +
			hotYearWeight*minMaxNorm(a.Year, minYear, maxYear) +
			hotCiteWeight*minMaxNorm(a.CiteNb, minCite, maxCite)
	}

	return s.takeTop(scores, topK)
}

// Search 在标题上做大小写不敏感的子串匹配，按语料顺序最多返回 limit 篇。
func (s *recommendService) Search(query string, limit int) []model.Article {
	q := strings.ToLower(query)
	var results []model.Article
	for _, a := range s.store.Articles() {
		if strings.Contains(strings.ToLower(a.Title), q) {
			results = append(results, a)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}
	return results
}

// takeTop 按得分降序稳定排序并返回前 topK 篇文章。
func (s *recommendService) takeTop(scores []float64, topK int) []model.Article {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	if topK > 0 && len(idx) > topK {
		idx = idx[:topK]
	}
	results := make([]model.Article, len(idx))
	for i, j := range idx {
		results[i] = s.store.Article(j)
	}
	return results
}

// minMaxNorm 把 v 线性缩放到 [0,1]；范围退化时返回 0。
func minMaxNorm(v, min, max int) float64 {
	if max == min {
		return 0
	}
	return float64(v-min) / float64(max-min)
}
