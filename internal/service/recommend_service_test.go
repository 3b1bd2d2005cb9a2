package service

import (
	"context"
	"errors"
	"testing"

	"paper-radar-go/internal/config"
	"paper-radar-go/internal/corpus"
	"paper-radar-go/internal/model"
	"paper-radar-go/pkg/vectorizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTrendService 返回固定热点词，隔离外部依赖。
type stubTrendService struct {
	terms []string
}

func (s *stubTrendService) GetHotTerms(_ context.Context, topN int) ([]string, TrendSource) {
	if topN > 0 && len(s.terms) > topN {
		return s.terms[:topN], TrendSourceCache
	}
	return s.terms, TrendSourceCache
}

func newRecommendFixture(t *testing.T, articles []model.Article, matrix []vectorizer.Vector, hotTerms []string) RecommendService {
	t.Helper()
	store, err := corpus.NewStore(articles, matrix)
	require.NoError(t, err)
	cfg := config.RecommendConfig{TopKMain: 10, TopKSimilar: 10, ProfileAlpha: 0.6, HotTerms: 10, SearchLimit: 10}
	return NewRecommendService(store, &stubTrendService{terms: hotTerms}, cfg)
}

func ids(articles []model.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func TestRecommendForProfileOrdersBySimilarity(t *testing.T) {
	articles := []model.Article{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}}
	matrix := []vectorizer.Vector{{0: 1}, {1: 1}, {0: 0.8, 1: 0.6}}
	s := newRecommendFixture(t, articles, matrix, nil)

	recs := s.RecommendForProfile(vectorizer.Vector{0: 1}, 3, nil)
	assert.Equal(t, []string{"a1", "a3", "a2"}, ids(recs))
}

func TestRecommendForProfileExcludesIDs(t *testing.T) {
	articles := []model.Article{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}}
	matrix := []vectorizer.Vector{{0: 1}, {0: 0.9}, {0: 0.8}}
	s := newRecommendFixture(t, articles, matrix, nil)

	recs := s.RecommendForProfile(vectorizer.Vector{0: 1}, 2, []string{"a1"})
	assert.NotContains(t, ids(recs), "a1")
	assert.Equal(t, []string{"a2", "a3"}, ids(recs))
}

func TestRecommendForProfileZeroVectorKeepsCorpusOrder(t *testing.T) {
	articles := []model.Article{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}}
	matrix := []vectorizer.Vector{{0: 1}, {1: 1}, {2: 1}}
	s := newRecommendFixture(t, articles, matrix, nil)

	// 零画像向量：全部得分并列为 0，稳定排序保持语料顺序
	recs := s.RecommendForProfile(vectorizer.Vector{}, 3, nil)
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(recs))
}

func TestRecommendSimilarNeverReturnsSelf(t *testing.T) {
	articles := []model.Article{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}}
	matrix := []vectorizer.Vector{{0: 1}, {0: 1}, {0: 0.5, 1: 0.5}}
	s := newRecommendFixture(t, articles, matrix, nil)

	recs, err := s.RecommendSimilar("a1", 3)
	require.NoError(t, err)
	assert.NotContains(t, ids(recs), "a1")
	// a2 与 a1 完全同向, 排在最前
	assert.Equal(t, "a2", recs[0].ID)
}

func TestRecommendSimilarUnknownID(t *testing.T) {
	s := newRecommendFixture(t, []model.Article{{ID: "a1"}}, []vectorizer.Vector{{}}, nil)

	_, err := s.RecommendSimilar("ghost", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownArticle))
}

// 热度综合得分的手算样例：
//
//	A: trend=1, year=(2020-2020)/2=0,   cite=5/50=0.1  => 0.5 + 0 + 0.02 = 0.52
//	B: trend=0, year=1,                 cite=1         => 0 + 0.3 + 0.2  = 0.50
//	C: trend=1, year=0.5,               cite=0         => 0.5 + 0.15 + 0 = 0.65
func TestRecommendHotHandComputedFixture(t *testing.T) {
	articles := []model.Article{
		{ID: "A", Year: 2020, CiteNb: 5, Text: "neural network"},
		{ID: "B", Year: 2022, CiteNb: 50, Text: "blockchain"},
		{ID: "C", Year: 2021, CiteNb: 0, Text: "neural network survey"},
	}
	matrix := []vectorizer.Vector{{}, {}, {}}
	s := newRecommendFixture(t, articles, matrix, []string{"neural"})

	recs := s.RecommendHot(context.Background(), 3)
	assert.Equal(t, []string{"C", "A", "B"}, ids(recs))
}

func TestRecommendHotDegenerateRanges(t *testing.T) {
	// 年份与引用量 min == max：归一化分量一律按 0 处理, 不允许除零
	articles := []model.Article{
		{ID: "A", Year: 2021, CiteNb: 7, Text: "alpha"},
		{ID: "B", Year: 2021, CiteNb: 7, Text: "beta"},
	}
	s := newRecommendFixture(t, articles, []vectorizer.Vector{{}, {}}, nil)

	recs := s.RecommendHot(context.Background(), 2)
	assert.Equal(t, []string{"A", "B"}, ids(recs))
}

func TestRecommendHotEmptyCorpus(t *testing.T) {
	s := newRecommendFixture(t, nil, nil, []string{"neural"})
	assert.Empty(t, s.RecommendHot(context.Background(), 5))
}

func TestRankingIsDeterministic(t *testing.T) {
	articles := []model.Article{
		{ID: "A", Year: 2020, CiteNb: 5, Text: "neural network"},
		{ID: "B", Year: 2022, CiteNb: 50, Text: "blockchain"},
		{ID: "C", Year: 2021, CiteNb: 0, Text: "neural network survey"},
	}
	matrix := []vectorizer.Vector{{0: 1}, {1: 1}, {0: 0.6, 1: 0.8}}
	s := newRecommendFixture(t, articles, matrix, []string{"neural"})

	v := vectorizer.Vector{0: 0.5, 1: 0.5}
	assert.Equal(t, s.RecommendForProfile(v, 3, nil), s.RecommendForProfile(v, 3, nil))

	first := s.RecommendHot(context.Background(), 3)
	second := s.RecommendHot(context.Background(), 3)
	assert.Equal(t, first, second)
}

func TestSearchTitleSubstring(t *testing.T) {
	articles := []model.Article{
		{ID: "a1", Title: "Attention Is All You Need"},
		{ID: "a2", Title: "Neural Collaborative Filtering"},
		{ID: "a3", Title: "A Survey on Neural Networks"},
	}
	s := newRecommendFixture(t, articles, []vectorizer.Vector{{}, {}, {}}, nil)

	assert.Equal(t, []string{"a2", "a3"}, ids(s.Search("neural", 10)))
	assert.Equal(t, []string{"a2"}, ids(s.Search("NEURAL", 1)), "大小写不敏感且受 limit 约束")
	assert.Empty(t, s.Search("quantum", 10))
}
