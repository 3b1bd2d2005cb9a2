// Package corpus 将文章列表与其 TF-IDF 行向量绑定为一个只读整体。
// 第 i 篇文章对应矩阵第 i 行，这一对应关系是全部下游计算的前提，
// 因此构造之后禁止任何改动，按 id 的查找一律走构造时建立的位置映射。
package corpus

import (
	"fmt"

	"paper-radar-go/internal/model"
	"paper-radar-go/pkg/vectorizer"
)

// Store 持有对齐的 (文章, 行向量) 序列与 id -> 位置 映射。
type Store struct {
	articles []model.Article
	matrix   []vectorizer.Vector
	pos      map[string]int
}

// NewStore 构建语料仓库；文章数与向量行数不一致时返回错误。
// 重复 id 以第一次出现为准。
func NewStore(articles []model.Article, matrix []vectorizer.Vector) (*Store, error) {
	if len(articles) != len(matrix) {
		return nil, fmt.Errorf("文章数 (%d) 与向量行数 (%d) 不一致", len(articles), len(matrix))
	}
	pos := make(map[string]int, len(articles))
	for i, a := range articles {
		if _, exists := pos[a.ID]; !exists {
			pos[a.ID] = i
		}
	}
	return &Store{articles: articles, matrix: matrix, pos: pos}, nil
}

// Len 返回语料中的文章数。
func (s *Store) Len() int {
	return len(s.articles)
}

// Articles 返回全部文章；调用方不得修改返回的切片。
func (s *Store) Articles() []model.Article {
	return s.articles
}

// Article 返回第 i 篇文章。
func (s *Store) Article(i int) model.Article {
	return s.articles[i]
}

// Vector 返回第 i 篇文章的行向量。
func (s *Store) Vector(i int) vectorizer.Vector {
	return s.matrix[i]
}

// Lookup 返回 id 对应的行号；id 不存在时第二个返回值为 false。
func (s *Store) Lookup(id string) (int, bool) {
	i, ok := s.pos[id]
	return i, ok
}
