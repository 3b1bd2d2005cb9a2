// Package service 提供了推荐核心的业务逻辑。
package service

import (
	"sort"
	"strings"

	"paper-radar-go/internal/corpus"
	"paper-radar-go/internal/model"
	"paper-radar-go/pkg/log"
	"paper-radar-go/pkg/vectorizer"
)

// ProfileService 接口定义了用户画像的构建与更新操作。
// 画像向量只在一次请求内存活，不做跨会话持久化。
type ProfileService interface {
	BuildProfileText(prefs map[string]model.StringList) string
	BuildProfileFromText(raw string) string
	ProfileToVector(text string) vectorizer.Vector
	UpdateProfile(v vectorizer.Vector, likedIDs []string, alpha float64) vectorizer.Vector
}

type profileService struct {
	keywords []model.ProfileKeyword
	lookup   map[string]map[string]string // dimension -> option -> keywords
	vec      *vectorizer.Vectorizer
	store    *corpus.Store
}

// NewProfileService 创建一个新的 ProfileService 实例。
func NewProfileService(keywords []model.ProfileKeyword, vec *vectorizer.Vectorizer, store *corpus.Store) ProfileService {
	// (dimension, option) 重复时以首行为准
	lookup := make(map[string]map[string]string)
	for _, row := range keywords {
		options, ok := lookup[row.Dimension]
		if !ok {
			options = make(map[string]string)
			lookup[row.Dimension] = options
		}
		if _, exists := options[row.Option]; !exists {
			options[row.Option] = row.Keywords
		}
	}
	return &profileService{keywords: keywords, lookup: lookup, vec: vec, store: store}
}

// BuildProfileText 将偏好选择展开为关键词伪文档。
// 每个 (dimension, option) 对在字典中查找关键词串，查不到的选项静默跳过；
// 维度按字典序遍历，保证同一偏好集合生成的文本确定。
// 没有任何命中时返回空串，这是合法的"无信号"状态。
func (s *profileService) BuildProfileText(prefs map[string]model.StringList) string {
	dims := make([]string, 0, len(prefs))
	for dim := range prefs {
		dims = append(dims, dim)
	}
	sort.Strings(dims)

	var tokens []string
	for _, dim := range dims {
		options, ok := s.lookup[dim]
		if !ok {
			continue
		}
		for _, opt := range prefs[dim] {
			if kw, ok := options[opt]; ok {
				tokens = append(tokens, kw)
			}
		}
	}
	return strings.Join(tokens, " ")
}

// BuildProfileFromText 用关键词字典增强一段自由文本：
// 若某行的选项名（下划线转空格）出现在文本中，或其关键词与文本有共同词，
// 则把该行关键词串追加到文本之后。
func (s *profileService) BuildProfileFromText(raw string) string {
	if raw == "" {
		return ""
	}
	textLower := strings.ToLower(strings.TrimSpace(raw))

	inputTokens := make(map[string]bool)
	for _, tok := range strings.Fields(textLower) {
		inputTokens[tok] = true
	}

	var enrichments []string
	for _, row := range s.keywords {
		optionClean := strings.ReplaceAll(row.Option, "_", " ")
		if strings.Contains(textLower, optionClean) {
			enrichments = append(enrichments, row.Keywords)
			continue
		}
		for _, kw := range strings.Fields(row.Keywords) {
			if inputTokens[kw] {
				enrichments = append(enrichments, row.Keywords)
				break
			}
		}
	}

	if len(enrichments) == 0 {
		return textLower
	}
	return textLower + " " + strings.Join(enrichments, " ")
}

// ProfileToVector 把画像文本映射进语料的词空间；空文本得到零向量。
func (s *profileService) ProfileToVector(text string) vectorizer.Vector {
	return s.vec.Transform(text)
}

// UpdateProfile 用点赞文章的向量质心混合当前画像：
// v_new = alpha*v + (1-alpha)*centroid，一次性混合，不做累计平均。
// likedIDs 为空或没有任何 id 命中语料时原样返回 v。
// 结果刻意不归一化，幅度漂移由下游点积打分吸收。
func (s *profileService) UpdateProfile(v vectorizer.Vector, likedIDs []string, alpha float64) vectorizer.Vector {
	if len(likedIDs) == 0 {
		return v
	}
	var likedVecs []vectorizer.Vector
	for _, id := range likedIDs {
		if i, ok := s.store.Lookup(id); ok {
			likedVecs = append(likedVecs, s.store.Vector(i))
		}
	}
	if len(likedVecs) == 0 {
		log.Infof("[ProfileService] 点赞 id 均未命中语料, 画像保持不变")
		return v
	}
	centroid := vectorizer.Centroid(likedVecs)
	return vectorizer.Blend(alpha, v, centroid)
}
