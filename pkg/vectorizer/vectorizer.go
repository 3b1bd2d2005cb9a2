// Package vectorizer provides a TF-IDF weighted sparse vector space
// over a fixed corpus: fit once at startup, then transform arbitrary
// text into the same term space.
package vectorizer

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"paper-radar-go/pkg/log"
)

// 词法单元：两个及以上字母/数字/下划线的连续片段（先整体转小写）。
var tokenPattern = regexp.MustCompile(`\w\w+`)

// Vectorizer 持有拟合后的词表与 IDF 权重；拟合之后只读。
type Vectorizer struct {
	vocab map[string]int // term -> 列号
	idf   []float64      // 列号 -> IDF 权重
}

// Fit 在语料全文上拟合 TF-IDF 向量空间，返回向量器与逐文档的行向量。
// 词表取 uni-gram 与 bi-gram，去除英文停用词，按语料总词频截断到
// maxFeatures 个词（并列时按字典序），列号按词的字典序分配，保证确定性。
// IDF 采用平滑公式 ln((1+n)/(1+df)) + 1，行向量做 L2 归一化。
func Fit(texts []string, maxFeatures int) (*Vectorizer, []Vector) {
	docCounts := make([]map[string]int, len(texts))
	df := make(map[string]int)
	total := make(map[string]int)

	for i, text := range texts {
		counts := make(map[string]int)
		for _, term := range analyze(text) {
			counts[term]++
		}
		docCounts[i] = counts
		for term, c := range counts {
			df[term]++
			total[term] += c
		}
	}

	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	if maxFeatures > 0 && len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	for col, term := range terms {
		vocab[term] = col
	}

	n := float64(len(texts))
	idf := make([]float64, len(terms))
	for term, col := range vocab {
		idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vz := &Vectorizer{vocab: vocab, idf: idf}
	rows := make([]Vector, len(texts))
	for i, counts := range docCounts {
		rows[i] = vz.vectorize(counts)
	}

	log.Infof("[Vectorizer] TF-IDF 拟合完成, 文档数: %d, 词表大小: %d", len(texts), len(vocab))
	return vz, rows
}

// Transform 将任意文本映射进已拟合的词空间。
// 拟合时未见过的词被静默忽略；空文本得到零向量，这是合法的输出。
func (vz *Vectorizer) Transform(text string) Vector {
	counts := make(map[string]int)
	for _, term := range analyze(text) {
		counts[term]++
	}
	return vz.vectorize(counts)
}

// NumFeatures 返回词表大小。
func (vz *Vectorizer) NumFeatures() int {
	return len(vz.vocab)
}

// HasTerm 报告某个词（或二元词组）是否在词表中。
func (vz *Vectorizer) HasTerm(term string) bool {
	_, ok := vz.vocab[term]
	return ok
}

func (vz *Vectorizer) vectorize(counts map[string]int) Vector {
	v := make(Vector, len(counts))
	for term, c := range counts {
		col, ok := vz.vocab[term]
		if !ok {
			continue
		}
		v[col] = float64(c) * vz.idf[col]
	}
	if norm := v.Norm(); norm > 0 {
		for col := range v {
			v[col] /= norm
		}
	}
	return v
}

// analyze 切分文本并产出 uni-gram + bi-gram 词项，停用词在组词之前剔除。
func analyze(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	filtered := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if stopWords[tok] {
			continue
		}
		filtered = append(filtered, tok)
	}
	terms := make([]string, 0, len(filtered)*2)
	terms = append(terms, filtered...)
	for i := 0; i+1 < len(filtered); i++ {
		terms = append(terms, filtered[i]+" "+filtered[i+1])
	}
	return terms
}
