package vectorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fitCorpus = []string{
	"neural network training for image recognition",
	"deep neural network model",
	"quantum dynamics simulation",
}

func TestFitRowsAreL2Normalized(t *testing.T) {
	_, rows := Fit(fitCorpus, 0)
	require.Len(t, rows, len(fitCorpus))
	for i, row := range rows {
		assert.InDelta(t, 1.0, row.Norm(), 1e-9, "第 %d 行应为单位向量", i)
	}
}

func TestFitRemovesStopWordsAndKeepsBigrams(t *testing.T) {
	vz, _ := Fit([]string{"the neural network of the future"}, 0)

	assert.False(t, vz.HasTerm("the"))
	assert.False(t, vz.HasTerm("of"))
	assert.True(t, vz.HasTerm("neural"))
	assert.True(t, vz.HasTerm("neural network"))
	// 停用词在组词之前剔除，bi-gram 跨过被剔除的词
	assert.True(t, vz.HasTerm("network future"))
}

func TestFitMaxFeaturesCap(t *testing.T) {
	vz, rows := Fit([]string{"apple banana", "apple cherry"}, 2)

	assert.Equal(t, 2, vz.NumFeatures())
	// apple 总词频最高必然入选
	assert.True(t, vz.HasTerm("apple"))
	for _, row := range rows {
		assert.LessOrEqual(t, len(row), 2)
	}
}

func TestTransformIgnoresUnknownTerms(t *testing.T) {
	vz, _ := Fit(fitCorpus, 0)

	v := vz.Transform("blockchain consensus protocol")
	assert.Empty(t, v, "拟合时未见过的词应被静默忽略")

	mixed := vz.Transform("neural blockchain")
	assert.Len(t, mixed, 1)
}

func TestTransformEmptyTextYieldsZeroVector(t *testing.T) {
	vz, _ := Fit(fitCorpus, 0)
	assert.Empty(t, vz.Transform(""))
	assert.Empty(t, vz.Transform("   "))
}

func TestFitDeterministic(t *testing.T) {
	vz1, rows1 := Fit(fitCorpus, 100)
	vz2, rows2 := Fit(fitCorpus, 100)

	assert.Equal(t, rows1, rows2)
	assert.Equal(t, vz1.Transform("neural network"), vz2.Transform("neural network"))
}

func TestDotEqualsCosineForNormalizedRows(t *testing.T) {
	vz, rows := Fit(fitCorpus, 0)

	// 同一文本的变换与其语料行完全一致, 点积为 1
	self := vz.Transform(fitCorpus[0])
	assert.InDelta(t, 1.0, self.Dot(rows[0]), 1e-9)

	// 无共同词项的两行点积为 0
	assert.InDelta(t, 0.0, rows[0].Dot(vz.Transform("unrelated words entirely")), 1e-9)
}

func TestBlendAndCentroid(t *testing.T) {
	v := Vector{0: 1}
	w := Vector{1: 1}

	blended := Blend(0.6, v, w)
	assert.InDelta(t, 0.6, blended[0], 1e-12)
	assert.InDelta(t, 0.4, blended[1], 1e-12)

	c := Centroid([]Vector{{0: 1, 1: 2}, {0: 3}})
	assert.InDelta(t, 2.0, c[0], 1e-12)
	assert.InDelta(t, 1.0, c[1], 1e-12)

	assert.Empty(t, Centroid(nil))
}
