package corpus

import (
	"testing"

	"paper-radar-go/internal/model"
	"paper-radar-go/pkg/vectorizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreRejectsMismatchedLengths(t *testing.T) {
	articles := []model.Article{{ID: "a1"}}
	_, err := NewStore(articles, []vectorizer.Vector{{}, {}})
	assert.Error(t, err)
}

func TestStoreLookup(t *testing.T) {
	articles := []model.Article{{ID: "a1"}, {ID: "a2"}}
	matrix := []vectorizer.Vector{{0: 1}, {1: 1}}

	s, err := NewStore(articles, matrix)
	require.NoError(t, err)

	i, ok := s.Lookup("a2")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, "a2", s.Article(i).ID)
	assert.Equal(t, matrix[1], s.Vector(i))

	_, ok = s.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, s.Len())
}

func TestStoreDuplicateIDFirstWins(t *testing.T) {
	articles := []model.Article{{ID: "dup", Year: 2020}, {ID: "dup", Year: 2021}}
	matrix := []vectorizer.Vector{{}, {}}

	s, err := NewStore(articles, matrix)
	require.NoError(t, err)

	i, ok := s.Lookup("dup")
	require.True(t, ok)
	assert.Equal(t, 0, i)
}
