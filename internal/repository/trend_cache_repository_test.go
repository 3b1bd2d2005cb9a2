package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTrendCacheRoundtrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileTrendCacheRepository(dir)
	ctx := context.Background()

	// 未命中按 (nil, nil) 返回, 不是错误
	terms, err := repo.Get(ctx, "20240502")
	require.NoError(t, err)
	assert.Nil(t, terms)

	require.NoError(t, repo.Put(ctx, "20240502", []string{"llm", "agents"}))

	terms, err = repo.Get(ctx, "20240502")
	require.NoError(t, err)
	assert.Equal(t, []string{"llm", "agents"}, terms)

	// 周期键落在独立文件上, 互不影响
	_, err = os.Stat(filepath.Join(dir, "arxiv_trends_20240502.json"))
	assert.NoError(t, err)
	terms, err = repo.Get(ctx, "20240503")
	require.NoError(t, err)
	assert.Nil(t, terms)
}

func TestFileTrendCacheCorruptFile(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileTrendCacheRepository(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "arxiv_trends_bad.json"), []byte("{not json"), 0o644))

	_, err := repo.Get(context.Background(), "bad")
	assert.Error(t, err)
}

func TestFileTrendCacheOverwriteSameKey(t *testing.T) {
	repo := NewFileTrendCacheRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "2024W18", []string{"first"}))
	require.NoError(t, repo.Put(ctx, "2024W18", []string{"second"}))

	terms, err := repo.Get(ctx, "2024W18")
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, terms)
}
