package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"paper-radar-go/internal/model"
	"paper-radar-go/pkg/log"
)

// KeywordRepository 定义了画像关键词字典的加载接口。
type KeywordRepository interface {
	FindAll() ([]model.ProfileKeyword, error)
}

type csvKeywordRepository struct {
	path string
}

// NewCSVKeywordRepository 创建一个从 CSV 文件加载关键词字典的仓库。
func NewCSVKeywordRepository(path string) KeywordRepository {
	return &csvKeywordRepository{path: path}
}

// FindAll 读取 dimension,option,keywords 三列并返回字典行。
func (r *csvKeywordRepository) FindAll() ([]model.ProfileKeyword, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("打开关键词 CSV 失败: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取关键词 CSV 表头失败: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{"dimension", "option", "keywords"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("关键词 CSV 缺少必需列: %s", name)
		}
	}

	var rows []model.ProfileKeyword
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取关键词 CSV 行失败: %w", err)
		}
		get := func(name string) string {
			idx := col[name]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}
		rows = append(rows, model.ProfileKeyword{
			Dimension: get("dimension"),
			Option:    get("option"),
			Keywords:  get("keywords"),
		})
	}

	log.Infof("[KeywordRepository] 关键词字典加载完成, 共 %d 行", len(rows))
	return rows, nil
}
