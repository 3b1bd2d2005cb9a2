// Package repository 提供了数据访问层的实现。
package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"paper-radar-go/internal/model"
	"paper-radar-go/pkg/log"

	"gorm.io/gorm"
)

// ArticleRepository 定义了文章语料的加载接口。
// 语料在进程启动时一次性加载，之后只读。
type ArticleRepository interface {
	FindAll() ([]model.Article, error)
}

// 文章 CSV 必须携带的列。
var requiredArticleColumns = []string{"id", "title", "abstract", "year", "field", "author", "journal", "cite_nb"}

type csvArticleRepository struct {
	path string
}

// NewCSVArticleRepository 创建一个从 CSV 文件加载文章的仓库。
func NewCSVArticleRepository(path string) ArticleRepository {
	return &csvArticleRepository{path: path}
}

// FindAll 读取 CSV 并返回清洗后的文章列表。
// title、abstract、field 任一为空的行在加载时被丢弃；
// year / cite_nb 解析失败时取 0 并记录警告。
func (r *csvArticleRepository) FindAll() ([]model.Article, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("打开文章 CSV 失败: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取文章 CSV 表头失败: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredArticleColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("文章 CSV 缺少必需列: %s", name)
		}
	}

	get := func(record []string, name string) string {
		idx := col[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var articles []model.Article
	dropped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取文章 CSV 行失败: %w", err)
		}

		title := get(record, "title")
		abstract := get(record, "abstract")
		field := get(record, "field")
		if title == "" || abstract == "" || field == "" {
			dropped++
			continue
		}

		a := model.Article{
			ID:       get(record, "id"),
			Title:    title,
			Abstract: abstract,
			Field:    field,
			Author:   get(record, "author"),
			Journal:  get(record, "journal"),
		}
		a.Year = parseIntColumn(a.ID, "year", get(record, "year"))
		a.CiteNb = parseIntColumn(a.ID, "cite_nb", get(record, "cite_nb"))
		a.Text = title + " " + abstract + " " + field
		articles = append(articles, a)
	}

	log.Infof("[ArticleRepository] CSV 加载完成, 有效文章: %d, 丢弃行: %d", len(articles), dropped)
	return articles, nil
}

func parseIntColumn(id, name, raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnf("[ArticleRepository] 文章 %s 的 %s 列无法解析为整数: %q, 按 0 处理", id, name, raw)
		return 0
	}
	return n
}

type mysqlArticleRepository struct {
	db *gorm.DB
}

// NewMySQLArticleRepository 创建一个从 MySQL articles 表加载文章的仓库。
func NewMySQLArticleRepository(db *gorm.DB) ArticleRepository {
	return &mysqlArticleRepository{db: db}
}

// FindAll 查询 articles 表并返回文章列表。
// 与 CSV 加载保持同一清洗约定；按主键排序保证语料顺序可复现。
func (r *mysqlArticleRepository) FindAll() ([]model.Article, error) {
	var articles []model.Article
	err := r.db.
		Where("title <> '' AND abstract <> '' AND field <> ''").
		Order("id").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("查询文章表失败: %w", err)
	}

	for i := range articles {
		articles[i].Text = articles[i].Title + " " + articles[i].Abstract + " " + articles[i].Field
	}

	log.Infof("[ArticleRepository] MySQL 加载完成, 有效文章: %d", len(articles))
	return articles, nil
}
