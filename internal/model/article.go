// Package model 定义了语料与请求/响应相关的 Go 结构体。
package model

import "encoding/json"

// Article 代表语料库中的一篇文章。
// Text 是加载时由 title + abstract + field 拼接出的派生字段，
// 只用于向量化与热度匹配，不随响应返回。
type Article struct {
	ID       string `gorm:"column:id;primaryKey" json:"id"`
	Title    string `gorm:"column:title" json:"title"`
	Abstract string `gorm:"column:abstract" json:"abstract"`
	Field    string `gorm:"column:field" json:"field"`
	Year     int    `gorm:"column:year" json:"year"`
	Author   string `gorm:"column:author" json:"author"`
	Journal  string `gorm:"column:journal" json:"journal"`
	CiteNb   int    `gorm:"column:cite_nb" json:"cite_nb"`
	Text     string `gorm:"-" json:"-"`
}

// TableName 指定 Article 对应的 MySQL 表名。
func (Article) TableName() string {
	return "articles"
}

// FullText 返回派生的全文字段，若加载时未填充则现场拼接。
func (a Article) FullText() string {
	if a.Text != "" {
		return a.Text
	}
	return a.Title + " " + a.Abstract + " " + a.Field
}

// ProfileKeyword 是关键词字典中的一行：(dimension, option) -> keywords。
type ProfileKeyword struct {
	Dimension string `json:"dimension"`
	Option    string `json:"option"`
	Keywords  string `json:"keywords"`
}

// StringList 兼容单个字符串与字符串数组两种 JSON 形式，
// 例如 "field": "machine_learning" 与 "field": ["machine_learning"]。
type StringList []string

// UnmarshalJSON 实现了 StringList 的宽松解析。
func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = StringList(list)
	return nil
}

// ProfileRecommendRequest 定义了画像推荐接口的请求体。
type ProfileRecommendRequest struct {
	Prefs    map[string]StringList `json:"prefs"`
	LikedIDs []string              `json:"liked_ids"`
	Query    string                `json:"query"`
	TopK     int                   `json:"top_k"`
}
