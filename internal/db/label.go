package db

import "gorm.io/gorm"

// Label 定义了标签模型，Color 为可选的展示颜色（不透明字符串，如 hex）
type Label struct {
	gorm.Model
	PublicID string `gorm:"uniqueIndex;size:36;not null"`
	UserID   uint   `gorm:"index;not null"`
	Name     string `gorm:"not null"`
	Color    string
}
