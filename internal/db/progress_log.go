package db

import (
	"time"

	"github.com/planlog/internal/progress"
	"gorm.io/gorm"
)

// ProgressLog 记录对计划的一次增量打卡。
// LogDate 只保留日历日；Delta 为宽松数值列，聚合时按原样信任存储值。
// 记录只增不改：任何代码路径都不会更新或删除已有打卡。
type ProgressLog struct {
	gorm.Model
	PublicID string `gorm:"uniqueIndex;size:36;not null"`
	UserID   uint   `gorm:"index;not null"`
	PlanID   uint   `gorm:"index;not null"`
	LogDate  time.Time `gorm:"index;not null"`
	Delta    progress.Numeric
	Note     string
}

// TableName 保持与原始库表名一致
func (ProgressLog) TableName() string {
	return "progress_logs"
}
