package db

import (
	"time"

	"github.com/planlog/internal/progress"
	"gorm.io/gorm"
)

// Plan 定义了计划模型：一个带目标值与单位的用户目标。
// PublicID 是对外暴露的 uuid 字符串，内部关联仍使用自增主键。
// TargetValue 使用宽松数值列，表示形态由 progress.Numeric 统一收敛。
// Archived 为软删除标记，归档计划不出现在任何列表中。
type Plan struct {
	gorm.Model
	PublicID    string `gorm:"uniqueIndex;size:36;not null"`
	UserID      uint   `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string
	Unit        string `gorm:"not null"`
	TargetValue progress.Numeric
	Archived    bool `gorm:"index;default:false"`
}

// PlanLabel 记录计划与标签的关联。
// 刻意不加唯一约束：上游可能产生重复关联行，去重由装配层兜底。
type PlanLabel struct {
	gorm.Model
	UserID  uint `gorm:"index;not null"`
	PlanID  uint `gorm:"index;not null"`
	LabelID uint `gorm:"index;not null"`
}

// TableName 保持与原始库表名一致
func (PlanLabel) TableName() string {
	return "plan_labels"
}

// DateOnly 将时间截断到日期，打卡记录只关心日历日
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
