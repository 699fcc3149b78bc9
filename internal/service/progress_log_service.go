package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/planlog/internal/db"
	"github.com/planlog/internal/progress"
	"gorm.io/gorm"
)

var (
	// ErrLogDeltaInvalid 在增量不是有限非零数值时返回
	ErrLogDeltaInvalid = errors.New("progress delta must be a non-zero finite number")
	// ErrLogDateInvalid 在日期不是 YYYY-MM-DD 格式时返回
	ErrLogDateInvalid = errors.New("invalid progress log date")
)

// ProgressLogService 负责打卡记录的写入与日历汇总。
// 打卡只增不改：没有任何更新或删除已有记录的路径。
type ProgressLogService struct {
	db *gorm.DB
}

// LogInput 定义打卡时的输入对象，Date 为空时默认当天
type LogInput struct {
	Delta float64
	Note  string
	Date  string
}

// NewProgressLogService 构造 ProgressLogService
func NewProgressLogService(gdb *gorm.DB) *ProgressLogService {
	return &ProgressLogService{db: gdb}
}

// Create 对指定计划追加一条打卡记录。
// 写入口要求增量为有限非零数值；读取聚合时则按原样信任存储值。
func (s *ProgressLogService) Create(userID uint, planPublicID string, input LogInput) (*db.ProgressLog, error) {
	if math.IsNaN(input.Delta) || math.IsInf(input.Delta, 0) || input.Delta == 0 {
		return nil, ErrLogDeltaInvalid
	}

	var plan db.Plan
	if err := s.db.
		Where("public_id = ? AND user_id = ? AND archived = ?", planPublicID, userID, false).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}

	logDate := db.DateOnly(time.Now())
	if raw := strings.TrimSpace(input.Date); raw != "" {
		parsed, err := time.ParseInLocation(dateFormat, raw, time.UTC)
		if err != nil {
			return nil, ErrLogDateInvalid
		}
		logDate = parsed
	}

	record := db.ProgressLog{
		PublicID: uuid.NewString(),
		UserID:   userID,
		PlanID:   plan.ID,
		LogDate:  logDate,
		Delta:    progress.Number(input.Delta),
		Note:     strings.TrimSpace(input.Note),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create progress log: %w", err)
	}

	return &record, nil
}

// CalendarMonth 返回计划在指定月份（YYYY-MM）内按日汇总的打卡增量，
// month 为空时取当前月份
func (s *ProgressLogService) CalendarMonth(userID uint, planPublicID, month string) ([]progress.DailyTotal, error) {
	var plan db.Plan
	if err := s.db.
		Where("public_id = ? AND user_id = ? AND archived = ?", planPublicID, userID, false).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}

	start := db.DateOnly(time.Now())
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	if raw := strings.TrimSpace(month); raw != "" {
		parsed, err := time.ParseInLocation("2006-01", raw, time.UTC)
		if err != nil {
			return nil, ErrLogDateInvalid
		}
		start = parsed
	}
	end := start.AddDate(0, 1, 0)

	var records []db.ProgressLog
	if err := s.db.
		Where("user_id = ? AND plan_id = ?", userID, plan.ID).
		Where("log_date >= ? AND log_date < ?", start, end).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list progress logs: %w", err)
	}

	rows := make([]progress.LogRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, progress.LogRow{
			ID:        record.PublicID,
			PlanID:    plan.PublicID,
			Date:      record.LogDate.Format(dateFormat),
			Delta:     record.Delta,
			Note:      record.Note,
			CreatedAt: record.CreatedAt,
		})
	}

	return progress.DailyTotals(rows), nil
}
