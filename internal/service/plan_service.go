package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/planlog/internal/db"
	"github.com/planlog/internal/progress"
	"gorm.io/gorm"
)

var (
	// ErrPlanNotFound 在计划不存在、属于他人或已归档时返回
	ErrPlanNotFound = errors.New("plan not found")
	// ErrPlanTitleRequired 在标题为空时返回
	ErrPlanTitleRequired = errors.New("plan title is required")
	// ErrPlanUnitRequired 在单位为空时返回
	ErrPlanUnitRequired = errors.New("plan unit is required")
)

const dateFormat = "2006-01-02"

// PlanService 负责计划数据的读写与派生视图的装配。
// 读路径只发出按所有者过滤、排除归档的查询，聚合本身交给 progress 包的纯函数。
type PlanService struct {
	db *gorm.DB
}

// PlanInput 定义创建/更新计划时可配置字段
type PlanInput struct {
	Title       string
	Description string
	Unit        string
	TargetValue float64
	LabelIDs    []string
}

// ListOptions 描述列表页的筛选条件
type ListOptions struct {
	Search   string
	LabelIDs []string
}

// NewPlanService 构造 PlanService
func NewPlanService(gdb *gorm.DB) *PlanService {
	return &PlanService{db: gdb}
}

// List 返回某用户全部未归档计划的摘要，按创建时间倒序，
// 再按搜索词与标签条件在内存中过滤。
func (s *PlanService) List(userID uint, opts ListOptions) ([]progress.PlanSummary, error) {
	var plans []db.Plan
	if err := s.db.
		Where("user_id = ? AND archived = ?", userID, false).
		Order("created_at DESC").
		Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	if len(plans) == 0 {
		return []progress.PlanSummary{}, nil
	}

	planIDs := make([]uint, 0, len(plans))
	for _, plan := range plans {
		planIDs = append(planIDs, plan.ID)
	}

	// 标签关联与打卡增量互不依赖，并发取回后统一装配
	var (
		wg      sync.WaitGroup
		links   []progress.LabelLink
		logs    []progress.LogRow
		linkErr error
		logErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		links, linkErr = s.labelLinks(userID, planIDs)
	}()
	go func() {
		defer wg.Done()
		logs, logErr = s.logRows(userID, planIDs)
	}()
	wg.Wait()

	if linkErr != nil {
		return nil, fmt.Errorf("list plan labels: %w", linkErr)
	}
	if logErr != nil {
		return nil, fmt.Errorf("list progress logs: %w", logErr)
	}

	rows := make([]progress.PlanRow, 0, len(plans))
	for _, plan := range plans {
		rows = append(rows, planRow(plan))
	}

	summaries := progress.BuildSummaries(rows, links, logs)
	return progress.Filter(summaries, progress.FilterParams{
		SearchQuery:      opts.Search,
		SelectedLabelIDs: opts.LabelIDs,
	}), nil
}

// Get 返回单个计划的详情。计划不存在、属于他人或已归档时返回 ErrPlanNotFound。
func (s *PlanService) Get(userID uint, publicID string) (*progress.PlanDetail, error) {
	plan, err := s.findActive(userID, publicID)
	if err != nil {
		return nil, err
	}

	var (
		wg      sync.WaitGroup
		links   []progress.LabelLink
		logs    []progress.LogRow
		linkErr error
		logErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		links, linkErr = s.labelLinks(userID, []uint{plan.ID})
	}()
	go func() {
		defer wg.Done()
		logs, logErr = s.logRows(userID, []uint{plan.ID})
	}()
	wg.Wait()

	if linkErr != nil {
		return nil, fmt.Errorf("load plan labels: %w", linkErr)
	}
	if logErr != nil {
		return nil, fmt.Errorf("load plan logs: %w", logErr)
	}

	detail := progress.BuildDetail(planRow(*plan), links, logs)
	return &detail, nil
}

// Create 新建计划并关联标签
func (s *PlanService) Create(userID uint, input PlanInput) (*db.Plan, error) {
	title := strings.TrimSpace(input.Title)
	unit := strings.TrimSpace(input.Unit)
	if title == "" {
		return nil, ErrPlanTitleRequired
	}
	if unit == "" {
		return nil, ErrPlanUnitRequired
	}

	target := input.TargetValue
	if math.IsNaN(target) || math.IsInf(target, 0) {
		target = 0
	}

	labels, err := s.resolveLabels(userID, input.LabelIDs)
	if err != nil {
		return nil, err
	}

	plan := db.Plan{
		PublicID:    uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Unit:        unit,
		TargetValue: progress.Number(target),
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&plan).Error; err != nil {
			return fmt.Errorf("create plan: %w", err)
		}
		return createLinks(tx, userID, plan.ID, labels)
	}); err != nil {
		return nil, err
	}

	return &plan, nil
}

// Update 更新计划字段并整体替换标签关联
func (s *PlanService) Update(userID uint, publicID string, input PlanInput) (*db.Plan, error) {
	title := strings.TrimSpace(input.Title)
	unit := strings.TrimSpace(input.Unit)
	if title == "" {
		return nil, ErrPlanTitleRequired
	}
	if unit == "" {
		return nil, ErrPlanUnitRequired
	}

	plan, err := s.findActive(userID, publicID)
	if err != nil {
		return nil, err
	}

	target := input.TargetValue
	if math.IsNaN(target) || math.IsInf(target, 0) {
		target = 0
	}

	labels, err := s.resolveLabels(userID, input.LabelIDs)
	if err != nil {
		return nil, err
	}

	plan.Title = title
	plan.Description = strings.TrimSpace(input.Description)
	plan.Unit = unit
	plan.TargetValue = progress.Number(target)

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(plan).Error; err != nil {
			return fmt.Errorf("update plan: %w", err)
		}
		if err := tx.Unscoped().
			Where("plan_id = ?", plan.ID).
			Delete(&db.PlanLabel{}).Error; err != nil {
			return fmt.Errorf("clear plan labels: %w", err)
		}
		return createLinks(tx, userID, plan.ID, labels)
	}); err != nil {
		return nil, err
	}

	return plan, nil
}

// Archive 归档计划（软删除），之后该计划不再出现在任何列表与详情中
func (s *PlanService) Archive(userID uint, publicID string) error {
	result := s.db.Model(&db.Plan{}).
		Where("public_id = ? AND user_id = ? AND archived = ?", publicID, userID, false).
		Update("archived", true)
	if result.Error != nil {
		return fmt.Errorf("archive plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (s *PlanService) findActive(userID uint, publicID string) (*db.Plan, error) {
	var plan db.Plan
	if err := s.db.
		Where("public_id = ? AND user_id = ? AND archived = ?", publicID, userID, false).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return &plan, nil
}

// resolveLabels 将去重后的公开标签 ID 解析为当前用户的标签行
func (s *PlanService) resolveLabels(userID uint, labelIDs []string) ([]db.Label, error) {
	seen := make(map[string]struct{}, len(labelIDs))
	ids := make([]string, 0, len(labelIDs))
	for _, raw := range labelIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	var labels []db.Label
	if err := s.db.
		Where("user_id = ? AND public_id IN ?", userID, ids).
		Find(&labels).Error; err != nil {
		return nil, fmt.Errorf("resolve labels: %w", err)
	}

	if len(labels) != len(ids) {
		return nil, ErrLabelNotFound
	}

	return labels, nil
}

func createLinks(tx *gorm.DB, userID, planID uint, labels []db.Label) error {
	for _, label := range labels {
		link := db.PlanLabel{UserID: userID, PlanID: planID, LabelID: label.ID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("link plan label: %w", err)
		}
	}
	return nil
}

type labelLinkRecord struct {
	PlanPublicID   string
	LabelPublicID  string
	LabelName      string
	LabelColor     string
	LabelCreatedAt time.Time
}

// labelLinks 取回计划与标签的关联行。
// LEFT JOIN 可能产生悬空关联（标签已被物理清理），此时 Label 归一化为 nil。
func (s *PlanService) labelLinks(userID uint, planIDs []uint) ([]progress.LabelLink, error) {
	var records []labelLinkRecord
	if err := s.db.Table("plan_labels").
		Select("plans.public_id AS plan_public_id, labels.public_id AS label_public_id, labels.name AS label_name, labels.color AS label_color, labels.created_at AS label_created_at").
		Joins("JOIN plans ON plans.id = plan_labels.plan_id").
		Joins("LEFT JOIN labels ON labels.id = plan_labels.label_id AND labels.deleted_at IS NULL").
		Where("plan_labels.user_id = ?", userID).
		Where("plan_labels.plan_id IN ?", planIDs).
		Where("plan_labels.deleted_at IS NULL").
		Order("plan_labels.id ASC").
		Scan(&records).Error; err != nil {
		return nil, err
	}

	links := make([]progress.LabelLink, 0, len(records))
	for _, record := range records {
		link := progress.LabelLink{PlanID: record.PlanPublicID}
		if record.LabelPublicID != "" {
			link.Label = &progress.LabelRow{
				ID:        record.LabelPublicID,
				Name:      record.LabelName,
				Color:     record.LabelColor,
				CreatedAt: record.LabelCreatedAt,
			}
		}
		links = append(links, link)
	}
	return links, nil
}

type logRecord struct {
	PlanPublicID string
	PublicID     string
	LogDate      time.Time
	Delta        progress.Numeric
	Note         string
	CreatedAt    time.Time
}

func (s *PlanService) logRows(userID uint, planIDs []uint) ([]progress.LogRow, error) {
	var records []logRecord
	if err := s.db.Table("progress_logs").
		Select("plans.public_id AS plan_public_id, progress_logs.public_id AS public_id, progress_logs.log_date AS log_date, progress_logs.delta AS delta, progress_logs.note AS note, progress_logs.created_at AS created_at").
		Joins("JOIN plans ON plans.id = progress_logs.plan_id").
		Where("progress_logs.user_id = ?", userID).
		Where("progress_logs.plan_id IN ?", planIDs).
		Where("progress_logs.deleted_at IS NULL").
		Scan(&records).Error; err != nil {
		return nil, err
	}

	rows := make([]progress.LogRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, progress.LogRow{
			ID:        record.PublicID,
			PlanID:    record.PlanPublicID,
			Date:      record.LogDate.Format(dateFormat),
			Delta:     record.Delta,
			Note:      record.Note,
			CreatedAt: record.CreatedAt,
		})
	}
	return rows, nil
}

func planRow(plan db.Plan) progress.PlanRow {
	return progress.PlanRow{
		ID:          plan.PublicID,
		Title:       plan.Title,
		Description: plan.Description,
		Unit:        plan.Unit,
		TargetValue: plan.TargetValue,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
}
