package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/planlog/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrLabelExists 在同名标签已存在时返回
	ErrLabelExists = errors.New("label already exists")
	// ErrLabelInUse 在标签仍关联计划时返回
	ErrLabelInUse = errors.New("label is associated with plans")
	// ErrLabelNotFound 在标签不存在或属于他人时返回
	ErrLabelNotFound = errors.New("label not found")
	// ErrLabelNameRequired 在名称为空时返回
	ErrLabelNameRequired = errors.New("label name is required")
)

// LabelService 负责标签的增删改查，全部操作按所有者隔离
type LabelService struct {
	db *gorm.DB
}

// LabelInput 定义创建/更新标签时可配置字段
type LabelInput struct {
	Name  string
	Color string
}

// NewLabelService 构造 LabelService
func NewLabelService(gdb *gorm.DB) *LabelService {
	return &LabelService{db: gdb}
}

// List 返回某用户的全部标签，按名称升序
func (s *LabelService) List(userID uint) ([]db.Label, error) {
	var labels []db.Label
	if err := s.db.
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&labels).Error; err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	return labels, nil
}

// Create 新建标签，同一用户下名称唯一
func (s *LabelService) Create(userID uint, input LabelInput) (*db.Label, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrLabelNameRequired
	}

	var existing db.Label
	if err := s.db.Where("user_id = ? AND name = ?", userID, name).First(&existing).Error; err == nil {
		return nil, ErrLabelExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check label name: %w", err)
	}

	label := db.Label{
		PublicID: uuid.NewString(),
		UserID:   userID,
		Name:     name,
		Color:    strings.TrimSpace(input.Color),
	}
	if err := s.db.Create(&label).Error; err != nil {
		return nil, fmt.Errorf("create label: %w", err)
	}

	return &label, nil
}

// Update 修改标签名称与颜色，保持同用户下名称唯一
func (s *LabelService) Update(userID uint, publicID string, input LabelInput) (*db.Label, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrLabelNameRequired
	}

	label, err := s.find(userID, publicID)
	if err != nil {
		return nil, err
	}

	var existing db.Label
	if err := s.db.
		Where("user_id = ? AND name = ? AND id <> ?", userID, name, label.ID).
		First(&existing).Error; err == nil {
		return nil, ErrLabelExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check label name: %w", err)
	}

	label.Name = name
	label.Color = strings.TrimSpace(input.Color)
	if err := s.db.Save(label).Error; err != nil {
		return nil, fmt.Errorf("update label: %w", err)
	}

	return label, nil
}

// Delete 删除未被计划引用的标签
func (s *LabelService) Delete(userID uint, publicID string) error {
	label, err := s.find(userID, publicID)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&db.PlanLabel{}).
		Where("label_id = ?", label.ID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("count label links: %w", err)
	}
	if count > 0 {
		return ErrLabelInUse
	}

	if err := s.db.Unscoped().Delete(label).Error; err != nil {
		return fmt.Errorf("delete label: %w", err)
	}
	return nil
}

func (s *LabelService) find(userID uint, publicID string) (*db.Label, error) {
	var label db.Label
	if err := s.db.
		Where("user_id = ? AND public_id = ?", userID, publicID).
		First(&label).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("find label: %w", err)
	}
	return &label, nil
}
