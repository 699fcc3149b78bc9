package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planlog/internal/progress"
	"github.com/planlog/internal/service"
)

type planRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Unit        string   `json:"unit" binding:"required"`
	TargetValue float64  `json:"targetValue"`
	LabelIDs    []string `json:"labelIds"`
}

// GetPlans 获取计划摘要列表，支持搜索词与逗号连接的标签 ID 过滤
func (a *API) GetPlans(c *gin.Context) {
	userID := currentUserID(c)

	opts := service.ListOptions{
		Search:   c.Query("search"),
		LabelIDs: splitIDList(c.Query("labels")),
	}

	summaries, err := a.plans.List(userID, opts)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取计划列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": summaries})
}

// GetPlan 获取计划详情，描述以净化后的 HTML 一并返回
func (a *API) GetPlan(c *gin.Context) {
	userID := currentUserID(c)

	detail, err := a.plans.Get(userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			respondError(c, http.StatusNotFound, "计划不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取计划详情失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plan":            detail,
		"descriptionHtml": renderMarkdown(detail.Description),
		"progressPercent": progress.FormatPercent(detail.ProgressRate),
	})
}

// CreatePlan 创建新计划
func (a *API) CreatePlan(c *gin.Context) {
	userID := currentUserID(c)

	var req planRequest
	if !bindJSON(c, &req, "标题和单位不能为空") {
		return
	}

	plan, err := a.plans.Create(userID, service.PlanInput{
		Title:       req.Title,
		Description: req.Description,
		Unit:        req.Unit,
		TargetValue: req.TargetValue,
		LabelIDs:    req.LabelIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanTitleRequired):
			respondError(c, http.StatusBadRequest, "请输入标题")
		case errors.Is(err, service.ErrPlanUnitRequired):
			respondError(c, http.StatusBadRequest, "请输入单位")
		case errors.Is(err, service.ErrLabelNotFound):
			respondError(c, http.StatusBadRequest, "包含不存在的标签")
		default:
			respondError(c, http.StatusInternalServerError, "创建计划失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "计划创建成功", "id": plan.PublicID})
}

// UpdatePlan 更新计划字段并整体替换标签
func (a *API) UpdatePlan(c *gin.Context) {
	userID := currentUserID(c)

	var req planRequest
	if !bindJSON(c, &req, "标题和单位不能为空") {
		return
	}

	plan, err := a.plans.Update(userID, c.Param("id"), service.PlanInput{
		Title:       req.Title,
		Description: req.Description,
		Unit:        req.Unit,
		TargetValue: req.TargetValue,
		LabelIDs:    req.LabelIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			respondError(c, http.StatusNotFound, "计划不存在")
		case errors.Is(err, service.ErrPlanTitleRequired):
			respondError(c, http.StatusBadRequest, "请输入标题")
		case errors.Is(err, service.ErrPlanUnitRequired):
			respondError(c, http.StatusBadRequest, "请输入单位")
		case errors.Is(err, service.ErrLabelNotFound):
			respondError(c, http.StatusBadRequest, "包含不存在的标签")
		default:
			respondError(c, http.StatusInternalServerError, "更新计划失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "计划更新成功", "id": plan.PublicID})
}

// ArchivePlan 归档计划（软删除）
func (a *API) ArchivePlan(c *gin.Context) {
	userID := currentUserID(c)

	if err := a.plans.Archive(userID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			respondError(c, http.StatusNotFound, "计划不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "归档计划失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "计划已归档"})
}
