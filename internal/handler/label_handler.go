package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planlog/internal/service"
)

type labelRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// GetLabels 获取当前用户的标签列表
func (a *API) GetLabels(c *gin.Context) {
	userID := currentUserID(c)

	labels, err := a.labels.List(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取标签列表失败")
		return
	}

	response := make([]gin.H, 0, len(labels))
	for _, label := range labels {
		response = append(response, gin.H{
			"id":        label.PublicID,
			"name":      label.Name,
			"color":     label.Color,
			"createdAt": label.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"labels": response})
}

// CreateLabel 创建新标签
func (a *API) CreateLabel(c *gin.Context) {
	userID := currentUserID(c)

	var req labelRequest
	if !bindJSON(c, &req, "标签名称不能为空") {
		return
	}

	label, err := a.labels.Create(userID, service.LabelInput{Name: req.Name, Color: req.Color})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLabelNameRequired):
			respondError(c, http.StatusBadRequest, "标签名称不能为空")
		case errors.Is(err, service.ErrLabelExists):
			respondError(c, http.StatusBadRequest, "标签已存在")
		default:
			respondError(c, http.StatusInternalServerError, "创建标签失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "标签创建成功", "id": label.PublicID})
}

// UpdateLabel 更新标签
func (a *API) UpdateLabel(c *gin.Context) {
	userID := currentUserID(c)

	var req labelRequest
	if !bindJSON(c, &req, "标签名称不能为空") {
		return
	}

	label, err := a.labels.Update(userID, c.Param("id"), service.LabelInput{Name: req.Name, Color: req.Color})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLabelNameRequired):
			respondError(c, http.StatusBadRequest, "标签名称不能为空")
		case errors.Is(err, service.ErrLabelExists):
			respondError(c, http.StatusBadRequest, "标签名已存在")
		case errors.Is(err, service.ErrLabelNotFound):
			respondError(c, http.StatusNotFound, "标签不存在")
		default:
			respondError(c, http.StatusInternalServerError, "更新标签失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "标签更新成功", "id": label.PublicID})
}

// DeleteLabel 删除标签
func (a *API) DeleteLabel(c *gin.Context) {
	userID := currentUserID(c)

	if err := a.labels.Delete(userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrLabelInUse):
			respondError(c, http.StatusBadRequest, "标签正在被计划使用，无法删除")
		case errors.Is(err, service.ErrLabelNotFound):
			respondError(c, http.StatusNotFound, "标签不存在")
		default:
			respondError(c, http.StatusInternalServerError, "删除标签失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "标签删除成功"})
}
