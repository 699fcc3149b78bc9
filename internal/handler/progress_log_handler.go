package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planlog/internal/service"
)

type progressLogRequest struct {
	Delta float64 `json:"delta"`
	Note  string  `json:"note"`
	Date  string  `json:"date"`
}

// CreateProgressLog 对计划追加一条打卡记录，日期缺省为当天
func (a *API) CreateProgressLog(c *gin.Context) {
	userID := currentUserID(c)

	var req progressLogRequest
	if !bindJSON(c, &req, "无效的打卡请求") {
		return
	}

	record, err := a.logs.Create(userID, c.Param("id"), service.LogInput{
		Delta: req.Delta,
		Note:  req.Note,
		Date:  req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLogDeltaInvalid):
			respondError(c, http.StatusBadRequest, "增量必须是非零数值")
		case errors.Is(err, service.ErrLogDateInvalid):
			respondError(c, http.StatusBadRequest, "日期格式应为 YYYY-MM-DD")
		case errors.Is(err, service.ErrPlanNotFound):
			respondError(c, http.StatusNotFound, "计划不存在")
		default:
			respondError(c, http.StatusInternalServerError, "打卡失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "打卡成功", "id": record.PublicID})
}

// GetPlanCalendar 返回计划某月份按日汇总的打卡增量
func (a *API) GetPlanCalendar(c *gin.Context) {
	userID := currentUserID(c)

	days, err := a.logs.CalendarMonth(userID, c.Param("id"), c.Query("month"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLogDateInvalid):
			respondError(c, http.StatusBadRequest, "月份格式应为 YYYY-MM")
		case errors.Is(err, service.ErrPlanNotFound):
			respondError(c, http.StatusNotFound, "计划不存在")
		default:
			respondError(c, http.StatusInternalServerError, "获取打卡日历失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}
