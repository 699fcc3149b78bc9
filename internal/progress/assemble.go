package progress

import (
	"sort"
	"time"
)

// PlanRow 是存储层返回的计划行，调用方保证已按所有者过滤且不含归档计划
type PlanRow struct {
	ID          string
	Title       string
	Description string
	Unit        string
	TargetValue Numeric
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LabelRow 是存储层返回的标签行
type LabelRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// LabelLink 表示计划与标签的关联行。
// 查询形态的差异（单对象 / 零或一元素列表）在数据访问层归一化为可空指针，
// Label 为 nil 时该关联被忽略。
type LabelLink struct {
	PlanID string
	Label  *LabelRow
}

// LogRow 是存储层返回的打卡行，Date 为 YYYY-MM-DD 日期字符串
type LogRow struct {
	ID        string
	PlanID    string
	Date      string
	Delta     Numeric
	Note      string
	CreatedAt time.Time
}

// PlanSummary 是列表视图使用的派生模型，每次读取都从源行重新计算
type PlanSummary struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Unit         string     `json:"unit"`
	TargetValue  float64    `json:"targetValue"`
	CurrentValue float64    `json:"currentValue"`
	ProgressRate float64    `json:"progressRate"`
	Labels       []LabelRow `json:"labels"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// LogEntry 是详情视图中的单条打卡记录
type LogEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Delta     float64   `json:"delta"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

// PlanDetail 在摘要之上附加按时间倒序排列的打卡列表
type PlanDetail struct {
	PlanSummary
	Logs []LogEntry `json:"logs"`
}

// DailyTotal 汇总某个日历日内的打卡增量
type DailyTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// labelsByPlan 按计划分组关联标签，保留发现顺序。
// 同一标签被重复关联时只保留第一次出现（上游不保证关联行唯一）。
func labelsByPlan(links []LabelLink) map[string][]LabelRow {
	grouped := make(map[string][]LabelRow)
	seen := make(map[string]map[string]struct{})

	for _, link := range links {
		if link.Label == nil {
			continue
		}
		if seen[link.PlanID] == nil {
			seen[link.PlanID] = make(map[string]struct{})
		}
		if _, dup := seen[link.PlanID][link.Label.ID]; dup {
			continue
		}
		seen[link.PlanID][link.Label.ID] = struct{}{}
		grouped[link.PlanID] = append(grouped[link.PlanID], *link.Label)
	}

	return grouped
}

// currentByPlan 按计划累加打卡增量
func currentByPlan(logs []LogRow) map[string]float64 {
	totals := make(map[string]float64)
	for _, row := range logs {
		totals[row.PlanID] += row.Delta.Float64()
	}
	return totals
}

func buildSummary(plan PlanRow, labels []LabelRow, currentValue float64) PlanSummary {
	if labels == nil {
		labels = []LabelRow{}
	}

	targetValue := plan.TargetValue.Float64()
	return PlanSummary{
		ID:           plan.ID,
		Title:        plan.Title,
		Description:  plan.Description,
		Unit:         plan.Unit,
		TargetValue:  targetValue,
		CurrentValue: currentValue,
		ProgressRate: Rate(currentValue, targetValue),
		Labels:       labels,
		CreatedAt:    plan.CreatedAt,
		UpdatedAt:    plan.UpdatedAt,
	}
}

// BuildSummaries 将计划行、标签关联行与打卡行装配为摘要集合。
// 没有打卡的计划当前值为 0；输出顺序与计划行一致。
func BuildSummaries(plans []PlanRow, links []LabelLink, logs []LogRow) []PlanSummary {
	labels := labelsByPlan(links)
	totals := currentByPlan(logs)

	summaries := make([]PlanSummary, 0, len(plans))
	for _, plan := range plans {
		summaries = append(summaries, buildSummary(plan, labels[plan.ID], totals[plan.ID]))
	}

	return summaries
}

// BuildDetail 装配单个计划的详情：摘要加上按日期倒序、
// 同日期按创建时间倒序排列的打卡列表。
func BuildDetail(plan PlanRow, links []LabelLink, logs []LogRow) PlanDetail {
	ordered := make([]LogRow, len(logs))
	copy(ordered, logs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[i].Date > ordered[j].Date
		}
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	var currentValue float64
	entries := make([]LogEntry, 0, len(ordered))
	for _, row := range ordered {
		delta := row.Delta.Float64()
		currentValue += delta
		entries = append(entries, LogEntry{
			ID:        row.ID,
			Date:      row.Date,
			Delta:     delta,
			Note:      row.Note,
			CreatedAt: row.CreatedAt,
		})
	}

	return PlanDetail{
		PlanSummary: buildSummary(plan, labelsByPlan(links)[plan.ID], currentValue),
		Logs:        entries,
	}
}

// DailyTotals 按日历日汇总打卡增量，日期升序，用于日历视图
func DailyTotals(logs []LogRow) []DailyTotal {
	totals := make(map[string]*DailyTotal)
	for _, row := range logs {
		entry, ok := totals[row.Date]
		if !ok {
			entry = &DailyTotal{Date: row.Date}
			totals[row.Date] = entry
		}
		entry.Total += row.Delta.Float64()
		entry.Count++
	}

	dates := make([]string, 0, len(totals))
	for date := range totals {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	result := make([]DailyTotal, 0, len(dates))
	for _, date := range dates {
		result = append(result, *totals[date])
	}
	return result
}
