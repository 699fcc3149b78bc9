package progress

import "strings"

// FilterParams 描述列表页的筛选条件，空条件不参与过滤
type FilterParams struct {
	SearchQuery      string
	SelectedLabelIDs []string
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// MatchesSearch 对标题或描述做大小写不敏感的子串匹配，
// 空白搜索词匹配一切
func MatchesSearch(plan PlanSummary, searchQuery string) bool {
	query := normalize(searchQuery)
	if query == "" {
		return true
	}

	return strings.Contains(normalize(plan.Title), query) ||
		strings.Contains(normalize(plan.Description), query)
}

// MatchesLabelOr 判断计划是否带有任一选中标签，空选集匹配一切
func MatchesLabelOr(plan PlanSummary, selectedLabelIDs []string) bool {
	if len(selectedLabelIDs) == 0 {
		return true
	}

	for _, label := range plan.Labels {
		for _, id := range selectedLabelIDs {
			if label.ID == id {
				return true
			}
		}
	}
	return false
}

// Filter 返回同时满足搜索与标签条件的子序列，保持输入顺序
func Filter(plans []PlanSummary, params FilterParams) []PlanSummary {
	result := make([]PlanSummary, 0, len(plans))
	for _, plan := range plans {
		if MatchesSearch(plan, params.SearchQuery) && MatchesLabelOr(plan, params.SelectedLabelIDs) {
			result = append(result, plan)
		}
	}
	return result
}
