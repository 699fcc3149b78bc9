package progress

import (
	"testing"
	"time"
)

func testPlan(id, title string, target Numeric) PlanRow {
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return PlanRow{
		ID:          id,
		Title:       title,
		Unit:        "km",
		TargetValue: target,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func labelPtr(id, name string) *LabelRow {
	return &LabelRow{ID: id, Name: name}
}

func TestBuildSummariesAggregation(t *testing.T) {
	plans := []PlanRow{
		testPlan("p1", "跑步", Number(80)),
		testPlan("p2", "阅读", Number(12)),
	}
	logs := []LogRow{
		{ID: "l1", PlanID: "p1", Date: "2024-01-02", Delta: Number(10)},
		{ID: "l2", PlanID: "p1", Date: "2024-01-03", Delta: Number(5)},
		{ID: "l3", PlanID: "p1", Date: "2024-01-04", Delta: Number(-3)},
	}

	summaries := BuildSummaries(plans, nil, logs)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	if summaries[0].CurrentValue != 12 {
		t.Fatalf("expected current value 12, got %v", summaries[0].CurrentValue)
	}
	if summaries[0].ProgressRate != 0.15 {
		t.Fatalf("expected progress rate 0.15, got %v", summaries[0].ProgressRate)
	}

	// 没有打卡的计划当前值为 0
	if summaries[1].CurrentValue != 0 {
		t.Fatalf("expected current value 0, got %v", summaries[1].CurrentValue)
	}
	if summaries[1].ProgressRate != 0 {
		t.Fatalf("expected progress rate 0, got %v", summaries[1].ProgressRate)
	}
	if summaries[1].Labels == nil || len(summaries[1].Labels) != 0 {
		t.Fatalf("expected empty label slice, got %#v", summaries[1].Labels)
	}
}

func TestBuildSummariesTextDeltaAndTarget(t *testing.T) {
	plans := []PlanRow{testPlan("p1", "跑步", Text("80"))}
	logs := []LogRow{
		{ID: "l1", PlanID: "p1", Date: "2024-01-02", Delta: Text("50")},
		{ID: "l2", PlanID: "p1", Date: "2024-01-03", Delta: Text("12")},
		{ID: "l3", PlanID: "p1", Date: "2024-01-04", Delta: Text("oops")},
	}

	summaries := BuildSummaries(plans, nil, logs)
	if summaries[0].TargetValue != 80 {
		t.Fatalf("expected target 80, got %v", summaries[0].TargetValue)
	}
	if summaries[0].CurrentValue != 62 {
		t.Fatalf("expected current value 62, got %v", summaries[0].CurrentValue)
	}
	if summaries[0].ProgressRate != 0.775 {
		t.Fatalf("expected progress rate 0.775, got %v", summaries[0].ProgressRate)
	}
}

func TestBuildSummariesLabelGrouping(t *testing.T) {
	plans := []PlanRow{testPlan("p1", "跑步", Number(80))}
	links := []LabelLink{
		{PlanID: "p1", Label: labelPtr("a", "健康")},
		{PlanID: "p1", Label: nil}, // 悬空关联被忽略
		{PlanID: "p1", Label: labelPtr("b", "学习")},
		{PlanID: "p1", Label: labelPtr("a", "健康")}, // 重复关联只保留一次
		{PlanID: "p2", Label: labelPtr("c", "其他")},
	}

	summaries := BuildSummaries(plans, links, nil)
	labels := summaries[0].Labels
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(labels))
	}
	if labels[0].ID != "a" || labels[1].ID != "b" {
		t.Fatalf("expected discovery order a,b got %s,%s", labels[0].ID, labels[1].ID)
	}
}

func TestBuildDetailLogOrdering(t *testing.T) {
	plan := testPlan("p1", "跑步", Number(80))
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	logs := []LogRow{
		{ID: "old", PlanID: "p1", Date: "2024-01-01", Delta: Number(1), CreatedAt: base},
		{ID: "same-day-early", PlanID: "p1", Date: "2024-01-02", Delta: Number(2), CreatedAt: base.Add(time.Hour)},
		{ID: "same-day-late", PlanID: "p1", Date: "2024-01-02", Delta: Number(3), CreatedAt: base.Add(2 * time.Hour)},
	}

	detail := BuildDetail(plan, nil, logs)
	if len(detail.Logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(detail.Logs))
	}

	// 日期倒序，同日期按创建时间倒序
	wantOrder := []string{"same-day-late", "same-day-early", "old"}
	for i, want := range wantOrder {
		if detail.Logs[i].ID != want {
			t.Fatalf("expected log %d to be %s, got %s", i, want, detail.Logs[i].ID)
		}
	}

	if detail.CurrentValue != 6 {
		t.Fatalf("expected current value 6, got %v", detail.CurrentValue)
	}
}

func TestBuildDetailInputOrderIrrelevant(t *testing.T) {
	plan := testPlan("p1", "跑步", Number(10))
	logs := []LogRow{
		{ID: "first", PlanID: "p1", Date: "2024-01-01", Delta: Number(1)},
		{ID: "second", PlanID: "p1", Date: "2024-01-02", Delta: Number(1)},
	}

	detail := BuildDetail(plan, nil, logs)
	if detail.Logs[0].ID != "second" {
		t.Fatalf("expected 2024-01-02 first, got %s", detail.Logs[0].ID)
	}
}

func TestDailyTotals(t *testing.T) {
	logs := []LogRow{
		{ID: "l1", PlanID: "p1", Date: "2024-05-02", Delta: Number(5)},
		{ID: "l2", PlanID: "p1", Date: "2024-05-01", Delta: Number(2)},
		{ID: "l3", PlanID: "p1", Date: "2024-05-02", Delta: Text("1.5")},
	}

	days := DailyTotals(logs)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].Date != "2024-05-01" || days[0].Total != 2 || days[0].Count != 1 {
		t.Fatalf("unexpected first day: %#v", days[0])
	}
	if days[1].Date != "2024-05-02" || days[1].Total != 6.5 || days[1].Count != 2 {
		t.Fatalf("unexpected second day: %#v", days[1])
	}
}
