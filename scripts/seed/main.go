package main

import (
	"fmt"
	"log"
	"time"

	"github.com/planlog/internal/config"
	"github.com/planlog/internal/db"
	"github.com/planlog/internal/service"
	"golang.org/x/crypto/bcrypt"
)

// 测试数据生成器：创建演示账号、标签、计划与打卡记录
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成测试数据...")

	user := ensureDemoUser()
	labels := createDemoLabels(user.ID)
	createDemoPlans(user.ID, labels)

	fmt.Println("测试数据生成完成，账号 demo / demo1234")
}

func ensureDemoUser() *db.User {
	var user db.User
	if err := db.DB.Where("username = ?", "demo").First(&user).Error; err == nil {
		return &user
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("密码加密失败:", err)
	}

	user = db.User{Username: "demo", Password: string(hashed)}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Fatal("创建演示用户失败:", err)
	}
	return &user
}

func createDemoLabels(userID uint) map[string]string {
	svc := service.NewLabelService(db.DB)
	inputs := []service.LabelInput{
		{Name: "健康", Color: "#34d399"},
		{Name: "学习", Color: "#60a5fa"},
		{Name: "阅读", Color: "#f59e0b"},
	}

	ids := make(map[string]string, len(inputs))
	for _, input := range inputs {
		label, err := svc.Create(userID, input)
		if err != nil {
			log.Fatal("创建标签失败:", err)
		}
		ids[input.Name] = label.PublicID
	}
	return ids
}

func createDemoPlans(userID uint, labels map[string]string) {
	planSvc := service.NewPlanService(db.DB)
	logSvc := service.NewProgressLogService(db.DB)

	plans := []struct {
		input  service.PlanInput
		deltas []float64
	}{
		{
			input: service.PlanInput{
				Title:       "跑步 80 公里",
				Description: "本季度累计跑量目标",
				Unit:        "km",
				TargetValue: 80,
				LabelIDs:    []string{labels["健康"]},
			},
			deltas: []float64{5, 8, 6.5, 10},
		},
		{
			input: service.PlanInput{
				Title:       "读完 12 本书",
				Description: "每月一本",
				Unit:        "本",
				TargetValue: 12,
				LabelIDs:    []string{labels["阅读"], labels["学习"]},
			},
			deltas: []float64{1, 1, 1},
		},
	}

	base := time.Now().AddDate(0, 0, -7)
	for _, item := range plans {
		plan, err := planSvc.Create(userID, item.input)
		if err != nil {
			log.Fatal("创建计划失败:", err)
		}
		for i, delta := range item.deltas {
			date := base.AddDate(0, 0, i).Format("2006-01-02")
			if _, err := logSvc.Create(userID, plan.PublicID, service.LogInput{Delta: delta, Date: date}); err != nil {
				log.Fatal("创建打卡记录失败:", err)
			}
		}
	}
}
