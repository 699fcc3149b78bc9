package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/planlog/internal/config"
	"github.com/planlog/internal/handler"
	"github.com/planlog/internal/middleware"
	"gorm.io/gorm"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB, cfg config.AppConfig) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("planlog_session", store))

	// 浏览器客户端跨域携带会话 Cookie
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	api := handler.NewAPI(gdb)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	apiGroup := r.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			auth.POST("/register", api.Register)
			auth.POST("/login", api.Login)
			auth.POST("/logout", api.Logout)
		}

		// 需要认证的业务路由
		authed := apiGroup.Group("")
		authed.Use(handler.AuthRequired())
		{
			authed.GET("/auth/me", api.Me)

			authed.GET("/plans", api.GetPlans)
			authed.POST("/plans", api.CreatePlan)
			authed.GET("/plans/:id", api.GetPlan)
			authed.PUT("/plans/:id", api.UpdatePlan)
			authed.POST("/plans/:id/archive", api.ArchivePlan)
			authed.POST("/plans/:id/logs", api.CreateProgressLog)
			authed.GET("/plans/:id/calendar", api.GetPlanCalendar)

			authed.GET("/labels", api.GetLabels)
			authed.POST("/labels", api.CreateLabel)
			authed.PUT("/labels/:id", api.UpdateLabel)
			authed.DELETE("/labels/:id", api.DeleteLabel)
		}
	}

	return r
}
