package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/planlog/internal/config"
	"github.com/planlog/internal/db"
	"github.com/planlog/internal/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("error", "text")
	os.Exit(m.Run())
}

func setupRouter(t *testing.T) (*gin.Engine, func()) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.User{}, &db.Plan{}, &db.Label{}, &db.PlanLabel{}, &db.ProgressLog{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = gdb

	cfg := config.AppConfig{
		SessionSecret:    "test-secret",
		CORSAllowOrigins: []string{"http://localhost:3000"},
	}

	return SetupRouter(gdb, cfg), func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestPing(t *testing.T) {
	r, cleanup := setupRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r, cleanup := setupRouter(t)
	defer cleanup()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/plans"},
		{http.MethodGet, "/api/labels"},
		{http.MethodGet, "/api/auth/me"},
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(p.method, p.path, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected status 401, got %d", p.method, p.path, w.Code)
		}
	}
}
