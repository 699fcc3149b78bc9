package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger 全局日志实例
var Logger *logrus.Logger

// Init 初始化日志系统，level/format 非法时退回 info/text
func Init(level, format string) {
	Logger = logrus.New()
	Logger.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Logger.SetLevel(parsed)

	if format == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
}

// Get 获取日志实例，未初始化时使用默认配置
func Get() *logrus.Logger {
	if Logger == nil {
		Init("info", "text")
	}
	return Logger
}

// WithFields 添加多个字段到日志条目
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Get().WithFields(fields)
}

// Infof 记录格式化信息级别日志
func Infof(format string, args ...interface{}) {
	Get().Infof(format, args...)
}

// Errorf 记录格式化错误级别日志
func Errorf(format string, args ...interface{}) {
	Get().Errorf(format, args...)
}
