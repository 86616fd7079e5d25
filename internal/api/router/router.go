package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/config"
	"github.com/RashmiFernando/study-sphere/internal/api/handler"
	"github.com/RashmiFernando/study-sphere/internal/api/middleware"
	"github.com/RashmiFernando/study-sphere/pkg/jwt"
	"github.com/RashmiFernando/study-sphere/pkg/metrics"
)

// Deps 路由依赖。Blacklist 与 Limiter 为 nil 时（Redis 不可用）分别跳过吊销检查与限流
type Deps struct {
	Config    *config.Config
	Handler   *handler.Handler
	JWT       *jwt.Manager
	Blacklist middleware.TokenChecker
	Limiter   middleware.RateLimiter
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(d Deps) *gin.Engine {
	cfg, h := d.Config, d.Handler

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── 健康检查 / 指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	authRequired := middleware.JWTAuth(d.JWT, d.Blacklist)
	loginLimit := middleware.RateLimit(d.Limiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow)

	// enforce_auth 打开时，学术模块的写操作需要令牌
	var guard gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.Feature.EnforceAuth {
		guard = middleware.MutatingOnly(authRequired)
	}

	api := r.Group("/api")

	// ── 课程 / 讲师 ──
	academic := api.Group("", guard)
	{
		academic.GET("/courses", h.Course.List)
		academic.GET("/all", h.Course.ListNonEmpty)
		academic.POST("/createcourse", h.Course.Create)
		academic.PUT("/updatecourse", h.Course.Update)
		academic.DELETE("/deletecourse", h.Course.Delete)

		academic.GET("/lecturers", h.Lecturer.List)
		academic.POST("/createlecturer", h.Lecturer.Create)
		academic.PUT("/updatelecturer", h.Lecturer.Update)
		academic.DELETE("/deletelecturer", h.Lecturer.Delete)
	}

	// ── 教室 ──
	rooms := api.Group("/lecture-rooms", guard)
	{
		rooms.GET("/check-room-name", h.LectureRoom.CheckRoomName)
		rooms.GET("/search", h.LectureRoom.Search)
		rooms.GET("/report", h.LectureRoom.Report)
		rooms.GET("", h.LectureRoom.List)
		rooms.POST("", h.LectureRoom.Create)
		rooms.GET("/:id", h.LectureRoom.Get)
		rooms.PUT("/:id", h.LectureRoom.Update)
		rooms.DELETE("/:id", h.LectureRoom.Delete)
	}

	// ── 预约 ──
	schedules := api.Group("/schedules", guard)
	{
		schedules.GET("", h.Schedule.List)
		schedules.POST("", h.Schedule.Create)
		schedules.GET("/:id", h.Schedule.Get)
		schedules.PUT("/:id", h.Schedule.Update)
		schedules.DELETE("/:id", h.Schedule.Delete)
	}

	// ── 课表 ──
	timetable := api.Group("/timetable", guard)
	{
		timetable.POST("/generate-auto", h.Timetable.GenerateAuto)
		timetable.POST("/generate-manual", h.Timetable.GenerateManual)
		timetable.GET("/export/xlsx", h.Export.TimetableXLSX)
		timetable.GET("/export/ics", h.Export.TimetableICS)
		timetable.GET("", h.Timetable.List)
		timetable.POST("", h.Timetable.Create)
		timetable.GET("/:id", h.Timetable.Get)
		timetable.PUT("/:id", h.Timetable.Update)
		timetable.DELETE("/:id", h.Timetable.Delete)
	}

	// ── 报表 ──
	reports := api.Group("/reports")
	{
		reports.GET("/utilization-report", h.Report.Utilization)
		reports.POST("/utilization-report-pdf-with-charts", h.Report.ChartPDF)
	}

	// ── 职员认证 ──
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", loginLimit, h.Auth.Login)
		auth.POST("/logout", authRequired, h.Auth.Logout)
		auth.GET("/me", authRequired, h.Auth.Me)
	}

	api.GET("/admin/dashboard", authRequired, middleware.AdminOnly(), h.Auth.AdminDashboard)

	// ── 学生 ──
	student := r.Group("/student")
	{
		student.POST("/register", h.Student.Register)
		student.POST("/login", loginLimit, h.Student.Login)

		guarded := student.Group("", guard)
		guarded.GET("/view-all", h.Student.List)
		guarded.GET("/view/:id", h.Student.Get)
		guarded.PUT("/update/:id", h.Student.Update)
		guarded.PUT("/change-password/:id", h.Student.ChangePassword)
		guarded.DELETE("/delete/:id", h.Student.Delete)
	}

	// ── 选课 ──
	enrollment := r.Group("/enrollment", guard)
	{
		enrollment.POST("/create", h.Enrollment.Create)
		enrollment.GET("/student-enrollments/:studentId", h.Enrollment.ListByStudent)
		enrollment.GET("/student-count/:code", h.Enrollment.CountByCode)
	}

	// ── 考试 ──
	exam := r.Group("/exam", guard)
	{
		exam.POST("/create", h.Exam.Create)
		exam.GET("/view-all", h.Exam.List)
		exam.GET("/view/:id", h.Exam.Get)
		exam.GET("/student-exams/:id", h.Exam.ListForStudent)
		exam.PUT("/update/:id", h.Exam.Reschedule)
		exam.DELETE("/delete/:id", h.Exam.Delete)
	}

	return r
}
