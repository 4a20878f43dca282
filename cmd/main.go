package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rahulbedjavalge/Unfiltered-Club/config"
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/ai"
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/api/confession"
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/middleware"
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/moderation"
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/repository/mysql"
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/service"
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 测试数据库连接
	err = db.Ping()
	if err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	util.Logger.Info("数据库连接池配置完成")

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("mood", util.ValidateMood)
		v.RegisterValidation("reaction_emoji", util.ValidateReactionEmoji)
	}

	// 初始化 AI 回复客户端，密钥缺失时降级为占位回复
	aiClient := ai.NewClient(config.AppConfig.OpenRouterAPIKey)
	aiClient.BaseURL = config.AppConfig.OpenRouterURL
	aiClient.Model = config.AppConfig.AIModel
	aiClient.HTTPClient.Timeout = time.Duration(config.AppConfig.AITimeoutSeconds) * time.Second

	// 初始化存储库、服务和处理器
	postRepo := mysql.NewPostRepository(db)
	postService := service.NewPostService(postRepo)
	submissionService := service.NewSubmissionService(postService, moderation.Moderate, aiClient)
	confessionHandler := confession.NewConfessionHandler(postService, submissionService, aiClient)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.Default()

	// 添加中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
	}
	r.Use(cors.New(corsConfig))

	// 定义 API 路由
	api := r.Group("/api")
	{
		// 树洞帖子相关路由
		api.POST("/confessions", confessionHandler.CreateConfession)
		api.GET("/confessions", confessionHandler.ListConfessions)

		// 评论相关路由
		api.POST("/confessions/:id/comments", confessionHandler.CreateComment)
		api.GET("/confessions/:id/comments", confessionHandler.ListComments)

		// 反应相关路由
		api.POST("/confessions/:id/reactions", confessionHandler.CreateReaction)
		api.GET("/confessions/:id/reactions", confessionHandler.ListReactions)

		// AI 回复预览，不发帖
		api.POST("/ai/reply", confessionHandler.PreviewReply)

		// 统计和鼓励语
		api.GET("/stats", confessionHandler.GetStats)
		api.GET("/encouragement", confessionHandler.GetEncouragement)

		// 清空全部数据
		api.DELETE("/admin/data", confessionHandler.DeleteAllData)
	}

	// 创建一个带有超时的 http.Server
	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动，监听端口 :8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}
