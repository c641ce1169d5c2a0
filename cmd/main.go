package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/api/handler"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/api/router"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/catalog"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/config"
	appLogger "github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/logger"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/notify"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/parser"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/processor"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/storage"
)

func main() {
	// .env存在时预加载环境变量，用于本地开发
	_ = godotenv.Load()

	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	initLogger(cfg)
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	// 声明通知拓扑（交换机/队列/绑定）并启动投递消费者
	// RabbitMQ不可用时notifier保持nil，handler侧会降级跳过通知
	var notifier *notify.Notifier
	if storageManager.RabbitMQ != nil {
		if err := storageManager.RabbitMQ.SetupNotificationTopology(); err != nil {
			glog.Fatalf("初始化通知队列拓扑失败: %v", err)
		}
		glog.Info("通知队列拓扑初始化成功")

		notifier = notify.NewNotifier(storageManager.RabbitMQ, &cfg.RabbitMQ)

		stopConsumer, err := storageManager.RabbitMQ.StartConsumer(
			cfg.RabbitMQ.NotificationQueue,
			cfg.RabbitMQ.PrefetchCount,
			notify.HandleDelivery,
		)
		if err != nil {
			glog.Fatalf("启动通知消费者失败: %v", err)
		}
		defer close(stopConsumer)
		glog.Info("通知消费者启动成功")
	}

	// 加载岗位技能目录
	skillCatalog, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		glog.Fatalf("加载岗位技能目录失败: %v", err)
	}
	glog.Infof("岗位技能目录加载成功，共 %d 个岗位", skillCatalog.Roles())

	// 文本提取器：remote走HTTP提取服务，否则使用内置解析器
	var textExtractor parser.TextExtractor
	if cfg.Extractor.Type == "remote" && cfg.Extractor.ServerURL != "" {
		textExtractor = parser.NewRemoteTextExtractor(
			cfg.Extractor.ServerURL,
			parser.WithRemoteTimeout(time.Duration(cfg.Extractor.Timeout)*time.Second),
			parser.WithRemoteLogger(log.New(os.Stderr, "[TextExtractMain] ", log.LstdFlags)),
		)
		glog.Info("使用远程文本提取服务")
	} else {
		textExtractor = parser.NewLocalTextExtractor()
		glog.Info("使用内置文本解析器")
	}

	// 评估流水线日志
	var pipelineLogger *log.Logger
	if cfg.Logger.Level == "debug" {
		pipelineLogger = log.New(os.Stderr, "[PipelineMain] ", log.LstdFlags|log.Lshortfile)
	} else {
		pipelineLogger = log.New(io.Discard, "", 0)
	}

	pipeline := processor.NewEvaluationPipeline(
		[]processor.ComponentOpt{
			processor.WithcompTextextractor(textExtractor),
			processor.WithcompDetailextractor(parser.NewDetailExtractor()),
			processor.WithcompScorer(parser.NewSimilarityScorer()),
			processor.WithcompCatalog(skillCatalog),
		},
		[]processor.SettingOpt{
			processor.WithsetThreshold(cfg.Evaluation.RecommendationThreshold),
			processor.WithsetDebug(cfg.Logger.Level == "debug"),
			processor.WithsetLogger(pipelineLogger),
			processor.WithsetTimelocation(time.Local),
		},
	)
	glog.Info("评估流水线初始化成功")

	evaluateHandler := handler.NewEvaluateHandler(cfg, storageManager, pipeline, notifier)
	adminHandler := handler.NewAdminHandler(cfg, storageManager)
	glog.Info("Handler初始化成功")

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, cfg, evaluateHandler, adminHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)
	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

// initLogger 初始化zerolog并把Hertz的全局日志接到同一个输出上
func initLogger(cfg *config.Config) {
	appLogger.Init(appLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	glog.SetLogger(hertzadapter.From(appLogger.Logger))
}
