package main

import (
	"context"
	"flag"
	"html/template"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go-mirror/config"
	"go-mirror/internal/handler"
	"go-mirror/internal/model"
	"go-mirror/internal/scheduler"
	"go-mirror/internal/service"
	"go-mirror/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	seed := flag.Bool("seed", false, "从站点地图一次性导入历史文章后退出")
	flag.Parse()

	// 本地.env存在时加载,缺失不报错
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化数据库
	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	// 自动迁移
	db.AutoMigrate(&model.Article{})

	// 初始化服务
	st := store.NewGormStore(db)
	pageGetter := service.NewHTTPGetter(cfg.Fetch.UserAgent, 15*time.Second)
	extractor := service.NewExtractor(pageGetter)
	feedSvc := service.NewFeedService(st, pageGetter, extractor, cfg.Fetch.DonorRSSURL, cfg.Fetch.MaxArticles)

	// 一次性导入模式
	if *seed {
		sitemapGetter := service.NewHTTPGetter(cfg.Fetch.UserAgent, 30*time.Second)
		seeder := service.NewSeeder(st, sitemapGetter, extractor,
			cfg.Seed.DonorSitemapURL, cfg.Seed.TargetPathPrefix, cfg.Seed.MaxArticles)
		seeder.Seed(context.Background())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 启动时先抓一轮
	if _, err := feedSvc.FetchFeed(ctx); err != nil {
		log.Printf("Initial fetch failed: %v", err)
	}

	// 启动定时任务
	sched := scheduler.NewScheduler(feedSvc, time.Duration(cfg.Fetch.IntervalMin)*time.Minute)
	go sched.Run(ctx)

	// 初始化Gin
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	// 加载模板
	r.SetHTMLTemplate(template.Must(template.ParseGlob("web/templates/*.html")))
	r.Static("/static", "web/static")

	// 注册路由
	h := handler.NewHandler(st, cfg.Site.ArticlesPerPage, cfg.Site.GAMeasurementID)
	h.RegisterRoutes(r)

	// 启动服务
	log.Println("Server starting on", cfg.GetServerAddress())
	r.Run(cfg.GetServerAddress())
}
