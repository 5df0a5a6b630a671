package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"markettrends/internal/app"
	"markettrends/internal/config"
	"markettrends/internal/handler"
	"markettrends/internal/middleware"
	"markettrends/internal/summary"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine, closeCache := app.NewEngine(ctx, cfg)
	defer closeCache()

	compiler, err := app.NewCompiler(cfg.Report)
	if err != nil {
		log.Fatalf("error creating report compiler: %v", err)
	}

	trendsHandler := handler.NewTrendsHandler(app.NewSources(cfg), cfg.UpstreamTimeout)
	summaryHandler := handler.NewSummaryHandler(engine, summary.Bounds{
		MinLength: cfg.Summarizer.MinLength,
		MaxLength: cfg.Summarizer.MaxLength,
	}, cfg.UpstreamTimeout)
	reportHandler := handler.NewReportHandler(compiler)
	healthHandler := handler.NewHealthHandler(engine, compiler)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.Run(ctx, time.Minute, 3*time.Minute)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))
	r.Use(limiter.Handler())

	r.GET("/", trendsHandler.Index)
	r.GET("/health", healthHandler.GetHealth)
	r.GET("/fetch_github_repos", trendsHandler.FetchGitHubRepos)
	r.GET("/fetch_devto_articles", trendsHandler.FetchDevToArticles)
	r.GET("/fetch_reddit_posts", trendsHandler.FetchRedditPosts)
	r.GET("/fetch_finnhub_news", trendsHandler.FetchFinnhubNews)
	r.POST("/summarize_trends", summaryHandler.SummarizeTrends)
	r.POST("/compile_report", reportHandler.CompileReport)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("api server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("error starting server: %v", err)
		}
	}()

	<-stop

	slog.Info("shutting down api server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		return
	}
	slog.Info("api server stopped")
}
