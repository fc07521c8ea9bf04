// Package main library circulation API.
//
// @title           LCMS API
// @version         1.0
// @description     Library circulation backend (catalog, members, loans, fines, reports).
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"LCMS-backend/internal/catalog"
	"LCMS-backend/internal/circulation"
	"LCMS-backend/internal/members"
	"LCMS-backend/internal/platform/auth"
	"LCMS-backend/internal/platform/db"
	"LCMS-backend/internal/reports"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := db.LoadConfig("config/config.yaml")
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if cfg.Mode != "dev" && cfg.Mode != "release" {
		log.Fatalf("mode must be dev or release, got %q", cfg.Mode)
	}
	log.WithField("mode", cfg.Mode).Info("starting")

	// a dead store at startup is the one fatal condition
	conn, err := db.Connect(cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to DB")
	}
	defer conn.Close()
	log.WithField("dbname", cfg.DB.DBName).Info("connected to DB")

	secret := []byte(cfg.Auth.JWTSecret)
	if len(secret) == 0 {
		log.Fatal("auth.jwt_secret must be set")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == "dev" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Location"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authSvc := auth.NewService(conn, secret)

	public := r.Group("/api/v1")
	authed := r.Group("/api/v1", auth.RequireAuth(secret))
	admin := r.Group("/api/v1", auth.RequireAuth(secret), auth.RequireRole(auth.RoleAdmin))

	auth.RegisterRoutes(public, admin, authSvc)
	catalog.RegisterRoutes(public, admin, catalog.NewService(conn))
	members.RegisterRoutes(public, admin, members.NewService(conn, authSvc))
	circulation.RegisterRoutes(authed, admin, circulation.NewService(conn))
	reports.RegisterRoutes(admin, reports.NewService(conn))

	srv := &http.Server{
		Addr:    cfg.Listen.Addr,
		Handler: r,
	}

	go func() {
		log.WithField("addr", cfg.Listen.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("shutdown failed")
	}
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}
