package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/framecart/eyewear-api/auth"
	"github.com/framecart/eyewear-api/config"
	orderControllers "github.com/framecart/eyewear-api/controllers/order"
	paymentControllers "github.com/framecart/eyewear-api/controllers/payment"
	"github.com/framecart/eyewear-api/logger"
	"github.com/framecart/eyewear-api/middleware"
	"github.com/framecart/eyewear-api/models"
	"github.com/framecart/eyewear-api/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger.New(logger.Options{
		Service: "eyewear-api",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})
	slog.Info("starting application", "env", cfg.AppEnv)

	if err := auth.Init(context.Background(), cfg); err != nil {
		slog.Error("firebase init failed", "error", err)
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		slog.Error("db connection failed", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Category{},
		&models.LensPackage{},
		&models.Wishlist{},
		&models.Coupon{},
		&models.Banner{},
		&models.Order{},
		&models.OrderItem{},
		&models.Prescription{},
	); err != nil {
		slog.Error("automigrate failed", "error", err)
		os.Exit(1)
	}

	// Optional order event publishing; the store works without a broker.
	var publisher *orderControllers.OrderPublisher
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			slog.Error("amqp dial failed", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			slog.Error("amqp channel failed", "error", err)
			os.Exit(1)
		}
		defer ch.Close()

		if _, err := ch.QueueDeclare(cfg.OrderQueueName, true, false, false, false, nil); err != nil {
			slog.Error("amqp queue declare failed", "queue", cfg.OrderQueueName, "error", err)
			os.Exit(1)
		}
		publisher = orderControllers.NewOrderPublisher(ch, cfg.OrderQueueName)
		slog.Info("order events enabled", "queue", cfg.OrderQueueName)
	}

	telr := paymentControllers.NewClient(cfg)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Allow large file uploads (spreadsheets, prescription scans)
	r.MaxMultipartMemory = 1 << 30

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.PrometheusMetrics())

	// Serve uploaded images
	r.Static("/uploads", cfg.UploadsDir)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetupRoutes(r, db, cfg, publisher, telr)

	// Back up uploads at 2 AM daily, keep 4 days
	go startDailyBackupAtFixedTime(cfg.UploadsDir, cfg.BackupDir, 4*24*time.Hour, 2, 0)

	slog.Info("server running", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// startDailyBackupAtFixedTime backs up uploads daily at a fixed hour and
// removes backups older than the retention window.
func startDailyBackupAtFixedTime(srcDir, backupDir string, retention time.Duration, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		slog.Info("next uploads backup scheduled", "at", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		destDir := filepath.Join(backupDir, timestamp)

		if err := copyDir(srcDir, destDir); err != nil {
			slog.Error("uploads backup failed", "error", err)
		} else {
			slog.Info("uploads backed up", "dest", destDir)
		}

		cleanupOldBackups(backupDir, retention)
	}
}

// copyDir recursively copies a folder
func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, destPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, destPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// copyFile copies a single file
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// cleanupOldBackups removes backup folders older than retention duration
func cleanupOldBackups(backupDir string, retention time.Duration) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		slog.Error("read backup directory", "error", err)
		return
	}

	cutoff := time.Now().Add(-retention)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folderPath := filepath.Join(backupDir, entry.Name())
		info, err := os.Stat(folderPath)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(folderPath); err != nil {
				slog.Error("remove old backup", "path", folderPath, "error", err)
			} else {
				slog.Info("removed old backup", "path", folderPath)
			}
		}
	}
}
