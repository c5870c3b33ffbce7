package main

import (
	"flag"
	"io"
	"log"
	"os"
	"runtime"
	"snapbooth/api"
	"snapbooth/config"
	"snapbooth/gphoto"
	"snapbooth/proc"
	"snapbooth/service"
	"snapbooth/store"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging writes the standard logger to both console and a rotating
// log file. Returns the file logger (caller should defer Close())
func setupLogging(cfg *config.Config) io.Closer {
	fileLog := &lumberjack.Logger{
		Filename:   cfg.LogPath(),
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
	}

	log.SetOutput(io.MultiWriter(os.Stdout, fileLog))
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	log.Printf("Logging to: %s", cfg.LogPath())
	return fileLog
}

func main() {
	configPath := flag.String("config", "snapbooth.yaml", "path to YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile := setupLogging(cfg)
	defer logFile.Close()

	log.Println("Starting snapbooth backend...")

	db, err := config.InitDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Platform strategy is picked once; the services themselves are OS agnostic
	runner := proc.NewExec()
	platform := service.PlatformFor(runtime.GOOS, cfg.Gphoto.SearchDirs, runner)
	client := gphoto.NewClient(cfg.Gphoto.Executable, runner)

	st := store.New(db)
	cameraService := service.NewCameraService(client, platform, cfg.Gphoto.TempDir)

	wsHub := api.NewWebSocketHub()
	go wsHub.Run()

	boothService := service.NewBoothService(cameraService, st, wsHub, cfg.Photos.Dir)

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(log.Writer()), gin.Recovery())
	api.SetupRoutes(router, cameraService, boothService, st, wsHub)

	if cameraService.CheckSupport() {
		log.Println("DSLR support available")
	} else {
		log.Println("DSLR support not available, webcam mode only")
	}

	log.Printf("Server starting on http://localhost%s", cfg.Server.Addr)
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
