package main

import (
	"html/template"
	"io"
	golog "log"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"forensic-audio/config"
	"forensic-audio/ffmpeg"
	"forensic-audio/handlers"
	"forensic-audio/history"
	"forensic-audio/jobs"
	"forensic-audio/presets"
	"forensic-audio/processing"
)

func main() {

	initLogger()

	ffmpeg.Init(log)

	tempDir := config.GetTempDir()
	manager, err := jobs.NewManager(tempDir, log)
	if err != nil {
		log.Fatalf("failed to set up temp dir: %v", err)
	}

	gormLogger := logger.New(
		golog.New(os.Stdout, "\r\n", golog.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	// history database
	err = os.MkdirAll(config.GetConfigDir(), 0700)
	if err != nil {
		log.Panicf("failed to create config dir %s", config.GetConfigDir())
	}
	dbPath := filepath.Join(config.GetConfigDir(), "history.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Panicf("failed to connect to database %s", dbPath)
	}

	// set only a single connection so we don't actually have concurrent writes
	sqlDB, err := db.DB()
	if err != nil {
		log.Panicln("failed to retrieve database")
	}
	sqlDB.SetMaxOpenConns(1)

	err = history.Init(db, log)
	if err != nil {
		log.Panicf("failed to migrate history database: %v", err)
	}
	defer history.Fini()

	runner := ffmpeg.Runner{Timeout: config.GetProcessTimeout()}
	proc := processing.New(manager, runner, log)
	handlers.Init(log, proc, tempDir)

	// Initialize Echo
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Templates
	t := &Template{
		templates: template.Must(template.ParseGlob("templates/*.html")),
	}
	e.Renderer = t

	// Routes
	e.GET("/", handlers.HomeGet)
	e.POST("/process", handlers.ProcessPost)
	e.GET("/health", handlers.HealthGet)
	e.GET("/debug", handlers.DebugGet)
	e.GET("/history", handlers.HistoryGet)

	addr := net.JoinHostPort(config.GetHost(), config.GetPort())
	log.Infof("starting forensic audio processing server on %s", addr)
	log.Infof("temp directory: %s", tempDir)
	log.Infof("available presets: %v", presets.Keys())

	// Start server
	e.Logger.Fatal(e.Start(addr))
}

// Template renderer
type Template struct {
	templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}
