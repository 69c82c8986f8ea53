package main

import (
	"context"
	"embed"
	"fmt"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"gorm.io/gorm/logger"

	"roundtable/internal/database"
	"roundtable/internal/events"
	"roundtable/internal/services"
	"roundtable/internal/utils"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {

	app := NewApp()

	// Load .env before any service resolves provider keys; a missing file
	// just means the keyring is the only key source.
	if err := utils.LoadEnv(); err != nil {
		fmt.Println("No .env loaded:", err)
	}

	db, err := database.Init(database.Config{
		LogLevel: logger.Info,
	})
	if err != nil {
		fmt.Println("Error opening database:", err)
		return
	}

	if sqlDB, err := db.DB(); err == nil {
		app.dbClose = sqlDB.Close
	}

	//Create each service
	keyringService := services.NewKeyringService()
	dbService := services.NewDbServices(db)
	discussionService := services.NewDiscussionService(dbService.ConversationRepo, keyringService)
	documentService := services.NewDocumentService(dbService.ConversationRepo)
	analyzerService := services.NewAnalyzerService()
	exportService := services.NewExportService()

	app.AppSettings = dbService.AppSettings
	app.discussion = discussionService

	events.EnableRuntimeEmitter()

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "Roundtable",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "Roundtable",
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup: func(ctx context.Context) {
			app.startup(ctx)
			if err := services.StartDbServices(ctx, dbService); err != nil {
				fmt.Println("Error starting db services:", err)
			}
			discussionService.Startup(ctx)
			documentService.Startup(ctx)
			analyzerService.Startup(ctx)
			exportService.Startup(ctx)
		},
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
			dbService.Conversations,
			dbService.AppSettings,
			dbService.ModelConfigs,
			discussionService,
			documentService,
			analyzerService,
			exportService,
			keyringService,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
