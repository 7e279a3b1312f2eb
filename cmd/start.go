/*
Copyright © 2025 nekesuresh
*/
package cmd

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nekesuresh/RFP/config"
	"github.com/nekesuresh/RFP/database"
	"github.com/nekesuresh/RFP/handler"
	"github.com/nekesuresh/RFP/middleware"
	"github.com/nekesuresh/RFP/repository"
	"github.com/nekesuresh/RFP/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the RFP assistant server",
	Long:  `Starts the HTTP server serving uploads, queries and the streaming websocket.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		aiService, err := newAIService(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize AI service: %v", err)
		}

		mongoClient := database.DefaultMongoClient
		if mongoClient == nil {
			log.Fatalln("MongoDB client not initialized, check MONGODB_URI")
		}
		if err := mongoClient.Ping(context.Background(), nil); err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		taskRepo := repository.NewTaskRepo(mongoClient.Database("rfp_assistant"))

		pdfService := service.NewPDFService()
		ingestService := service.NewIngestService(pdfService, weaviateDb, cfg.Chunking.MaxTokens, cfg.Chunking.OverlapTokens)
		fileService := service.NewFileService(cfg.UploadDir, ingestService, taskRepo)

		retriever := service.NewRetrieverAgent(weaviateDb, cfg.TopKResults)
		editor := service.NewEditorAgent(aiService)
		assistant := service.NewAssistant(retriever, editor)
		wsService := service.NewWebSocketService(retriever, aiService)

		uploadHandler := handler.NewUploadHandler(fileService)
		askHandler := handler.NewAskHandler(assistant, retriever, aiService)
		taskHandler := handler.NewTaskHandler(taskRepo)
		pdfHandler := handler.NewDocumentHandler(cfg.UploadDir)
		healthHandler := handler.NewHealthHandler(cfg)

		mux := http.NewServeMux()
		mux.Handle("POST /api/v1/upload-pdf", uploadHandler.HandleUpload())
		mux.Handle("POST /api/v1/ask", askHandler.HandleAsk())
		mux.Handle("GET /api/v1/ask", askHandler.HandleLegacyAsk())
		mux.Handle("POST /api/v1/feedback", askHandler.HandleFeedback())
		mux.Handle("GET /api/v1/task", taskHandler.HandleGetTask())
		mux.Handle("GET /api/v1/tasks", taskHandler.HandleListTasks())
		mux.Handle("GET /api/v1/pdf", pdfHandler.ServeDocument())
		mux.Handle("GET /ping", healthHandler.HandlePing())
		mux.Handle("GET /config", healthHandler.HandleConfig())
		mux.HandleFunc("GET /ws/ask", wsService.HandleAsk)

		log.Infof("Starting server on port %s...", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, middleware.CORS(mux)); err != nil {
			log.Fatalln("Server error:", err)
		}
	},
}

// newAIService builds the configured model backend.
func newAIService(cfg *config.Config) (service.AIService, error) {
	switch cfg.AIBackend {
	case "gemini":
		return service.NewGeminiService(cfg.GeminiAPIKeys, cfg.Model, cfg.Temperature)
	case "openai", "ollama":
		return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model, cfg.Temperature), nil
	default:
		return nil, fmt.Errorf("unknown ai backend: %s", cfg.AIBackend)
	}
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
