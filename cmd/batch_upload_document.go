/*
Copyright © 2025 nekesuresh
*/
package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nekesuresh/RFP/config"
	"github.com/nekesuresh/RFP/database"
	"github.com/nekesuresh/RFP/service"
	"github.com/nekesuresh/RFP/utils"
)

// batchUploadDocumentCmd represents the batch-upload-document command
var batchUploadDocumentCmd = &cobra.Command{
	Use:   "batch-upload-document",
	Short: "Ingest every PDF in a directory",
	Long: `Walks the given directory and ingests each PDF. A failed document is
logged and skipped so the rest of the batch still completes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		directory, _ := cmd.Flags().GetString("directory")
		reinit, _ := cmd.Flags().GetBool("reinit")

		if directory == "" {
			log.Fatalln("--directory is required")
		}

		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		if reinit {
			if err := weaviateDb.ReInit(); err != nil {
				log.Fatalf("Failed to reinitialize Weaviate database: %v", err)
			}
		}

		ingestService := service.NewIngestService(
			service.NewPDFService(), weaviateDb,
			cfg.Chunking.MaxTokens, cfg.Chunking.OverlapTokens,
		)

		files, err := os.ReadDir(directory)
		if err != nil {
			log.Fatalf("Failed to read directory: %v", err)
		}
		for _, file := range files {
			if file.IsDir() || strings.ToLower(filepath.Ext(file.Name())) != ".pdf" {
				continue
			}
			filePath := filepath.Join(directory, file.Name())
			storedPath, err := utils.CopyFileWithTimestamp(filePath, cfg.UploadDir)
			if err != nil {
				log.Errorf("Failed to copy %s: %v", filePath, err)
				continue
			}
			result, err := ingestService.IngestDocument(context.Background(), storedPath)
			if err != nil {
				log.Errorf("Failed to ingest %s: %v", filePath, err)
				continue
			}
			log.Infof("Ingested %s: %d chunks", filePath, result.ChunkCount)
		}
	},
}

func init() {
	rootCmd.AddCommand(batchUploadDocumentCmd)

	batchUploadDocumentCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
	batchUploadDocumentCmd.Flags().String("directory", "", "path to the directory of PDFs")
	batchUploadDocumentCmd.Flags().BoolP("reinit", "r", false, "drop and recreate the chunk class before ingesting")
}
