/*
Copyright © 2025 nekesuresh
*/
package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nekesuresh/RFP/config"
	"github.com/nekesuresh/RFP/database"
	"github.com/nekesuresh/RFP/service"
	"github.com/nekesuresh/RFP/utils"
)

// uploadDocumentCmd represents the upload-document command
var uploadDocumentCmd = &cobra.Command{
	Use:   "upload-document",
	Short: "Ingest a single PDF into the vector store",
	Long: `Extracts the given PDF, assembles token-budgeted chunks and stores
them in Weaviate. Use --reinit to drop and recreate the chunk class first.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		filePath, _ := cmd.Flags().GetString("file")
		reinit, _ := cmd.Flags().GetBool("reinit")

		if filePath == "" {
			log.Fatalln("--file is required")
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

		// Keep a copy in the upload dir so the pdf endpoint can serve it.
		storedPath, err := utils.CopyFileWithTimestamp(filePath, cfg.UploadDir)
		if err != nil {
			log.Fatalf("Failed to copy document: %v", err)
		}

		ingestService := service.NewIngestService(
			service.NewPDFService(), weaviateDb,
			cfg.Chunking.MaxTokens, cfg.Chunking.OverlapTokens,
		)

		result, err := ingestService.IngestDocument(context.Background(), storedPath)
		if err != nil {
			log.Fatalf("Failed to ingest document: %v", err)
		}

		fmt.Printf("Stored %d chunks from %s\n", result.ChunkCount, filePath)
		printStats(result.Stats)
	},
}

func printStats(stats map[string]float64) {
	for _, key := range []string{
		"total_chunks", "total_tokens", "total_characters",
		"avg_tokens_per_chunk", "avg_chars_per_chunk",
		"min_tokens", "max_tokens", "min_chars", "max_chars",
	} {
		if value, ok := stats[key]; ok {
			fmt.Printf("  %-22s %.1f\n", key, value)
		}
	}
}

func init() {
	rootCmd.AddCommand(uploadDocumentCmd)
	uploadDocumentCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
	uploadDocumentCmd.Flags().StringP("file", "f", "", "path to the PDF file")
	uploadDocumentCmd.Flags().Bool("reinit", false, "drop and recreate the chunk class before ingesting")
}
