/*
Copyright © 2025 nekesuresh
*/
package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nekesuresh/RFP/chunker"
	"github.com/nekesuresh/RFP/service"
)

// chunkStatsCmd represents the chunk-stats command
var chunkStatsCmd = &cobra.Command{
	Use:   "chunk-stats",
	Short: "Chunk a PDF and print batch statistics without storing it",
	Long: `Runs extraction and chunk assembly on the given PDF and prints the
resulting batch statistics. Useful for tuning max-tokens and overlap-tokens
before ingesting a corpus.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		maxTokens, _ := cmd.Flags().GetInt("max-tokens")
		overlapTokens, _ := cmd.Flags().GetInt("overlap-tokens")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if filePath == "" {
			log.Fatalln("--file is required")
		}

		pdfService := service.NewPDFService()
		paragraphs, err := pdfService.Extract(filePath)
		if err != nil {
			log.Fatalf("Failed to extract PDF: %v", err)
		}

		c, err := chunker.New(maxTokens, overlapTokens, chunker.NewTokenCounter(), chunker.NewSegmenter())
		if err != nil {
			log.Fatalf("Invalid chunking configuration: %v", err)
		}
		batch := c.Assemble(paragraphs)

		fmt.Printf("%s: %d paragraphs, %d chunks\n", filePath, len(paragraphs), len(batch))
		printStats(chunker.Statistics(batch))

		if verbose {
			for i, chunk := range batch {
				fmt.Printf("\n--- chunk %d (page %d, %d tokens) ---\n%s\n", i+1, chunk.Page, chunk.TokenCount, chunk.Text)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(chunkStatsCmd)

	chunkStatsCmd.Flags().StringP("file", "f", "", "path to the PDF file")
	chunkStatsCmd.Flags().Int("max-tokens", 500, "token budget per chunk")
	chunkStatsCmd.Flags().Int("overlap-tokens", 50, "token budget for the overlap seed")
	chunkStatsCmd.Flags().BoolP("verbose", "v", false, "print each chunk")
}
