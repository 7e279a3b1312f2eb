package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nekesuresh/RFP/chunker"
	"github.com/nekesuresh/RFP/database"
	"github.com/nekesuresh/RFP/types"
	log "github.com/sirupsen/logrus"
)

// IngestService runs the document pipeline: extraction, chunk assembly,
// then a single vector-store insert per completed batch. Each invocation
// is independent; concurrent documents are processed by concurrent calls
// with no shared mutable state.
type IngestService struct {
	pdfService    *PDFService
	vectorStore   database.VectorStore
	maxTokens     int
	overlapTokens int
}

// IngestResult summarizes one completed document ingest.
type IngestResult struct {
	ChunkCount int
	Stats      map[string]float64
}

func NewIngestService(pdfService *PDFService, vectorStore database.VectorStore, maxTokens, overlapTokens int) *IngestService {
	return &IngestService{
		pdfService:    pdfService,
		vectorStore:   vectorStore,
		maxTokens:     maxTokens,
		overlapTokens: overlapTokens,
	}
}

// IngestDocument extracts, chunks and stores one PDF. The batch is stored
// in a single call with one freshly generated id per chunk; a store failure
// leaves no partial state to clean up on the chunking side, so callers
// retry the whole document.
func (s *IngestService) IngestDocument(ctx context.Context, filePath string) (*IngestResult, error) {
	paragraphs, err := s.pdfService.Extract(filePath)
	if err != nil {
		return nil, err
	}
	log.Infof("extracted %d paragraphs from %s", len(paragraphs), filePath)

	return s.IngestParagraphs(ctx, paragraphs)
}

// IngestParagraphs chunks already-extracted paragraphs and stores the batch.
func (s *IngestService) IngestParagraphs(ctx context.Context, paragraphs []types.PageParagraph) (*IngestResult, error) {
	batch, err := s.ChunkDocument(paragraphs)
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return &IngestResult{Stats: map[string]float64{}}, nil
	}

	texts := make([]string, len(batch))
	ids := make([]string, len(batch))
	metadatas := make([]types.ChunkMetadata, len(batch))
	for i, chunk := range batch {
		texts[i] = chunk.Text
		ids[i] = uuid.New().String()
		metadatas[i] = types.ChunkMetadata{
			Page:             chunk.Page,
			ParagraphPreview: chunk.ParagraphPreview,
			TokenCount:       chunk.TokenCount,
		}
	}

	if err := s.vectorStore.Store(ctx, texts, ids, metadatas); err != nil {
		return nil, fmt.Errorf("failed to store chunk batch: %w", err)
	}

	stats := chunker.Statistics(batch)
	log.Infof("stored %d chunks (avg %.1f tokens)", len(batch), stats["avg_tokens_per_chunk"])
	return &IngestResult{
		ChunkCount: len(batch),
		Stats:      stats,
	}, nil
}

// ChunkDocument assembles paragraphs into a chunk batch without storing it.
// A fresh chunker per call keeps concurrent documents independent.
func (s *IngestService) ChunkDocument(paragraphs []types.PageParagraph) (types.ChunkBatch, error) {
	c, err := chunker.New(s.maxTokens, s.overlapTokens, chunker.NewTokenCounter(), chunker.NewSegmenter())
	if err != nil {
		return nil, err
	}
	return c.Assemble(paragraphs), nil
}
