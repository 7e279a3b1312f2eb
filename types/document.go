package types

// PageParagraph is a single paragraph of extracted PDF text together with
// the 1-based page it was extracted from. Page numbers are monotonically
// non-decreasing in extraction order.
type PageParagraph struct {
	Page int    // 1-based page number
	Text string // raw paragraph text, as extracted
}

// Chunk is a token-bounded unit of document text prepared for embedding.
// TokenCount is <= the assembler's max token budget except when the chunk
// holds a single sentence that alone exceeds the budget.
type Chunk struct {
	Text             string `json:"text"`
	Page             int    `json:"page"`
	ParagraphPreview string `json:"paragraph_preview"` // <=60 chars of the source paragraph
	TokenCount       int    `json:"token_count"`
	CharacterCount   int    `json:"character_count"`
}

// ChunkBatch is an ordered sequence of chunks in document order: page
// ascending, then paragraph order, then chunk order within the paragraph.
// Batches are append-only during assembly; chunks are never mutated.
type ChunkBatch []Chunk

// ChunkMetadata is the metadata mapping persisted alongside each chunk in
// the vector store.
type ChunkMetadata struct {
	Page             int    `json:"page"`
	ParagraphPreview string `json:"paragraph_preview"`
	TokenCount       int    `json:"token_count"`
}

// RetrievedChunk is a similarity-search result, validated once at the
// vector-store boundary. Provenance fields may be zero-valued when the
// stored object predates metadata tagging.
type RetrievedChunk struct {
	Text             string  `json:"text"`
	Page             int     `json:"page,omitempty"`
	ParagraphPreview string  `json:"paragraph_preview,omitempty"`
	TokenCount       int     `json:"token_count,omitempty"`
	Distance         float32 `json:"distance,omitempty"`
}

// UploadRequest carries caller-supplied document identity for an ingest.
type UploadRequest struct {
	Title  string `json:"title"`
	Source string `json:"source"`
}

const (
	TaskStatusProcessing = "processing"
	TaskStatusCompleted  = "completed"
	TaskStatusFailed     = "failed"
)

// IngestTask tracks one background PDF ingest from upload to completion.
type IngestTask struct {
	ID         string             `json:"id" bson:"_id,omitempty"`
	FileName   string             `json:"file_name" bson:"file_name"`
	Status     string             `json:"status" bson:"status"`
	Error      string             `json:"error,omitempty" bson:"error,omitempty"`
	ChunkCount int                `json:"chunk_count" bson:"chunk_count"`
	Stats      map[string]float64 `json:"stats,omitempty" bson:"stats,omitempty"`
	CreatedAt  int64              `json:"created_at" bson:"created_at"`
	UpdatedAt  int64              `json:"updated_at" bson:"updated_at"`
}
