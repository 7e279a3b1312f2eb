package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/nekesuresh/RFP/config"
	"github.com/nekesuresh/RFP/types"
	log "github.com/sirupsen/logrus"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const BATCH_SIZE = 200

var (
	CHUNK_CLASS        = "DocumentChunk"
	CHUNK_CLASS_OBJECT = &models.Class{
		Class: CHUNK_CLASS,
		Properties: []*models.Property{
			{Name: "content", DataType: []string{"text"}},
			{Name: "page", DataType: []string{"int"}},
			{Name: "paragraphPreview", DataType: []string{"text"}},
			{Name: "tokenCount", DataType: []string{"int"}},
		},
		VectorIndexType: "hnsw",
	}
)

// WeaviateStore persists chunk records keyed by similarity.
type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(cfg config.WeaviateStoreConfig) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(cfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")
	clientCfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		clientCfg.AuthConfig = auth.ApiKey{
			Value: cfg.APIKey,
		}
		clientCfg.Headers = map[string]string{
			"X-Weaviate-Api-Key":     cfg.APIKey,
			"X-Weaviate-Cluster-Url": fmt.Sprintf("%s://%s", scheme, host),
		}
	}
	CHUNK_CLASS_OBJECT.Vectorizer = cfg.Text2Vec
	CHUNK_CLASS_OBJECT.ModuleConfig = cfg.ModuleConfig
	client, err := weaviate.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}

	schema, err := client.Schema().Getter().Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %v", err)
	}

	hasChunkClass := false
	for _, class := range schema.Classes {
		if class.Class == CHUNK_CLASS {
			hasChunkClass = true
			break
		}
	}
	if !hasChunkClass {
		err = client.Schema().ClassCreator().WithClass(CHUNK_CLASS_OBJECT).Do(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to create %s class: %v", CHUNK_CLASS, err)
		}
	}
	return &WeaviateStore{
		client: client,
	}, nil
}

func (s *WeaviateStore) ReInit() error {
	err := s.client.Schema().ClassDeleter().WithClassName(CHUNK_CLASS).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to delete %s class: %v", CHUNK_CLASS, err)
	}

	err = s.client.Schema().ClassCreator().WithClass(CHUNK_CLASS_OBJECT).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create %s class: %v", CHUNK_CLASS, err)
	}
	return nil
}

// Store inserts one completed chunk batch. All three slices must be equal
// length and index-aligned; ids become the stored object ids so retries
// with the same ids stay idempotent.
func (s *WeaviateStore) Store(ctx context.Context, texts []string, ids []string, metadatas []types.ChunkMetadata) error {
	if len(texts) != len(ids) || len(texts) != len(metadatas) {
		return fmt.Errorf("misaligned store call: %d texts, %d ids, %d metadatas", len(texts), len(ids), len(metadatas))
	}

	total := len(texts)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			batcher = batcher.WithObjects(&models.Object{
				Class: CHUNK_CLASS,
				ID:    strfmt.UUID(ids[j]),
				Properties: map[string]interface{}{
					"content":          texts[j],
					"page":             metadatas[j].Page,
					"paragraphPreview": metadatas[j].ParagraphPreview,
					"tokenCount":       metadatas[j].TokenCount,
				},
			})
		}

		if _, err := batcher.Do(ctx); err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %v", i, end, err)
		}
		log.Infof("Inserted batch %d-%d of %d chunks", i, end, total)
	}

	return nil
}

// Query runs a nearText similarity search and returns the top k chunks in
// ranked order. Results are validated into typed records here, once, so
// nothing downstream re-checks map shapes.
func (s *WeaviateStore) Query(ctx context.Context, text string, k int) ([]types.RetrievedChunk, error) {
	fields := []graphql.Field{
		{Name: "content"},
		{Name: "page"},
		{Name: "paragraphPreview"},
		{Name: "tokenCount"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}, {Name: "id"}}},
	}

	result, err := s.client.GraphQL().Get().
		WithClassName(CHUNK_CLASS).
		WithFields(fields...).
		WithNearText((&graphql.NearTextArgumentBuilder{}).
			WithConcepts([]string{text})).
		WithLimit(k).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("query failed: %v", result.Errors[0].Message)
	}

	get, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return nil, nil
	}
	data, ok := get[CHUNK_CLASS].([]interface{})
	if !ok {
		return nil, nil
	}

	chunks := make([]types.RetrievedChunk, 0, len(data))
	for _, item := range data {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		chunk, err := parseRetrievedChunk(obj)
		if err != nil {
			log.Warnf("skipping malformed query result: %v", err)
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

// parseRetrievedChunk validates one raw GraphQL object into a typed record.
// Content is required; provenance fields are optional for objects stored
// before metadata tagging.
func parseRetrievedChunk(obj map[string]interface{}) (types.RetrievedChunk, error) {
	content, ok := obj["content"].(string)
	if !ok || content == "" {
		return types.RetrievedChunk{}, fmt.Errorf("result has no content field")
	}
	chunk := types.RetrievedChunk{Text: content}

	if page, ok := obj["page"].(float64); ok {
		chunk.Page = int(page)
	}
	if preview, ok := obj["paragraphPreview"].(string); ok {
		chunk.ParagraphPreview = preview
	}
	if tokens, ok := obj["tokenCount"].(float64); ok {
		chunk.TokenCount = int(tokens)
	}
	if additional, ok := obj["_additional"].(map[string]interface{}); ok {
		if distance, ok := additional["distance"].(float64); ok {
			chunk.Distance = float32(distance)
		}
	}
	return chunk, nil
}

func (s *WeaviateStore) CreateCollection(ctx context.Context, name string) error {
	classObj := &models.Class{
		Class:           name,
		Properties:      CHUNK_CLASS_OBJECT.Properties,
		Vectorizer:      CHUNK_CLASS_OBJECT.Vectorizer,
		ModuleConfig:    CHUNK_CLASS_OBJECT.ModuleConfig,
		VectorIndexType: "hnsw",
	}
	return s.client.Schema().ClassCreator().WithClass(classObj).Do(ctx)
}

func (s *WeaviateStore) DeleteCollection(ctx context.Context, name string) error {
	return s.client.Schema().ClassDeleter().WithClassName(name).Do(ctx)
}

// NewOllamaModuleConfig wires Weaviate's Ollama embedding and generative
// integrations to a local Ollama instance.
func NewOllamaModuleConfig(apiEndpoint, model, embedModel string) map[string]interface{} {
	return map[string]interface{}{
		"text2vec-ollama": map[string]interface{}{
			"apiEndpoint": apiEndpoint,
			"model":       embedModel,
		},
		"generative-ollama": map[string]interface{}{
			"apiEndpoint": apiEndpoint,
			"model":       model,
		},
	}
}
