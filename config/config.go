package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string              `mapstructure:"port"`
	AIBackend           string              `mapstructure:"ai_backend"` // "openai" or "gemini"
	AIEndpoint          string              `mapstructure:"ai_endpoint"`
	Model               string              `mapstructure:"model"`
	OpenAIAPIKey        string              `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys       []string            `mapstructure:"gemini_api_keys"`
	UploadDir           string              `mapstructure:"upload_dir"`
	MongoURI            string              `mapstructure:"MONGODB_URI"`
	TopKResults         int                 `mapstructure:"top_k_results"`
	Temperature         float32             `mapstructure:"temperature"`
	Chunking            ChunkingConfig      `mapstructure:"chunking"`
	WeaviateStoreConfig WeaviateStoreConfig `mapstructure:"weaviate_store_config"`
}

// ChunkingConfig holds the token budget for chunk assembly. The assembler
// re-validates the invariant 0 <= overlap_tokens < max_tokens before any
// work begins.
type ChunkingConfig struct {
	MaxTokens     int `mapstructure:"max_tokens"`
	OverlapTokens int `mapstructure:"overlap_tokens"`
}

type WeaviateStoreConfig struct {
	Host         string       `mapstructure:"host"`
	APIKey       string       `mapstructure:"WEAVIATE_APIKEY"`
	Text2Vec     string       `mapstructure:"text2vec"`
	ModuleConfig ModuleConfig `mapstructure:"module_config"`
}

type ModuleConfig map[string]interface{}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("port", "8000")
	v.SetDefault("ai_backend", "openai")
	v.SetDefault("top_k_results", 3)
	v.SetDefault("temperature", 0.7)
	v.SetDefault("chunking.max_tokens", 500)
	v.SetDefault("chunking.overlap_tokens", 50)
	v.SetDefault("upload_dir", "uploads")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("WEAVIATE_APIKEY")
	v.BindEnv("MONGODB_URI")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
