package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type UploadResponse struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
}

type AskResponse struct {
	Response string `json:"response"`
}

type ConfigResponse struct {
	Model         string  `json:"model"`
	AIBackend     string  `json:"ai_backend"`
	MaxTokens     int     `json:"max_tokens"`
	OverlapTokens int     `json:"overlap_tokens"`
	TopKResults   int     `json:"top_k_results"`
	Temperature   float32 `json:"temperature"`
}
