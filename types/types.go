package types

import "context"

const (
	TypeWebsocketPing  = "ping"
	TypeWebsocketPong  = "pong"
	TypeWebsocketAsk   = "ask"
	TypeWebsocketToken = "token"
	TypeWebsocketDone  = "done"
	TypeWebsocketError = "error"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketAskPayload struct {
	Query string `json:"query"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketTokenResponse struct {
	Token string `json:"token"`
}

// Message represents a single message in a model conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StreamHandler receives incremental model output.
type StreamHandler func(token string)

// FunctionHandler handles a model-initiated function call.
type FunctionHandler func(ctx context.Context, args []byte) (any, error)

type QueryRequest struct {
	Query string `json:"query"`
}

type FeedbackRequest struct {
	Query              string `json:"query"`
	Feedback           string `json:"feedback"`
	OriginalSuggestion string `json:"original_suggestion"`
}

// RetrievalResult is the retriever agent's output for one query.
type RetrievalResult struct {
	Query        string           `json:"query"`
	Documents    []RetrievedChunk `json:"retrieved_documents"`
	Context      string           `json:"context"`
	NumDocuments int              `json:"num_documents"`
}

// ImprovementResult is the editor agent's output for one query.
type ImprovementResult struct {
	OriginalQuery     string   `json:"original_query"`
	ContextUsed       string   `json:"context_used"`
	ImprovedContent   string   `json:"improved_content"`
	PracticesApplied  []string `json:"best_practices_applied,omitempty"`
	FeedbackAddressed string   `json:"feedback_addressed,omitempty"`
}

// AgentLogEntry records one pipeline step for the response's agent log.
type AgentLogEntry struct {
	Step   int    `json:"step"`
	Agent  string `json:"agent"`
	Action string `json:"action"`
}

type QueryResponse struct {
	Status            string            `json:"status"`
	Query             string            `json:"query"`
	RetrievalResult   RetrievalResult   `json:"retrieval_result"`
	ImprovementResult ImprovementResult `json:"improvement_result"`
	AgentLog          []AgentLogEntry   `json:"agent_log"`
}
