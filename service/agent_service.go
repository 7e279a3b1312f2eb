package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nekesuresh/RFP/database"
	"github.com/nekesuresh/RFP/types"
	log "github.com/sirupsen/logrus"
)

const (
	retrieverAgentName = "Retriever Agent"
	editorAgentName    = "RFP Editor Agent"
)

const rfpBestPractices = `RFP BEST PRACTICES CHECKLIST:

CLARITY & SCOPE:
- Clear, unambiguous objectives and goals
- Well-defined scope of work
- Specific deliverables and outcomes

MEASURABLE OUTCOMES:
- Quantifiable success metrics
- Key Performance Indicators (KPIs)
- Evaluation criteria

STAKEHOLDER NEEDS:
- Identified stakeholders and their requirements
- User needs and pain points
- Business requirements

VENDOR RESPONSIBILITIES:
- Clear vendor roles and responsibilities
- Required qualifications and experience
- Performance expectations

TIMELINE & BUDGET:
- Realistic project timeline
- Budget constraints and payment terms
- Milestone definitions

EXAMPLES & CONTEXT:
- Real-world examples and use cases
- Industry-specific terminology
- Context for requirements

TECHNICAL SPECIFICATIONS:
- Detailed technical requirements
- Integration requirements
- Security and compliance needs`

// practiceKeywords maps each checklist heading to terms whose presence in
// the model output marks the practice as applied.
var practiceKeywords = map[string][]string{
	"clarity":          {"clear", "unambiguous", "specific", "well-defined"},
	"measurable":       {"measurable", "quantifiable", "kpi", "metrics"},
	"stakeholders":     {"stakeholder", "user needs", "requirements"},
	"responsibilities": {"responsibility", "role", "duties"},
	"timeline":         {"timeline", "schedule", "milestone", "deadline"},
	"budget":           {"budget", "cost", "payment", "financial"},
	"examples":         {"example", "use case", "scenario", "instance"},
}

// practiceOrder fixes the iteration order so the applied-practices list is
// deterministic.
var practiceOrder = []string{
	"clarity", "measurable", "stakeholders", "responsibilities",
	"timeline", "budget", "examples",
}

// RetrieverAgent fetches relevant chunks from the vector store and joins
// them into a single context block for the editor.
type RetrieverAgent struct {
	store database.VectorStore
	topK  int
}

func NewRetrieverAgent(store database.VectorStore, topK int) *RetrieverAgent {
	return &RetrieverAgent{
		store: store,
		topK:  topK,
	}
}

func (a *RetrieverAgent) Retrieve(ctx context.Context, query string) (*types.RetrievalResult, error) {
	log.Infof("%s: retrieving documents for query: %s", retrieverAgentName, query)

	documents, err := a.store.Query(ctx, query, a.topK)
	if err != nil {
		return nil, fmt.Errorf("%s: retrieval failed: %w", retrieverAgentName, err)
	}

	texts := make([]string, 0, len(documents))
	for _, doc := range documents {
		texts = append(texts, doc.Text)
	}
	log.Infof("%s: retrieved %d documents", retrieverAgentName, len(documents))

	return &types.RetrievalResult{
		Query:        query,
		Documents:    documents,
		Context:      strings.Join(texts, "\n"),
		NumDocuments: len(documents),
	}, nil
}

// EditorAgent rewrites draft content against the best-practices checklist
// using the configured model backend.
type EditorAgent struct {
	ai AIService
}

func NewEditorAgent(ai AIService) *EditorAgent {
	return &EditorAgent{ai: ai}
}

func (a *EditorAgent) AnalyzeAndImprove(ctx context.Context, query, docContext string) (*types.ImprovementResult, error) {
	log.Infof("%s: analyzing content for improvement", editorAgentName)

	resp, err := a.ai.Chat(ctx, []types.Message{
		{Role: "user", Content: a.analysisPrompt(query, docContext)},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: analysis failed: %w", editorAgentName, err)
	}

	return &types.ImprovementResult{
		OriginalQuery:    query,
		ContextUsed:      docContext,
		ImprovedContent:  resp.Content,
		PracticesApplied: appliedPractices(resp.Content),
	}, nil
}

func (a *EditorAgent) RephraseWithFeedback(ctx context.Context, query, docContext, feedback, originalSuggestion string) (*types.ImprovementResult, error) {
	log.Infof("%s: rephrasing based on user feedback", editorAgentName)

	prompt := fmt.Sprintf(`The user rejected your previous suggestion. Please provide an improved version.

ORIGINAL QUERY: %s
CONTEXT: %s
YOUR PREVIOUS SUGGESTION: %s
USER FEEDBACK: %s

%s

Please provide a new suggestion that addresses the user's feedback while maintaining RFP best practices.`,
		query, docContext, originalSuggestion, feedback, rfpBestPractices)

	resp, err := a.ai.Chat(ctx, []types.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, fmt.Errorf("%s: rephrasing failed: %w", editorAgentName, err)
	}

	return &types.ImprovementResult{
		OriginalQuery:     query,
		ContextUsed:       docContext,
		ImprovedContent:   resp.Content,
		FeedbackAddressed: feedback,
	}, nil
}

func (a *EditorAgent) analysisPrompt(query, docContext string) string {
	return fmt.Sprintf(`You are an expert RFP (Request for Proposal) editor and consultant. Your task is to analyze the given content and provide improvements based on RFP best practices.

%s

USER QUERY: %s

CONTEXT FROM DOCUMENTS:
%s

Please analyze the content and provide:
1. An improved version that follows RFP best practices
2. Specific suggestions for enhancement
3. Areas that need clarification or additional detail
4. Recommendations for better structure and clarity

Format your response as:
---IMPROVED CONTENT---
[Your improved version here]

---SUGGESTIONS---
[List of specific improvements made]

---AREAS FOR CLARIFICATION---
[What needs more detail or clarification]`,
		rfpBestPractices, query, docContext)
}

func appliedPractices(content string) []string {
	applied := make([]string, 0, len(practiceOrder))
	contentLower := strings.ToLower(content)
	for _, practice := range practiceOrder {
		for _, keyword := range practiceKeywords[practice] {
			if strings.Contains(contentLower, keyword) {
				applied = append(applied, practice)
				break
			}
		}
	}
	return applied
}

// Assistant coordinates the retriever and editor agents. The agent log is
// built per request so concurrent queries stay independent.
type Assistant struct {
	retriever *RetrieverAgent
	editor    *EditorAgent
}

func NewAssistant(retriever *RetrieverAgent, editor *EditorAgent) *Assistant {
	return &Assistant{
		retriever: retriever,
		editor:    editor,
	}
}

func (a *Assistant) ProcessQuery(ctx context.Context, query string) (*types.QueryResponse, error) {
	log.Infoln("assistant: starting query processing")

	agentLog := []types.AgentLogEntry{}
	retrieval, err := a.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}
	agentLog = append(agentLog, types.AgentLogEntry{
		Step:   1,
		Agent:  retrieverAgentName,
		Action: "Document retrieval",
	})

	var improvement *types.ImprovementResult
	if retrieval.Context != "" {
		improvement, err = a.editor.AnalyzeAndImprove(ctx, query, retrieval.Context)
		if err != nil {
			return nil, err
		}
	} else {
		improvement = &types.ImprovementResult{
			OriginalQuery:   query,
			ImprovedContent: "No relevant documents found to analyze.",
		}
	}
	agentLog = append(agentLog, types.AgentLogEntry{
		Step:   2,
		Agent:  editorAgentName,
		Action: "Content analysis and improvement",
	})

	return &types.QueryResponse{
		Status:            "success",
		Query:             query,
		RetrievalResult:   *retrieval,
		ImprovementResult: *improvement,
		AgentLog:          agentLog,
	}, nil
}

// HandleFeedback re-retrieves context for the query and asks the editor for
// a revision addressing the rejection reason.
func (a *Assistant) HandleFeedback(ctx context.Context, query, feedback, originalSuggestion string) (*types.QueryResponse, error) {
	log.Infoln("assistant: handling user feedback")

	retrieval, err := a.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	revision, err := a.editor.RephraseWithFeedback(ctx, query, retrieval.Context, feedback, originalSuggestion)
	if err != nil {
		return nil, err
	}

	return &types.QueryResponse{
		Status:            "success",
		Query:             query,
		RetrievalResult:   *retrieval,
		ImprovementResult: *revision,
		AgentLog: []types.AgentLogEntry{
			{Step: 1, Agent: retrieverAgentName, Action: "Document retrieval"},
			{Step: 2, Agent: editorAgentName, Action: "Feedback-based revision"},
		},
	}, nil
}
