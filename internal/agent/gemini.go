package agent

import (
	"context"
	"fmt"
	"strings"

	"sage/internal/dataset"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used unless configured otherwise.
const DefaultModel = "gemini-2.5-flash"

// maxToolRounds bounds the tool-call loop per query.
const maxToolRounds = 5

const systemInstruction = `You are SAGE, a business analytics AI assistant.
You help users analyze sales, revenue, and customer data.
Use the available tools to fetch data and provide clear, actionable insights.
Always cite specific numbers and trends in your responses.
When asked about performance, use get_top_performers.
When asked about revenue, use get_revenue_by_region.
When asked about trends, use analyze_trends.
When asked about customers, use get_customer_metrics.`

// Gemini answers queries with a tool-equipped Gemini model.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	tools  *Toolset
	logger *zap.Logger
}

// NewGemini builds the agent. modelName may be empty to use DefaultModel.
func NewGemini(ctx context.Context, apiKey, modelName string, ds *dataset.Store, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	tools := NewToolset(ds)
	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	model.Tools = []*genai.Tool{{FunctionDeclarations: tools.Declarations()}}

	return &Gemini{client: client, model: model, tools: tools, logger: logger}, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Name identifies the agent in query responses.
func (g *Gemini) Name() string { return "SAGE (Gemini)" }

// Answer runs one query through the model, executing any requested tools
// until the model settles on a textual answer.
func (g *Gemini) Answer(ctx context.Context, query string) (string, error) {
	session := g.model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(query))
	if err != nil {
		return "", fmt.Errorf("send query: %w", err)
	}

	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}

		parts := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			g.logger.Debug("executing tool", zap.String("tool", call.Name))
			parts = append(parts, genai.FunctionResponse{
				Name:     call.Name,
				Response: g.tools.Execute(call.Name, call.Args),
			})
		}

		resp, err = session.SendMessage(ctx, parts...)
		if err != nil {
			return "", fmt.Errorf("send tool results: %w", err)
		}
	}

	text := responseText(resp)
	if text == "" {
		text = "No text response generated"
	}
	return text, nil
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	var calls []genai.FunctionCall
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if call, ok := part.(genai.FunctionCall); ok {
				calls = append(calls, call)
			}
		}
	}
	return calls
}

func responseText(resp *genai.GenerateContentResponse) string {
	var texts []string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok && text != "" {
				texts = append(texts, string(text))
			}
		}
	}
	return strings.Join(texts, "\n\n")
}
