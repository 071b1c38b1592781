// Package insight generates beginner-friendly AI commentary for analysis
// results. The language model is consumed as an opaque text-generation
// collaborator; without one configured, canned explanations built from the
// same score fields are returned so the feature degrades instead of
// failing.
package insight

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/vishalsinghrathore00/NiveshAi/internal/models"
)

// TextGenerator is the contract the insight service places on its LLM
// collaborator: prompt in, free text out, or an error.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient implements TextGenerator against the OpenAI chat API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates an OpenAI-backed text generator.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}
}

// Complete sends a single-message prompt and returns the response text.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}

// Service builds prompts from analysis outputs and runs them through the
// configured generator. A nil generator means "no API key": the service
// falls back to templated text.
type Service struct {
	llm TextGenerator
	log *logrus.Logger
}

// NewService creates the insight service. llm may be nil.
func NewService(llm TextGenerator, log *logrus.Logger) *Service {
	return &Service{llm: llm, log: log}
}

// StockInsight produces commentary for one stock analysis.
func (s *Service) StockInsight(ctx context.Context, assetName string, risk models.RiskProfile, a models.StockAnalysis) (string, error) {
	if s.llm == nil {
		s.log.Warn("no LLM configured, returning templated stock insight")
		return fmt.Sprintf(
			"Based on the analysis of %s, here are key insights for a %s-risk investor:\n\n"+
				"This stock shows a %s trend with a technical score of %.1f/100. The overall recommendation is %s. "+
				"For your %s-risk profile, consider your investment horizon and diversification strategy.\n\n"+
				"Note: This is a technical analysis only. Please consult with a financial advisor before making investment decisions.",
			assetName, risk, a.Trend, a.TechnicalScore, a.Recommendation, risk), nil
	}
	return s.llm.Complete(ctx, buildStockPrompt(assetName, risk, a))
}

// FundInsight produces commentary for one fund analysis.
func (s *Service) FundInsight(ctx context.Context, assetName string, a models.FundAnalysis) (string, error) {
	if s.llm == nil {
		s.log.Warn("no LLM configured, returning templated fund insight")
		return fmt.Sprintf(
			"The %s mutual fund shows promising metrics with a returns score of %.1f/100 and stability score of %.1f/100. "+
				"For systematic investment, this fund could be suitable based on its track record.\n\n"+
				"Note: This analysis is for educational purposes. Consult a financial advisor for personalized recommendations.",
			assetName, a.ReturnsScore, a.StabilityScore), nil
	}
	return s.llm.Complete(ctx, buildFundPrompt(assetName, a))
}

func buildStockPrompt(assetName string, risk models.RiskProfile, a models.StockAnalysis) string {
	return fmt.Sprintf(`You are a financial advisor for Indian retail investors. Analyze %s stock for a %s-risk investor.

Current Analysis:
- Trend: %s
- RSI: %.1f
- Technical Score: %.1f/100
- Fundamental Score: %.1f/100
- Overall Score: %.1f/100
- Recommendation: %s

Provide a brief, beginner-friendly explanation (2-3 paragraphs) covering:
1. Why this stock might be suitable/unsuitable for their risk profile
2. Key factors to consider
3. Any risks they should be aware of

Keep the language simple and avoid jargon. Use Indian Rupee context.`,
		assetName, risk, a.Trend, a.RSI, a.TechnicalScore, a.FundamentalScore, a.TotalScore, a.Recommendation)
}

func buildFundPrompt(assetName string, a models.FundAnalysis) string {
	return fmt.Sprintf(`You are a financial advisor for Indian retail investors. Analyze %s mutual fund for SIP investment.

Current Analysis:
- Returns Score: %.1f/100
- Stability Score: %.1f/100
- Overall Score: %.1f/100
- Recommendation: %s

Provide a brief, beginner-friendly explanation (2-3 paragraphs) covering:
1. Why this fund might be good for systematic investment
2. Historical performance context
3. Any risks or considerations

Keep the language simple. Use Indian Rupee and SIP context.`,
		assetName, a.ReturnsScore, a.StabilityScore, a.TotalScore, a.Recommendation)
}
