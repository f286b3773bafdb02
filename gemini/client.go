package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"vegstock/model"
)

// Client はGoogle Gemini APIのラッパーです。プロセス起動時に1度だけ生成し、
// チャットオーケストレーターに注入して使います。
type Client struct {
	client *genai.Client
	model  string
}

// NewClient はGeminiクライアントを生成します。
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini APIキーが設定されていません")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  modelName,
	}, nil
}

// GenerateStockResponse は在庫状況を踏まえて一般的な質問に回答します。
func (c *Client) GenerateStockResponse(ctx context.Context, userMessage string, stocks []model.Stock) (string, error) {
	prompt := buildSystemPrompt(stocks) + userMessage
	return c.generate(ctx, prompt)
}

// GenerateStockAnalysis は在庫データの分析とアドバイスを生成します。
func (c *Client) GenerateStockAnalysis(ctx context.Context, stocks []model.Stock) (string, error) {
	return c.generate(ctx, buildAnalysisPrompt(stocks))
}

// GenerateShoppingList は在庫状況から買い物リストを生成します。
func (c *Client) GenerateShoppingList(ctx context.Context, stocks []model.Stock) (string, error) {
	return c.generate(ctx, buildShoppingPrompt(stocks))
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("Gemini returned an empty response")
	}
	return text, nil
}
