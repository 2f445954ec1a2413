package generator

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/genai"
)

// responseModalities は画像とテキストの両方を受け取るための指定です。
var responseModalities = []string{"IMAGE", "TEXT"}

// GeminiStreamClient は genai の GenerateContentStream を StreamClient に適合させます。
type GeminiStreamClient struct {
	client *genai.Client
}

// NewGeminiStreamClient は API キーから Gemini API クライアントを初期化します。
func NewGeminiStreamClient(ctx context.Context, apiKey string) (*GeminiStreamClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}
	return &GeminiStreamClient{client: client}, nil
}

// Stream はユーザーロールの1コンテンツとしてパートを送り、レスポンスをチャンクに変換して返します。
func (c *GeminiStreamClient) Stream(ctx context.Context, model string, parts []PromptPart) iter.Seq2[Chunk, error] {
	contents := []*genai.Content{
		genai.NewContentFromParts(toGenaiParts(parts), genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseModalities: responseModalities,
	}

	return func(yield func(Chunk, error) bool) {
		for resp, err := range c.client.Models.GenerateContentStream(ctx, model, contents, config) {
			if err != nil {
				yield(Chunk{}, err)
				return
			}
			if !yield(toChunk(resp), nil) {
				return
			}
		}
	}
}

func toGenaiParts(parts []PromptPart) []*genai.Part {
	out := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if len(p.Data) > 0 {
			out = append(out, genai.NewPartFromBytes(p.Data, p.MimeType))
			continue
		}
		out = append(out, genai.NewPartFromText(p.Text))
	}
	return out
}

// toChunk は最初の候補のパートだけを取り出します。候補や内容が無いレスポンスは空のチャンクになります。
func toChunk(resp *genai.GenerateContentResponse) Chunk {
	if resp == nil || len(resp.Candidates) == 0 {
		return Chunk{}
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return Chunk{}
	}

	chunk := Chunk{Parts: make([]ChunkPart, 0, len(content.Parts))}
	for _, p := range content.Parts {
		if p == nil {
			continue
		}
		part := ChunkPart{Text: p.Text}
		if p.InlineData != nil {
			part.Data = p.InlineData.Data
			part.MimeType = p.InlineData.MIMEType
		}
		chunk.Parts = append(chunk.Parts, part)
	}
	return chunk
}
