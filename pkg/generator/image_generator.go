package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrNoImageProduced はストリームのどのチャンクにも画像データが無かったことを表します。
	ErrNoImageProduced = errors.New("no image was generated")
	// ErrGenerationFailed は通信またはプロバイダ側のエラーを表します。リトライはしません。
	ErrGenerationFailed = errors.New("image generation failed")
)

// ImageGenerator はストリーミングレスポンスから最初の画像を取り出します。
type ImageGenerator struct {
	client StreamClient
	model  string
}

// NewImageGenerator は依存関係を注入して初期化します。
func NewImageGenerator(client StreamClient, model string) *ImageGenerator {
	return &ImageGenerator{
		client: client,
		model:  model,
	}
}

// Generate は参照画像（任意）とプロンプトを送り、最初にインラインデータを持つパートを結果とします。
// 以降の画像パートは無視し、テキストパートは診断情報として記録します。
func (g *ImageGenerator) Generate(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	parts := make([]PromptPart, 0, 2)
	if req.Reference != nil {
		parts = append(parts, PromptPart{Data: req.Reference.Data, MimeType: req.Reference.MimeType})
	}
	parts = append(parts, PromptPart{Text: req.Prompt})

	var (
		result *ImageResponse
		notes  []string
	)
	for chunk, err := range g.client.Stream(ctx, g.model, parts) {
		if err != nil {
			slog.Error("画像生成リクエストが失敗しました", "model", g.model, "error", err)
			return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		}

		for _, part := range chunk.Parts {
			switch {
			case len(part.Data) > 0:
				if result != nil {
					slog.Debug("2枚目以降の画像パートを無視します", "mime_type", part.MimeType, "bytes", len(part.Data))
					continue
				}
				mimeType := part.MimeType
				if mimeType == "" {
					mimeType = DefaultMimeType
				}
				result = &ImageResponse{Data: part.Data, MimeType: mimeType}
				slog.Info("画像データを受信しました", "mime_type", mimeType, "bytes", len(part.Data))
			case part.Text != "":
				notes = append(notes, part.Text)
				slog.Info("API note", "text", part.Text)
			}
		}
	}

	if result == nil {
		return nil, ErrNoImageProduced
	}
	result.Notes = notes
	return result, nil
}
