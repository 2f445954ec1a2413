package generator

import (
	"context"
	"iter"
)

// StreamClient は画像生成 API へ1回のストリーミングリクエストを発行するためのインターフェースです。
// レスポンスはチャンクの列として同期的に読み進めます。
type StreamClient interface {
	Stream(ctx context.Context, model string, parts []PromptPart) iter.Seq2[Chunk, error]
}

// Generator は、プロンプト（と任意の参照画像）から1枚の画像を生成します。
type Generator interface {
	Generate(ctx context.Context, req ImageRequest) (*ImageResponse, error)
}
