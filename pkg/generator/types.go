package generator

const (
	// DefaultMimeType は MIME タイプが判定できない場合に使う既定値です。
	DefaultMimeType = "image/png"
)

// PromptPart はリクエストに含める1パートです。Data があればインライン画像、なければテキストです。
type PromptPart struct {
	Data     []byte
	MimeType string
	Text     string
}

// ChunkPart はレスポンスチャンクに含まれる1パートです。
type ChunkPart struct {
	Data     []byte
	MimeType string
	Text     string
}

// Chunk はストリーミングレスポンスの1単位です。
type Chunk struct {
	Parts []ChunkPart
}

// ReferenceImage はスタイル参照のために添付する画像です。
type ReferenceImage struct {
	Path     string
	Data     []byte
	MimeType string
}

// ImageRequest は1回の画像生成要求です。
type ImageRequest struct {
	Prompt    string
	Reference *ReferenceImage
}

// ImageResponse は生成された画像データと、API から返された補足テキストです。
type ImageResponse struct {
	Data     []byte
	MimeType string
	Notes    []string
}
