package runner

import (
	"context"

	"github.com/shouni/go-sprite-kit/pkg/asset"
	"github.com/shouni/go-sprite-kit/pkg/domain"
	"github.com/shouni/go-sprite-kit/pkg/generator"
)

// StyleSource は生成時に参照するスタイルガイドの取得元です。
type StyleSource interface {
	Load() (domain.StyleGuide, error)
}

// ReferenceSource は参照画像の取得元です。
type ReferenceSource interface {
	Load(ctx context.Context, path string) (*generator.ReferenceImage, error)
}

// AssetWriter は生成した画像をステージングまたは used に配置します。
type AssetWriter interface {
	CreateStaged(ctx context.Context, data []byte, meta domain.AssetMetadata) (asset.Placement, error)
	CreateDirect(ctx context.Context, data []byte, meta domain.AssetMetadata) (asset.Placement, error)
}
