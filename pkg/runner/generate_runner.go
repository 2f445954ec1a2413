package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shouni/go-sprite-kit/pkg/asset"
	"github.com/shouni/go-sprite-kit/pkg/config"
	"github.com/shouni/go-sprite-kit/pkg/domain"
	"github.com/shouni/go-sprite-kit/pkg/generator"
	"github.com/shouni/go-sprite-kit/pkg/prompts"
)

// Result は1回の生成の結果です。
type Result struct {
	ID     string
	Key    string
	Path   string
	Status domain.Status
	Notes  []string
}

// GenerateRunner は、プロンプトの構築から画像生成、保存までの1件分の処理を管理します。
type GenerateRunner struct {
	cfg        config.Config
	styles     StyleSource
	generator  generator.Generator
	references ReferenceSource
	assets     AssetWriter
	now        func() time.Time
}

// NewGenerateRunner は、依存関係を注入して初期化します。
func NewGenerateRunner(
	cfg config.Config,
	styles StyleSource,
	gen generator.Generator,
	references ReferenceSource,
	assets AssetWriter,
) *GenerateRunner {
	if cfg.Sizes == nil {
		cfg.Sizes = config.DefaultSizes()
	}
	return &GenerateRunner{
		cfg:        cfg,
		styles:     styles,
		generator:  gen,
		references: references,
		assets:     assets,
		now:        time.Now,
	}
}

// Run は要求からスプライトを1枚生成し、ステージングまたは used に保存します。
// 画像が得られなかった場合は何も書き込みません。
func (r *GenerateRunner) Run(ctx context.Context, req domain.GenerateRequest) (*Result, error) {
	guide, err := r.styles.Load()
	if err != nil {
		return nil, fmt.Errorf("スタイルガイドの読み込みに失敗しました: %w", err)
	}

	size := req.Size
	if size <= 0 {
		size = r.cfg.Sizes.SizeFor(req.Category, req.Subcategory)
	}
	frames := req.Frames
	if frames <= 0 {
		frames = config.DefaultFrames
	}

	fullPrompt := prompts.NewSpritePromptBuilder(guide).Build(req.Prompt, req.Category, size, frames, req.God)

	slog.InfoContext(ctx, "スプライトを生成しています",
		"key", req.Key(),
		"size", size,
		"frames", frames,
		"god", req.God,
		"reference", req.Reference,
	)
	slog.DebugContext(ctx, "プロンプト", "prompt", fullPrompt)

	imgReq := generator.ImageRequest{Prompt: fullPrompt}
	if req.Reference != "" {
		ref, err := r.references.Load(ctx, req.Reference)
		switch {
		case err == nil:
			imgReq.Reference = ref
			imgReq.Prompt = prompts.ReferencePrompt(fullPrompt)
		case errors.Is(err, os.ErrNotExist):
			slog.WarnContext(ctx, "参照画像が見つからないため、テキストのみで生成します", "path", req.Reference)
		default:
			return nil, err
		}
	}

	resp, err := r.generator.Generate(ctx, imgReq)
	if err != nil {
		return nil, err
	}

	meta := domain.AssetMetadata{
		CreatedAt:   r.now(),
		Prompt:      req.Prompt,
		FullPrompt:  fullPrompt,
		GodPalette:  req.God,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Name:        req.Name,
		Size:        size,
		Frames:      frames,
	}

	var placement asset.Placement
	if req.Direct() {
		placement, err = r.assets.CreateDirect(ctx, resp.Data, meta)
	} else {
		placement, err = r.assets.CreateStaged(ctx, resp.Data, meta)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		ID:     placement.ID,
		Key:    placement.Key,
		Path:   placement.Path,
		Status: placement.Status,
		Notes:  resp.Notes,
	}, nil
}
