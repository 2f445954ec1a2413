package builder

import (
	"context"
	"fmt"

	"github.com/shouni/go-sprite-kit/pkg/generator"
	"github.com/shouni/go-sprite-kit/pkg/parser"
	"github.com/shouni/go-sprite-kit/pkg/runner"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// BuildGenerateRunner は1件分のスプライト生成を担当する Runner を構築します。
func BuildGenerateRunner(ctx context.Context, appCtx *AppContext) (*runner.GenerateRunner, error) {
	imgGen, err := InitializeImageGenerator(ctx, appCtx)
	if err != nil {
		return nil, err
	}

	return runner.NewGenerateRunner(
		appCtx.Config.KitConfig(),
		appCtx.Styles,
		imgGen,
		generator.NewReferenceLoader(appCtx.Reader),
		appCtx.Assets,
	), nil
}

// BuildBatchRunner はバッチファイルの各項目を順番に生成する Runner を構築します。
func BuildBatchRunner(ctx context.Context, appCtx *AppContext) (*runner.BatchRunner, error) {
	genRunner, err := BuildGenerateRunner(ctx, appCtx)
	if err != nil {
		return nil, err
	}
	return runner.NewBatchRunner(genRunner, appCtx.Config.RateInterval), nil
}

// BuildBatchParser は AppContext の Reader でバッチファイルを読むパーサーを構築します。
// gs:// のバッチファイルも同じ Reader が Cloud Storage から読みます。
func BuildBatchParser(appCtx *AppContext) parser.Parser {
	return parser.NewBatchParser(appCtx.Reader)
}

// newGCSReader は gs:// のパスを初めて読むときに Cloud Storage のリーダーを作ります。
// 認証情報はこの時点で初めて必要になります。
func newGCSReader(ctx context.Context) (remoteio.InputReader, error) {
	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}
	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS input reader: %w", err)
	}
	return reader, nil
}

// InitializeImageGenerator は ImageGenerator を初期化します。
// AppContext に Generator が設定済みであればそれを使います。
func InitializeImageGenerator(ctx context.Context, appCtx *AppContext) (generator.Generator, error) {
	if appCtx.Generator != nil {
		return appCtx.Generator, nil
	}

	client, err := generator.NewGeminiStreamClient(ctx, appCtx.Config.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	imgGen := generator.NewImageGenerator(client, appCtx.Config.KitConfig().ImageModel)
	appCtx.Generator = imgGen
	return imgGen, nil
}
