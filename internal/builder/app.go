package builder

import (
	"fmt"

	"github.com/shouni/go-sprite-kit/internal/config"
	"github.com/shouni/go-sprite-kit/internal/viewer"
	"github.com/shouni/go-sprite-kit/pkg/asset"
	"github.com/shouni/go-sprite-kit/pkg/generator"
	"github.com/shouni/go-sprite-kit/pkg/manifest"
	"github.com/shouni/go-sprite-kit/pkg/storage"
	"github.com/shouni/go-sprite-kit/pkg/style"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config    *config.Config         // Configは、環境変数とグローバルフラグから組み立てた設定です。
	Options   config.GenerateOptions // Optionsは、generate コマンドのフラグから渡された実行時の設定です。
	Reader    remoteio.InputReader   // Readerは、バッチファイルと参照画像の読み込み元です（ローカル or gs://...）。
	Writer    remoteio.OutputWriter  // Writerは、生成したスプライトとメタデータの書き出し先です。
	Layout    asset.Layout           // Layoutは、スプライト置き場のディレクトリ構成です。
	Styles    *style.Registry        // Stylesは、スタイルガイドの読み書きを担います。
	Manifest  *manifest.Store        // Manifestは、ゲームが読み込むマニフェストの永続化先です。
	Assets    *asset.Manager         // Assetsは、ステージング・承認・却下の状態遷移を担います。
	Opener    viewer.Opener          // Openerは、preview でファイルを開くビューアです。
	Generator generator.Generator    // Generatorが nil の場合は、API キーから Gemini のクライアントを構築します。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
// ここではネットワークに触れないので、API キーや GCS の認証情報が無くても初期化できます。
func NewAppContext(cfg *config.Config) (*AppContext, error) {
	layout, err := asset.NewLayout(cfg.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("プロジェクトルートの解決に失敗しました: %w", err)
	}

	// staging の移動や削除はローカルのディレクトリ操作なので、書き出し先もローカルに固定します。
	writer := storage.LocalWriter{}
	store := manifest.NewStore(layout.ManifestPath())
	return &AppContext{
		Config:   cfg,
		Options:  cfg.Options,
		Reader:   storage.NewReader(newGCSReader),
		Writer:   writer,
		Layout:   layout,
		Styles:   style.NewRegistry(layout.StyleGuidePath()),
		Manifest: store,
		Assets:   asset.NewManager(layout, store, writer, asset.ShortUUID),
		Opener:   viewer.NewSystemOpener(),
	}, nil
}
