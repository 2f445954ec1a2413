package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shouni/go-sprite-kit/examples"
	"github.com/shouni/go-sprite-kit/internal/builder"
	"github.com/shouni/go-sprite-kit/pkg/domain"
	"github.com/shouni/go-sprite-kit/pkg/style"
)

// ExecuteInit は、スプライト置き場のディレクトリを作り、
// スタイルガイドとマニフェスト、サンプルのバッチファイルが無ければ書き出すのだ。
func ExecuteInit(ctx context.Context, appCtx *builder.AppContext, out io.Writer) error {
	if err := appCtx.Layout.Ensure(); err != nil {
		return err
	}

	if appCtx.Styles.Exists() {
		slog.InfoContext(ctx, "スタイルガイドは既にあるのでそのまま使うのだ", "path", appCtx.Styles.Path())
	} else {
		if err := appCtx.Styles.Save(style.DefaultGuide()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Created style guide: %s\n", appCtx.Styles.Path())
	}

	if appCtx.Manifest.Exists() {
		slog.InfoContext(ctx, "マニフェストは既にあるのでそのまま使うのだ", "path", appCtx.Manifest.Path())
	} else {
		if err := appCtx.Manifest.Save(domain.NewManifest()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Created manifest: %s\n", appCtx.Manifest.Path())
	}

	samplePath := filepath.Join(appCtx.Layout.SpritesRoot(), examples.BatchFileName)
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		if err := os.WriteFile(samplePath, examples.BatchJSON, 0o644); err != nil {
			return fmt.Errorf("サンプルバッチの書き出しに失敗したのだ (%s): %w", samplePath, err)
		}
		fmt.Fprintf(out, "Created sample batch: %s\n", samplePath)
	}

	fmt.Fprintf(out, "%s %s\n", okStyle.Render("Sprite directories initialized at"), appCtx.Layout.SpritesRoot())
	return nil
}

// ExecuteGenerate は、generate コマンドのフラグからスプライトを1枚生成するのだ。
func ExecuteGenerate(ctx context.Context, appCtx *builder.AppContext, out io.Writer) error {
	req := appCtx.Options.Request()
	if err := validateRequest(appCtx, req); err != nil {
		return err
	}
	if err := appCtx.Layout.Ensure(); err != nil {
		return err
	}

	genRunner, err := builder.BuildGenerateRunner(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("GenerateRunnerの構築に失敗したのだ: %w", err)
	}

	res, err := genRunner.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("スプライトの生成に失敗したのだ: %w", err)
	}

	fmt.Fprintf(out, "Saved sprite to: %s\n", res.Path)
	if res.Status == domain.StatusUsed {
		fmt.Fprintf(out, "Updated manifest with key: %s\n", idStyle.Render(res.Key))
		return nil
	}
	fmt.Fprintf(out, "\nAsset staged with ID: %s\n", idStyle.Render(res.ID))
	fmt.Fprintf(out, "To approve: spritegen approve %s --category %s --name %s\n", res.ID, req.Category, req.Name)
	return nil
}

// ExecuteBatch は、バッチファイルの各項目を順番に生成するのだ。
// 個々の失敗ではエラーを返さず、最後に集計を表示するのだ。
func ExecuteBatch(ctx context.Context, appCtx *builder.AppContext, batchPath string, autoApply bool, out io.Writer) error {
	batch, err := builder.BuildBatchParser(appCtx).ParseFromPath(ctx, batchPath)
	if err != nil {
		return err
	}

	output := domain.OutputStaging
	if autoApply {
		output = domain.OutputDirect
	}
	reqs := batch.Requests(output)

	if err := appCtx.Layout.Ensure(); err != nil {
		return err
	}
	batchRunner, err := builder.BuildBatchRunner(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("BatchRunnerの構築に失敗したのだ: %w", err)
	}

	fmt.Fprintf(out, "Processing %d items...\n", len(reqs))
	report, err := batchRunner.Run(ctx, reqs)
	if err != nil {
		return fmt.Errorf("バッチ生成が中断されたのだ: %w", err)
	}

	fmt.Fprintf(out, "\nBatch complete. %s of %d sprites generated.\n", okStyle.Render(fmt.Sprint(report.Succeeded)), report.Total)
	for _, name := range report.Failed {
		fmt.Fprintf(out, "  %s %s\n", warnStyle.Render("failed:"), name)
	}
	return nil
}

// validateRequest は生成前にカテゴリと神の名前を確認するのだ。
func validateRequest(appCtx *builder.AppContext, req domain.GenerateRequest) error {
	if !domain.IsValidCategory(req.Category) {
		return fmt.Errorf("未知のカテゴリなのだ: %q (使えるのは %v)", req.Category, domain.Categories)
	}
	if req.Name == "" || req.Prompt == "" {
		return fmt.Errorf("%w: --name と --prompt は必須なのだ", domain.ErrMissingFields)
	}
	if req.God == "" {
		return nil
	}
	guide, err := appCtx.Styles.Load()
	if err != nil {
		return err
	}
	if _, ok := guide.Palette(req.God); !ok {
		return fmt.Errorf("未知の神なのだ: %q (使えるのは %v)", req.God, guide.GodNames())
	}
	return nil
}
