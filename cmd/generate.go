package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-sprite-kit/internal/pipeline"
	"github.com/shouni/go-sprite-kit/pkg/domain"

	"github.com/spf13/cobra"
)

// generateCmd は、AIによるスプライト画像の生成を実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "AIにスプライトを1枚生成させるのだ。",
	Long: `スタイルガイドの画風とパレットを組み合わせたプロンプトで、スプライトを1枚生成するのだ。
既定ではステージングに置かれるので、確認してから approve か reject するのだよ。
--auto-apply（または -o direct）なら used に直接置いてマニフェストも更新するのだ。`,
	PreRunE: preRunAppE,
	RunE:    generateCommand,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&opts.Category, "category", "c", "", "カテゴリなのだ ("+strings.Join(domain.Categories, ", ")+")。")
	f.StringVarP(&opts.Subcategory, "subcategory", "s", "", "サブカテゴリなのだ (例: minor, boss, icon)。")
	f.StringVarP(&opts.Name, "name", "n", "", "アセット名なのだ。")
	f.StringVarP(&opts.Prompt, "prompt", "p", "", "生成したいスプライトの説明なのだ。")
	f.StringVarP(&opts.God, "god", "g", "", "使う神のパレットなのだ (スタイルガイドに定義されたもの)。")
	f.IntVarP(&opts.Frames, "frames", "f", 1, "アニメーションのフレーム数なのだ。")
	f.IntVar(&opts.Size, "size", 0, "1フレームのピクセルサイズなのだ。0 ならカテゴリの既定値を使うのだ。")
	f.StringVarP(&opts.Output, "output", "o", string(domain.OutputStaging), "出力先なのだ (staging|direct)。")
	f.BoolVar(&opts.AutoApply, "auto-apply", false, "used に直接置いてマニフェストに記録するのだ。")
	f.StringVarP(&opts.Reference, "reference", "r", "", "画風を合わせるための参照画像のパスなのだ。")

	_ = generateCmd.MarkFlagRequired("category")
	_ = generateCmd.MarkFlagRequired("name")
	_ = generateCmd.MarkFlagRequired("prompt")
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.Output != string(domain.OutputStaging) && opts.Output != string(domain.OutputDirect) {
		return fmt.Errorf("--output は staging か direct を指定してほしいのだ: %q", opts.Output)
	}

	appCtx, err := newAppContext()
	if err != nil {
		return err
	}

	slog.Info("スプライト生成を起動するのだ！",
		"category", opts.Category,
		"subcategory", opts.Subcategory,
		"name", opts.Name,
		"image_model", cfg.GeminiImageModel,
		"project_root", appCtx.Layout.ProjectRoot())

	return pipeline.ExecuteGenerate(ctx, appCtx, cmd.OutOrStdout())
}
