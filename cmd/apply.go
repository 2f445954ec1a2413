package cmd

import (
	"github.com/shouni/go-sprite-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// applyCmd は、手で置いた画像ファイルをマニフェストに記録するのだ。ファイルは動かさないのだ。
var applyCmd = &cobra.Command{
	Use:   "apply <path>",
	Short: "画像ファイルをマニフェストに記録するのだ。",
	Long: `隣に <name>.meta.json があればそこからキーを決め、無ければ used 配下の位置からキーを決めるのだ。
同じパスを何度 apply しても結果は変わらないのだよ。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		return pipeline.ExecuteApply(cmd.Context(), appCtx, args[0], cmd.OutOrStdout())
	},
}
