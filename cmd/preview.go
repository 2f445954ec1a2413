package cmd

import (
	"github.com/shouni/go-sprite-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// previewCmd は、アセットを OS のビューアで開くのだ。
var previewCmd = &cobra.Command{
	Use:   "preview <id|path|key>",
	Short: "アセットをビューアで開くのだ。",
	Long:  `ステージング ID、却下済み ID、ファイルパス、マニフェストのキーの順に探して、見つかった画像を開くのだ。`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		return pipeline.ExecutePreview(cmd.Context(), appCtx, args[0], cmd.OutOrStdout())
	},
}
