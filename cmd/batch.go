package cmd

import (
	"github.com/shouni/go-sprite-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

var batchAutoApply bool

// batchCmd は、バッチファイルに並んだスプライトを順番に生成するのだ。
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "バッチファイルからスプライトをまとめて生成するのだ。",
	Long: `JSON / YAML / Markdown のバッチファイルに書かれた項目を、上から順に1件ずつ生成するのだ。
途中で失敗した項目があっても止まらずに最後まで進めて、最後に集計を表示するのだよ。`,
	Args:    cobra.ExactArgs(1),
	PreRunE: preRunAppE,
	RunE:    batchCommand,
}

func init() {
	batchCmd.Flags().BoolVar(&batchAutoApply, "auto-apply", false, "すべて used に直接置いてマニフェストに記録するのだ。")
}

func batchCommand(cmd *cobra.Command, args []string) error {
	appCtx, err := newAppContext()
	if err != nil {
		return err
	}
	return pipeline.ExecuteBatch(cmd.Context(), appCtx, args[0], batchAutoApply, cmd.OutOrStdout())
}
