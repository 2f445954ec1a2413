package cmd

import (
	"github.com/shouni/go-sprite-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// initCmd は、スプライト置き場の初期化を行うのだ。何度実行しても既存のファイルは壊さないのだ。
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "スプライト置き場のディレクトリとスタイルガイドを用意するのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		return pipeline.ExecuteInit(cmd.Context(), appCtx, cmd.OutOrStdout())
	},
}
