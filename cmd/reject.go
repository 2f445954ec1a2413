package cmd

import (
	"github.com/shouni/go-sprite-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

var rejectReason string

// rejectCmd は、ステージング中のアセットを alternatives に移して理由を残すのだ。
var rejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "ステージング中のアセットを却下するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		return pipeline.ExecuteReject(cmd.Context(), appCtx, args[0], rejectReason, cmd.OutOrStdout())
	},
}

func init() {
	rejectCmd.Flags().StringVarP(&rejectReason, "reason", "r", "", "却下の理由なのだ。")
}
