package cmd

import (
	"github.com/shouni/go-sprite-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

var listCategory string

// listCmd は、状態ごとのアセット一覧を表示するのだ。
var listCmd = &cobra.Command{
	Use:       "list {staging|used|alternatives}",
	Short:     "アセットを状態ごとに一覧表示するのだ。",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: pipeline.ListStatuses,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		return pipeline.ExecuteList(cmd.Context(), appCtx, args[0], listCategory, cmd.OutOrStdout())
	},
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "used の一覧をカテゴリで絞り込むのだ。")
}
