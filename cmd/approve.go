package cmd

import (
	"github.com/shouni/go-sprite-kit/internal/pipeline"
	"github.com/shouni/go-sprite-kit/pkg/asset"

	"github.com/spf13/cobra"
)

var approveTarget asset.Target

// approveCmd は、ステージング中のアセットを used に昇格させてマニフェストに記録するのだ。
var approveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "ステージング中のアセットを承認するのだ。",
	Long: `staging/<id> のスプライトを used/<category>[/<subcategory>]/<name>.png にコピーしてマニフェストに記録し、
ステージングを片付けるのだ。category と name はフラグかメタデータのどちらかに必要なのだ。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		return pipeline.ExecuteApprove(cmd.Context(), appCtx, args[0], approveTarget, cmd.OutOrStdout())
	},
}

func init() {
	f := approveCmd.Flags()
	f.StringVarP(&approveTarget.Category, "category", "c", "", "メタデータのカテゴリを上書きするのだ。")
	f.StringVarP(&approveTarget.Subcategory, "subcategory", "s", "", "メタデータのサブカテゴリを上書きするのだ。")
	f.StringVarP(&approveTarget.Name, "name", "n", "", "メタデータのアセット名を上書きするのだ。")
}
