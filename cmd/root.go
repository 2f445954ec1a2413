package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/shouni/go-sprite-kit/internal/builder"
	"github.com/shouni/go-sprite-kit/internal/config"

	"github.com/spf13/cobra"
)

const appName = "spritegen"

var (
	// opts は generate コマンドのフラグを束ねるのだ。
	opts config.GenerateOptions
	// globals は全コマンド共通のフラグなのだ。
	globals struct {
		projectRoot string
		model       string
		envFile     string
		verbose     bool
	}
	// cfg は PersistentPreRunE で環境変数とフラグから組み立てるのだ。
	cfg *config.Config
)

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVar(&globals.projectRoot, "project-root", config.DefaultProjectRoot, "ゲームプロジェクトのルートなのだ。assets/sprites はこの下に作られるのだ。")
	rootCmd.PersistentFlags().StringVar(&globals.model, "model", config.DefaultImageModel, "使用する Gemini の画像生成モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&globals.envFile, "env-file", config.DefaultEnvFile, "API キーを探す .env ファイルのパスなのだ。")
	rootCmd.PersistentFlags().BoolVarP(&globals.verbose, "verbose", "v", false, "デバッグログを出すのだ。")
}

// loadConfig は環境変数を読み込み、明示されたフラグで上書きするのだ。
func loadConfig(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if globals.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg = config.LoadConfig()
	flags := cmd.Flags()
	if flags.Changed("project-root") {
		cfg.ProjectRoot = globals.projectRoot
	}
	if flags.Changed("model") {
		cfg.GeminiImageModel = globals.model
	}
	if flags.Changed("env-file") {
		cfg.EnvFile = globals.envFile
	}
	return nil
}

// preRunAppE は、Gemini API を呼ぶコマンドの実行前に API キーを確認するのだ。
// ここで失敗すればファイルには一切触れないのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	return cfg.ResolveAPIKey()
}

// newAppContext は各コマンドが使う AppContext を組み立てるのだ。
func newAppContext() (*builder.AppContext, error) {
	cfg.Options = opts
	return builder.NewAppContext(cfg)
}

// newRootCmd はサブコマンドを登録したルートコマンドを返すのだ。
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               appName,
		Short:             "AIでピクセルアートのスプライトを生成・管理するのだ。",
		Long:              `Gemini でスプライトを生成し、ステージングで確認してから承認・却下し、ゲームが読むマニフェストに記録するのだ。`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadConfig,
	}
	addAppFlags(rootCmd)
	rootCmd.AddCommand(
		initCmd,
		generateCmd,
		batchCmd,
		listCmd,
		approveCmd,
		rejectCmd,
		applyCmd,
		previewCmd,
	)
	return rootCmd
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
