package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shouni/go-comic-kit/internal/config"
)

// opts は、全サブコマンドで共有する実行時オプションなのだ。
// addAppFlags で各フラグと紐付けられるのだ。
var opts config.ComposeOptions

// rootCmd は、アプリケーションの親コマンドなのだ。
var rootCmd = &cobra.Command{
	Use:   "ap-comic-go",
	Short: "画像列をレイアウトプリセットへ流し込んで漫画ページを合成するのだ。",
	Long: `ap-comic-go は、順序付きの画像列をレイアウトプリセットのセルへ順番に流し込み、
1ページずつのPNG画像として書き出すコマンドラインツールなのだ。
プリセットは同梱のものを名前で指定するか、JSONファイルのパスで指定できるのだ。`,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.ListFile, "list", "l", "", "画像パスを1行1ファイルで並べた順序指定リストなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.Preset, "preset", "p", config.DefaultPresetName, "レイアウトプリセット名、またはJSONファイルのパスなのだ。")

	// --- 合成結果の出力設定 ---
	composeCmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "ページ画像の出力ディレクトリなのだ（省略時は「入力名_実行時刻」）。")
	composeCmd.Flags().StringVarP(&opts.FitMode, "fit", "f", config.DefaultFitMode, "セルへの収め方（contain / cover / stretch）なのだ。")
	composeCmd.Flags().IntVarP(&opts.Workers, "workers", "w", config.DefaultWorkers, "ページ合成の並列数なのだ（1で逐次実行）。")
}

// preRunAppE は、コマンド実行前に .env から環境変数を読み込むのだ。
// .env が無いのは正常系なので、読み込みの失敗は無視して続行するのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	// Ctrl+C や SIGTERM で実行中の合成を打ち切れるようにするのだ
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addAppFlags(rootCmd)
	rootCmd.PersistentPreRunE = preRunAppE
	rootCmd.AddCommand(composeCmd, planCmd, presetsCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
