package cmd

import (
	"fmt"

	"github.com/shouni/go-comic-kit/internal/config"
	"github.com/shouni/go-comic-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// planCmd は、合成を実行せずにページ割りだけを試算するサブコマンドなのだ。
// 大量の画像を流し込む前に、ページ数と配置先を確かめるのに便利なのだ。
var planCmd = &cobra.Command{
	Use:   "plan [画像ディレクトリ]",
	Short: "合成を実行せずにページ割りを試算するのだ。",
	Long: `入力画像の枚数とプリセットのセル数から、生成されるページ数と
各画像の配置先（ページとセル）を表示するのだ。ページ画像は一切書き出さないのだ。`,
	Example: `  ap-comic-go plan ./shots
  ap-comic-go plan -l ./pages.txt -p strip3`,
	Args: cobra.MaximumNArgs(1),
	RunE: planCommand,
}

// planCommand は、plan サブコマンドの実行ロジック本体なのだ。
func planCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 入力ソースの必須チェック（compose と同じ指定方法なのだ）
	if len(args) > 0 {
		opts.InputDir = args[0]
	}
	if opts.InputDir == "" && opts.ListFile == "" {
		return fmt.Errorf("入力（画像ディレクトリ引数 または --list）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	if !cmd.Flags().Changed("preset") {
		opts.Preset = cfg.Preset
	}
	cfg.Options = opts

	// 3. 試算を実行して結果を標準出力へ表示するのだ
	return pipeline.ExecutePlan(ctx, cfg, cmd.OutOrStdout())
}
