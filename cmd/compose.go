package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-comic-kit/internal/config"
	"github.com/shouni/go-comic-kit/internal/pipeline"
	"github.com/shouni/go-comic-kit/pkg/domain"

	"github.com/spf13/cobra"
)

// composeCmd は、画像列をプリセットへ流し込んでページ画像を合成するサブコマンドなのだ。
var composeCmd = &cobra.Command{
	Use:   "compose [画像ディレクトリ]",
	Short: "画像列をプリセットへ流し込んでページ画像を合成するのだ。",
	Long: `ディレクトリ内の画像（ファイル名順）またはリストファイルの画像（記載順）を、
レイアウトプリセットのセルへ先頭から順番に流し込み、ページ画像として保存するのだ。
セル数を超えた分は自動的に次のページへ送られるのだ。`,
	Example: `  ap-comic-go compose ./shots
  ap-comic-go compose ./shots -p 2x2 -o ./pages --fit cover
  ap-comic-go compose -l ./pages.txt -p examples/custom_preset.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: composeCommand,
}

// init は将来的にフラグを追加する場合に使うのだ。
func init() {
}

// composeCommand は、compose サブコマンドの実行ロジック本体なのだ。
func composeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 入力ソースの必須チェック（ディレクトリ引数か --list のどちらかなのだ）
	if len(args) > 0 {
		opts.InputDir = args[0]
	}
	if opts.InputDir == "" && opts.ListFile == "" {
		return fmt.Errorf("入力（画像ディレクトリ引数 または --list）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	// フラグがユーザーによって指定されなかった場合は環境変数側の値を使うのだ
	cfg := config.LoadConfig()
	if !cmd.Flags().Changed("preset") {
		opts.Preset = cfg.Preset
	}
	if !cmd.Flags().Changed("fit") {
		opts.FitMode = cfg.FitMode
	}

	// 3. フィットモードはここで検証して、合成の途中で初めて失敗しないようにするのだ
	if _, err := domain.ParseFitMode(opts.FitMode); err != nil {
		return err
	}

	cfg.Options = opts

	slog.Info("ページ合成パイプラインを起動するのだ！",
		"input", opts.InputDir,
		"list", opts.ListFile,
		"preset", opts.Preset,
		"fit", opts.FitMode,
		"workers", opts.Workers)

	// 4. 更新した config を考慮しつつパイプラインを実行するのだ
	if err := pipeline.Execute(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての合成工程が完了したのだ！")
	return nil
}
