package cmd

import (
	"fmt"

	"github.com/shouni/go-comic-kit/pkg/domain"
	"github.com/shouni/go-comic-kit/pkg/parser"

	"github.com/spf13/cobra"
)

// presetsCmd は、同梱レイアウトプリセットの一覧や定義を表示するサブコマンドなのだ。
var presetsCmd = &cobra.Command{
	Use:   "presets [プリセット名]",
	Short: "同梱プリセットの一覧や定義を表示するのだ。",
	Long: `引数なしで実行すると、同梱されているレイアウトプリセットの一覧を寸法つきで表示するのだ。
プリセット名を指定すると、その定義（JSON）をそのまま表示するのだ。
独自プリセットを作るときの雛形として使えるのだ。`,
	Example: `  ap-comic-go presets
  ap-comic-go presets 2x2 > my_preset.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: presetsCommand,
}

// presetsCommand は、presets サブコマンドの実行ロジック本体なのだ。
func presetsCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// 名前の指定があれば、そのプリセットの定義をそのまま表示するのだ
	if len(args) == 1 {
		data, err := parser.Bundled(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	// 指定がなければ、同梱プリセットの一覧を寸法つきで表示するのだ
	for _, name := range parser.Names() {
		data, err := parser.Bundled(name)
		if err != nil {
			return err
		}
		preset, err := domain.ParsePreset(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-8s %dx%d, %d セル/ページ\n",
			name, preset.Page.Width, preset.Page.Height, preset.CellsPerPage())
	}
	return nil
}
