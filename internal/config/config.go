package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultPresetName   = "2col"
	DefaultFitMode      = "contain"
	DefaultPageBaseName = "page.png" // ページ番号はこの拡張子の前に挿入されるのだ
	DefaultWorkers      = 1
	DefaultCacheTTL     = 30 * time.Minute // デコード済み画像キャッシュの保持時間
	DefaultCachePurge   = 1 * time.Hour    // 期限切れキャッシュの掃除間隔
)

// Config はアプリケーション全体の環境設定を保持する構造体なのだ。
type Config struct {
	Preset       string
	OutputDir    string
	FitMode      string
	PageBaseName string

	Options ComposeOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		Preset:       envutil.GetEnv("COMIC_PRESET", DefaultPresetName),
		OutputDir:    envutil.GetEnv("COMIC_OUTPUT_DIR", ""),
		FitMode:      envutil.GetEnv("COMIC_FIT_MODE", DefaultFitMode),
		PageBaseName: envutil.GetEnv("COMIC_PAGE_BASENAME", DefaultPageBaseName),
	}
	return cfg
}

// ComposeOptions は CLI フラグから渡される実行時のパラメータなのだ。
type ComposeOptions struct {
	// 入力関連
	InputDir string // 引数: 入力画像ディレクトリ
	ListFile string // --list: 順序指定リストファイル

	// 出力関連
	Preset    string // --preset: プリセット名またはJSONファイルパス
	OutputDir string // --output: 出力ディレクトリ
	FitMode   string // --fit: contain / cover / stretch

	// 実行制御
	Workers int // --workers: ページ並列数（1で逐次実行）
}
