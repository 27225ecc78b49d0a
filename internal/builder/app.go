package builder

import (
	"time"

	"github.com/shouni/go-comic-kit/internal/config"
	"github.com/shouni/go-comic-kit/pkg/publisher"
	"github.com/shouni/go-comic-kit/pkg/source"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config  *config.Config         // Configは、環境変数から読み込まれたグローバルな設定です。
	Options config.ComposeOptions  // Optionsは、コマンドラインから渡された実行時の設定です。
	Source  source.Source          // Sourceは、入力画像列の解決に使用する入力元です。
	Writer  publisher.OutputWriter // Writerは、完成したページ画像を保存するための出力先です。
	RunAt   time.Time              // RunAtは、出力名へ埋め込む実行開始時刻です。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(cfg *config.Config) AppContext {
	return AppContext{
		Config:  cfg,
		Options: cfg.Options,
		Source:  BuildSource(cfg.Options),
		Writer:  publisher.NewFSWriter(),
		RunAt:   time.Now(),
	}
}
