package builder

import (
	"fmt"

	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-comic-kit/internal/config"
	"github.com/shouni/go-comic-kit/internal/runner"
	"github.com/shouni/go-comic-kit/pkg/compositor"
	"github.com/shouni/go-comic-kit/pkg/domain"
	"github.com/shouni/go-comic-kit/pkg/fitter"
	"github.com/shouni/go-comic-kit/pkg/publisher"
	"github.com/shouni/go-comic-kit/pkg/source"
)

// BuildSource は入力画像列の解決器を構築するのだ。
// リストファイルの指定があればそれを優先し、なければディレクトリ走査を使うのだ。
func BuildSource(opts config.ComposeOptions) source.Source {
	if opts.ListFile != "" {
		return source.NewListSource(opts.ListFile)
	}
	return source.NewDirSource(opts.InputDir)
}

// BuildComposeRunner はページ合成の実行器を構築するのだ。
func BuildComposeRunner(appCtx *AppContext, preset *domain.LayoutPreset, refs []source.ImageRef) (runner.ComposeRunner, error) {
	mode, err := domain.ParseFitMode(appCtx.Options.FitMode)
	if err != nil {
		return nil, err
	}
	fit, err := fitter.New(mode)
	if err != nil {
		return nil, err
	}

	comp, err := compositor.New(preset, fit, buildDecoder(refs), appCtx.Options.Workers)
	if err != nil {
		return nil, fmt.Errorf("Compositorの初期化に失敗したのだ: %w", err)
	}

	return runner.NewPageComposeRunner(comp, BuildPublisher(appCtx)), nil
}

// BuildPublisher は出力先と命名規則を確定させてパブリッシャーを構築するのだ。
// 出力先はフラグ → 環境変数 → 「入力名_実行時刻」の順で決まるのだ。
func BuildPublisher(appCtx *AppContext) *publisher.PagePublisher {
	origin := appCtx.Source.Origin()

	outDir := appCtx.Options.OutputDir
	if outDir == "" {
		outDir = appCtx.Config.OutputDir
	}
	if outDir == "" {
		outDir = publisher.TimestampedOutputDir(origin, appCtx.RunAt)
	}

	baseName := publisher.TimestampedBaseName(origin, appCtx.RunAt, appCtx.Config.PageBaseName)
	return publisher.NewPagePublisher(appCtx.Writer, outDir, baseName)
}

// buildDecoder は参照列に同一パスが複数回現れる場合だけキャッシュ付きデコーダを選ぶのだ。
// 一度しか使わない画像を抱え込んでメモリを浪費しないための分岐なのだ。
func buildDecoder(refs []source.ImageRef) compositor.Decoder {
	if !hasDuplicatePaths(refs) {
		return source.NewDecoder()
	}

	imgCache := cache.New(config.DefaultCacheTTL, config.DefaultCachePurge)
	return source.NewCachedDecoder(imgCache, config.DefaultCacheTTL)
}

func hasDuplicatePaths(refs []source.ImageRef) bool {
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.Path]; ok {
			return true
		}
		seen[ref.Path] = struct{}{}
	}
	return false
}
