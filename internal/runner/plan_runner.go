package runner

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/shouni/go-comic-kit/pkg/domain"
	"github.com/shouni/go-comic-kit/pkg/source"
)

// PlanRunner は、合成を実行せずにページ割りを試算するためのインターフェース。
type PlanRunner interface {
	// Run は入力画像列とプリセットからページ割りの試算結果を返す。
	Run(ctx context.Context, preset *domain.LayoutPreset, refs []source.ImageRef) (*PlanReport, error)
}

// PlanReport はページ割り試算の結果なのだ。ページ画像は一切書き出さないのだ。
type PlanReport struct {
	PresetName   string          // 使用するプリセット名
	PageWidth    int             // ページの幅（ピクセル）
	PageHeight   int             // ページの高さ（ピクセル）
	CellsPerPage int             // 1ページあたりのセル数
	Pages        int             // 生成されるページ数
	LastPageFill int             // 最終ページに入る画像数
	Placements   []PlanPlacement // 画像ごとの割り当て（入力順）
}

// PlanPlacement は画像1枚の配置先と寸法なのだ。
type PlanPlacement struct {
	Path   string // 入力画像のパス
	Page   int    // 配置先ページ（0始まり）
	Cell   int    // 配置先セル（0始まり）
	Width  int    // 画像の幅。寸法を読み取れない場合は 0
	Height int    // 画像の高さ。寸法を読み取れない場合は 0
	Err    error  // 寸法の読み取りに失敗した場合のエラー
}

// DefaultPlanRunner は PlanRunner の標準実装なのだ。
type DefaultPlanRunner struct{}

// NewDefaultPlanRunner は DefaultPlanRunner の新しいインスタンスを生成して返すのだ。
func NewDefaultPlanRunner() *DefaultPlanRunner {
	return &DefaultPlanRunner{}
}

// Run は画像 i をページ i/C のセル i%C へ割り当て、各画像の寸法をヘッダから読み取るのだ。
// 寸法を読み取れない画像があっても試算は続行し、その項目にエラーを記録するのだ。
func (pr *DefaultPlanRunner) Run(ctx context.Context, preset *domain.LayoutPreset, refs []source.ImageRef) (*PlanReport, error) {
	if len(refs) == 0 {
		return nil, &domain.InputError{Err: fmt.Errorf("試算対象の画像がありません")}
	}

	cellsPerPage := preset.CellsPerPage()
	pages := preset.PageCount(len(refs))

	report := &PlanReport{
		PresetName:   preset.Name,
		PageWidth:    preset.Page.Width,
		PageHeight:   preset.Page.Height,
		CellsPerPage: cellsPerPage,
		Pages:        pages,
		LastPageFill: len(refs) - (pages-1)*cellsPerPage,
		Placements:   make([]PlanPlacement, 0, len(refs)),
	}

	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		placement := PlanPlacement{
			Path: ref.Path,
			Page: i / cellsPerPage,
			Cell: i % cellsPerPage,
		}
		w, h, err := readImageSize(ref.Path)
		if err != nil {
			placement.Err = err
		} else {
			placement.Width = w
			placement.Height = h
		}
		report.Placements = append(report.Placements, placement)
	}

	return report, nil
}

// readImageSize はヘッダだけを読んで画像の寸法を取得するのだ。
// 画素のデコードはしないため、大きな画像でも一瞬で終わるのだ。
func readImageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("画像ヘッダの解析に失敗しました: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
