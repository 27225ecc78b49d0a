package compositor

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log/slog"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-comic-kit/pkg/domain"
	"github.com/shouni/go-comic-kit/pkg/source"
)

// Decoder は入力画像の読み込みを担う依存先です。
type Decoder interface {
	Decode(ctx context.Context, path string) (image.Image, error)
}

// Fitter は画像1枚をセル寸法へ変形する依存先です。
type Fitter interface {
	Fit(src image.Image, targetW, targetH int) *image.NRGBA
}

// PageSink は完成したページを1枚ずつ受け取る出力先です。
// 返り値の文字列は書き出し先のパスで、ページの Report に記録されます。
type PageSink interface {
	Publish(ctx context.Context, pageIndex int, page *image.NRGBA) (string, error)
}

// Compositor はプリセットのセル配置に従い、入力画像列をページ画像へ合成します。
// 画像 i はページ i/C のセル i%C に入ります（C は1ページあたりのセル数）。
type Compositor struct {
	preset  *domain.LayoutPreset
	fitter  Fitter
	decoder Decoder
	workers int
}

// New は Compositor を生成します。プリセットの不備はここで *ConfigError として弾き、
// ページ合成の途中で初めて失敗することを防ぎます。workers が1以下なら逐次実行です。
func New(preset *domain.LayoutPreset, fit Fitter, dec Decoder, workers int) (*Compositor, error) {
	if err := preset.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	return &Compositor{preset: preset, fitter: fit, decoder: dec, workers: workers}, nil
}

// Compose は refs の画像を順にセルへ配置し、完成したページを1枚ずつ sink へ渡します。
// 個々の画像やページの失敗では全体を止めず、成否を Report に集約して返します。
// エラーを返すのは入力が空の場合とコンテキストが打ち切られた場合だけです。
func (c *Compositor) Compose(ctx context.Context, refs []source.ImageRef, sink PageSink) (*domain.Report, error) {
	if len(refs) == 0 {
		return nil, &domain.InputError{Err: fmt.Errorf("合成対象の画像がありません")}
	}

	numPages := c.preset.PageCount(len(refs))
	slog.InfoContext(ctx, "ページ合成を開始します",
		"images", len(refs),
		"cells_per_page", c.preset.CellsPerPage(),
		"pages", numPages,
		"workers", c.workers,
	)

	report := &domain.Report{
		Pages: make([]domain.PageResult, numPages),
		Cells: make([]domain.CellResult, len(refs)),
	}

	// 各ページが書き込む Report の添字は互いに素なため、ロックなしで共有できます
	if c.workers > 1 {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(c.workers)
		for p := 0; p < numPages; p++ {
			eg.Go(func() error {
				return c.composePage(egCtx, p, refs, sink, report)
			})
		}
		if err := eg.Wait(); err != nil {
			return report, err
		}
	} else {
		for p := 0; p < numPages; p++ {
			if err := c.composePage(ctx, p, refs, sink, report); err != nil {
				return report, err
			}
		}
	}

	slog.InfoContext(ctx, "ページ合成が完了しました",
		"pages", numPages,
		"failed_images", len(report.FailedCells()),
		"failed_pages", len(report.FailedPages()),
	)
	return report, nil
}

// composePage はページ1枚を背景キャンバスから組み立てて sink へ渡します。
// 返り値のエラーはコンテキストの打ち切りのみで、画像やページの失敗は report に記録します。
func (c *Compositor) composePage(ctx context.Context, pageIndex int, refs []source.ImageRef, sink PageSink, report *domain.Report) error {
	cells := c.preset.Layout.Cells
	canvas := imaging.New(c.preset.Page.Width, c.preset.Page.Height, c.preset.Page.BackgroundColor.NRGBA())

	filled := 0
	base := pageIndex * len(cells)
	for cellIndex, cell := range cells {
		idx := base + cellIndex
		if idx >= len(refs) {
			// 最終ページの残りセルは背景のまま残します
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		ref := refs[idx]
		result := domain.CellResult{PageIndex: pageIndex, CellIndex: cellIndex, ImagePath: ref.Path}

		img, err := c.decoder.Decode(ctx, ref.Path)
		if err == nil {
			if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
				err = fmt.Errorf("画像の寸法が不正です (%dx%d)", b.Dx(), b.Dy())
			}
		}
		if err != nil {
			result.Err = &domain.ImageProcessingError{Path: ref.Path, Page: pageIndex, Cell: cellIndex, Err: err}
			report.Cells[idx] = result
			slog.WarnContext(ctx, "画像をスキップして続行します",
				"path", ref.Path, "page", pageIndex+1, "cell", cellIndex+1, "error", err)
			continue
		}

		fitted := c.fitter.Fit(img, cell.Width, cell.Height)
		placeCell(canvas, fitted, cell)
		filled++
		report.Cells[idx] = result
		slog.InfoContext(ctx, "画像を配置しました",
			"path", ref.Path, "page", pageIndex+1, "cell", cellIndex+1)
	}

	// 打ち切り後に中途半端なページを書き出さないよう、出力前にも確認します
	if err := ctx.Err(); err != nil {
		return err
	}

	pageResult := domain.PageResult{Index: pageIndex, FilledCells: filled}
	path, err := sink.Publish(ctx, pageIndex, canvas)
	pageResult.Path = path
	if err != nil {
		pageResult.Err = &domain.OutputError{Page: pageIndex, Path: path, Err: err}
		slog.ErrorContext(ctx, "ページの書き出しに失敗しました",
			"page", pageIndex+1, "path", path, "error", err)
	}
	report.Pages[pageIndex] = pageResult
	return nil
}

// placeCell は fitted をキャンバスのセル矩形へ描き込みます。
// 透過画素は背景を残し、不透明画素は上書き、半透明はブレンドされます。
// セルがページからはみ出す場合はキャンバス境界で切り詰められます。
func placeCell(canvas *image.NRGBA, fitted *image.NRGBA, cell domain.Cell) {
	rect := image.Rect(cell.X, cell.Y, cell.X+cell.Width, cell.Y+cell.Height)
	draw.Draw(canvas, rect, fitted, fitted.Bounds().Min, draw.Over)
}
