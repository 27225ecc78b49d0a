package fitter

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/shouni/go-comic-kit/pkg/domain"
)

// Fitter は単一のフィットモードに固定された画像変形器です。
// 入力画像をセル寸法ぴったりの画像へ変形する純粋関数として振る舞い、
// 呼び出し間で状態を持ちません。
type Fitter struct {
	mode domain.FitMode
}

// New は指定モードの Fitter を生成します。
// 未知のモードはここで即座に弾き、ページ合成の途中で初めて失敗することを防ぎます。
func New(mode domain.FitMode) (*Fitter, error) {
	if _, err := domain.ParseFitMode(mode.String()); err != nil {
		return nil, err
	}
	return &Fitter{mode: mode}, nil
}

// Mode は構築時に固定されたフィットモードを返します。
func (f *Fitter) Mode() domain.FitMode {
	return f.mode
}

// Fit は src をセル寸法 targetW × targetH の画像へ変形します。
// 返り値は常にぴったり targetW × targetH の NRGBA 画像です。
//   - contain: アスペクト比を保って全体を収め、余白は完全透過のまま残します。
//   - cover:   アスペクト比を保ってセル全体を覆い、はみ出しは中央基準で切り落とします。
//   - stretch: アスペクト比を無視してセル寸法へ引き伸ばします。
//
// リサンプリングはすべて Lanczos フィルタで行います。
func (f *Fitter) Fit(src image.Image, targetW, targetH int) *image.NRGBA {
	switch f.mode {
	case domain.FitCover:
		return f.cover(src, targetW, targetH)
	case domain.FitStretch:
		return imaging.Resize(src, targetW, targetH, imaging.Lanczos)
	default:
		return f.contain(src, targetW, targetH)
	}
}

// contain は縮小率 min(tw/sw, th/sh) でリサイズし、透過キャンバスの中央へ配置します。
// 透過のまま残した余白は、ページ合成時に背景色として見えます。
func (f *Fitter) contain(src image.Image, targetW, targetH int) *image.NRGBA {
	w, h := scaledSize(src, targetW, targetH, math.Min)
	resized := imaging.Resize(src, w, h, imaging.Lanczos)

	canvas := imaging.New(targetW, targetH, color.NRGBA{})
	offset := image.Pt((targetW-w)/2, (targetH-h)/2)
	return imaging.Paste(canvas, resized, offset)
}

// cover は拡大率 max(tw/sw, th/sh) でリサイズし、中央基準でセル寸法に切り出します。
func (f *Fitter) cover(src image.Image, targetW, targetH int) *image.NRGBA {
	w, h := scaledSize(src, targetW, targetH, math.Max)
	resized := imaging.Resize(src, w, h, imaging.Lanczos)
	return imaging.CropAnchor(resized, targetW, targetH, imaging.Center)
}

// scaledSize はアスペクト比を保つリサイズ後の寸法を返します。
// 四捨五入で0になった辺は1pxへ切り上げます。
func scaledSize(src image.Image, targetW, targetH int, pick func(x, y float64) float64) (int, int) {
	bounds := src.Bounds()
	sw, sh := bounds.Dx(), bounds.Dy()

	scale := pick(float64(targetW)/float64(sw), float64(targetH)/float64(sh))
	w := int(math.Round(float64(sw) * scale))
	h := int(math.Round(float64(sh) * scale))
	return max(w, 1), max(h, 1)
}
