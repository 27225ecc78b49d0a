package domain

import (
	"encoding/json"
	"fmt"
)

// LayoutPreset は1ページ分のレイアウト定義（ページ寸法・背景色・セル配置）を保持します。
// 実行開始時に一度だけロードされ、以降は値として参照される不変データです。
type LayoutPreset struct {
	Name   string   `json:"name"`
	Page   PageSpec `json:"page"`
	Layout Layout   `json:"layout"`
}

// PageSpec は出力ページのキャンバス仕様です。
type PageSpec struct {
	Width           int   `json:"width"`
	Height          int   `json:"height"`
	BackgroundColor Color `json:"background_color"`
}

// Layout はページ内のセル配置を順序付きで保持します。
type Layout struct {
	Cells []Cell `json:"cells"`
}

// Cell はページ内で1枚の画像を配置する矩形です。
// セル同士の重なりやページ外へのはみ出しは検証しません（プリセット作者の裁量です）。
type Cell struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ParsePreset はJSONバイト列からプリセットをデコードし、検証まで行います。
// デコード失敗・検証失敗はいずれも *ConfigError として返します。
func ParsePreset(data []byte) (*LayoutPreset, error) {
	var preset LayoutPreset
	if err := json.Unmarshal(data, &preset); err != nil {
		return nil, &ConfigError{
			Issues: []string{"プリセットJSONをデコードできません"},
			Err:    err,
		}
	}
	if err := preset.Validate(); err != nil {
		return nil, err
	}
	return &preset, nil
}

// Validate はプリセットの必須項目を検証します。
// 問題を1件見つけた時点で打ち切らず、全件を列挙した *ConfigError を返します。
func (p *LayoutPreset) Validate() error {
	var issues []string

	if p.Name == "" {
		issues = append(issues, "name が未指定です")
	}
	if p.Page.Width <= 0 {
		issues = append(issues, fmt.Sprintf("page.width は正の整数が必要です (指定値: %d)", p.Page.Width))
	}
	if p.Page.Height <= 0 {
		issues = append(issues, fmt.Sprintf("page.height は正の整数が必要です (指定値: %d)", p.Page.Height))
	}
	if !p.Page.BackgroundColor.Valid() {
		issues = append(issues, "page.background_color が未指定です")
	}
	if len(p.Layout.Cells) == 0 {
		issues = append(issues, "layout.cells が空です (最低1セル必要です)")
	}
	for i, cell := range p.Layout.Cells {
		if cell.X < 0 || cell.Y < 0 {
			issues = append(issues, fmt.Sprintf("layout.cells[%d]: x, y は0以上が必要です (指定値: %d, %d)", i, cell.X, cell.Y))
		}
		if cell.Width <= 0 || cell.Height <= 0 {
			issues = append(issues, fmt.Sprintf("layout.cells[%d]: width, height は正の整数が必要です (指定値: %d, %d)", i, cell.Width, cell.Height))
		}
	}

	if len(issues) > 0 {
		return &ConfigError{Issues: issues}
	}
	return nil
}

// CellsPerPage は1ページあたりのセル数を返します。
func (p *LayoutPreset) CellsPerPage() int {
	return len(p.Layout.Cells)
}

// PageCount は画像数に対して必要なページ数 ceil(imageCount / cellsPerPage) を返します。
// セル数が0の場合は0を返します（Validate済みのプリセットでは起こりません）。
func (p *LayoutPreset) PageCount(imageCount int) int {
	c := p.CellsPerPage()
	if c == 0 || imageCount <= 0 {
		return 0
	}
	return (imageCount + c - 1) / c
}
