package domain

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color はプリセットJSON内の背景色表現です。以下の3形式を受け付けます。
//   - 16進文字列: "#RGB" / "#RRGGBB" / "#RRGGBBAA"
//   - 色名文字列: "white", "black" など（namedColors 参照）
//   - 整数配列:   [r, g, b] / [r, g, b, a] （各要素 0〜255）
//
// ゼロ値は「未指定」を表し、Valid() が false を返します。
type Color struct {
	nrgba color.NRGBA
	valid bool
}

// namedColors は色名で指定できる背景色の一覧です。
var namedColors = map[string]color.NRGBA{
	"white":  {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"black":  {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	"gray":   {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"silver": {R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff},
	"red":    {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	"green":  {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	"blue":   {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	"yellow": {R: 0xff, G: 0xff, B: 0x00, A: 0xff},
	"ivory":  {R: 0xff, G: 0xff, B: 0xf0, A: 0xff},
}

// NewColor は NRGBA 値から設定済みの Color を生成します。
func NewColor(c color.NRGBA) Color {
	return Color{nrgba: c, valid: true}
}

// Valid は色が明示的に設定されているかを返します。
func (c Color) Valid() bool {
	return c.valid
}

// NRGBA は描画に使う具体的な色値を返します。未指定の場合は不透明の白を返します。
func (c Color) NRGBA() color.NRGBA {
	if !c.valid {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return c.nrgba
}

// String は "#RRGGBB" もしくは "#RRGGBBAA" 形式の表記を返します。
func (c Color) String() string {
	v := c.NRGBA()
	if v.A != 0xff {
		return fmt.Sprintf("#%02X%02X%02X%02X", v.R, v.G, v.B, v.A)
	}
	return fmt.Sprintf("#%02X%02X%02X", v.R, v.G, v.B)
}

// UnmarshalJSON は文字列・配列の両形式からのデコードを実装します。
func (c *Color) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return c.setFromString(s)
	}

	var parts []int
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("background_color は文字列か整数配列で指定してください: %w", err)
	}
	return c.setFromSlice(parts)
}

// MarshalJSON は常に16進文字列形式で出力します。
func (c Color) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.String())
}

func (c *Color) setFromString(s string) error {
	name := strings.ToLower(strings.TrimSpace(s))
	if v, ok := namedColors[name]; ok {
		c.nrgba = v
		c.valid = true
		return nil
	}

	if !strings.HasPrefix(name, "#") {
		return fmt.Errorf("未知の色名です: %q", s)
	}

	hex := name[1:]
	var r, g, b, a uint64
	var err error
	a = 0xff

	switch len(hex) {
	case 3:
		// "#abc" は "#aabbcc" の短縮形として扱います
		if r, g, b, err = parseHexTriplet(hex[0:1]+hex[0:1], hex[1:2]+hex[1:2], hex[2:3]+hex[2:3]); err != nil {
			return fmt.Errorf("不正な色指定です: %q", s)
		}
	case 6:
		if r, g, b, err = parseHexTriplet(hex[0:2], hex[2:4], hex[4:6]); err != nil {
			return fmt.Errorf("不正な色指定です: %q", s)
		}
	case 8:
		if r, g, b, err = parseHexTriplet(hex[0:2], hex[2:4], hex[4:6]); err != nil {
			return fmt.Errorf("不正な色指定です: %q", s)
		}
		if a, err = strconv.ParseUint(hex[6:8], 16, 8); err != nil {
			return fmt.Errorf("不正な色指定です: %q", s)
		}
	default:
		return fmt.Errorf("不正な色指定です: %q (#RGB / #RRGGBB / #RRGGBBAA 形式が必要です)", s)
	}

	c.nrgba = color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}
	c.valid = true
	return nil
}

func (c *Color) setFromSlice(parts []int) error {
	if len(parts) != 3 && len(parts) != 4 {
		return fmt.Errorf("background_color の配列は [r,g,b] か [r,g,b,a] が必要です (要素数: %d)", len(parts))
	}
	for _, v := range parts {
		if v < 0 || v > 255 {
			return fmt.Errorf("background_color の各要素は0〜255が必要です (指定値: %d)", v)
		}
	}
	a := 0xff
	if len(parts) == 4 {
		a = parts[3]
	}
	c.nrgba = color.NRGBA{R: uint8(parts[0]), G: uint8(parts[1]), B: uint8(parts[2]), A: uint8(a)}
	c.valid = true
	return nil
}

func parseHexTriplet(rs, gs, bs string) (r, g, b uint64, err error) {
	if r, err = strconv.ParseUint(rs, 16, 8); err != nil {
		return 0, 0, 0, err
	}
	if g, err = strconv.ParseUint(gs, 16, 8); err != nil {
		return 0, 0, 0, err
	}
	if b, err = strconv.ParseUint(bs, 16, 8); err != nil {
		return 0, 0, 0, err
	}
	return r, g, b, nil
}
