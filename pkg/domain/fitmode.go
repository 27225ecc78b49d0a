package domain

import "fmt"

// FitMode は画像をセル枠に収める際のリサイズ戦略です。
type FitMode string

const (
	// FitContain はアスペクト比を保ったままセル内に全体を収めます。余白はページ背景が見えます。
	FitContain FitMode = "contain"
	// FitCover はアスペクト比を保ったままセル全体を覆い、はみ出した部分を中央基準で切り落とします。
	FitCover FitMode = "cover"
	// FitStretch はアスペクト比を無視してセル寸法へ引き伸ばします。
	FitStretch FitMode = "stretch"
)

// ParseFitMode は文字列を FitMode に変換します。
// 未知の値は設定ミスとして ConfigError を返します。
func ParseFitMode(s string) (FitMode, error) {
	switch FitMode(s) {
	case FitContain, FitCover, FitStretch:
		return FitMode(s), nil
	}
	return "", &ConfigError{
		Issues: []string{fmt.Sprintf("未知のフィットモード %q です（%s / %s / %s のいずれかを指定してください）", s, FitContain, FitCover, FitStretch)},
	}
}

// String は FitMode の文字列表現を返します。
func (m FitMode) String() string {
	return string(m)
}
