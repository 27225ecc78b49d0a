package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigError はレイアウトプリセットや動作設定の不備を表します。
// 検証で見つかった問題は Issues にまとめて保持し、一度の実行で全件を報告します。
type ConfigError struct {
	Issues []string
	Err    error
}

func (e *ConfigError) Error() string {
	if len(e.Issues) > 0 {
		return fmt.Sprintf("設定が不正です: %s", strings.Join(e.Issues, "; "))
	}
	if e.Err != nil {
		return fmt.Sprintf("設定の読み込みに失敗しました: %v", e.Err)
	}
	return "設定が不正です"
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// InputError は入力画像群の解決に関する失敗を表します。
// ディレクトリが存在しない、対象画像が1枚もない、といった実行前提の崩れが対象です。
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("入力の解決に失敗しました (path: %s): %v", e.Path, e.Err)
	}
	return fmt.Sprintf("入力の解決に失敗しました: %v", e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ImageProcessingError は個別画像のデコードまたは変形の失敗を表します。
// 合成処理はこのエラーでページ全体を止めず、該当セルを空のまま先へ進みます。
type ImageProcessingError struct {
	Path string
	Page int
	Cell int
	Err  error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("画像の処理に失敗しました (path: %s, page: %d, cell: %d): %v", e.Path, e.Page+1, e.Cell+1, e.Err)
}

func (e *ImageProcessingError) Unwrap() error {
	return e.Err
}

// OutputError は完成ページの書き出し失敗を表します。
type OutputError struct {
	Page int
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("第 %d ページの保存に失敗しました (path: %s): %v", e.Page+1, e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// IsConfigError は err の原因が設定の不備かどうかを判定します。
// エラーがラップされていても判定できます。
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsInputError は err の原因が入力画像群の解決失敗かどうかを判定します。
func IsInputError(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsImageProcessingError は err の原因が個別画像の処理失敗かどうかを判定します。
func IsImageProcessingError(err error) bool {
	var target *ImageProcessingError
	return errors.As(err, &target)
}

// IsOutputError は err の原因がページの書き出し失敗かどうかを判定します。
func IsOutputError(err error) bool {
	var target *OutputError
	return errors.As(err, &target)
}
