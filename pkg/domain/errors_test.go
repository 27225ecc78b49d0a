package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestImageProcessingError(t *testing.T) {
	cause := errors.New("デコード失敗")
	err := &ImageProcessingError{Path: "a.png", Page: 0, Cell: 2, Err: cause}

	// メッセージ上のページ・セル番号は1始まりで表示されること
	msg := err.Error()
	if !strings.Contains(msg, "page: 1") || !strings.Contains(msg, "cell: 3") {
		t.Errorf("ページ・セル番号の表示が不正です: %s", msg)
	}
	if !strings.Contains(msg, "a.png") {
		t.Errorf("パスがメッセージに含まれていません: %s", msg)
	}

	if !errors.Is(err, cause) {
		t.Error("Unwrap で元のエラーに到達できません")
	}
}

func TestInputError_Unwrap(t *testing.T) {
	err := &InputError{Path: "/no/such/dir", Err: fs.ErrNotExist}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("Unwrap で fs.ErrNotExist に到達できません")
	}
	if !strings.Contains(err.Error(), "/no/such/dir") {
		t.Errorf("パスがメッセージに含まれていません: %s", err.Error())
	}
}

func TestOutputError(t *testing.T) {
	cause := errors.New("ディスク書き込み失敗")
	err := &OutputError{Page: 2, Path: "out/page_3.png", Err: cause}

	if !strings.Contains(err.Error(), "第 3 ページ") {
		t.Errorf("ページ番号の表示が不正です: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap で元のエラーに到達できません")
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Issues: []string{"問題A", "問題B"}}
	msg := err.Error()
	if !strings.Contains(msg, "問題A") || !strings.Contains(msg, "問題B") {
		t.Errorf("全問題がメッセージに列挙されていません: %s", msg)
	}
}

func TestErrorPredicates(t *testing.T) {
	confErr := &ConfigError{Issues: []string{"x"}}
	inErr := &InputError{Err: errors.New("入力なし")}

	t.Run("ラップされていても型を判定できること", func(t *testing.T) {
		wrapped := fmt.Errorf("読み込みに失敗しました: %w", confErr)
		if !IsConfigError(wrapped) {
			t.Error("ラップ済み ConfigError を判定できません")
		}
		if IsInputError(wrapped) {
			t.Error("ConfigError が InputError と誤判定されました")
		}
	})

	t.Run("各判定関数が対応する型だけに反応すること", func(t *testing.T) {
		if !IsInputError(inErr) || IsConfigError(inErr) {
			t.Error("InputError の判定が不正です")
		}
		procErr := &ImageProcessingError{Path: "a.png", Err: errors.New("x")}
		if !IsImageProcessingError(procErr) || IsOutputError(procErr) {
			t.Error("ImageProcessingError の判定が不正です")
		}
		outErr := &OutputError{Page: 0, Err: errors.New("x")}
		if !IsOutputError(outErr) || IsImageProcessingError(outErr) {
			t.Error("OutputError の判定が不正です")
		}
	})

	t.Run("nil はどの型にも該当しないこと", func(t *testing.T) {
		if IsConfigError(nil) || IsInputError(nil) || IsImageProcessingError(nil) || IsOutputError(nil) {
			t.Error("nil がエラー型と判定されました")
		}
	})
}
