package domain

// CellResult は入力画像1枚の配置結果です。
// Err が nil であればページ PageIndex のセル CellIndex に配置済みです。
type CellResult struct {
	PageIndex int
	CellIndex int
	ImagePath string
	Err       error
}

// PageResult は出力ページ1枚の書き出し結果です。
type PageResult struct {
	Index       int
	Path        string
	FilledCells int
	Err         error
}

// Report は合成実行全体の結果です。入力順どおりの粒度で成功と失敗を保持し、
// 呼び出し側がログ出力や終了コードの判断に使います。
type Report struct {
	Pages []PageResult
	Cells []CellResult
}

// FailedCells は処理に失敗した画像の結果だけを返します。
func (r *Report) FailedCells() []CellResult {
	var failed []CellResult
	for _, c := range r.Cells {
		if c.Err != nil {
			failed = append(failed, c)
		}
	}
	return failed
}

// FailedPages は書き出しに失敗したページの結果だけを返します。
func (r *Report) FailedPages() []PageResult {
	var failed []PageResult
	for _, p := range r.Pages {
		if p.Err != nil {
			failed = append(failed, p)
		}
	}
	return failed
}

// Ok は全画像の配置と全ページの書き出しが成功したかどうかを返します。
func (r *Report) Ok() bool {
	return len(r.FailedCells()) == 0 && len(r.FailedPages()) == 0
}
