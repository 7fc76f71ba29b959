package model

import "time"

// timestampLayout はAPI境界でのタイムスタンプ表記。
// 既存データとの互換のため、タイムゾーンを含まない固定幅のローカル日時を使用する。
const timestampLayout = "2006-01-02 15:04:05"

// FormatTime はタイムスタンプを "YYYY-MM-DD HH:MM:SS" 形式のローカル日時文字列にする。
func FormatTime(t time.Time) string {
	return t.Local().Format(timestampLayout)
}
