package security

import (
	"strings"
	"testing"
)

// TestSanitize_PlainText は通常のテキストが変更されないことを検証する。
func TestSanitize_PlainText(t *testing.T) {
	sanitizer := NewNameSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"日本語の名前", "田中太郎", "田中太郎"},
		{"英語の名前", "John Smith", "John Smith"},
		{"電話番号", "090-1234-5678", "090-1234-5678"},
		{"イベント名", "公園清掃ボランティア", "公園清掃ボランティア"},
		{"アポストロフィとアンパサンド", "O'Brien & Sons", "O'Brien & Sons"},
		{"引用符を含む名前", `山田 "ヤマ" 太郎`, `山田 "ヤマ" 太郎`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizer.Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestSanitize_StripsAllTags はすべてのHTMLタグが除去されることを検証する。
func TestSanitize_StripsAllTags(t *testing.T) {
	sanitizer := NewNameSanitizer()

	tests := []struct {
		name  string
		input string
	}{
		{"scriptタグ", "<script>alert('xss')</script>田中"},
		{"bタグ", "<b>田中太郎</b>"},
		{"imgタグ", `<img src=x onerror="alert(1)">鈴木`},
		{"aタグ", `<a href="https://evil.example.com">リンク</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizer.Sanitize(tt.input)
			if strings.Contains(got, "<") || strings.Contains(got, ">") {
				t.Errorf("Sanitize(%q) = %q, want no tags", tt.input, got)
			}
		})
	}
}

// TestSanitize_TrimsWhitespace は前後の空白が除去されることを検証する。
func TestSanitize_TrimsWhitespace(t *testing.T) {
	sanitizer := NewNameSanitizer()

	got := sanitizer.Sanitize("  田中太郎  ")
	if got != "田中太郎" {
		t.Errorf("Sanitize = %q, want %q", got, "田中太郎")
	}
}

// TestSanitize_EmptyAfterSanitize はタグのみの入力が空文字になることを検証する。
func TestSanitize_EmptyAfterSanitize(t *testing.T) {
	sanitizer := NewNameSanitizer()

	got := sanitizer.Sanitize("<script></script>")
	if got != "" {
		t.Errorf("Sanitize = %q, want empty string", got)
	}
}
