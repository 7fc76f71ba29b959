// Package security はアプリケーションのセキュリティ機能を提供する。
//
// NameSanitizerService は利用者が入力する自由テキスト（表示名・イベント名）を
// 保存前にサニタイズし、後段のUIでのXSSを防ぐ。
// bluemondayのStrictPolicyですべてのHTMLタグを除去し、プレーンテキストのみを残す。
// StrictPolicyが行うHTMLエンティティエスケープは元に戻すため、
// `O'Brien & Sons` のような記号を含む正規の名前はそのまま保存される。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// NameSanitizerService は自由テキストのサニタイズ機能のインターフェースを定義する。
type NameSanitizerService interface {
	// Sanitize は入力からすべてのHTMLタグを除去し、前後の空白を取り除いて返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(input string) string
}

// nameSanitizer はNameSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type nameSanitizer struct {
	policy *bluemonday.Policy
}

// NewNameSanitizer はNameSanitizerServiceの新しいインスタンスを生成する。
// 表示名・イベント名はプレーンテキストとして扱うため、
// タグを一切許可しないStrictPolicyを使用する。
func NewNameSanitizer() *nameSanitizer {
	return &nameSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からすべてのHTMLタグを除去し、前後の空白を取り除いて返す。
// タグ除去後のエンティティエスケープ（&amp;等）は展開し、
// 記号を含む名前が入力通りのプレーンテキストとして残るようにする。
func (s *nameSanitizer) Sanitize(input string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(input)))
}
