// internal/model/item.go
package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	// MaxContextExamples は1項目が保持する例文の上限 (古いものから捨てる)
	MaxContextExamples = 5
	// DefaultDifficulty は新規項目の難易度
	DefaultDifficulty = 0.5
)

// ItemKind は学習項目の種類
type ItemKind string

const (
	KindWord    ItemKind = "word"
	KindTopic   ItemKind = "topic"
	KindPhrase  ItemKind = "phrase"
	KindGrammar ItemKind = "grammar"
)

func (k ItemKind) IsValid() bool {
	switch k {
	case KindWord, KindTopic, KindPhrase, KindGrammar:
		return true
	}
	return false
}

// IsLexical は word / phrase / grammar なら true (topic 以外)
func (k ItemKind) IsLexical() bool {
	return k.IsValid() && k != KindTopic
}

// ParseItemKind は大文字小文字を区別せずに種類を解釈します。
func ParseItemKind(s string) (ItemKind, error) {
	k := ItemKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown item kind %q", ErrInvalidInput, s)
	}
	return k, nil
}

// ItemKey はストア内で一意なキー。Content は正規化 (trim + 小文字化) 済み。
type ItemKey struct {
	Content string   `json:"content"`
	Kind    ItemKind `json:"kind"`
}

// NewItemKey は content を正規化してキーを作ります。
func NewItemKey(content string, kind ItemKind) ItemKey {
	return ItemKey{Content: NormalizeContent(content), Kind: kind}
}

func (k ItemKey) String() string {
	return string(k.Kind) + ":" + k.Content
}

// NormalizeContent は重複判定用に content を正規化します。
func NormalizeContent(content string) string {
	return strings.ToLower(strings.TrimSpace(content))
}

// LearnedItem は学習者が触れた単語・トピックなどの1項目
type LearnedItem struct {
	Content         string       `json:"content"`
	Kind            ItemKind     `json:"kind"`
	Meaning         string       `json:"meaning,omitempty"`
	ContextExamples []string     `json:"context_examples"`
	LearnedAt       time.Time    `json:"learned_at"`
	LastReviewedAt  time.Time    `json:"last_reviewed_at"`
	NextReviewAt    time.Time    `json:"next_review_at"`
	ReviewCount     int          `json:"review_count"`
	Mastery         MasteryLevel `json:"mastery"`
	Difficulty      float64      `json:"difficulty"`
	Active          bool         `json:"active"`
}

func (i LearnedItem) Key() ItemKey {
	return NewItemKey(i.Content, i.Kind)
}

// Clone はスライスも含めたコピーを返します。
func (i LearnedItem) Clone() LearnedItem {
	out := i
	out.ContextExamples = slices.Clone(i.ContextExamples)
	return out
}

// IsDue は asOf 時点で復習対象かどうか
func (i LearnedItem) IsDue(asOf time.Time) bool {
	return i.Active && !i.NextReviewAt.After(asOf)
}

// AddContext は例文を末尾に追加します。空文字と重複は無視し、
// 上限を超えた場合は最も古い例文を捨てます。追加した場合 true。
func (i *LearnedItem) AddContext(example string) bool {
	example = strings.TrimSpace(example)
	if example == "" || slices.Contains(i.ContextExamples, example) {
		return false
	}
	i.ContextExamples = append(i.ContextExamples, example)
	if over := len(i.ContextExamples) - MaxContextExamples; over > 0 {
		i.ContextExamples = slices.Clone(i.ContextExamples[over:])
	}
	return true
}
