// internal/model/mastery.go
package model

import (
	"encoding"
	"fmt"
	"strings"
)

// MasteryLevel は学習項目の習熟度 (New < Learning < Familiar < Mastered < Expert)
type MasteryLevel int

const (
	MasteryNew      MasteryLevel = iota // 0
	MasteryLearning                     // 1
	MasteryFamiliar                     // 2
	MasteryMastered                     // 3
	MasteryExpert                       // 4
)

var (
	masteryNames = [...]string{
		MasteryNew:      "new",
		MasteryLearning: "learning",
		MasteryFamiliar: "familiar",
		MasteryMastered: "mastered",
		MasteryExpert:   "expert",
	}
	masteryByName = map[string]MasteryLevel{
		"new":      MasteryNew,
		"learning": MasteryLearning,
		"familiar": MasteryFamiliar,
		"mastered": MasteryMastered,
		"expert":   MasteryExpert,
	}
)

var (
	_ fmt.Stringer             = MasteryLevel(0)
	_ encoding.TextMarshaler   = MasteryLevel(0)
	_ encoding.TextUnmarshaler = (*MasteryLevel)(nil)
)

// MasteryLevels は全レベルを昇順で返します。
func MasteryLevels() []MasteryLevel {
	return []MasteryLevel{MasteryNew, MasteryLearning, MasteryFamiliar, MasteryMastered, MasteryExpert}
}

func (m MasteryLevel) IsValid() bool {
	return m >= MasteryNew && m <= MasteryExpert
}

func (m MasteryLevel) String() string {
	if m.IsValid() {
		return masteryNames[m]
	}
	return fmt.Sprintf("MasteryLevel(%d)", int(m))
}

// Promote は1段階上のレベルを返します。Expert はそのまま。
func (m MasteryLevel) Promote() MasteryLevel {
	if m >= MasteryExpert {
		return MasteryExpert
	}
	if m < MasteryNew {
		return MasteryNew
	}
	return m + 1
}

// Demote は1段階下のレベルを返します。New はそのまま。
func (m MasteryLevel) Demote() MasteryLevel {
	if m <= MasteryNew {
		return MasteryNew
	}
	if m > MasteryExpert {
		return MasteryExpert
	}
	return m - 1
}

func (m MasteryLevel) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("invalid mastery level: %d", int(m))
	}
	return []byte(masteryNames[m]), nil
}

func (m *MasteryLevel) UnmarshalText(text []byte) error {
	v, err := ParseMasteryLevel(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMasteryLevel は大文字小文字を区別せずにレベル名を解釈します。
func ParseMasteryLevel(s string) (MasteryLevel, error) {
	v, ok := masteryByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return MasteryNew, fmt.Errorf("%w: unknown mastery level %q", ErrInvalidInput, s)
	}
	return v, nil
}
