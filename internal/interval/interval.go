// Package interval は忘却曲線に基づく復習間隔の計算と、復習結果による習熟度の状態遷移を扱います。
// I/O を持たない純粋関数だけで構成されています。
package interval

import (
	"math"
	"time"

	"go_4_vocab_review/internal/model"
)

// baseHours は復習回数ごとの基本間隔 (時間)。1h, 8h, 1d, 3d, 1w, 2w, 1mo
var baseHours = [...]float64{1, 8, 24, 72, 168, 336, 720}

var masteryFactors = [...]float64{
	model.MasteryNew:      0.5,
	model.MasteryLearning: 0.7,
	model.MasteryFamiliar: 1.0,
	model.MasteryMastered: 1.5,
	model.MasteryExpert:   2.0,
}

const (
	correctStep   = 0.1
	incorrectStep = 0.2
	// 昇格: reviewCount >= promoteMinReviews かつ difficulty < promoteBelow
	promoteMinReviews = 3
	promoteBelow      = 0.3
	// 降格: difficulty > demoteAbove
	demoteAbove = 0.7
)

// BaseHours は reviewCount に対応する基本間隔を返します。範囲外は両端に丸めます。
func BaseHours(reviewCount int) float64 {
	idx := min(max(reviewCount, 0), len(baseHours)-1)
	return baseHours[idx]
}

// IntervalHours は次回復習までの時間 (整数時間) を返します。
//
//	hours = round(base[reviewCount] * masteryFactor * (1 + difficulty))
func IntervalHours(reviewCount int, mastery model.MasteryLevel, difficulty float64) int {
	mastery = clampMastery(mastery)
	difficulty = clampDifficulty(difficulty)
	hours := BaseHours(reviewCount) * masteryFactors[mastery] * (1.0 + difficulty)
	return int(math.Round(hours))
}

// NextInterval は IntervalHours を time.Duration で返します。
func NextInterval(reviewCount int, mastery model.MasteryLevel, difficulty float64) time.Duration {
	return time.Duration(IntervalHours(reviewCount, mastery, difficulty)) * time.Hour
}

// Baseline は新規項目 (復習0回, New, 初期難易度) の次回復習時刻を返します。
func Baseline(learnedAt time.Time) time.Time {
	return learnedAt.Add(NextInterval(0, model.MasteryNew, model.DefaultDifficulty))
}

// ApplyOutcome は復習結果を反映した新しい項目を返します。入力は変更しません。
// 同じ入力には常に同じ結果を返します。
func ApplyOutcome(item model.LearnedItem, wasCorrect bool, now time.Time) model.LearnedItem {
	out := item.Clone()
	out.Mastery = clampMastery(out.Mastery)
	out.Difficulty = clampDifficulty(out.Difficulty)
	if out.ReviewCount < 0 {
		out.ReviewCount = 0
	}

	// 間隔は今回の復習より前に完了していた回数で引く
	completed := out.ReviewCount
	out.LastReviewedAt = now
	out.ReviewCount++

	if wasCorrect {
		out.Difficulty = quantize(math.Max(0, out.Difficulty-correctStep))
		if out.ReviewCount >= promoteMinReviews && out.Difficulty < promoteBelow {
			out.Mastery = out.Mastery.Promote()
		}
	} else {
		out.Difficulty = quantize(math.Min(1, out.Difficulty+incorrectStep))
		if out.Difficulty > demoteAbove {
			out.Mastery = out.Mastery.Demote()
		}
	}

	out.NextReviewAt = now.Add(NextInterval(completed, out.Mastery, out.Difficulty))
	return out
}

// 0.1 刻みの加減算で閾値比較がずれないよう 0.01 単位に丸める
func quantize(d float64) float64 {
	return math.Round(d*100) / 100
}

func clampDifficulty(d float64) float64 {
	if math.IsNaN(d) {
		return model.DefaultDifficulty
	}
	return math.Min(1, math.Max(0, d))
}

func clampMastery(m model.MasteryLevel) model.MasteryLevel {
	switch {
	case m < model.MasteryNew:
		return model.MasteryNew
	case m > model.MasteryExpert:
		return model.MasteryExpert
	}
	return m
}
