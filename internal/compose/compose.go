// Package compose assembles the weekly post from the computed progress, the bar and the sentence.
package compose

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"chrona-bot/internal/types"
)

// DefaultMaxWeightedLength is X's limit for a standard account.
const DefaultMaxWeightedLength = 280

const ellipsis = "…"

// ErrMessageTooLong is returned when the message exceeds the limit even with no sentence at all.
var ErrMessageTooLong = errors.New("composed message exceeds maximum length")

var weekdaysJA = [...]string{"日", "月", "火", "水", "木", "金", "土"}

type Options struct {
	MaxWeightedLength int
}

// Compose renders the post. When the result would be longer than the limit, the sentence is
// shortened and suffixed with an ellipsis.
func Compose(p types.YearProgress, bar, sentence string, today time.Time, opts Options) (string, error) {
	limit := opts.MaxWeightedLength
	if limit <= 0 {
		limit = DefaultMaxWeightedLength
	}

	header := Header(p, bar, today)
	msg := header + sentence
	if WeightedLength(msg) <= limit {
		return msg, nil
	}

	if WeightedLength(strings.TrimRight(header, "\n")) > limit {
		return "", fmt.Errorf("%w: %d > %d", ErrMessageTooLong, WeightedLength(header), limit)
	}

	runes := []rune(sentence)
	for n := len(runes) - 1; n > 0; n-- {
		msg = header + strings.TrimSpace(string(runes[:n])) + ellipsis
		if WeightedLength(msg) <= limit {
			return msg, nil
		}
	}
	return strings.TrimRight(header, "\n"), nil
}

// Header is everything in the post that precedes the sentence, including the blank line.
func Header(p types.YearProgress, bar string, today time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "本日は%d年%d月%d日（%s）\n\n", today.Year(), int(today.Month()), today.Day(), weekdaysJA[today.Weekday()])
	fmt.Fprintf(&b, "⏳ 経過日数：%d日 / %d日\n", p.ElapsedDays, p.TotalDays)
	fmt.Fprintf(&b, "⌛ 残り日数：%d日\n", p.RemainingDays)
	fmt.Fprintf(&b, "📈 進行度：[%s] %d%%\n\n", bar, p.Percent)
	return b.String()
}
