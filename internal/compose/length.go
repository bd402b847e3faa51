package compose

// Code point ranges X counts as a single character. Everything else (CJK, emoji) counts as two.
var lightRanges = [...][2]rune{
	{0x0000, 0x10FF},
	{0x2000, 0x200D},
	{0x2010, 0x201F},
	{0x2032, 0x2037},
}

// WeightedLength approximates X's weighted post length. Emoji sequences joined with ZWJ are
// counted per code point, which overestimates and therefore never lets a post through that X
// would reject.
func WeightedLength(s string) int {
	n := 0
	for _, r := range s {
		n += runeWeight(r)
	}
	return n
}

func runeWeight(r rune) int {
	for _, rg := range lightRanges {
		if r >= rg[0] && r <= rg[1] {
			return 1
		}
	}
	return 2
}
