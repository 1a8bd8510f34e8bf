package grammar

import "github.com/baditaflorin/go_text_normalization/pkg/fst"

const (
	DigitChars   = "0123456789"
	LowerChars   = "abcdefghijklmnopqrstuvwxyz"
	UpperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	SpokenChars  = LowerChars + " -"
	MinusSign    = "-"
	GroupingMark = ","
)

var (
	digit        = fst.AnyOf(DigitChars)
	nonZeroDigit = fst.AnyOf(DigitChars[1:])
	alpha        = fst.AnyOf(LowerChars + UpperChars)
	spoken       = fst.AnyOf(SpokenChars)
)

// Digit accepts one of 0-9.
func Digit() *fst.Fst { return digit }

// NonZeroDigit accepts one of 1-9.
func NonZeroDigit() *fst.Fst { return nonZeroDigit }

// Alpha accepts one ASCII letter.
func Alpha() *fst.Fst { return alpha }

// SpokenChar accepts one character that may appear in spoken output.
func SpokenChar() *fst.Fst { return spoken }

// DigitRun accepts between min and max digits; max < 0 means unbounded.
func DigitRun(min, max int) *fst.Fst {
	return fst.Closure(digit, min, max)
}

// InsertSpace writes a single space.
func InsertSpace() *fst.Fst { return fst.Insert(" ") }

// InsertField wraps value as `key: "value"`.
func InsertField(key string, value *fst.Fst) *fst.Fst {
	return fst.Concat(fst.Insert(key+`: "`), value, fst.Insert(`"`))
}

// DeleteField reads `key: "..."` and keeps only what value writes for the
// quoted part.
func DeleteField(key string, value *fst.Fst) *fst.Fst {
	return fst.Concat(fst.Delete(key+`: "`), value, fst.Delete(`"`))
}
