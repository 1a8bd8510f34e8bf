package cardinal

// English number names. Keys are the written digits a grammar reads.
var (
	digitNames = [][2]string{
		{"1", "one"}, {"2", "two"}, {"3", "three"}, {"4", "four"}, {"5", "five"},
		{"6", "six"}, {"7", "seven"}, {"8", "eight"}, {"9", "nine"},
	}
	zeroName = [2]string{"0", "zero"}

	teenNames = [][2]string{
		{"10", "ten"}, {"11", "eleven"}, {"12", "twelve"}, {"13", "thirteen"},
		{"14", "fourteen"}, {"15", "fifteen"}, {"16", "sixteen"},
		{"17", "seventeen"}, {"18", "eighteen"}, {"19", "nineteen"},
	}

	// tensNames maps the tens digit of 20-99.
	tensNames = [][2]string{
		{"2", "twenty"}, {"3", "thirty"}, {"4", "forty"}, {"5", "fifty"},
		{"6", "sixty"}, {"7", "seventy"}, {"8", "eighty"}, {"9", "ninety"},
	}

	// magnitudes[i] names 10^(3*(i+1)).
	magnitudes = []string{
		"thousand", "million", "billion", "trillion",
		"quadrillion", "quintillion", "sextillion",
	}
)

const (
	// maxNamedDigits is the longest number read with magnitude names: three
	// digits below each of the seven magnitudes plus the leading group.
	maxNamedDigits = 24
	// largeNamedDigits is the limit when large numbers go digit by digit.
	largeNamedDigits = 12
	// alternativeDigitsFrom is the shortest number that also gets a
	// digit-by-digit reading in non-deterministic mode.
	alternativeDigitsFrom = 5

	andWeight    = 0.1
	digitsWeight = 1.0
)
