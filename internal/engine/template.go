package engine

import (
	"regexp"
	"strconv"
)

// placeholderPattern matches {extracted_text_N} references inside message
// templates. The same convention is validated by the rules loader.
var placeholderPattern = regexp.MustCompile(`\{extracted_text_(\d+)\}`)

func placeholderIndex(ref string) int {
	m := placeholderPattern.FindStringSubmatch(ref)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
