package extract

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// numberToken matches a standalone integer token anywhere on a line.
	numberToken = regexp.MustCompile(`\b(\d+)\b`)

	// prefixedNumber matches letters immediately followed by digits,
	// e.g. "PEX50292". The digit run is the identifier.
	prefixedNumber = regexp.MustCompile(`[A-Za-z]+(\d+)`)

	// leadingWord captures the first word token of a line. Leading
	// indentation is skipped, so "  pageextension 50100 ..." still yields
	// "pageextension".
	leadingWord = regexp.MustCompile(`^\s*(\w+)`)

	// fileNamePrefix matches "<word>[digits] - " in a file's base name;
	// everything after it is the object name.
	fileNamePrefix = regexp.MustCompile(`\w+\d* - `)
)

// extendsKeyword precedes the extended object's name on the declaration line.
const extendsKeyword = "extends "

// utf8BOM is stripped from the first line; AL files are frequently saved with one.
const utf8BOM = "\uFEFF"

// matchContentNumber returns the first standalone integer on line.
func matchContentNumber(line string) (int, bool) {
	return firstDigitRun(numberToken, line)
}

// matchPrefixedNumber returns the digits of the first letters+digits token on line.
func matchPrefixedNumber(line string) (int, bool) {
	return firstDigitRun(prefixedNumber, line)
}

// firstDigitRun applies re to s and converts its first capture group.
// Digit runs too large for an int are treated as no match.
func firstDigitRun(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// categoryOf returns the leading word token of line, or "" if there is none.
// Indentation before the token is tolerated; any other leading character,
// such as a quote, yields "".
func categoryOf(line string) string {
	m := leadingWord.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// objectNameFromLine returns the text after "extends " with double quotes
// removed and trailing whitespace trimmed. Empty when the keyword is absent.
func objectNameFromLine(line string) string {
	idx := strings.Index(line, extendsKeyword)
	if idx < 0 {
		return ""
	}
	name := line[idx+len(extendsKeyword):]
	name = strings.ReplaceAll(name, `"`, "")
	return strings.TrimRightFunc(name, unicode.IsSpace)
}

// objectNameFromFileName returns the part of the base name (extension
// stripped) after the first "<word>[digits] - " separator.
//
//	"PEX - Posted Purchase Invoices.al" → "Posted Purchase Invoices"
func objectNameFromFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	loc := fileNamePrefix.FindStringIndex(base)
	if loc == nil {
		return ""
	}
	return strings.TrimRightFunc(base[loc[1]:], unicode.IsSpace)
}
