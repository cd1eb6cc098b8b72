// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Tokenize splits s into case-folded terms.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(s, isSeparator)
	if len(fields) == 0 {
		return nil
	}

	// a Caser keeps state between calls and cannot be shared
	folder := cases.Fold()
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		terms = append(terms, folder.String(f))
	}
	return terms
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsMark(r)
}
