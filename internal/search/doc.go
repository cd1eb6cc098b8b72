// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package search is an in-memory full-text index over posts.
//
// Each document has two fields, the post text and the alt text of its media.
// Terms are split on anything that is not a letter, number or mark and are
// case folded. A query matches a document when any of its terms matches an
// indexed term exactly or within the fuzzy edit distance; results are ranked
// with BM25+.
package search
