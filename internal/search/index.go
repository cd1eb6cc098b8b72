// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package search

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/MKhiriev/sky-shelf/models"
)

const (
	// DefaultFuzziness is the edit distance allowed per character of a
	// query term.
	DefaultFuzziness = 0.1

	// maxFuzzyDistance caps the edit distance for long terms.
	maxFuzzyDistance = 6

	// fuzzyWeight scales the score of a non-exact term match.
	fuzzyWeight = 0.45

	// BM25+ parameters.
	bm25K = 1.2
	bm25B = 0.7
	bm25D = 0.5
)

// Result is a ranked match.
type Result struct {
	ID    string
	Score float64
	// Terms are the indexed terms that matched, sorted.
	Terms []string
}

type fieldCounts [numFields]int

// Index is an in-memory fuzzy full-text index. It is safe for concurrent
// use.
type Index struct {
	mu sync.RWMutex

	// postings maps a term to the per-field frequency of every document
	// containing it.
	postings map[string]map[string]fieldCounts
	// lengths holds the per-field term count of every document.
	lengths map[string]fieldCounts
	total   fieldCounts
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{
		postings: make(map[string]map[string]fieldCounts),
		lengths:  make(map[string]fieldCounts),
	}
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.lengths)
}

// Has reports whether a document with id is indexed.
func (idx *Index) Has(id string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, ok := idx.lengths[id]
	return ok
}

// Clear removes every document.
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.clear()
}

func (idx *Index) clear() {
	idx.postings = make(map[string]map[string]fieldCounts)
	idx.lengths = make(map[string]fieldCounts)
	idx.total = fieldCounts{}
}

// Insert adds doc. An ID that is empty or already present is rejected.
func (idx *Index) Insert(doc Document) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.insert(doc)
}

func (idx *Index) insert(doc Document) error {
	if doc.ID == "" {
		return ErrEmptyID
	}
	if _, ok := idx.lengths[doc.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, doc.ID)
	}

	var lengths fieldCounts
	for f := Field(0); f < numFields; f++ {
		terms := Tokenize(doc.field(f))
		lengths[f] = len(terms)
		idx.total[f] += len(terms)

		for _, term := range terms {
			docs, ok := idx.postings[term]
			if !ok {
				docs = make(map[string]fieldCounts)
				idx.postings[term] = docs
			}
			counts := docs[doc.ID]
			counts[f]++
			docs[doc.ID] = counts
		}
	}
	idx.lengths[doc.ID] = lengths

	return nil
}

// Rebuild replaces the whole index with docs. It stops at the first
// rejected document and returns its error; documents inserted before it
// stay searchable.
func (idx *Index) Rebuild(docs []Document) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.clear()
	for _, doc := range docs {
		if err := idx.insert(doc); err != nil {
			return err
		}
	}
	return nil
}

// RebuildPosts is [Index.Rebuild] over the documents of posts.
func (idx *Index) RebuildPosts(posts []models.PostView) error {
	docs := make([]Document, len(posts))
	for i, p := range posts {
		docs[i] = DocumentFromPost(p)
	}
	return idx.Rebuild(docs)
}

// Search returns the documents matching any term of query, best first.
//
// fuzziness below 1 is a fraction of each term's length, rounded to the
// nearest whole edit; 1 or more is an absolute edit distance. Zero disables
// fuzzy matching.
func (idx *Index) Search(query string, fuzziness float64) []Result {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	n := len(idx.lengths)
	if n == 0 {
		return nil
	}

	var avg [numFields]float64
	for f := Field(0); f < numFields; f++ {
		avg[f] = float64(idx.total[f]) / float64(n)
	}

	scores := make(map[string]float64)
	matched := make(map[string]map[string]struct{})

	for _, qt := range terms {
		for term, weight := range idx.expand(qt, fuzziness) {
			docs := idx.postings[term]
			for id, counts := range docs {
				var s float64
				for f := Field(0); f < numFields; f++ {
					if counts[f] == 0 {
						continue
					}
					s += bm25Plus(counts[f], idx.lengths[id][f], avg[f], docFrequency(docs, f), n)
				}
				if s == 0 {
					continue
				}
				scores[id] += s * weight
				if matched[id] == nil {
					matched[id] = make(map[string]struct{})
				}
				matched[id][term] = struct{}{}
			}
		}
	}

	results := make([]Result, 0, len(scores))
	for id, score := range scores {
		ts := make([]string, 0, len(matched[id]))
		for t := range matched[id] {
			ts = append(ts, t)
		}
		sort.Strings(ts)
		results = append(results, Result{ID: id, Score: score, Terms: ts})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	return results
}

// IDs returns the result IDs as a set.
func IDs(results []Result) map[string]struct{} {
	set := make(map[string]struct{}, len(results))
	for _, r := range results {
		set[r.ID] = struct{}{}
	}
	return set
}

// expand returns the indexed terms matching qt with their weights.
func (idx *Index) expand(qt string, fuzziness float64) map[string]float64 {
	out := make(map[string]float64)
	if _, ok := idx.postings[qt]; ok {
		out[qt] = 1
	}

	maxDist := MaxDistance(qt, fuzziness)
	if maxDist == 0 {
		return out
	}

	qLen := utf8.RuneCountInString(qt)
	for term := range idx.postings {
		if term == qt {
			continue
		}
		tLen := utf8.RuneCountInString(term)
		if abs(tLen-qLen) > maxDist {
			continue
		}
		dist := levenshtein.ComputeDistance(qt, term)
		if dist > maxDist {
			continue
		}
		out[term] = fuzzyWeight * float64(qLen) / float64(qLen+dist)
	}
	return out
}

// MaxDistance is the edit distance allowed for term at fuzziness.
func MaxDistance(term string, fuzziness float64) int {
	if fuzziness <= 0 {
		return 0
	}

	var d int
	if fuzziness < 1 {
		d = int(math.Round(fuzziness * float64(utf8.RuneCountInString(term))))
	} else {
		d = int(fuzziness)
	}
	return min(d, maxFuzzyDistance)
}

func docFrequency(docs map[string]fieldCounts, f Field) int {
	df := 0
	for _, c := range docs {
		if c[f] > 0 {
			df++
		}
	}
	return df
}

func bm25Plus(tf, fieldLen int, avgLen float64, df, n int) float64 {
	idf := math.Log(1 + (float64(n)-float64(df)+0.5)/(float64(df)+0.5))
	norm := 1.0
	if avgLen > 0 {
		norm = 1 - bm25B + bm25B*float64(fieldLen)/avgLen
	}
	return idf * (bm25D + float64(tf)*(bm25K+1)/(float64(tf)+bm25K*norm))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
