package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Uncategorized is the synthetic chapter bucket for questions with a
// blank chapter label.
const Uncategorized = "Uncategorized"

var moduleLabelRe = regexp.MustCompile(`(?i)^module[\s:_-]*(\d+)`)

// NormalizeChapter maps blank chapter labels to the Uncategorized
// sentinel and trims the rest.
func NormalizeChapter(chapter string) string {
	c := strings.TrimSpace(chapter)
	if c == "" {
		return Uncategorized
	}
	return c
}

// UniqueYears returns the distinct years present in questions, newest
// first. Questions without a year are ignored.
func UniqueYears(questions []Question) []int {
	seen := make(map[int]bool)
	var years []int
	for i := range questions {
		y := questions[i].Year
		if y == 0 || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// UniqueChapters returns the distinct chapter labels present in
// questions. Labels of the form "Module N" sort by N ascending and
// before everything else; other labels follow lexicographically. When
// any question has a blank chapter, the Uncategorized sentinel is
// appended once at the very end.
func UniqueChapters(questions []Question) []string {
	seen := make(map[string]bool)
	var labels []string
	hasBlank := false
	for i := range questions {
		c := NormalizeChapter(questions[i].Chapter)
		if c == Uncategorized {
			hasBlank = true
			continue
		}
		if !seen[c] {
			seen[c] = true
			labels = append(labels, c)
		}
	}

	sort.SliceStable(labels, func(i, j int) bool {
		ni, iMod := moduleNumber(labels[i])
		nj, jMod := moduleNumber(labels[j])
		switch {
		case iMod && jMod:
			if ni != nj {
				return ni < nj
			}
			return labels[i] < labels[j]
		case iMod:
			return true
		case jMod:
			return false
		default:
			return labels[i] < labels[j]
		}
	})

	if hasBlank {
		labels = append(labels, Uncategorized)
	}
	return labels
}

// moduleNumber extracts N from a "Module N..." label.
func moduleNumber(label string) (int, bool) {
	m := moduleLabelRe.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Filter keeps the questions matching the selected years and chapters.
// An empty selection on a dimension passes everything through; both
// dimensions apply as AND when non-empty. Chapters are normalized to
// the Uncategorized sentinel before matching.
func Filter(questions []Question, years map[int]bool, chapters map[string]bool) []Question {
	out := make([]Question, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		if len(years) > 0 && !years[q.Year] {
			continue
		}
		if len(chapters) > 0 && !chapters[NormalizeChapter(q.Chapter)] {
			continue
		}
		out = append(out, *q)
	}
	return out
}

// SortDefault orders questions for display: year descending with
// unknown years last, then qNumber ascending. The sort is stable, so
// equal keys keep their catalog order.
func SortDefault(questions []Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].Year != questions[j].Year {
			return questions[i].Year > questions[j].Year
		}
		return questions[i].QNumber < questions[j].QNumber
	})
}
