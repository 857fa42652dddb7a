// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package present renders recommendation results for the terminal.
//
// Every entry shows rank, title, year, director, genres, moods, era, the
// justification and the source file description. Output is cold-start framed
// when no source is a real facet match.
package present

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/reelmatch/internal/models"
)

// UnknownDirector is shown when an entry carries no director.
const UnknownDirector = "Unknown"

// IsColdStart reports whether sources contain nothing but fallback files.
func IsColdStart(sources []string) bool {
	for _, s := range sources {
		if strings.TrimSpace(s) != "" && !models.IsFallbackDescription(s) {
			return false
		}
	}
	return true
}

// Format writes the first topN results for user to w. topN <= 0 shows all.
func Format(w io.Writer, results []models.Recommendation, sources []string, user string, topN int) error {
	bw := bufio.NewWriter(w)

	if IsColdStart(sources) {
		fmt.Fprintf(bw, "\nPopular movies for %s (cold start - no matching preferences yet):\n", user)
	} else {
		fmt.Fprintf(bw, "\nMovie recommendations for %s based on matched categories:\n", user)
		for _, s := range sources {
			if s != "" && !models.IsFallbackDescription(s) {
				fmt.Fprintf(bw, "  * %s\n", s)
			}
		}
	}

	if len(results) == 0 {
		fmt.Fprintln(bw, "\nNo recommendations found.")
		return bw.Flush()
	}

	shown := results
	if topN > 0 && topN < len(shown) {
		shown = shown[:topN]
	}
	for i := range shown {
		writeEntry(bw, i+1, &shown[i])
	}

	if len(shown) < len(results) {
		fmt.Fprintf(bw, "\n(%d more available)\n", len(results)-len(shown))
	}
	return bw.Flush()
}

func writeEntry(w io.Writer, position int, rec *models.Recommendation) {
	director := rec.Director
	if strings.TrimSpace(director) == "" {
		director = UnknownDirector
	}

	fmt.Fprintf(w, "\n%d. %s", position, rec.Title)
	if rec.Year > 0 {
		fmt.Fprintf(w, " (%d)", rec.Year)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "   Director: %s\n", director)
	fmt.Fprintf(w, "   Genre: %s\n", joinOrDash(rec.Genre))
	fmt.Fprintf(w, "   Mood: %s\n", joinOrDash(rec.Mood))
	fmt.Fprintf(w, "   Era: %s\n", orDash(rec.Era))
	fmt.Fprintf(w, "   Why: %s\n", orDash(rec.WhyRecommended))
	if rec.Source != "" {
		fmt.Fprintf(w, "   Source: %s\n", rec.Source)
	}
}

// Header writes text framed by rules of the given width.
func Header(w io.Writer, text string, width int) {
	rule := strings.Repeat("=", width)
	fmt.Fprintf(w, "\n%s\n  %s\n%s\n", rule, text, rule)
}

// Numbered writes items as a 1-based numbered list.
func Numbered(w io.Writer, items []string) {
	for i, item := range items {
		fmt.Fprintf(w, "%d. %s\n", i+1, item)
	}
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
