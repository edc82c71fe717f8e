// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package biography

import (
	"net/url"
	"strings"
)

var (
	portraitKeywords = []string{"portrait", "headshot", "driver", "racing", "formula", "f1", "head", "face"}
	otherKeywords    = []string{"car", "logo", "track", "circuit", "garage", "pit", "helmet", "trophy", "flag", "map"}
	smallKeywords    = []string{"thumb", "150px", "200px"}
)

// minImageScore is the score an image must beat to be chosen on merit.
const minImageScore = -10

// SelectBestImage picks the URL most likely to be a photo of the driver,
// judged by filename alone. Ties go to the earlier URL.
//
// If nothing scores above minImageScore it falls back to the first JPEG,
// then to the first URL. It returns "" for an empty list.
func SelectBestImage(urls []string, driverName string) string {
	nameParts := strings.Fields(strings.ToLower(driverName))

	best, bestScore := "", 0
	for _, u := range urls {
		if u == "" {
			continue
		}
		score := scoreImage(imageFilename(u), nameParts)
		if best == "" || score > bestScore {
			best, bestScore = u, score
		}
	}
	if best != "" && bestScore > minImageScore {
		return best
	}

	for _, u := range urls {
		if isJPEG(strings.ToLower(u)) {
			return u
		}
	}
	for _, u := range urls {
		if u != "" {
			return u
		}
	}
	return ""
}

func scoreImage(filename string, nameParts []string) int {
	score := 0
	if isJPEG(filename) {
		score += 10
	}
	if strings.Contains(filename, ".svg") {
		score -= 20
	}
	for _, part := range nameParts {
		if strings.Contains(filename, part) {
			score += 15
		}
	}
	for _, kw := range portraitKeywords {
		if strings.Contains(filename, kw) {
			score += 5
		}
	}
	for _, kw := range otherKeywords {
		if strings.Contains(filename, kw) {
			score -= 10
		}
	}
	for _, kw := range smallKeywords {
		if strings.Contains(filename, kw) {
			score -= 5
		}
	}
	return score
}

// imageFilename returns the lowercased, unescaped last path segment of u.
func imageFilename(u string) string {
	name := u
	if i := strings.LastIndex(u, "/"); i >= 0 {
		name = u[i+1:]
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return strings.ToLower(name)
}

func isJPEG(s string) bool {
	return strings.Contains(s, ".jpg") || strings.Contains(s, ".jpeg")
}
