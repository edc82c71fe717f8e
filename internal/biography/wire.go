// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package biography

// MediaWiki action API responses, formatversion=2.

type searchResponse struct {
	Query struct {
		Search []searchHit `json:"search"`
	} `json:"query"`
}

type searchHit struct {
	Title  string `json:"title"`
	PageID int    `json:"pageid"`
}

type pagesResponse struct {
	Query struct {
		Pages []page `json:"pages"`
	} `json:"query"`
}

type page struct {
	PageID    int         `json:"pageid"`
	Title     string      `json:"title"`
	Missing   bool        `json:"missing"`
	Extract   string      `json:"extract"`
	FullURL   string      `json:"fullurl"`
	ImageInfo []imageInfo `json:"imageinfo"`
}

type imageInfo struct {
	URL string `json:"url"`
}
