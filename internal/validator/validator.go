// Package validator checks generated pages for broken anchors and links.
package validator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Problem is one broken reference in a page.
type Problem struct {
	File    string
	Message string
}

func (p Problem) String() string { return p.File + ": " + p.Message }

// PageStats counts what a page checked.
type PageStats struct {
	Anchors int
	Links   int
}

// ValidatePage checks one page. Every "./#x" fragment link must have a
// matching named anchor, and every relative ".html" link must point at a
// page for which exists reports true.
func ValidatePage(file string, r io.Reader, exists func(page string) bool) (PageStats, []Problem, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return PageStats{}, nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	anchors := make(map[string]bool)
	doc.Find("a[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		anchors[name] = true
	})

	var stats PageStats
	stats.Anchors = len(anchors)
	var problems []Problem
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		switch {
		case strings.HasPrefix(href, "./#"):
			stats.Links++
			if target := strings.TrimPrefix(href, "./#"); !anchors[target] {
				problems = append(problems, Problem{File: file, Message: fmt.Sprintf("no anchor named %q", target)})
			}
		case isRelativePage(href):
			stats.Links++
			page := strings.TrimPrefix(href, "./")
			if i := strings.IndexByte(page, '#'); i >= 0 {
				page = page[:i]
			}
			if !exists(page) {
				problems = append(problems, Problem{File: file, Message: fmt.Sprintf("link to missing page %s", page)})
			}
		}
	})
	return stats, problems, nil
}

func isRelativePage(href string) bool {
	if strings.Contains(href, "://") || strings.HasPrefix(href, "#") {
		return false
	}
	page, _, _ := strings.Cut(href, "#")
	return strings.HasSuffix(page, ".html")
}

// ValidateDir checks every page in dir and writes a line per page to w.
func ValidateDir(dir string, w io.Writer) ([]Problem, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no pages found in %s", dir)
	}
	sort.Strings(matches)

	pages := make(map[string]bool, len(matches))
	for _, m := range matches {
		pages[filepath.Base(m)] = true
	}
	exists := func(page string) bool {
		if pages[page] {
			return true
		}
		_, err := os.Stat(filepath.Join(dir, page))
		return err == nil
	}

	var all []Problem
	for _, m := range matches {
		f, err := os.Open(m)
		if err != nil {
			return nil, fmt.Errorf("failed to open page: %w", err)
		}
		stats, problems, err := ValidatePage(filepath.Base(m), f, exists)
		f.Close()
		if err != nil {
			return nil, err
		}
		mark := "✓"
		if len(problems) > 0 {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s: %d anchors, %d links\n", mark, filepath.Base(m), stats.Anchors, stats.Links)
		all = append(all, problems...)
	}
	return all, nil
}
