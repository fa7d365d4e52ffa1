// Package catalog models the chapter/subchapter topic tree served by the
// quiz service and the single-topic selection a question is generated for.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/smartest/internal/rules"
)

// Subchapter is a leaf topic.
type Subchapter struct {
	Number int    `json:"subchapter_number"`
	Name   string `json:"subchapter_name"`
}

// Chapter groups subchapters.
type Chapter struct {
	Number      int          `json:"chapter_number"`
	Name        string       `json:"chapter_name"`
	Subchapters []Subchapter `json:"subchapters"`
}

// Catalog is the full topic tree.
type Catalog struct {
	Chapters []Chapter `json:"chapters"`
}

// Selection identifies exactly one subchapter.
type Selection struct {
	Chapter    int
	Subchapter int
}

// String returns the "ch:sub" selector form.
func (s Selection) String() string {
	return fmt.Sprintf("%d:%d", s.Chapter, s.Subchapter)
}

// ParseSelection parses a "ch:sub" selector.
func ParseSelection(s string) (Selection, error) {
	ch, sub, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Selection{}, fmt.Errorf("invalid selector %q: want chapter:subchapter", s)
	}
	c, err := strconv.Atoi(strings.TrimSpace(ch))
	if err != nil {
		return Selection{}, fmt.Errorf("invalid chapter in %q: %w", s, err)
	}
	sc, err := strconv.Atoi(strings.TrimSpace(sub))
	if err != nil {
		return Selection{}, fmt.Errorf("invalid subchapter in %q: %w", s, err)
	}
	return Selection{Chapter: c, Subchapter: sc}, nil
}

// ParseSelections parses a comma-separated selector list, skipping blanks.
func ParseSelections(s string) ([]Selection, error) {
	var out []Selection
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		sel, err := ParseSelection(part)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

// kindBySelection maps a subchapter to the options its generator accepts.
var kindBySelection = map[Selection]rules.Kind{
	{Chapter: 1, Subchapter: 1}: rules.KindSearchStrategies,
	{Chapter: 2, Subchapter: 1}: rules.KindNash,
	{Chapter: 2, Subchapter: 2}: rules.KindMinMax,
	{Chapter: 3, Subchapter: 1}: rules.KindCSP,
}

// KindFor returns the problem kind for a selection, or rules.KindUnknown.
func KindFor(sel Selection) rules.Kind {
	if k, ok := kindBySelection[sel]; ok {
		return k
	}
	return rules.KindUnknown
}

// Label returns "Chapter · Subchapter" for a selection, falling back to the
// selector form when the catalog does not contain it.
func (c Catalog) Label(sel *Selection) string {
	if sel == nil {
		return "No selection"
	}
	for _, ch := range c.Chapters {
		if ch.Number != sel.Chapter {
			continue
		}
		for _, sc := range ch.Subchapters {
			if sc.Number == sel.Subchapter {
				return ch.Name + " · " + sc.Name
			}
		}
	}
	return sel.String()
}

// Entry is one selectable row of a flattened catalog.
type Entry struct {
	Selection Selection
	Chapter   string
	Text      string
}

// Entries flattens the catalog in display order, keeping only subchapters
// whose chapter or subchapter name contains filter (case-insensitive).
func (c Catalog) Entries(filter string) []Entry {
	q := strings.ToLower(strings.TrimSpace(filter))
	var out []Entry
	for _, ch := range c.Chapters {
		for _, sc := range ch.Subchapters {
			haystack := strings.ToLower(ch.Name + " " + sc.Name)
			if q != "" && !strings.Contains(haystack, q) {
				continue
			}
			out = append(out, Entry{
				Selection: Selection{Chapter: ch.Number, Subchapter: sc.Number},
				Chapter:   fmt.Sprintf("%d. %s", ch.Number, ch.Name),
				Text:      fmt.Sprintf("%d. %s", sc.Number, sc.Name),
			})
		}
	}
	return out
}

// Contains reports whether sel names a subchapter in the catalog.
func (c Catalog) Contains(sel Selection) bool {
	for _, ch := range c.Chapters {
		if ch.Number != sel.Chapter {
			continue
		}
		for _, sc := range ch.Subchapters {
			if sc.Number == sel.Subchapter {
				return true
			}
		}
	}
	return false
}
