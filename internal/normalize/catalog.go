package normalize

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCatalog is returned by Lookup for a name outside the registry.
var ErrUnknownCatalog = errors.New("unknown catalog")

// Entry is one canonical label together with the spellings that fold into it.
type Entry struct {
	Label    string
	Variants []string
}

type foldedEntry struct {
	label       string
	foldedLabel string
	variants    []string
}

// Catalog maps free text onto a fixed, ordered set of canonical labels.
// Catalogs are built once at package init and never mutated, so a single
// instance is safe for concurrent use.
type Catalog struct {
	name string

	// minSubstringLen is the length both strings must exceed for a
	// containment match against a variant.
	minSubstringLen int

	// labelFloor is the minimum input length for containment against the
	// canonical label itself.
	labelFloor int

	entries  []foldedEntry
	fallback func(string) string
}

func newCatalog(name string, minSubstringLen, labelFloor int, fallback func(string) string, entries []Entry) *Catalog {
	c := &Catalog{
		name:            name,
		minSubstringLen: minSubstringLen,
		labelFloor:      labelFloor,
		fallback:        fallback,
		entries:         make([]foldedEntry, 0, len(entries)),
	}

	for _, e := range entries {
		fe := foldedEntry{
			label:       e.Label,
			foldedLabel: Fold(e.Label),
		}
		seen := make(map[string]struct{}, len(e.Variants)+1)
		for _, v := range append([]string{e.Label}, e.Variants...) {
			fv := Fold(v)
			if fv == "" {
				continue
			}
			if _, dup := seen[fv]; dup {
				continue
			}
			seen[fv] = struct{}{}
			fe.variants = append(fe.variants, fv)
		}
		c.entries = append(c.entries, fe)
	}

	return c
}

// Name returns the registry name of the catalog.
func (c *Catalog) Name() string {
	return c.name
}

// Labels returns the canonical labels in declaration order.
func (c *Catalog) Labels() []string {
	labels := make([]string, len(c.entries))
	for i, e := range c.entries {
		labels[i] = e.label
	}
	return labels
}

// Normalize maps raw onto a canonical label. Matching is attempted in a
// fixed order and the first hit wins:
//
//  1. case-insensitive equality with a canonical label
//  2. accent-folded equality with a known variant
//  3. containment (either direction) with a variant, both longer than minSubstringLen
//  4. containment (either direction) with the canonical label, input at least labelFloor long
//  5. the catalog's fallback formatting of the trimmed input
//
// Entries are scanned in declaration order, so for ambiguous short inputs the
// earlier entry wins. Empty input yields "".
func (c *Catalog) Normalize(raw string) string {
	input := strings.TrimSpace(raw)
	if input == "" {
		return ""
	}

	for _, e := range c.entries {
		if strings.EqualFold(e.label, input) {
			return e.label
		}
	}

	folded := Fold(input)
	for _, e := range c.entries {
		for _, v := range e.variants {
			if v == folded {
				return e.label
			}
		}
	}

	inputLen := runeLen(folded)
	if inputLen > c.minSubstringLen {
		for _, e := range c.entries {
			for _, v := range e.variants {
				if runeLen(v) <= c.minSubstringLen {
					continue
				}
				if strings.Contains(folded, v) || strings.Contains(v, folded) {
					return e.label
				}
			}
		}
	}

	if inputLen >= c.labelFloor {
		for _, e := range c.entries {
			if strings.Contains(folded, e.foldedLabel) || strings.Contains(e.foldedLabel, folded) {
				return e.label
			}
		}
	}

	return c.fallback(input)
}

// NormalizeList normalizes every comma-separated segment of raw, drops empty
// results and duplicates (keeping first-seen order) and joins with ", ".
func (c *Catalog) NormalizeList(raw string) string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))

	for _, part := range parts {
		label := c.Normalize(part)
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}

	return strings.Join(out, ", ")
}

// Registry names, matching the candidate field each catalog serves.
const (
	CatalogCity          = "city"
	CatalogSource        = "source"
	CatalogInterestAreas = "interestAreas"
)

var registry = map[string]*Catalog{
	CatalogCity:          Cities,
	CatalogSource:        Sources,
	CatalogInterestAreas: InterestAreas,
}

// Lookup returns the catalog registered under name.
func Lookup(name string) (*Catalog, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCatalog, name)
	}
	return c, nil
}

// CatalogNames lists the registered catalogs in a stable order.
func CatalogNames() []string {
	return []string{CatalogCity, CatalogSource, CatalogInterestAreas}
}

// Normalize runs raw through the named catalog.
func Normalize(catalog, raw string) (string, error) {
	c, err := Lookup(catalog)
	if err != nil {
		return "", err
	}
	return c.Normalize(raw), nil
}

// NormalizeList runs each comma-separated segment of raw through the named catalog.
func NormalizeList(catalog, raw string) (string, error) {
	c, err := Lookup(catalog)
	if err != nil {
		return "", err
	}
	return c.NormalizeList(raw), nil
}

func City(raw string) string         { return Cities.Normalize(raw) }
func Source(raw string) string       { return Sources.Normalize(raw) }
func InterestArea(raw string) string { return InterestAreas.Normalize(raw) }

// InterestAreaList normalizes a comma-separated list of interest areas.
func InterestAreaList(raw string) string {
	return InterestAreas.NormalizeList(raw)
}
