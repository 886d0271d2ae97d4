package resolver

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Isilon/isilon-sdk/internal/issues"
	"github.com/Isilon/isilon-sdk/internal/severity"
	"github.com/Isilon/isilon-sdk/oaserrors"
)

// Pair is a collection endpoint and its item endpoint. Either side may be
// empty, never both.
type Pair struct {
	Base string `json:"base,omitempty"`
	Item string `json:"item,omitempty"`
}

// Key is the URI the pair sorts by: the base when present, else the item.
func (p Pair) Key() string {
	if p.Base != "" {
		return p.Base
	}
	return p.Item
}

// IsOrphan reports whether the pair is an item without a collection.
func (p Pair) IsOrphan() bool {
	return p.Base == "" && p.Item != ""
}

func (p Pair) String() string {
	base, item := p.Base, p.Item
	if base == "" {
		base = "-"
	}
	if item == "" {
		item = "-"
	}
	return base + " " + item
}

// Result holds the resolved pairs and everything that was skipped.
type Result struct {
	Pairs []Pair
	// Excluded lists selected URIs dropped because they were in the exclusion set.
	Excluded []string
	// Errors holds a *oaserrors.VersionError for every URI with an
	// unparseable version segment.
	Errors []error
	Issues issues.List
}

type entry struct {
	uri     string
	suffix  string
	version int
	ok      bool
}

// Resolve selects, pairs and orders the URIs of a directory listing.
// URIs in exclude are dropped after version selection.
func Resolve(uris []string, exclude []string) *Result {
	res := &Result{}
	excluded := make(map[string]bool, len(exclude))
	for _, uri := range exclude {
		excluded[uri] = true
	}

	entries := make([]entry, 0, len(uris))
	for _, uri := range uris {
		entries = append(entries, res.classify(uri))
	}

	var bases baseSet
	for start := 0; start < len(entries); {
		end := start + 1
		for end < len(entries) && entries[end].suffix == entries[start].suffix {
			end++
		}
		selected, found := highest(entries[start:end])
		start = end
		if !found {
			continue
		}

		uri := selected.uri
		if excluded[uri] {
			res.Excluded = append(res.Excluded, uri)
			continue
		}

		if !strings.HasSuffix(uri, ">") {
			bases.put(selected.suffix, uri)
			continue
		}

		baseKey := selected.suffix[:strings.LastIndexByte(selected.suffix, '/')]
		if base, ok := bases.claim(baseKey); ok {
			res.Pairs = append(res.Pairs, Pair{Base: base, Item: uri})
		} else {
			res.Pairs = append(res.Pairs, Pair{Item: uri})
		}
	}

	for _, base := range bases.unclaimed() {
		res.Pairs = append(res.Pairs, Pair{Base: base})
	}

	Sort(res.Pairs)
	return res
}

// classify splits a URI into its version and suffix, recording an issue
// when the version is not a usable integer.
func (r *Result) classify(uri string) entry {
	trimmed := strings.TrimPrefix(uri, "/")
	segment, rest, _ := strings.Cut(trimmed, "/")
	e := entry{uri: uri, suffix: "/" + rest}

	if v, err := strconv.Atoi(segment); err == nil {
		e.version = v
		e.ok = true
		return e
	}
	if _, err := strconv.ParseFloat(segment, 64); err == nil {
		r.Issues.Add(severity.SeverityInfo, uri, "",
			fmt.Sprintf("skipping fractional version %q", segment))
		return e
	}

	err := &oaserrors.VersionError{Endpoint: uri, Segment: segment}
	r.Errors = append(r.Errors, err)
	r.Issues.Add(severity.SeverityError, uri, "", err.Error())
	return e
}

// highest picks the run member with the numerically largest integer version.
func highest(run []entry) (entry, bool) {
	var best entry
	found := false
	for _, e := range run {
		if !e.ok {
			continue
		}
		if !found || e.version > best.version {
			best = e
			found = true
		}
	}
	return best, found
}

// Less orders two URIs: when one is a prefix of the other the shorter comes
// first, otherwise plain string order applies.
func Less(a, b string) bool {
	if strings.HasPrefix(a, b) || strings.HasPrefix(b, a) {
		return len(a) < len(b)
	}
	return a < b
}

// Sort orders pairs by their keys using [Less]. The sort is stable.
func Sort(pairs []Pair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		return Less(pairs[i].Key(), pairs[j].Key())
	})
}

// baseSet is an insertion-ordered map of collection URIs keyed by suffix.
type baseSet struct {
	order []string
	uris  map[string]string
}

func (s *baseSet) put(suffix, uri string) {
	if s.uris == nil {
		s.uris = make(map[string]string)
	}
	if _, ok := s.uris[suffix]; !ok {
		s.order = append(s.order, suffix)
	}
	s.uris[suffix] = uri
}

func (s *baseSet) claim(suffix string) (string, bool) {
	uri, ok := s.uris[suffix]
	if ok {
		delete(s.uris, suffix)
	}
	return uri, ok
}

func (s *baseSet) unclaimed() []string {
	var out []string
	for _, suffix := range s.order {
		if uri, ok := s.uris[suffix]; ok {
			out = append(out, uri)
			// a suffix claimed and put again is listed twice in order
			delete(s.uris, suffix)
		}
	}
	return out
}
