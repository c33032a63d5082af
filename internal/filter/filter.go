package filter

import (
	"regexp"

	"golang.org/x/text/cases"

	"perch/internal/faults"
	"perch/internal/media"
)

// fold normalizes a tag for comparison. Casers carry internal state, so a
// fresh one is taken per call instead of sharing a package-level instance.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Filter holds immutable acceptance criteria for media items.
type Filter struct {
	tags     []string
	matchAny bool
	pattern  *regexp.Regexp
}

// New builds a filter from required tags and an optional regex pattern.
// Tags are stored case-folded. An invalid pattern fails with ErrValidation.
func New(tags []string, matchAny bool, pattern string) (*Filter, error) {
	f := &Filter{matchAny: matchAny}
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		f.tags = append(f.tags, fold(tag))
	}
	if pattern != "" {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, faults.Wrap(faults.ErrValidation, "filter", "compile pattern",
				"invalid regular expression", err)
		}
		f.pattern = compiled
	}
	return f, nil
}

// Empty reports whether the filter has no criteria configured.
func (f *Filter) Empty() bool {
	return f == nil || (len(f.tags) == 0 && f.pattern == nil)
}

// Accepts applies the tag and pattern rules. A nil filter accepts everything.
func (f *Filter) Accepts(item media.Item) bool {
	if f == nil {
		return true
	}
	if len(f.tags) > 0 && !f.acceptsTags(item) {
		return false
	}
	if f.pattern != nil {
		if item.Path == "" {
			return false
		}
		if !f.pattern.MatchString(item.Path) {
			return false
		}
	}
	return true
}

func (f *Filter) acceptsTags(item media.Item) bool {
	if item.Record == nil {
		return false
	}
	have := make(map[string]struct{}, len(item.Record.Tags))
	for _, tag := range item.Record.Tags {
		have[fold(tag)] = struct{}{}
	}
	if f.matchAny {
		for _, tag := range f.tags {
			if _, ok := have[tag]; ok {
				return true
			}
		}
		return false
	}
	for _, tag := range f.tags {
		if _, ok := have[tag]; !ok {
			return false
		}
	}
	return true
}
