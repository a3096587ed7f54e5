package model

import (
	"fmt"
	"slices"
	"strings"
)

// NormalizeTags lowercases and validates tags, returning them sorted and
// de-duplicated. Tags may only contain [a-z0-9_-].
func NormalizeTags(tags []string) ([]string, error) {
	var out []string
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if err := ValidateTag(tag); err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// ValidateTag checks a single, already lowercased tag.
func ValidateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	for _, r := range tag {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '-') {
			return fmt.Errorf("%w: %q may only contain a-z, 0-9, '_' and '-'", ErrInvalidTag, tag)
		}
	}
	return nil
}

// ParseTags splits a comma-separated tag list and normalizes it.
func ParseTags(s string) ([]string, error) {
	return NormalizeTags(SplitList(s))
}
