package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Project 1", "project-1"},
		{"It's more complicated than that.", "its-more-complicated-than-that"},
		{"  spaced   out  ", "spaced-out"},
		{"snake_case-and - dashes", "snake-case-and-dashes"},
		{"Emoji 🎉 party", "emoji-party"},
		{"Ünïcödé", "ncd"},
		{"---", ""},
		{"🎉", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Slugify(got), "slugify should be idempotent")
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	tags, err := NormalizeTags([]string{"Work", "home", " work ", "", "a_b-c"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"a_b-c", "home", "work"}, tags)

	_, err = NormalizeTags([]string{"no spaces"})
	assert.ErrorIs(t, err, ErrInvalidTag)

	_, err = ParseTags("ok,bad!")
	assert.ErrorIs(t, err, ErrInvalidTag)

	tags, err = ParseTags("b, a,,b")
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tags)
}

func TestParseIDs(t *testing.T) {
	id, err := ParseTaskID("0007")
	assert.NoError(t, err)
	assert.Equal(t, TaskID(7), id)
	assert.Equal(t, "0007", id.DirName())
	assert.Equal(t, "12345", TaskID(12345).DirName())

	lid, err := ParseLogID("00012")
	assert.NoError(t, err)
	assert.Equal(t, "00012.json", lid.FileName())

	for _, bad := range []string{"", "0", "-1", "abc", "4294967296"} {
		_, err := ParseTaskID(bad)
		assert.ErrorIs(t, err, ErrInvalidIdentifier, "input %q", bad)
	}

	ids, err := ParseTaskIDs("1, 2,3")
	assert.NoError(t, err)
	assert.Equal(t, []TaskID{1, 2, 3}, ids)

	_, err = ParseTaskIDs("1,x")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}
