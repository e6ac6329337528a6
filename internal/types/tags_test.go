package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTags() *Tags {
	return NewTags([]Element{
		{Tag: "TITLE", Value: "Jóga"},
		{Tag: "Artist", Value: "Björk"},
		{Tag: "GENRE", Value: "Electronic"},
		{Tag: "genre", Value: "Art Pop"},
		{Tag: "MUSICBRAINZ_TRACKID", Value: "abc123"},
		{Tag: "MUSICBRAINZ_ALBUMID", Value: "def456"},
	})
}

func TestTags_CaseInsensitiveLookup(t *testing.T) {
	tags := sampleTags()

	assert.Equal(t, "Jóga", tags.GetFirst("title"))
	assert.Equal(t, "Björk", tags.GetFirst("ARTIST"))
	assert.Equal(t, []string{"Electronic", "Art Pop"}, tags.Get("Genre"))
	assert.True(t, tags.Has("musicbrainz_trackid"))
	assert.False(t, tags.Has("ALBUM"))
}

func TestTags_Missing(t *testing.T) {
	tags := sampleTags()

	assert.Nil(t, tags.Get("ALBUM"))
	assert.Equal(t, "", tags.GetFirst("ALBUM"))
}

func TestTags_GetReturnsCopy(t *testing.T) {
	tags := sampleTags()

	values := tags.Get("GENRE")
	values[0] = "Modified"

	assert.Equal(t, "Electronic", tags.GetFirst("GENRE"))
}

func TestTags_GetBest(t *testing.T) {
	tags := sampleTags()

	assert.Equal(t, "Björk", tags.GetBest("ALBUMARTIST", "ARTIST"))
	assert.Equal(t, "", tags.GetBest("ALBUMARTIST", "COMPOSER"))
}

func TestTags_KeysInFirstAppearanceOrder(t *testing.T) {
	tags := sampleTags()

	assert.Equal(t, []string{"TITLE", "ARTIST", "GENRE", "MUSICBRAINZ_TRACKID", "MUSICBRAINZ_ALBUMID"}, tags.Keys())
	assert.Equal(t, 5, tags.Len())

	var seen []string
	for key := range tags.All() {
		seen = append(seen, key)
	}
	assert.Equal(t, tags.Keys(), seen)
}

func TestTags_AllEarlyStop(t *testing.T) {
	tags := sampleTags()

	count := 0
	for range tags.All() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestTags_Filter(t *testing.T) {
	tags := sampleTags()

	got := map[string][]string{}
	for key, values := range tags.Filter(func(k string) bool {
		return strings.HasPrefix(k, "MUSICBRAINZ_")
	}) {
		got[key] = values
	}

	assert.Equal(t, map[string][]string{
		"MUSICBRAINZ_TRACKID": {"abc123"},
		"MUSICBRAINZ_ALBUMID": {"def456"},
	}, got)
}

func TestTags_Nil(t *testing.T) {
	var tags *Tags

	assert.Nil(t, tags.Get("TITLE"))
	assert.Equal(t, "", tags.GetFirst("TITLE"))
	assert.False(t, tags.Has("TITLE"))
	assert.Equal(t, 0, tags.Len())
	assert.Nil(t, tags.Keys())
	for range tags.All() {
		t.Fatal("nil Tags should yield nothing")
	}
}
