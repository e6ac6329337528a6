package vorbis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/tagfile/internal/types"
)

func TestParseChapters(t *testing.T) {
	elems := []types.Element{
		{Tag: "TITLE", Value: "Book"},
		{Tag: "CHAPTER002", Value: "00:05:23.500"},
		{Tag: "CHAPTER002NAME", Value: "The Beginning"},
		{Tag: "CHAPTER001", Value: "00:00:00.000"},
		{Tag: "CHAPTER001NAME", Value: "Introduction"},
		{Tag: "chapter010", Value: "1:00:00"},
	}

	chapters := ParseChapters(elems)
	require.Len(t, chapters, 3)

	assert.Equal(t, Chapter{Index: 1, Number: 1, Title: "Introduction", StartTime: 0, EndTime: 5*time.Minute + 23500*time.Millisecond}, chapters[0])
	assert.Equal(t, "The Beginning", chapters[1].Title)
	assert.Equal(t, time.Hour, chapters[1].EndTime)
	assert.Equal(t, "Chapter 10", chapters[2].Title)
	assert.Equal(t, 3, chapters[2].Index)
	assert.Equal(t, time.Duration(0), chapters[2].EndTime)
}

func TestParseChapters_SkipsInvalid(t *testing.T) {
	elems := []types.Element{
		{Tag: "CHAPTERXNAME", Value: "bad number"},
		{Tag: "CHAPTER001NAME", Value: "No timestamp"},
		{Tag: "CHAPTER002", Value: "not a time"},
		{Tag: "CHAPTER003", Value: "00:01:00"},
	}

	chapters := ParseChapters(elems)
	require.Len(t, chapters, 1)
	assert.Equal(t, 3, chapters[0].Number)
	assert.Equal(t, time.Minute, chapters[0].StartTime)
}

func TestParseChapters_None(t *testing.T) {
	assert.Nil(t, ParseChapters([]types.Element{{Tag: "TITLE", Value: "x"}}))
	assert.Nil(t, ParseChapters(nil))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"00:00:00.000", 0, false},
		{"01:02:03.456", time.Hour + 2*time.Minute + 3456*time.Millisecond, false},
		{"02:03.5", 2*time.Minute + 3500*time.Millisecond, false},
		{"75.25", 75250 * time.Millisecond, false},
		{"", 0, true},
		{"1:2:3:4", 0, true},
		{"00:60:00", 0, true},
		{"00:00:61", 0, true},
		{"-1:00:00", 0, true},
		{"aa:00", 0, true},
		{"00:bb:00", 0, true},
		{"x", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTimestamp(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
