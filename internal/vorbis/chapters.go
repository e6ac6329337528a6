// Package vorbis interprets well-known Vorbis comment conventions on top of
// parsed metadata elements.
package vorbis

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/simonhull/tagfile/internal/types"
)

// Chapter is one entry of a CHAPTERxxx chapter list.
type Chapter struct {
	Title     string
	Index     int           // 1-based position after sorting
	Number    int           // xxx from the tag name
	StartTime time.Duration // offset from the start of the stream
	EndTime   time.Duration // start of the next chapter, 0 for the last one
}

// ParseChapters extracts chapters from CHAPTER comments.
//
// Chapters are described by tag pairs:
//
//	CHAPTER001=00:00:00.000
//	CHAPTER001NAME=Introduction
//	CHAPTER002=00:05:23.500
//	CHAPTER002NAME=Chapter 1: The Beginning
//
// Tag names are matched case-insensitively. Chapters without a valid
// timestamp are skipped; a missing NAME falls back to "Chapter N". The result
// is sorted by chapter number.
func ParseChapters(elems []types.Element) []Chapter {
	type chapterData struct {
		number    int
		timestamp string
		title     string
	}

	byNumber := make(map[int]*chapterData)
	get := func(n int) *chapterData {
		if byNumber[n] == nil {
			byNumber[n] = &chapterData{number: n}
		}
		return byNumber[n]
	}

	for _, e := range elems {
		key := strings.ToUpper(e.Tag)
		rest, ok := strings.CutPrefix(key, "CHAPTER")
		if !ok {
			continue
		}

		if numStr, isName := strings.CutSuffix(rest, "NAME"); isName {
			num, err := strconv.Atoi(numStr)
			if err != nil {
				continue
			}
			get(num).title = e.Value
			continue
		}

		num, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		get(num).timestamp = strings.TrimSpace(e.Value)
	}

	type startPoint struct {
		chapterData
		start time.Duration
	}
	var points []startPoint
	for _, c := range byNumber {
		start, err := ParseTimestamp(c.timestamp)
		if err != nil {
			continue
		}
		points = append(points, startPoint{chapterData: *c, start: start})
	}
	if len(points) == 0 {
		return nil
	}

	slices.SortFunc(points, func(a, b startPoint) int {
		return cmp.Compare(a.number, b.number)
	})

	chapters := make([]Chapter, len(points))
	for i, p := range points {
		title := p.title
		if title == "" {
			title = fmt.Sprintf("Chapter %d", p.number)
		}
		var end time.Duration
		if i < len(points)-1 {
			end = points[i+1].start
		}
		chapters[i] = Chapter{
			Index:     i + 1,
			Number:    p.number,
			Title:     title,
			StartTime: p.start,
			EndTime:   end,
		}
	}
	return chapters
}

// ParseTimestamp parses chapter timestamps in the forms HH:MM:SS.mmm,
// MM:SS.mmm and SS.mmm.
func ParseTimestamp(ts string) (time.Duration, error) {
	if ts == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	parts := strings.Split(ts, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp format: %s", ts)
	}

	seconds, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in timestamp: %s", ts)
	}

	var hours, minutes int
	if len(parts) >= 2 {
		if minutes, err = strconv.Atoi(parts[len(parts)-2]); err != nil {
			return 0, fmt.Errorf("invalid minutes in timestamp: %s", ts)
		}
	}
	if len(parts) == 3 {
		if hours, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("invalid hours in timestamp: %s", ts)
		}
	}

	// a bare seconds value may exceed a minute
	if hours < 0 || minutes < 0 || seconds < 0 ||
		(len(parts) >= 2 && (minutes >= 60 || seconds >= 60)) {
		return 0, fmt.Errorf("timestamp values out of range: %s", ts)
	}

	total := float64(hours*3600+minutes*60) + seconds
	return time.Duration(total * float64(time.Second)).Round(time.Millisecond), nil
}
