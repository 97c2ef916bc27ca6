package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeSegment(t *testing.T) {
	cases := map[string]string{
		"demo.mp3":            "demo.mp3",
		"My Song (final).wav": "My_Song__final_.wav",
		"../../etc/passwd":    "_.._etc_passwd",
		"...hidden.ogg":       "hidden.ogg",
		"":                    "file",
		"...":                 "file",
		"çanção.mp3":          "_an__o.mp3",
		"a/b\\c":              "a_b_c",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeSegment(in), in)
	}
}

func TestBuildStorageKey(t *testing.T) {
	assert.Equal(t, "public/u123/1700000000000-demo.mp3", BuildStorageKey("u123", 1700000000000, "demo.mp3"))
	assert.Equal(t, "public/u_1/5-x.wav", BuildStorageKey("u/1", 5, "x.wav"))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/public/u1/1-a.mp3", PublicURL("https://cdn.example.com/", "public/u1/1-a.mp3"))
	assert.Equal(t, "https://cdn.example.com/file/b/public/k", PublicURL("https://cdn.example.com/file/b", "/public/k"))
}

func TestKeyClockNeverRepeats(t *testing.T) {
	fixed := time.UnixMilli(1000)
	clock := &keyClock{now: func() time.Time { return fixed }}

	assert.Equal(t, int64(1000), clock.Next())
	assert.Equal(t, int64(1001), clock.Next())
	assert.Equal(t, int64(1002), clock.Next())

	fixed = time.UnixMilli(5000)
	assert.Equal(t, int64(5000), clock.Next())
}
