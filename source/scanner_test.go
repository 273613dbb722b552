package source

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanAdvancesOnMatch(t *testing.T) {
	assert := assert.New(t)
	s := New("123abc")

	matched, ok := s.Scan(regexp.MustCompile(`^[0-9]+`))
	assert.True(ok)
	assert.Equal("123", matched)
	assert.Equal(3, s.Pos())

	matched, ok = s.Scan(regexp.MustCompile(`^[0-9]+`))
	assert.False(ok)
	assert.Equal("", matched)
	assert.Equal(3, s.Pos(), "a failed Scan must not move the cursor")
}

func TestScanRequiresMatchAtCursor(t *testing.T) {
	assert := assert.New(t)
	s := New("abc123")

	_, ok := s.Scan(regexp.MustCompile(`[0-9]+`))
	assert.False(ok, "a match later in the string must not count")
}

func TestSkipDiscardsMatch(t *testing.T) {
	assert := assert.New(t)
	s := New("   rest")

	assert.True(s.Skip(regexp.MustCompile(`^\s+`)))
	assert.Equal("rest", s.Rest())
}

func TestAtEOS(t *testing.T) {
	assert := assert.New(t)
	s := New("x")
	assert.False(s.AtEOS())
	s.Scan(regexp.MustCompile(`^x`))
	assert.True(s.AtEOS())
}

func TestNewNormalizesInvalidUTF8(t *testing.T) {
	assert := assert.New(t)
	s := New("abc\xff\xfe")
	assert.Equal("abc�", s.Rest())
}

func TestSliceAndSetPos(t *testing.T) {
	assert := assert.New(t)
	s := New("hello world")
	s.SetPos(6)
	assert.Equal("world", s.Rest())
	assert.Equal("hello ", s.Slice(0, 6))
}
