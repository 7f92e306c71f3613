package jetpull_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetpull-io/jetpull-go/jetpull"
)

func TestParseHeaders(t *testing.T) {
	t.Run("single line single value", func(t *testing.T) {
		h, err := jetpull.ParseHeaders(
			[]byte("NATS/1.0 200\r\naccept-encoding: json\r\nauthorization: s3cr3t\r\n"),
		)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"json"}, h.Values("accept-encoding"))
		assert.ElementsMatch(t, []string{"s3cr3t"}, h.Values("authorization"))
	})

	t.Run("single line multi value", func(t *testing.T) {
		h, err := jetpull.ParseHeaders(
			[]byte("NATS/1.0 200\r\naccept-encoding: html,json,text\r\nauthorization: s3cr3t\r\n"),
		)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"html", "json", "text"}, h.Values("accept-encoding"))
		assert.ElementsMatch(t, []string{"s3cr3t"}, h.Values("authorization"))
	})

	t.Run("multi line single value with tab", func(t *testing.T) {
		h, err := jetpull.ParseHeaders(
			[]byte("NATS/1.0 200\r\nx-test: one\r\n\t two\r\n\t three\r\n"),
		)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"one two three"}, h.Values("x-test"))
	})

	t.Run("multi line single value with space", func(t *testing.T) {
		h, err := jetpull.ParseHeaders(
			[]byte("NATS/1.0 200\r\nx-test: one\r\n  two\r\n  three\r\n"),
		)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"one two three"}, h.Values("x-test"))
	})

	t.Run("multi line multi value with tab", func(t *testing.T) {
		h, err := jetpull.ParseHeaders(
			[]byte("NATS/1.0 200\r\nx-test: one, \r\n\ttwo,\r\n\tthree\r\n"),
		)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"one", "two", "three"}, h.Values("x-test"))
	})

	t.Run("multi line multi value with spaces", func(t *testing.T) {
		h, err := jetpull.ParseHeaders(
			[]byte("NATS/1.0 200\r\nx-test: one,\r\n two,\r\n three\r\n"),
		)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"one", "two", "three"}, h.Values("x-test"))
	})

	t.Run("continuation strips exactly one character", func(t *testing.T) {
		// A single-space continuation glues the content directly onto
		// the accumulated value, no separator inserted.
		h, err := jetpull.ParseHeaders(
			[]byte("NATS/1.0\r\nx-test: one\r\n two\r\n"),
		)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"onetwo"}, h.Values("x-test"))
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		h, err := jetpull.ParseHeaders(
			[]byte("NATS/1.0\r\n\r\nx-test: one\r\n\r\nx-other: two\r\n\r\n"),
		)
		require.NoError(t, err)

		assert.Equal(t, 2, h.Len())
		assert.ElementsMatch(t, []string{"one"}, h.Values("x-test"))
		assert.ElementsMatch(t, []string{"two"}, h.Values("x-other"))
	})

	t.Run("same name merges across lines", func(t *testing.T) {
		h, err := jetpull.ParseHeaders(
			[]byte("NATS/1.0\r\nx-test: one\r\nx-test: two,three\r\n"),
		)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"one", "two", "three"}, h.Values("x-test"))
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		h, err := jetpull.ParseHeaders(
			[]byte("NATS/1.0\r\nx-test: one,one, one\r\nx-test: one\r\n"),
		)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"one"}, h.Values("x-test"))
	})

	t.Run("name and value are trimmed", func(t *testing.T) {
		h, err := jetpull.ParseHeaders(
			[]byte("NATS/1.0\r\n  x-test  :   one  \r\n"),
		)
		require.NoError(t, err)

		assert.True(t, h.Has("x-test"))
		assert.ElementsMatch(t, []string{"one"}, h.Values("x-test"))
	})

	t.Run("version only yields empty headers", func(t *testing.T) {
		h, err := jetpull.ParseHeaders([]byte("NATS/1.0\r\n\r\n"))
		require.NoError(t, err)

		assert.Equal(t, 0, h.Len())
	})

	t.Run("missing colon", func(t *testing.T) {
		_, err := jetpull.ParseHeaders([]byte("NATS/1.0\r\ngarbage\r\n"))
		assert.ErrorIs(t, err, jetpull.ErrMalformedHeaderLine)
	})

	t.Run("bad version line", func(t *testing.T) {
		_, err := jetpull.ParseHeaders([]byte("HTTP/1.1 200\r\nx-test: one\r\n"))
		assert.ErrorIs(t, err, jetpull.ErrMalformedVersionLine)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := jetpull.ParseHeaders([]byte{})
		assert.ErrorIs(t, err, jetpull.ErrMissingHeaderBlock)
	})

	t.Run("invalid utf8", func(t *testing.T) {
		_, err := jetpull.ParseHeaders([]byte{'N', 'A', 'T', 'S', 0xff, 0xfe})
		assert.ErrorIs(t, err, jetpull.ErrInvalidHeaderEncoding)
	})
}

func TestHeadersRoundTrip(t *testing.T) {
	h := jetpull.NewHeaders()
	h.Add("accept-encoding", "json")
	h.Add("accept-encoding", "html")
	h.Add("accept-encoding", "text")
	h.Add("authorization", "s3cr3t")
	h.Add("x-empty-ok", "v")

	parsed, err := jetpull.ParseHeaders(h.Marshal())
	require.NoError(t, err)

	assert.True(t, h.Equal(parsed), "round trip must preserve value sets per name")
	assert.True(t, parsed.Equal(h))
}

func TestHeadersMarshalFraming(t *testing.T) {
	h := jetpull.NewHeaders()
	h.Add("x-test", "one")
	h.Add(" padded ", " value ")

	out := string(h.Marshal())

	assert.True(t, strings.HasPrefix(out, "NATS/1.0\r\n"))
	assert.True(t, strings.HasSuffix(out, "\r\n\r\n"))
	assert.Contains(t, out, "x-test:one\r\n")
	// Names and values are trimmed on the way out.
	assert.Contains(t, out, "padded:value\r\n")
}

func TestHeadersAccessors(t *testing.T) {
	h := jetpull.HeadersFromMap(map[string]string{
		"x-one": "1",
		"x-two": "2",
	})

	v, ok := h.Get("x-one")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = h.Get("x-missing")
	assert.False(t, ok)
	assert.Nil(t, h.Values("x-missing"))

	assert.Equal(t, 2, h.Len())
	h.Del("x-two")
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.Has("x-two"))
}
