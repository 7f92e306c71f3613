package jetpull

import (
	"strings"
	"unicode/utf8"

	"github.com/jetpull-io/jetpull-go/jetpull/pool"
)

const (
	hdrPrefix = "NATS/"
	hdrLine   = "NATS/1.0\r\n"
	crlf      = "\r\n"
)

// Headers is a multimap from header name to an unordered set of value
// strings. Iteration order is unspecified everywhere; equality is
// per-name set equality.
type Headers struct {
	m map[string]map[string]struct{}
}

func NewHeaders() *Headers {
	return &Headers{m: make(map[string]map[string]struct{})}
}

// HeadersFromMap builds Headers from single-valued pairs.
func HeadersFromMap(pairs map[string]string) *Headers {
	h := NewHeaders()
	for k, v := range pairs {
		h.Add(k, v)
	}
	return h
}

// Add inserts value into the set for name. Duplicates collapse.
func (h *Headers) Add(name, value string) {
	set, ok := h.m[name]
	if !ok {
		set = make(map[string]struct{})
		h.m[name] = set
	}
	set[value] = struct{}{}
}

// Get returns one value for name. Which one is unspecified when the
// set holds more than a single value.
func (h *Headers) Get(name string) (string, bool) {
	for v := range h.m[name] {
		return v, true
	}
	return "", false
}

// Values returns the value set for name as a slice in unspecified order.
func (h *Headers) Values(name string) []string {
	set, ok := h.m[name]
	if !ok {
		return nil
	}
	vals := make([]string, 0, len(set))
	for v := range set {
		vals = append(vals, v)
	}
	return vals
}

func (h *Headers) Has(name string) bool {
	_, ok := h.m[name]
	return ok
}

func (h *Headers) Del(name string) {
	delete(h.m, name)
}

// Len returns the number of distinct header names.
func (h *Headers) Len() int {
	return len(h.m)
}

// Equal reports per-name value-set equality.
func (h *Headers) Equal(other *Headers) bool {
	if len(h.m) != len(other.m) {
		return false
	}
	for name, set := range h.m {
		oset, ok := other.m[name]
		if !ok || len(set) != len(oset) {
			return false
		}
		for v := range set {
			if _, ok := oset[v]; !ok {
				return false
			}
		}
	}
	return true
}

func isContinuation(b byte) bool {
	return b == ' ' || b == '\t'
}

// ParseHeaders decodes a header block:
//
//	NATS/<version>[ <status> <text>]\r\n
//	<name>:<value>[,<value>...]\r\n
//	\r\n
//
// Blank lines anywhere in the block are skipped. A line starting with a
// space or tab continues the previous value: exactly one leading
// character is stripped and the rest appended with no separator. The
// folded value is split on commas and each trimmed piece inserted into
// the set for that name. Parsing is atomic; no partial result escapes.
func ParseHeaders(buf []byte) (*Headers, error) {
	if !utf8.Valid(buf) {
		return nil, ErrInvalidHeaderEncoding
	}

	lines := splitLines(string(buf))
	if len(lines) == 0 {
		return nil, ErrMissingHeaderBlock
	}
	if !strings.HasPrefix(lines[0], hdrPrefix) {
		return nil, ErrMalformedVersionLine
	}

	h := NewHeaders()
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, ErrMalformedHeaderLine
		}
		name = strings.TrimSpace(name)

		var val strings.Builder
		val.WriteString(strings.TrimSpace(rest))
		for i+1 < len(lines) && len(lines[i+1]) > 0 && isContinuation(lines[i+1][0]) {
			i++
			val.WriteString(lines[i][1:])
		}

		for _, piece := range strings.Split(val.String(), ",") {
			h.Add(name, strings.TrimSpace(piece))
		}
	}

	return h, nil
}

// Marshal encodes the block as NATS/1.0 followed by one name:value line
// per pair, in unspecified order, and a trailing blank line. The buffer
// comes from the shared pool; callers done with it may hand it back via
// pool.Put.
func (h *Headers) Marshal() []byte {
	size := len(hdrLine) + len(crlf)
	for name, set := range h.m {
		for v := range set {
			size += len(name) + 1 + len(v) + len(crlf)
		}
	}

	buf := pool.Get(size)
	buf = append(buf, hdrLine...)
	for name, set := range h.m {
		trimmed := strings.TrimSpace(name)
		for v := range set {
			buf = append(buf, trimmed...)
			buf = append(buf, ':')
			buf = append(buf, strings.TrimSpace(v)...)
			buf = append(buf, crlf...)
		}
	}
	buf = append(buf, crlf...)

	return buf
}

// splitLines splits on newlines, dropping a trailing carriage return
// from each line. Empty input yields no lines.
func splitLines(s string) []string {
	var lines []string
	for len(s) > 0 {
		line := s
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			line, s = s[:i], s[i+1:]
		} else {
			s = ""
		}
		lines = append(lines, strings.TrimSuffix(line, "\r"))
	}
	return lines
}
