package service

import (
	"encoding/json"
	"strings"

	"googletrans-local/domain"
	"googletrans-local/pkg/jsonseq"
)

// decoded carries the fields pulled out of one response body. Only Text
// is load-bearing; the rest degrade to their zero-ish defaults.
type decoded struct {
	Text          string
	Pronunciation string
	Src           string
	Confidence    float64
}

// decodeResponse walks the endpoint's undocumented nested-array format.
// The shape differs across language pairs and response variants, so
// every access below the root goes through jsonseq and falls back
// instead of failing, except the translated text itself.
func decodeResponse(raw, origin, dest string) (decoded, error) {
	var root any
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		// Older response variants elide nulls between commas
		// ("[,,\"x\"]"), which encoding/json rejects outright.
		if err2 := json.Unmarshal([]byte(restoreElidedNulls(raw)), &root); err2 != nil {
			return decoded{}, &domain.DecodeError{Stage: "parse body", Err: err}
		}
	}

	// root[0] is the list of [translated, original, ...] segment pairs.
	// Its absence means the body carries no translation at all.
	groups, ok := jsonseq.Index(root, 0)
	n, isSeq := jsonseq.Len(groups)
	if !ok || !isSeq {
		return decoded{}, &domain.DecodeError{Stage: "translated text missing"}
	}
	var text strings.Builder
	for i := 0; i < n; i++ {
		if s, ok := jsonseq.String(mustSeek(groups, i, 0)); ok {
			text.WriteString(s)
		}
	}
	d := decoded{Text: text.String(), Pronunciation: origin}

	// root[0][1] ends with a romanized rendering when the endpoint sends
	// one. Anything unexpected here keeps the origin-text fallback.
	if s, ok := jsonseq.String(mustSeek(root, 0, 1, -1)); ok {
		d.Pronunciation = s
	}

	// Latin-script destinations get no useful romanization; when the
	// fallback is still the untranslated input, show the translation.
	if _, redundant := pronunciationRedundant[dest]; redundant && d.Pronunciation == origin {
		d.Pronunciation = d.Text
	}

	// root[8] holds detection data: [8][0] the detected code in pieces,
	// [8][len-2][0] the confidence. Both or neither.
	if src, ok := joinStrings(mustSeek(root, 8, 0)); ok {
		if conf, ok := jsonseq.Float(mustSeek(root, 8, -2, 0)); ok {
			d.Src = src
			d.Confidence = conf
		}
	}

	return d, nil
}

// mustSeek is Seek without the flag; a miss comes back as nil, which no
// typed unwrap accepts. Keeps the lenient chains above readable.
func mustSeek(v any, path ...int) any {
	v, _ = jsonseq.Seek(v, path...)
	return v
}

// joinStrings concatenates v's elements when every one is a string.
func joinStrings(v any) (string, bool) {
	arr, ok := v.([]any)
	if !ok {
		return "", false
	}
	var b strings.Builder
	for _, e := range arr {
		s, ok := e.(string)
		if !ok {
			return "", false
		}
		b.WriteString(s)
	}
	return b.String(), true
}

// restoreElidedNulls re-inserts "null" wherever the minified array
// format dropped a value ("[,", ",,", ",]"). Commas inside string
// literals are left alone.
func restoreElidedNulls(raw string) string {
	var b strings.Builder
	b.Grow(len(raw) + len(raw)/8)
	inString, escaped := false, false
	var prev byte
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
				prev = c
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case ',':
			if prev == ',' || prev == '[' {
				b.WriteString("null")
			}
		case ']':
			if prev == ',' {
				b.WriteString("null")
			}
		}
		b.WriteByte(c)
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			prev = c
		}
	}
	return b.String()
}
