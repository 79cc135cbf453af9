// Package gtoken derives the per-request integrity token ("tk"
// parameter) the translation endpoint expects. The pipeline treats the
// computation as opaque; swap the Provider in tests.
package gtoken

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
)

// Provider computes an integrity token from the request text. The
// computation may be CPU-bound.
type Provider interface {
	Token(ctx context.Context, text string) (string, error)
}

// TKProvider implements the shift-hash the web client runs over the
// text's byte expansion. The key has two parts; when hourly is set the
// first part is re-derived from the clock on every call, which is how
// the service rotates it.
type TKProvider struct {
	d1     int64
	d2     int64
	hourly bool
}

// NewProvider returns a provider keyed on the current hour.
func NewProvider() *TKProvider {
	return &TKProvider{hourly: true}
}

// NewKeyedProvider parses a fixed "d1.d2" key. Useful when the caller
// already scraped a key, and for deterministic tests.
func NewKeyedProvider(key string) (*TKProvider, error) {
	first, second, found := strings.Cut(key, ".")
	if !found {
		return nil, fmt.Errorf("gtoken: key %q is not of the form d1.d2", key)
	}
	d1, err := strconv.ParseInt(first, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("gtoken: parse key: %w", err)
	}
	d2, err := strconv.ParseInt(second, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("gtoken: parse key: %w", err)
	}
	return &TKProvider{d1: d1, d2: d2}, nil
}

func (p *TKProvider) Token(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d1 := p.d1
	if p.hourly {
		d1 = time.Now().Unix() / 3600
	}
	a := d1
	for _, b := range expand(text) {
		a += b
		a = work(a, "+-a^+6")
	}
	a = work(a, "+-3^+b+-f")
	a ^= p.d2
	if a < 0 {
		a = (a & 0x7fffffff) + 0x80000000
	}
	a %= 1e6
	return fmt.Sprintf("%d.%d", a, a^d1), nil
}

// expand turns text into the byte sequence the hash runs over. The web
// client iterates UTF-16 code units and encodes each one separately, so
// supplementary characters come out as six bytes, not four.
func expand(text string) []int64 {
	units := utf16.Encode([]rune(text))
	e := make([]int64, 0, len(units))
	for _, u := range units {
		c := int64(u)
		switch {
		case c < 128:
			e = append(e, c)
		case c < 2048:
			e = append(e, c>>6|192, c&63|128)
		default:
			e = append(e, c>>12|224, c>>6&63|128, c&63|128)
		}
	}
	return e
}

// work applies one round of the obfuscation seed: groups of three
// characters encode a shift amount, a shift direction and whether the
// result is added or xored in. 32-bit overflow is part of the scheme.
func work(a int64, seed string) int64 {
	for i := 0; i+2 < len(seed); i += 3 {
		c := seed[i+2]
		var d int64
		if c >= 'a' {
			d = int64(c) - 87
		} else {
			d = int64(c - '0')
		}
		if seed[i+1] == '+' {
			d = int64(uint32(a) >> uint(d))
		} else {
			d = a << uint(d)
		}
		if seed[i] == '+' {
			a = (a + d) & 0xffffffff
		} else {
			a ^= d
		}
	}
	return a
}
