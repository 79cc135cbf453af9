package jsonseq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestIndex(t *testing.T) {
	root := parse(t, `["a","b","c"]`)

	tests := []struct {
		name string
		i    int
		want any
		ok   bool
	}{
		{name: "first", i: 0, want: "a", ok: true},
		{name: "last positive", i: 2, want: "c", ok: true},
		{name: "negative last", i: -1, want: "c", ok: true},
		{name: "negative first", i: -3, want: "a", ok: true},
		{name: "out of range", i: 3, ok: false},
		{name: "negative out of range", i: -4, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Index(root, tt.i)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	_, ok := Index("not an array", 0)
	assert.False(t, ok)
	_, ok = Index(nil, 0)
	assert.False(t, ok)
}

func TestSeek(t *testing.T) {
	root := parse(t, `[[["deep",1.5]],null,["x"]]`)

	v, ok := Seek(root, 0, 0, 0)
	require.True(t, ok)
	assert.Equal(t, "deep", v)

	v, ok = Seek(root, 0, 0, -1)
	require.True(t, ok)
	assert.Equal(t, 1.5, v)

	_, ok = Seek(root, 1, 0)
	assert.False(t, ok, "seek through null")

	_, ok = Seek(root, 5)
	assert.False(t, ok)

	v, ok = Seek(root)
	require.True(t, ok, "empty path returns the root")
	assert.Equal(t, root, v)
}

func TestUnwraps(t *testing.T) {
	root := parse(t, `["s",2,true,null]`)

	s, ok := String(mustIndex(t, root, 0))
	assert.True(t, ok)
	assert.Equal(t, "s", s)
	_, ok = String(mustIndex(t, root, 1))
	assert.False(t, ok)

	f, ok := Float(mustIndex(t, root, 1))
	assert.True(t, ok)
	assert.Equal(t, 2.0, f)
	_, ok = Float(mustIndex(t, root, 2))
	assert.False(t, ok)

	n, ok := Len(root)
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	_, ok = Len("nope")
	assert.False(t, ok)
}

func mustIndex(t *testing.T, v any, i int) any {
	t.Helper()
	e, ok := Index(v, i)
	require.True(t, ok)
	return e
}
