package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestMustMarshal(t *testing.T) {
	b := MustMarshal(nil, map[string]int{"n": 1})
	assert.JSONEq(t, `{"n":1}`, string(b))

	assert.Panics(t, func() {
		MustMarshal(JSON{}, func() {})
	})
}

func TestRoundTrip(t *testing.T) {
	type payload struct {
		Weight float64 `json:"weight"`
		Label  string  `json:"label"`
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			in := []payload{{Weight: 1.5, Label: "a"}, {Weight: -2, Label: "b"}}

			b, err := c.Marshal(in)
			require.NoError(t, err)

			var out []payload
			require.NoError(t, c.Unmarshal(b, &out))
			assert.Equal(t, in, out)
		})
	}
}
