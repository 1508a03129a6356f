package draw

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#FFA500", color.NRGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}},
		{"ffffff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#808080", color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}},
		{"#fff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{" #000000 ", color.NRGBA{A: 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#12345", "#GGGGGG", "orange"} {
		_, err := ParseHex(in)
		assert.Error(t, err, in)
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#FFA500", Hex(color.NRGBA{R: 0xff, G: 0xa5, A: 0xff}))
	assert.Equal(t, "#000000", Hex(color.NRGBA{}))
}

func TestBoundsCenter(t *testing.T) {
	x, y := Bounds{Width: 800, Height: 600}.Center()
	assert.Equal(t, float32(400), x)
	assert.Equal(t, float32(300), y)
}
