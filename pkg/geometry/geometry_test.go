package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var screens = []Rect{
	{0, 0, 1920, 1080},
	{0, 0, 1921, 1080},
	{0, 0, 1440, 900},
	{-1280, 0, 1280, 1024},
	{1920, 25, 2560, 1415},
	{0, 0, 16, 14},
	{0, 0, 27, 20},
	{0, 0, 28, 20},
	{0, 0, 29, 20},
	{0, 0, 10, 10},
	{0, 0, 0, 0},
}

var directives = []Directive{FullScreen, Left, Right}

func TestComputeFrameScenario(t *testing.T) {
	screen := Rect{0, 0, 1920, 1080}

	assert.Equal(t, Rect{8, 6, 1904, 1066}, ComputeFrame(screen, FullScreen))
	assert.Equal(t, Rect{8, 6, 946, 1066}, ComputeFrame(screen, Left))
	assert.Equal(t, Rect{966, 6, 946, 1066}, ComputeFrame(screen, Right))
}

func TestComputeFrameOddWidthRounding(t *testing.T) {
	// 1921 wide leaves 1893 for the halves: the left floors, the right keeps the extra point.
	screen := Rect{0, 0, 1921, 1080}

	left := ComputeFrame(screen, Left)
	right := ComputeFrame(screen, Right)

	assert.Equal(t, 946, left.Width)
	assert.Equal(t, 947, right.Width)
	assert.Equal(t, 966, right.X)
}

func TestComputeFrameContainment(t *testing.T) {
	for _, screen := range screens {
		area := Inset(screen)
		for _, d := range directives {
			frame := ComputeFrame(screen, d)
			assert.Truef(t, contains(area, frame), "%s %s: frame %s escapes %s", screen, d, frame, area)
			assert.GreaterOrEqual(t, frame.Width, 0)
			assert.GreaterOrEqual(t, frame.Height, 0)
		}
	}
}

func TestComputeFramePartition(t *testing.T) {
	for _, screen := range screens {
		area := Inset(screen)
		if area.Width < InnerSpacing {
			continue
		}

		left := ComputeFrame(screen, Left)
		right := ComputeFrame(screen, Right)

		assert.Equal(t, area.X, left.X, screen.String())
		assert.Equal(t, InnerSpacing, right.X-(left.X+left.Width), screen.String())
		assert.Equal(t, area.Width, left.Width+InnerSpacing+right.Width, screen.String())
		assert.Equal(t, area.X+area.Width, right.X+right.Width, screen.String())
		assert.Equal(t, area.Height, left.Height)
		assert.Equal(t, area.Height, right.Height)
	}
}

func TestComputeFrameDegenerate(t *testing.T) {
	screen := Rect{0, 0, 10, 10}

	full := ComputeFrame(screen, FullScreen)
	assert.Equal(t, Rect{8, 6, 0, 0}, full)

	assert.Equal(t, 0, ComputeFrame(screen, Left).Width)
	assert.Equal(t, 0, ComputeFrame(screen, Right).Width)
}

func TestParseDirective(t *testing.T) {
	tests := []struct {
		in   string
		want Directive
	}{
		{"full", FullScreen},
		{"FullScreen", FullScreen},
		{"left", Left},
		{" Right ", Right},
	}

	for _, tt := range tests {
		got, err := ParseDirective(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, must(ParseDirective(got.String())))
	}

	_, err := ParseDirective("top")
	assert.Error(t, err)
}

func must(d Directive, err error) Directive {
	if err != nil {
		panic(err)
	}
	return d
}

// contains reports whether o lies entirely inside r.
func contains(r, o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.Width <= r.X+r.Width &&
		o.Y+o.Height <= r.Y+r.Height
}
