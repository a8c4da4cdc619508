package patch

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// gradient fills a gray Mat with (x + y) % 256 so each cell is recognisable.
func gradient(t *testing.T, w, h int) gocv.Mat {
	t.Helper()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mat.SetUCharAt(y, x, uint8((x+y)%256))
		}
	}
	return mat
}

func TestLayoutCounts(t *testing.T) {
	for _, tc := range []struct {
		w, h, n int
	}{
		{100, 100, 4},
		{101, 101, 4},
		{640, 480, 3},
		{7, 5, 1},
		{33, 64, 8},
	} {
		rects, err := Layout(tc.w, tc.h, tc.n)
		require.NoError(t, err)
		require.Len(t, rects, tc.n*tc.n)

		pw, ph := tc.w/tc.n, tc.h/tc.n
		for _, r := range rects {
			assert.Equal(t, pw, r.Dx())
			assert.Equal(t, ph, r.Dy())
			assert.True(t, r.In(image.Rect(0, 0, tc.w, tc.h)))
		}

		for a := range rects {
			for b := a + 1; b < len(rects); b++ {
				assert.True(t, rects[a].Intersect(rects[b]).Empty(), "cells %d and %d overlap", a, b)
			}
		}
	}
}

func TestLayoutOrderOuterIndexIsX(t *testing.T) {
	rects, err := Layout(100, 100, 4)
	require.NoError(t, err)

	assert.Equal(t, image.Pt(0, 0), rects[0].Min)
	assert.Equal(t, image.Pt(0, 25), rects[1].Min)
	assert.Equal(t, image.Pt(25, 0), rects[4].Min)
	assert.Equal(t, image.Pt(75, 75), rects[15].Min)
}

func TestLayoutExactMultipleCoversImage(t *testing.T) {
	rects, err := Layout(100, 100, 4)
	require.NoError(t, err)

	assert.Equal(t, 100*100, Covered(rects))
}

func TestLayoutDropsTrailingStrip(t *testing.T) {
	rects, err := Layout(101, 101, 4)
	require.NoError(t, err)

	assert.Len(t, rects, 16)
	assert.Equal(t, 100*100, Covered(rects))

	edge := image.Pt(100, 50)
	for _, r := range rects {
		assert.False(t, edge.In(r), "edge column pixel must not belong to %v", r)
	}
}

func TestLayoutErrors(t *testing.T) {
	_, err := Layout(100, 100, 0)
	assert.True(t, errors.Is(err, ErrInvalidPatchCount))

	_, err = Layout(3, 100, 4)
	assert.True(t, errors.Is(err, ErrImageTooSmall))
}

func TestSplitSinglePatchIsWholeImage(t *testing.T) {
	img := gradient(t, 31, 17)
	defer img.Close()

	patches, err := Split(img, 1)
	require.NoError(t, err)
	defer patches.Close()

	require.Len(t, patches, 1)
	assert.Equal(t, 31, patches[0].Mat.Cols())
	assert.Equal(t, 17, patches[0].Mat.Rows())
	assert.Equal(t, img.GetUCharAt(16, 30), patches[0].Mat.GetUCharAt(16, 30))
}

func TestSplitCopiesPixels(t *testing.T) {
	img := gradient(t, 100, 100)
	defer img.Close()

	patches, err := Split(img, 4)
	require.NoError(t, err)
	defer patches.Close()

	require.Len(t, patches, 16)
	for i, p := range patches {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, 25, p.Mat.Cols())
		assert.Equal(t, 25, p.Mat.Rows())

		// top-left pixel of the patch matches the source at its origin
		want := img.GetUCharAt(p.Bounds.Min.Y, p.Bounds.Min.X)
		assert.Equal(t, want, p.Mat.GetUCharAt(0, 0))
	}
}

func TestSplitPatchesAreIndependent(t *testing.T) {
	img := gradient(t, 40, 40)
	defer img.Close()

	patches, err := Split(img, 2)
	require.NoError(t, err)
	defer patches.Close()

	before := img.GetUCharAt(0, 0)
	patches[0].Mat.SetUCharAt(0, 0, before+1)

	assert.Equal(t, before, img.GetUCharAt(0, 0))
}

func TestSplitEmptyImage(t *testing.T) {
	img := gocv.NewMat()
	defer img.Close()

	_, err := Split(img, 4)
	assert.True(t, errors.Is(err, ErrEmptyImage))
}
