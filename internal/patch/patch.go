// Package patch cuts an image into an N×N grid of independent sub-images.
//
// Tiles are ⌊width/N⌋ × ⌊height/N⌋. Columns and rows left over by the integer
// division at the right and bottom edges belong to no patch.
package patch

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

var (
	ErrInvalidPatchCount = errors.New("patch count must be at least 1")
	ErrEmptyImage        = errors.New("image is empty")
	ErrImageTooSmall     = errors.New("image is smaller than the patch grid")
)

// Patch owns a clone of one grid cell. Index follows split order.
type Patch struct {
	Index  int
	Bounds image.Rectangle
	Mat    gocv.Mat
}

func (p *Patch) Close() error {
	return p.Mat.Close()
}

// Set is the ordered output of Split.
type Set []Patch

func (s Set) Close() {
	for i := range s {
		s[i].Close()
	}
}

// Layout returns the n² cell rectangles for a width x height image. The outer
// loop walks x, so cell i*n+j has origin (i*pw, j*ph).
func Layout(width, height, n int) ([]image.Rectangle, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPatchCount, n)
	}

	pw := width / n
	ph := height / n
	if pw == 0 || ph == 0 {
		return nil, fmt.Errorf("%w: %dx%d into %dx%d cells", ErrImageTooSmall, width, height, n, n)
	}

	rects := make([]image.Rectangle, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x, y := i*pw, j*ph
			rects = append(rects, image.Rect(x, y, x+pw, y+ph))
		}
	}

	return rects, nil
}

// Split clones every Layout cell of img. The caller closes the returned Set.
func Split(img gocv.Mat, n int) (Set, error) {
	if img.Empty() {
		return nil, ErrEmptyImage
	}

	rects, err := Layout(img.Cols(), img.Rows(), n)
	if err != nil {
		return nil, err
	}

	patches := make(Set, 0, len(rects))
	for idx, rect := range rects {
		region := img.Region(rect)
		clone := region.Clone()
		region.Close()

		patches = append(patches, Patch{Index: idx, Bounds: rect, Mat: clone})
	}

	return patches, nil
}

// Covered is the pixel area reached by the grid, n²·pw·ph.
func Covered(rects []image.Rectangle) int {
	total := 0
	for _, r := range rects {
		total += r.Dx() * r.Dy()
	}
	return total
}
