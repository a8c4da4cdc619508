package conversion

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// ImageToGrayMat converts a decoded Go image into a single-channel 8-bit Mat.
// Colour input is reduced with imaging.Grayscale first.
func ImageToGrayMat(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.NewMat(), fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return gocv.NewMat(), fmt.Errorf("input image has invalid dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	gray, ok := img.(*image.Gray)
	if !ok {
		gray = toGray(imaging.Grayscale(img))
	}

	mat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("gray image to Mat conversion failed: %w", err)
	}

	return mat, nil
}

// toGray keeps one channel of an already desaturated NRGBA image.
func toGray(src *image.NRGBA) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			dstRow[x] = srcRow[x*4]
		}
	}

	return dst
}
