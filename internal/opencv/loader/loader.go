package loader

import (
	"errors"
	"fmt"
	"image"

	"keypoint-bench/internal/logger"
	"keypoint-bench/internal/opencv/conversion"
	"keypoint-bench/internal/opencv/safe"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// ErrImageLoad reports a path that neither OpenCV nor the Go decoders could read.
var ErrImageLoad = errors.New("failed to read image")

type Loader struct {
	logger logger.Logger
}

func New(log logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop{}
	}
	return &Loader{logger: log}
}

// Load decodes path as 8-bit grayscale and resizes it to width x height.
// The caller owns the returned Mat.
func (l *Loader) Load(path string, width, height int) (gocv.Mat, error) {
	if err := safe.ValidateDimensions(width, height, "resize"); err != nil {
		return gocv.NewMat(), err
	}

	original, err := l.decode(path)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer original.Close()

	l.logger.Debug("Loader", "image decoded", map[string]interface{}{
		"path":   path,
		"width":  original.Cols(),
		"height": original.Rows(),
	})

	resized := gocv.NewMat()
	gocv.Resize(original, &resized, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)
	if err := safe.ValidateGrayscale(resized, "resize"); err != nil {
		resized.Close()
		return gocv.NewMat(), fmt.Errorf("resize to %dx%d failed: %w", width, height, err)
	}

	l.logger.Info("Loader", "image loaded", map[string]interface{}{
		"path":   path,
		"width":  resized.Cols(),
		"height": resized.Rows(),
	})

	return resized, nil
}

func (l *Loader) decode(path string) (gocv.Mat, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	if !mat.Empty() {
		return mat, nil
	}
	mat.Close()

	l.logger.Debug("Loader", "OpenCV could not decode image, trying Go decoders", map[string]interface{}{
		"path": path,
	})

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("%w: %s: %v", ErrImageLoad, path, err)
	}

	gray, err := conversion.ImageToGrayMat(img)
	if err != nil {
		gray.Close()
		return gocv.NewMat(), fmt.Errorf("%w: %s: %v", ErrImageLoad, path, err)
	}

	return gray, nil
}
