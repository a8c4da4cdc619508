package features

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

var (
	ErrEmptyImage       = errors.New("image is empty")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrNoDevice         = errors.New("no CUDA device available")
)

// Processor counts the keypoints a detector finds in one image. A call holds
// no state afterwards, so one Processor may serve concurrent callers.
type Processor interface {
	ComputeFeatures(img gocv.Mat) (int, error)
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc func(img gocv.Mat) (int, error)

func (f ProcessorFunc) ComputeFeatures(img gocv.Mat) (int, error) {
	return f(img)
}

type Algorithm int

const (
	AKAZE Algorithm = iota
	SIFT
	ORB
)

func (a Algorithm) String() string {
	switch a {
	case AKAZE:
		return "AKAZE"
	case SIFT:
		return "SIFT"
	case ORB:
		return "ORB"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

type Backend int

const (
	CPU Backend = iota
	GPU
)

func (b Backend) String() string {
	switch b {
	case CPU:
		return "CPU"
	case GPU:
		return "GPU"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// Variant names one algorithm on one backend, e.g. "ORB - GPU".
type Variant struct {
	Algorithm Algorithm
	Backend   Backend
}

func (v Variant) String() string {
	return v.Algorithm.String() + " - " + v.Backend.String()
}

// detectAndCount runs detect-and-compute with a fresh detector and drops the
// descriptors.
func detectAndCount(alg Algorithm, img gocv.Mat) (int, error) {
	if img.Empty() {
		return 0, ErrEmptyImage
	}

	mask := gocv.NewMat()
	defer mask.Close()

	var (
		keypoints   []gocv.KeyPoint
		descriptors gocv.Mat
	)

	switch alg {
	case AKAZE:
		detector := gocv.NewAKAZE()
		defer detector.Close()
		keypoints, descriptors = detector.DetectAndCompute(img, mask)
	case SIFT:
		detector := gocv.NewSIFT()
		defer detector.Close()
		keypoints, descriptors = detector.DetectAndCompute(img, mask)
	case ORB:
		detector := gocv.NewORB()
		defer detector.Close()
		keypoints, descriptors = detector.DetectAndCompute(img, mask)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, alg)
	}
	descriptors.Close()

	return len(keypoints), nil
}
