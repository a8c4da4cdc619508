package features

import (
	"fmt"

	"gocv.io/x/gocv"
)

type CPUProcessor struct {
	algorithm Algorithm
}

func NewCPUProcessor(alg Algorithm) *CPUProcessor {
	return &CPUProcessor{algorithm: alg}
}

func (p *CPUProcessor) Variant() Variant {
	return Variant{Algorithm: p.algorithm, Backend: CPU}
}

func (p *CPUProcessor) ComputeFeatures(img gocv.Mat) (int, error) {
	count, err := detectAndCount(p.algorithm, img)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", p.Variant(), err)
	}
	return count, nil
}
