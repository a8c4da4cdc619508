package features

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Device stages images on an accelerator. Submit returns as soon as the work
// is queued; the matching Transfer.Wait is the only synchronisation point.
type Device interface {
	Submit(img gocv.Mat) (Transfer, error)
}

// Transfer is queued device work. Wait blocks until it completes and returns
// the host-side image, which the caller closes.
type Transfer interface {
	Wait() (gocv.Mat, error)
}

type GPUProcessor struct {
	algorithm Algorithm
	device    Device
}

func NewGPUProcessor(alg Algorithm, device Device) *GPUProcessor {
	return &GPUProcessor{algorithm: alg, device: device}
}

func (p *GPUProcessor) Variant() Variant {
	return Variant{Algorithm: p.algorithm, Backend: GPU}
}

func (p *GPUProcessor) ComputeFeatures(img gocv.Mat) (int, error) {
	if img.Empty() {
		return 0, fmt.Errorf("%s: %w", p.Variant(), ErrEmptyImage)
	}
	if p.device == nil {
		return 0, fmt.Errorf("%s: %w", p.Variant(), ErrNoDevice)
	}

	transfer, err := p.device.Submit(img)
	if err != nil {
		return 0, fmt.Errorf("%s: submit: %w", p.Variant(), err)
	}

	staged, err := transfer.Wait()
	if err != nil {
		return 0, fmt.Errorf("%s: wait: %w", p.Variant(), err)
	}
	defer staged.Close()

	count, err := detectAndCount(p.algorithm, staged)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", p.Variant(), err)
	}
	return count, nil
}

// unavailableDevice is what DefaultDevice hands out when no CUDA device can
// be used; every Submit fails with the reason.
type unavailableDevice struct {
	reason error
}

func (d unavailableDevice) Submit(gocv.Mat) (Transfer, error) {
	return nil, d.reason
}
