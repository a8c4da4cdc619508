//go:build cuda

package features

import (
	"fmt"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/cuda"
)

// DeviceCount reports CUDA-capable devices visible to OpenCV.
func DeviceCount() int {
	return cuda.GetCudaEnabledDeviceCount()
}

// DefaultDevice returns the current CUDA device, or one that refuses work
// when none is present.
func DefaultDevice() Device {
	if DeviceCount() == 0 {
		return unavailableDevice{reason: ErrNoDevice}
	}
	return cudaDevice{id: cuda.GetDevice()}
}

// cudaDevice round-trips each image through device memory on its own stream.
// gocv binds no cudafeatures2d detector, so detection runs on the staged
// host copy.
type cudaDevice struct {
	id int
}

func (d cudaDevice) Submit(img gocv.Mat) (Transfer, error) {
	if img.Empty() {
		return nil, ErrEmptyImage
	}

	stream := cuda.NewStream()
	onDevice := cuda.NewGpuMat()
	onDevice.UploadWithStream(img, stream)

	host := gocv.NewMat()
	onDevice.DownloadWithStream(&host, stream)

	return &cudaTransfer{stream: stream, onDevice: onDevice, host: host, device: d.id}, nil
}

type cudaTransfer struct {
	stream   cuda.Stream
	onDevice cuda.GpuMat
	host     gocv.Mat
	device   int
}

func (t *cudaTransfer) Wait() (gocv.Mat, error) {
	t.stream.WaitForCompletion()
	t.onDevice.Close()
	t.stream.Close()

	if t.host.Empty() {
		t.host.Close()
		return gocv.NewMat(), fmt.Errorf("device %d returned an empty image", t.device)
	}
	return t.host, nil
}
