//go:build !cuda

package features

import "fmt"

// DeviceCount is always 0 without the cuda build tag.
func DeviceCount() int {
	return 0
}

func DefaultDevice() Device {
	return unavailableDevice{reason: fmt.Errorf("%w: built without the cuda tag", ErrNoDevice)}
}
