package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	info, _ := Describe(context.Background(), 0)

	assert.Greater(t, info.LogicalCores, 0)
	assert.Greater(t, info.GoMaxProcs, 0)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.GocvVersion)
	assert.NotEmpty(t, info.OpenCVVersion)
	assert.Zero(t, info.CUDADevices)
}

func TestFields(t *testing.T) {
	fields := HostInfo{CPUModel: "test cpu", LogicalCores: 8, CUDADevices: 1}.Fields()

	assert.Equal(t, "test cpu", fields["cpu_model"])
	assert.Equal(t, 8, fields["logical_cores"])
	assert.Equal(t, 1, fields["cuda_devices"])
}
