package safe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gocv.io/x/gocv"
)

func TestValidateMatForOperation(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()
	assert.Error(t, ValidateMatForOperation(empty, "split"))

	gray := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC1)
	defer gray.Close()
	assert.NoError(t, ValidateMatForOperation(gray, "split"))
}

func TestValidateGrayscale(t *testing.T) {
	gray := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC1)
	defer gray.Close()
	assert.NoError(t, ValidateGrayscale(gray, "detect"))

	colour := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC3)
	defer colour.Close()
	assert.ErrorContains(t, ValidateGrayscale(colour, "detect"), "requires 1 channel")

	float := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV32FC1)
	defer float.Close()
	assert.ErrorContains(t, ValidateGrayscale(float, "detect"), "CV_8UC1")
}

func TestValidateDimensions(t *testing.T) {
	assert.NoError(t, ValidateDimensions(640, 480, "resize"))
	assert.Error(t, ValidateDimensions(0, 480, "resize"))
	assert.Error(t, ValidateDimensions(640, -1, "resize"))
	assert.Error(t, ValidateDimensions(MaxDimension+1, 10, "resize"))
}
