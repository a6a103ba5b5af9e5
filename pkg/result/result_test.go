package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorClassifiesTimeout(t *testing.T) {
	err := Wrap(KindTimeout, "deadline exceeded", nil)
	r := FromError("plug.id", "fuzz-params", err)
	assert.Equal(t, StatusTimedOut, r.Status)
}

func TestFromErrorClassifiesCrash(t *testing.T) {
	err := Wrap(KindCrash, "child exited with signal", nil)
	r := FromError("plug.id", "fuzz-params", err)
	assert.Equal(t, StatusCrashed, r.Status)
}

func TestFromErrorDefaultsToFailed(t *testing.T) {
	err := Wrap(KindContract, "round-trip mismatch", errors.New("text2 != text1"))
	r := FromError("plug.id", "convert-params", err)
	assert.Equal(t, StatusFailed, r.Status)
	assert.Contains(t, r.Details, "round-trip mismatch")
}

func TestFromErrorNilIsSuccess(t *testing.T) {
	r := FromError("plug.id", "convert-params", nil)
	assert.Equal(t, StatusSuccess, r.Status)
}
