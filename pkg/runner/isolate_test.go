package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clapval/clapval/pkg/result"
)

func TestParseResultLineFindsJSONAmongLogNoise(t *testing.T) {
	out := []byte("some startup log line\n" +
		`{"plugin_id":"com.example.synth","test_name":"convert-params","status":"success"}` + "\n" +
		"trailing noise\n")

	r, ok := parseResultLine(out)
	require.True(t, ok)
	assert.Equal(t, result.StatusSuccess, r.Status)
	assert.Equal(t, "convert-params", r.TestName)
}

func TestParseResultLineFailsOnNoJSON(t *testing.T) {
	_, ok := parseResultLine([]byte("nothing but noise\n"))
	assert.False(t, ok)
}

func TestParseResultLineRejectsEmptyInput(t *testing.T) {
	_, ok := parseResultLine(nil)
	assert.False(t, ok)
}
