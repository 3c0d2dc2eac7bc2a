package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())

	orig := version
	t.Cleanup(func() { version = orig })
	version = "v9.9.9"
	assert.Equal(t, "v9.9.9", GetVersion())
}

func TestGetCommit(t *testing.T) {
	orig := commit
	t.Cleanup(func() { commit = orig })
	commit = "abc123"
	assert.Equal(t, "abc123", GetCommit())
}
