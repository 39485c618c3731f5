package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullVersion(t *testing.T) {
	assert.Equal(t, Version+" ("+Commit+")", FullVersion())
	assert.Contains(t, FullVersion(), Version)
}
