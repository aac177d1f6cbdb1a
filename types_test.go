package rarblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "FileHeader", BlockFile.String())
	assert.Equal(t, "Unknown(0xff)", BlockType(0xff).String())
	assert.True(t, BlockTerminator.Known())
	assert.False(t, BlockType(0x7c).Known())

	assert.Equal(t, "Unix", HostUnix.String())
	assert.False(t, HostOS(9).Known())
	assert.Equal(t, "Unknown(9)", HostOS(9).String())

	assert.Equal(t, "Best", MethodBest.String())
	assert.False(t, PackMethod(0x36).Known())
}

func TestHeaderFlags(t *testing.T) {
	f := HeaderFlags(0xc000)
	assert.True(t, f.HasAddSize())
	assert.True(t, f.IsDeleted())
	assert.False(t, HeaderFlags(0x0001).HasAddSize())
}
