package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhoneValid(t *testing.T) {
	assert.True(t, IsPhoneValid("998901234567"))

	for _, p := range []string{"", "+998901234567", "99890123456", "9989012345678", "797012345678", "99890abc4567"} {
		assert.False(t, IsPhoneValid(p), p)
	}
}
