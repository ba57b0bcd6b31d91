package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	assert.Equal(t, "ghost-pepper-and-mango", FromName("  Ghost Pepper & Mango ", "x"))
	assert.Equal(t, "grandmas-habanero", FromName("Grandma's Habanero!!", "x"))
	assert.Equal(t, "product", FromName("¡¡!!", "product"))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("carolina-reaper-10"))
	assert.False(t, Valid("Carolina Reaper"))
	assert.False(t, Valid(""))
}
