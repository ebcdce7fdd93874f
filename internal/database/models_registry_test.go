package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersistentModels_NotEmpty(t *testing.T) {
	registry := PersistentModels()
	assert.NotEmpty(t, registry)
	for _, m := range registry {
		assert.NotNil(t, m)
	}
}
