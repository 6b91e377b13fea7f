package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindDistrict(t *testing.T) {
	dhaka := FindDistrict("Dhaka")
	assert.NotNil(t, dhaka)
	assert.True(t, dhaka.IsMetro)

	khulna := FindDistrict("Khulna")
	assert.NotNil(t, khulna)
	assert.False(t, khulna.IsMetro)

	assert.Nil(t, FindDistrict("Atlantis"))
}
