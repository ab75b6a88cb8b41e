package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserInfo(t *testing.T) {
	t.Run("WithPassword", func(t *testing.T) {
		assert.Equal(t, "store:s3cret", userInfo("store", "s3cret"))
	})

	t.Run("EmptyPasswordOmitsColon", func(t *testing.T) {
		assert.Equal(t, "store", userInfo("store", ""))
	})
}
