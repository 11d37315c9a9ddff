package pagination_test

import (
	"testing"
	"time"

	"github.com/openprocure/procurement_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 8, 14, 9, 30, 0, 123456789, time.UTC)
	id := "li-42"

	token := pagination.EncodeToken(createdAt, id)
	gotTime, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	t.Run("not base64", func(t *testing.T) {
		_, _, err := pagination.DecodeToken("not-base64!!!")
		assert.Error(t, err)
	})

	t.Run("missing separator", func(t *testing.T) {
		_, _, err := pagination.DecodeToken("bm8gc2VwYXJhdG9y") // "no separator"
		assert.Error(t, err)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		_, _, err := pagination.DecodeToken("bm90LWEtdGltZXxpZA==") // "not-a-time|id"
		assert.Error(t, err)
	})
}
