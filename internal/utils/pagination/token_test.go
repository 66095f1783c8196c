package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	occurredAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(occurredAt, "evt-1")
	assert.NotEmpty(t, token)

	gotTime, gotID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, occurredAt.Equal(gotTime))
	assert.Equal(t, "evt-1", gotID)
}

func TestEncodeToken_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	local := time.Date(2024, 1, 1, 9, 0, 0, 0, loc)

	gotTime, _, err := DecodeToken(EncodeToken(local, "evt"))
	require.NoError(t, err)
	assert.True(t, local.Equal(gotTime))
	assert.Equal(t, time.UTC, gotTime.Location())
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.ErrorContains(t, err, "base64 decode")

	_, _, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("2024-01-01T00:00:00Z")))
	assert.ErrorContains(t, err, "split")

	_, _, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("notadate|evt")))
	assert.ErrorContains(t, err, "timestamp parse")
}
