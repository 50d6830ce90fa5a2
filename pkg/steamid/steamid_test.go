package steamid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSteamId64(t *testing.T) {
	// Known pairing: account id 1 maps to the base offset plus one.
	assert.Equal(t, int64(76561197960265729), ToSteamId64(1))
	assert.Equal(t, "76561197960265729", ToSteamId64String(1))
}

func TestRoundTrip(t *testing.T) {
	accountIds := []int64{1, 86745912, 311360822, 898455820}

	for _, accountId := range accountIds {
		assert.Equal(t, accountId, ToAccountId(ToSteamId64(accountId)))
	}
}

func TestParseSteamId64(t *testing.T) {
	parsed, err := ParseSteamId64("76561197960265729")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), ToAccountId(parsed))

	_, err = ParseSteamId64("not-a-steam-id")
	assert.Error(t, err)
}
