package websocket

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoom_StringRoundTrip(t *testing.T) {
	req := require.New(t)

	for _, room := range []Room{UserRoom("u1"), GroupRoom("g1")} {
		parsed, err := ParseRoom(room.String())
		req.NoError(err)
		req.Equal(room, parsed)
	}
	req.Equal("user:u1", UserRoom("u1").String())
	req.Equal("group:g1", GroupRoom("g1").String())
}

func TestParseRoom_Rejects(t *testing.T) {
	for _, in := range []string{"", "user", "user:", "channel:x"} {
		_, err := ParseRoom(in)
		require.Error(t, err, "input %q", in)
	}
}

func TestRoom_KindsDoNotCollide(t *testing.T) {
	require.NotEqual(t, UserRoom("same"), GroupRoom("same"))
}
