package mux

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMux_postRoomValidation(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	var errObj errorResponse
	assertPost(t, ts, "/room", postRoomPayload{Name: ""}, &errObj, 400)
	assert.Equal(t, "room name is required", errObj.Message)

	assertPost(t, ts, "/room", postRoomPayload{Name: "friday game", MaxPlayers: 1}, &errObj, 400)
	assert.Equal(t, "a room must allow at least two players", errObj.Message)

	assertPost(t, ts, "/room", postRoomPayload{Name: "friday game", MaxPlayers: 9}, &errObj, 400)
	assert.Equal(t, "a room cannot allow more than eight players", errObj.Message)

	assertPost(t, ts, "/room", "{bad json", &errObj, 400)
}

func TestMux_postRoomContentType(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/room", strings.NewReader("{}"))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")

	var errObj errorResponse
	assertDo(t, req, &errObj, 415)
	assert.Equal(t, 415, errObj.StatusCode)
}

func TestMux_roomRouting(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	// a path segment that is not a UUID never reaches the room middleware
	assertGet(t, ts, "/room/not-a-uuid", nil, 404)
	assertGet(t, ts, "/room/not-a-uuid/ws", nil, 404)
}
