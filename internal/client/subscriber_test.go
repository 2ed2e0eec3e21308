package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carcassonne/internal/client"
	"carcassonne/internal/errors"
	"carcassonne/internal/shared"
)

// scriptedServer acknowledges the handshake and then sends frames verbatim.
func scriptedServer(t *testing.T, frames ...string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		var hello shared.NewConnection
		if err := conn.ReadJSON(&hello); err != nil {
			return
		}
		ack := shared.OK()
		ack.ConnectionID = "sub_1"
		_ = conn.WriteJSON(ack)
		for _, f := range frames {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(f))
		}
		// Hold the connection until the client leaves.
		_, _, _ = conn.ReadMessage()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newSubscriber(t *testing.T, url string) *client.Subscriber {
	t.Helper()
	s, err := client.NewSubscriber(&client.SubscriberConfig{
		ServerURL:   url,
		Room:        "ABCD",
		RetryDelay:  time.Millisecond,
		MaxAttempts: 2,
	})
	require.NoError(t, err)
	return s
}

func TestSubscriberDeliversBroadcasts(t *testing.T) {
	srv := scriptedServer(t,
		`{"action":"WELCOME","originator":"sub_1","data":{"subscriberId":"sub_1","subscribers":1}}`,
		`{"action":"PLACING_SKIPPED","originator":"sub_2","data":{"player":1}}`,
	)
	sub, err := newSubscriber(t, srv.URL).Subscribe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sub_1", sub.ID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var got []string
	err = sub.Run(ctx, func(_ context.Context, msg shared.Broadcast) error {
		got = append(got, msg.Action)
		if len(got) == 2 {
			cancel()
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{shared.ActionWelcome, shared.ActionPlacingSkipped}, got)
}

func TestSubscriberUndecodableFrameIsFatal(t *testing.T) {
	srv := scriptedServer(t, `not json`)
	sub, err := newSubscriber(t, srv.URL).Subscribe(context.Background())
	require.NoError(t, err)

	err = sub.Run(context.Background(), func(context.Context, shared.Broadcast) error { return nil })
	assert.Equal(t, errors.CodeDataLoss, errors.GetCode(err))
}

func TestSubscriberHandlerErrorEndsRun(t *testing.T) {
	srv := scriptedServer(t, `{"action":"TILE_PLACED","data":{}}`)
	sub, err := newSubscriber(t, srv.URL).Subscribe(context.Background())
	require.NoError(t, err)

	err = sub.Run(context.Background(), func(context.Context, shared.Broadcast) error {
		return errors.Desyncf("diverged")
	})
	assert.True(t, errors.IsDesync(err))
}

func TestSubscriberDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newSubscriber(t, url).Subscribe(context.Background())
	assert.True(t, errors.IsUnavailable(err))
}
