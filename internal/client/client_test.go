package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/DoyleJ11/battle-relay/internal/httpapi"
	"github.com/DoyleJ11/battle-relay/internal/hub"
	"github.com/DoyleJ11/battle-relay/pkg/protocol"
)

func newServer(t *testing.T) (*Client, *hub.Hub) {
	t.Helper()
	log := zaptest.NewLogger(t)
	h := hub.NewHub(context.Background(), log)
	t.Cleanup(func() { _ = h.Shutdown(context.Background()) })

	srv := httptest.NewServer(httpapi.SetupRoutes(h, log))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", WithHTTPClient(srv.Client())), h
}

func TestClientPlaysATurn(t *testing.T) {
	c, _ := newServer(t)
	ctx := context.Background()

	a, err := c.Join(ctx, protocol.JoinRequest{Name: "A"})
	require.NoError(t, err)
	require.Equal(t, protocol.StatusWaiting, a.Status)

	b, err := c.Join(ctx, protocol.JoinRequest{Name: "B"})
	require.NoError(t, err)
	require.Equal(t, protocol.StatusMatched, b.Status)
	require.NotNil(t, b.Seed)

	for _, id := range []string{a.ID, b.ID} {
		res, err := c.SubmitAction(ctx, protocol.ActionRequest{GameID: b.GameID, ID: id, ActionType: "move", Turn: protocol.Ptr(1)})
		require.NoError(t, err)
		require.Equal(t, protocol.StatusOK, res.Status)
	}

	poll, err := c.Poll(ctx, protocol.PollRequest{ID: b.ID})
	require.NoError(t, err)
	require.Equal(t, protocol.StatusTurnReady, poll.Status)
	require.NotNil(t, poll.Seed)
	assert.Equal(t, *b.Seed, *poll.Seed)

	_, err = c.PostChat(ctx, protocol.ChatRequest{GameID: b.GameID, ID: a.ID, Msg: "gl"})
	require.NoError(t, err)

	for _, id := range []string{a.ID, b.ID} {
		_, err := c.ConfirmTurn(ctx, protocol.ConfirmRequest{GameID: b.GameID, ID: id})
		require.NoError(t, err)
	}

	poll, err = c.Poll(ctx, protocol.PollRequest{ID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, protocol.StatusBattleOngoing, poll.Status)
	require.NotNil(t, poll.Chat)
	assert.Equal(t, "gl", poll.Chat.Msg)

	_, err = c.Leave(ctx, protocol.LeaveRequest{ID: a.ID, GameID: b.GameID})
	require.NoError(t, err)
	poll, err = c.Poll(ctx, protocol.PollRequest{ID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrRejoin, poll.Error)
}

func TestClientReportsUnavailable(t *testing.T) {
	c, h := newServer(t)
	require.NoError(t, h.Shutdown(context.Background()))

	_, err := c.Poll(context.Background(), protocol.PollRequest{ID: "x"})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestClientReportsUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	_, err := New(srv.URL).Join(context.Background(), protocol.JoinRequest{})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, "join", se.Op)
}
