package whatsapp

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.mau.fi/whatsmeow/types/events"
)

func TestReadyTracksSessionEvents(t *testing.T) {
	c := &Client{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	assert.False(t, c.Ready())

	c.handleEvent(&events.Connected{})
	assert.True(t, c.Ready())

	c.handleEvent(&events.Disconnected{})
	assert.False(t, c.Ready())

	c.handleEvent(&events.Connected{})
	c.handleEvent(&events.LoggedOut{})
	assert.False(t, c.Ready())
}
