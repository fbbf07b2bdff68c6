// Package whatsapp delivers rendered reports over WhatsApp using a
// persisted device session (SQLite). First run prints a pairing QR code to
// the terminal.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
)

// ErrNotReady means the WhatsApp session is not established yet. The
// pipeline records it as a channel failure; it must never read as
// delivered.
var ErrNotReady = errors.New("whatsapp: client not ready")

type Client struct {
	wa    *whatsmeow.Client
	ready atomic.Bool
	log   *slog.Logger
}

// NewClient opens (or creates) the session store at dbPath and builds the
// client. Connect must be called before the client can send.
func NewClient(ctx context.Context, dbPath string, logger *slog.Logger) (*Client, error) {
	container, err := sqlstore.New(ctx, "sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", dbPath), waLog.Noop)
	if err != nil {
		return nil, fmt.Errorf("whatsapp session store: %w", err)
	}
	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("whatsapp device: %w", err)
	}

	c := &Client{
		wa:  whatsmeow.NewClient(device, waLog.Noop),
		log: logger.With("component", "whatsapp"),
	}
	c.wa.AddEventHandler(c.handleEvent)
	return c, nil
}

// Connect establishes the session. With no stored credentials it starts the
// QR pairing flow and returns immediately; readiness arrives with the
// Connected event.
func (c *Client) Connect(ctx context.Context) error {
	if c.wa.Store.ID == nil {
		qrChan, err := c.wa.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("whatsapp qr channel: %w", err)
		}
		if err := c.wa.Connect(); err != nil {
			return fmt.Errorf("whatsapp connect: %w", err)
		}
		go func() {
			for evt := range qrChan {
				if evt.Event == "code" {
					c.log.Info("Scan the QR code below to pair WhatsApp")
					qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
				} else {
					c.log.Info("WhatsApp pairing event", "event", evt.Event)
				}
			}
		}()
		return nil
	}
	if err := c.wa.Connect(); err != nil {
		return fmt.Errorf("whatsapp connect: %w", err)
	}
	return nil
}

func (c *Client) handleEvent(evt interface{}) {
	switch evt.(type) {
	case *events.Connected:
		c.ready.Store(true)
		c.log.Info("WhatsApp client ready")
	case *events.Disconnected:
		c.ready.Store(false)
		c.log.Warn("WhatsApp client disconnected")
	case *events.LoggedOut:
		c.ready.Store(false)
		c.log.Warn("WhatsApp session logged out, re-pairing required")
	}
}

func (c *Client) Ready() bool {
	return c.ready.Load()
}

// Send uploads the report and delivers it as a document message with a
// greeting caption. Fails fast with ErrNotReady when the session is not
// established.
func (c *Client) Send(ctx context.Context, phone, name, path string) error {
	if !c.ready.Load() {
		return ErrNotReady
	}

	jid, err := ToJID(phone)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	uploaded, err := c.wa.Upload(ctx, data, whatsmeow.MediaDocument)
	if err != nil {
		return fmt.Errorf("upload report: %w", err)
	}

	msg := &waE2E.Message{DocumentMessage: &waE2E.DocumentMessage{
		Title:         proto.String("Relatório Pit Stop Golf"),
		FileName:      proto.String(filepath.Base(path)),
		Mimetype:      proto.String("application/pdf"),
		Caption:       proto.String(fmt.Sprintf("Olá %s, segue o seu relatório do Pit Stop Golf.", name)),
		URL:           proto.String(uploaded.URL),
		DirectPath:    proto.String(uploaded.DirectPath),
		MediaKey:      uploaded.MediaKey,
		FileEncSHA256: uploaded.FileEncSHA256,
		FileSHA256:    uploaded.FileSHA256,
		FileLength:    proto.Uint64(uint64(len(data))),
	}}

	if _, err := c.wa.SendMessage(ctx, jid, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	c.log.Info("Message sent", "jid", jid.String(), "name", name)
	return nil
}

func (c *Client) Disconnect() {
	c.wa.Disconnect()
}
