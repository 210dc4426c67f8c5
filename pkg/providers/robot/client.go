// Package robot implements the front-end actors over the robot head's
// realtime websocket API. Commands carry a request id; the robot
// answers with completion events tagged by the same id. Late events for
// ids nobody waits on anymore are dropped, which is exactly what the
// turn-taking race needs from a stale recognition result.
package robot

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/harunnryd/parley/pkg/dialogue"
	"github.com/harunnryd/parley/pkg/errorsx"
)

// Config locates the robot and sets the post-utterance pauses applied
// after each delivered line.
type Config struct {
	URL            string
	FirstTurnPause time.Duration
	TurnPause      time.Duration
}

// Client is a connected robot session. It implements VoiceConfig,
// Attention, SpeechOutput and SpeechInput.
type Client struct {
	cfg  Config
	conn *websocket.Conn
	log  *slog.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan event

	closed    chan struct{}
	closeOnce sync.Once
}

type command struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Name  string `json:"name,omitempty"`
	Text  string `json:"text,omitempty"`
	Audio string `json:"audio,omitempty"`
}

type event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	cmdVoiceSet      = "voice.set"
	cmdAttendNearest = "attend.nearest"
	cmdSay           = "say"
	cmdListen        = "listen"

	eventDone   = "done"
	eventResult = "result"
	eventError  = "error"
)

// Connect dials the robot and starts the event reader.
func Connect(ctx context.Context, cfg Config, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	dialer := websocket.Dialer{Proxy: http.ProxyFromEnvironment}
	conn, _, err := dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonRobotConnect)
	}
	c := &Client{
		cfg:     cfg,
		conn:    conn,
		log:     log,
		pending: make(map[string]chan event),
		closed:  make(chan struct{}),
	}
	log.Info("robot_connected", slog.String("url", cfg.URL))
	go c.readLoop()
	return c, nil
}

// Close tears down the connection. Waiters fail with a closed error.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

func (c *Client) readLoop() {
	defer c.Close()
	for {
		var ev event
		if err := c.conn.ReadJSON(&ev); err != nil {
			select {
			case <-c.closed:
			default:
				c.log.Warn("robot_read_failed", slog.String("error", err.Error()))
			}
			return
		}
		c.mu.Lock()
		ch, ok := c.pending[ev.ID]
		c.mu.Unlock()
		if !ok {
			// Nobody is waiting on this id anymore; a stale listen
			// result from an abandoned race ends up here.
			c.log.Debug("robot_event_dropped",
				slog.String("id", ev.ID),
				slog.String("type", ev.Type))
			continue
		}
		ch <- ev
	}
}

// request sends one command and waits for its completion event.
func (c *Client) request(ctx context.Context, cmd command, reason errorsx.ReasonCode) (event, error) {
	cmd.ID = uuid.NewString()
	ch := make(chan event, 1)
	c.mu.Lock()
	c.pending[cmd.ID] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, cmd.ID)
		c.mu.Unlock()
	}()

	c.writeMu.Lock()
	err := c.conn.WriteJSON(cmd)
	c.writeMu.Unlock()
	if err != nil {
		return event{}, errorsx.Wrap(err, errorsx.ReasonRobotSend)
	}

	select {
	case <-ctx.Done():
		return event{}, ctx.Err()
	case <-c.closed:
		return event{}, errorsx.New(errorsx.ReasonRobotClosed, "robot connection closed")
	case ev := <-ch:
		if ev.Type == eventError {
			return event{}, errorsx.New(reason, "robot: %s", ev.Message)
		}
		return ev, nil
	}
}

// SetVoice selects the synthesis voice on the robot.
func (c *Client) SetVoice(ctx context.Context, name string) error {
	_, err := c.request(ctx, command{Type: cmdVoiceSet, Name: name}, errorsx.ReasonVoiceConfig)
	return errorsx.Wrap(err, errorsx.ReasonVoiceConfig)
}

// AttendNearestUser turns the robot's gaze to the closest tracked user.
func (c *Client) AttendNearestUser(ctx context.Context) error {
	_, err := c.request(ctx, command{Type: cmdAttendNearest}, errorsx.ReasonAttention)
	return errorsx.Wrap(err, errorsx.ReasonAttention)
}

// Speak delivers one utterance and blocks through the robot's done
// event plus the post-utterance pause.
func (c *Client) Speak(ctx context.Context, u dialogue.Utterance, firstTurn bool) error {
	cmd := command{Type: cmdSay, Text: u.Text, Audio: u.AudioRef}
	if _, err := c.request(ctx, cmd, errorsx.ReasonSpeak); err != nil {
		return errorsx.Wrap(err, errorsx.ReasonSpeak)
	}
	pause := c.cfg.TurnPause
	if firstTurn {
		pause = c.cfg.FirstTurnPause
	}
	if pause > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pause):
		}
	}
	return nil
}

// Listen captures a single utterance from the robot's recogniser.
func (c *Client) Listen(ctx context.Context) (string, error) {
	ev, err := c.request(ctx, command{Type: cmdListen}, errorsx.ReasonListen)
	if err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonListen)
	}
	if ev.Type != eventResult {
		return "", errorsx.Wrap(errors.New("unexpected event "+ev.Type), errorsx.ReasonListen)
	}
	return ev.Text, nil
}
