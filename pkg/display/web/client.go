package web

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var errNotTCP = errors.New("web: latency is only available over tcp")

type Client struct {
	mu       sync.RWMutex
	hub      *hub
	conn     *websocket.Conn
	Send     chan []byte
	ID       uint8
	Metadata struct {
		RemoteAddr string
		UserAgent  string
		Username   string
	}
	avgLatency  uint16
	connectedAt time.Time
}

func (c *Client) latency() uint16 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.avgLatency
}

func (c *Client) ReadPump() {
	// deferred function to handle unregistering client
	// and closing connection
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
		}
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case KeepAlive:
		case Closing:
			return
		case RegisterUsername:
			c.mu.Lock()
			c.Metadata.Username = string(message[1:])
			c.mu.Unlock()
			c.hub.sendAllButClient(c, append([]byte{ClientInfo, c.ID}, message[1:]...))
		default:
			// only the controlling client may turn the knobs
			if !c.hub.isController(c) {
				continue
			}
			cmd, err := decodeRequest(message)
			if err != nil {
				c.hub.log.Errorf("%s: %v", c.Metadata.RemoteAddr, err)
				continue
			}
			if resp := c.hub.synth.SendCommand(cmd); resp.Error != nil {
				c.hub.log.Errorf("%s: %s: %v", c.Metadata.RemoteAddr, cmd.Command, resp.Error)
			}
		}
	}
}

func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.Send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}

		// update average latency
		if rtt, err := roundTrip(c.conn.UnderlyingConn()); err == nil {
			c.mu.Lock()
			c.avgLatency = ((c.avgLatency * 9) + rtt) / 10
			c.mu.Unlock()
		}
	}
	// the hub closed the channel
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
