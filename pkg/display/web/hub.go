package web

import (
	"context"
	"encoding/binary"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/onebit/pkg/display"
	"github.com/thelolagemann/onebit/pkg/log"
)

type hub struct {
	synth display.Synth
	log   log.Logger

	clients    map[*Client]bool
	controller *Client

	broadcast            chan []byte
	register, unregister chan *Client
	quit                 chan struct{}

	server    *http.Server
	currentID uint8

	mu sync.RWMutex
}

func newHub(s display.Synth, l log.Logger) *hub {
	return &hub{
		synth:      s,
		log:        l,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// handler upgrades every request to a websocket client.
func (w *hub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(wr http.ResponseWriter, r *http.Request) {
		wr.Header().Set("Access-Control-Allow-Origin", "*")

		// upgrade the connection to a websocket connection
		conn, err := upgrader.Upgrade(wr, r, nil)
		if err != nil {
			w.log.Errorf("web: upgrading %s: %v", r.RemoteAddr, err)
			return
		}

		// create new client
		c := w.newClient(conn, r)

		// spawn read/write pumps
		go c.ReadPump()
		go c.WritePump()
	})
	return mux
}

// listen prepares the server for addr; serve then runs it.
func (w *hub) listen(addr string) {
	w.server = &http.Server{Addr: addr, Handler: w.handler()}
}

// serve accepts clients until the hub is closed.
func (w *hub) serve() error {
	w.log.Infof("web: listening on %s", w.server.Addr)
	if err := w.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (w *hub) close() {
	close(w.quit)
	if w.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		w.server.Shutdown(ctx)
	}
}

// run owns the client set: registration, controller hand-over and
// broadcasting.
func (w *hub) run() {
	// periodic info updates
	t := time.NewTicker(time.Second * 1)
	defer t.Stop()

	for {
		select {
		case <-w.quit:
			w.mu.Lock()
			for c := range w.clients {
				close(c.Send)
				delete(w.clients, c)
			}
			w.mu.Unlock()
			return
		case c := <-w.register:
			w.mu.Lock()
			w.clients[c] = true
			if w.controller == nil {
				w.controller = c
			}
			w.mu.Unlock()
			w.welcome(c)
		case c := <-w.unregister:
			w.mu.Lock()
			// is this client still registered
			if _, ok := w.clients[c]; ok {
				delete(w.clients, c)
				close(c.Send)

				// notify connected clients that this client has disconnected
				for cl := range w.clients {
					select {
					case cl.Send <- []byte{ClientClosing, c.ID}:
					default:
					}
				}

				// hand control to the longest connected client
				if c == w.controller {
					w.controller = w.nextController()
					if w.controller != nil {
						select {
						case w.controller.Send <- []byte{Role, Controller}:
						default:
						}
					}
				}
			}
			w.mu.Unlock()
		case msg := <-w.broadcast:
			w.mu.Lock()
			for c := range w.clients {
				select {
				case c.Send <- msg:
				default:
					close(c.Send)
					delete(w.clients, c)
					if c == w.controller {
						w.controller = w.nextController()
					}
				}
			}
			w.mu.Unlock()
		case <-t.C:
			// build information
			var data []byte
			w.mu.RLock()
			for c := range w.clients {
				latencyBuf := make([]byte, 2)
				binary.LittleEndian.PutUint16(latencyBuf, c.latency())
				data = append(data, c.ID)
				data = append(data, latencyBuf...)
			}
			w.mu.RUnlock()

			w.send(append([]byte{ServerInfo}, data...))
		}
	}
}

// welcome tells a new client its role, the knob positions and the
// other clients.
func (w *hub) welcome(c *Client) {
	role := Spectator
	if w.isController(c) {
		role = Controller
	}
	c.Send <- []byte{Role, role}
	knobs := w.synth.Knobs()
	c.Send <- encodeKnobs(knobs[:])

	// synchronize clients to connecting client
	var data []byte
	w.mu.RLock()
	for cl := range w.clients {
		if c == cl {
			continue // skip self
		}

		cl.mu.RLock()
		data = append(data, cl.Metadata.RemoteAddr...)
		data = append(data, 0)
		data = append(data, cl.Metadata.UserAgent...)
		data = append(data, 0)
		data = append(data, cl.Metadata.Username...)
		cl.mu.RUnlock()
		data = append(data, 0)
		data = append(data, cl.ID)
		data = append(data, byte('\n'))
	}
	w.mu.RUnlock()

	if len(data) > 0 {
		// remove last newline to avoid issues with JS
		data = data[:len(data)-1]
	}

	c.Send <- append([]byte{ClientListSync}, data...)
}

// send queues msg for every client, dropping it if the hub is behind.
func (w *hub) send(msg []byte) {
	select {
	case w.broadcast <- msg:
	default:
	}
}

func (w *hub) isController(c *Client) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.controller == c
}

// nextController returns the client that has been connected the
// longest. Used when the controlling client disconnects and another
// is able to take over. The caller holds mu.
func (w *hub) nextController() *Client {
	var next *Client
	for c := range w.clients {
		if next == nil || c.connectedAt.Before(next.connectedAt) {
			next = c
		}
	}

	return next
}

// newClient creates a new client and registers it to the hub
func (w *hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	w.mu.Lock()
	w.currentID++
	id := w.currentID
	w.mu.Unlock()

	c := &Client{
		hub:         w,
		conn:        conn,
		Send:        make(chan []byte, 256),
		ID:          id,
		connectedAt: time.Now(),
	}
	c.Metadata.RemoteAddr = r.RemoteAddr
	c.Metadata.UserAgent = r.Header.Get("User-Agent")
	select {
	case w.register <- c:
	case <-w.quit:
		close(c.Send)
	}
	return c
}

// sendAllButClient sends a message to all connected clients except
// the one specified. Used for events such as username registration,
// where the client is the one that initiated the event, so is already
// aware of the registered username.
func (w *hub) sendAllButClient(client *Client, message []byte) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for c := range w.clients {
		if c == client {
			continue
		}
		select {
		case c.Send <- message:
		default:
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 4,
	WriteBufferSize: 1024 * 4,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
