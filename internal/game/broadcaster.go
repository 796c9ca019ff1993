package game

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/asd22jp/takenokowar/internal/types"
)

// writeWait bounds how long a single socket write may stall the loop.
const writeWait = 10 * time.Second

// registration pairs a socket with its session id so addressed messages
// (join acks) can find their connection later.
type registration struct {
	conn      *websocket.Conn
	sessionID string
}

// Broadcaster owns the tick loop and the connection set. Its Run goroutine
// is the only goroutine that ever mutates world state: each tick it calls
// Step, then fans the fresh snapshot out to every client. Slow or dead
// receivers are dropped, never waited on.
type Broadcaster struct {
	game       *Game
	interval   time.Duration
	register   chan registration
	unregister chan *websocket.Conn

	mu        sync.RWMutex
	clients   map[*websocket.Conn]string // conn -> session id
	bySession map[string]*websocket.Conn
	writeMu   map[*websocket.Conn]*sync.Mutex // per-conn write locks
}

func NewBroadcaster(g *Game, interval time.Duration) *Broadcaster {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &Broadcaster{
		game:       g,
		interval:   interval,
		register:   make(chan registration),
		unregister: make(chan *websocket.Conn),
		clients:    make(map[*websocket.Conn]string),
		bySession:  make(map[string]*websocket.Conn),
		writeMu:    make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Run drives the simulation forever. Start it once, in its own goroutine,
// before the HTTP server begins accepting connections.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	log.Printf("Tick loop running at %v", b.interval)

	for {
		select {
		case reg := <-b.register:
			b.mu.Lock()
			b.clients[reg.conn] = reg.sessionID
			b.bySession[reg.sessionID] = reg.conn
			b.writeMu[reg.conn] = &sync.Mutex{}
			b.mu.Unlock()

			// New clients get the current world right away rather than
			// waiting out the remainder of the tick interval.
			if err := b.sendTo(reg.conn, b.game.Snapshot()); err != nil {
				log.Println("Initial send error:", err)
				b.drop(reg.conn)
			}

		case conn := <-b.unregister:
			b.drop(conn)

		case now := <-ticker.C:
			acks := b.game.Step(now)
			for _, ack := range acks {
				conn := b.connFor(ack.SessionID)
				if conn == nil {
					continue // session disconnected before its ack landed
				}
				if err := b.sendTo(conn, ack.Payload); err != nil {
					log.Println("Ack send error:", err)
					b.drop(conn)
				}
			}
			b.broadcastState(b.game.Snapshot())
		}
	}
}

// Register hands a new connection to the run loop.
func (b *Broadcaster) Register(conn *websocket.Conn, sessionID string) {
	b.register <- registration{conn: conn, sessionID: sessionID}
}

// Unregister asks the run loop to drop a connection. Safe from any
// goroutine, including the read loops.
func (b *Broadcaster) Unregister(conn *websocket.Conn) {
	b.unregister <- conn
}

// BroadcastChat relays a chat line to every client. Chat bypasses the
// command queue entirely; it never touches world state.
func (b *Broadcaster) BroadcastChat(msg types.ChatMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Println("Chat marshal error:", err)
		return
	}

	b.mu.RLock()
	for conn := range b.clients {
		if err := b.write(conn, data); err != nil {
			log.Println("Chat broadcast error:", err)
			go b.Unregister(conn)
		}
	}
	b.mu.RUnlock()
}

// broadcastState fans the tick snapshot out to all clients. Run-loop only:
// dead connections are dropped directly once the sweep finishes.
func (b *Broadcaster) broadcastState(state types.StateUpdate) {
	data, err := json.Marshal(state)
	if err != nil {
		log.Println("State marshal error:", err)
		return
	}

	var dead []*websocket.Conn
	b.mu.RLock()
	for conn := range b.clients {
		if err := b.write(conn, data); err != nil {
			log.Println("Broadcast error:", err)
			dead = append(dead, conn)
		}
	}
	b.mu.RUnlock()

	for _, conn := range dead {
		b.drop(conn)
	}
}

func (b *Broadcaster) sendTo(conn *websocket.Conn, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return b.write(conn, data)
}

// write serializes access to one socket. gorilla allows a single concurrent
// writer per connection, and both the run loop and the chat path write.
func (b *Broadcaster) write(conn *websocket.Conn, data []byte) error {
	b.mu.RLock()
	mu, ok := b.writeMu[conn]
	b.mu.RUnlock()
	if !ok {
		return websocket.ErrCloseSent
	}

	mu.Lock()
	defer mu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (b *Broadcaster) drop(conn *websocket.Conn) {
	b.mu.Lock()
	if session, ok := b.clients[conn]; ok {
		delete(b.clients, conn)
		delete(b.writeMu, conn)
		if b.bySession[session] == conn {
			delete(b.bySession, session)
		}
		conn.Close()
	}
	b.mu.Unlock()
}

func (b *Broadcaster) connFor(sessionID string) *websocket.Conn {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bySession[sessionID]
}
