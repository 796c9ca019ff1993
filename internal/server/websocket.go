package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/asd22jp/takenokowar/internal/game"
	"github.com/asd22jp/takenokowar/internal/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Per-connection inbound rate: sustained messages per second plus burst.
// Excess messages are dropped before they can flood the command queue.
const (
	messagesPerSecond = 20
	messageBurst      = 40
)

// HandleWebsocket upgrades the connection and runs its read loop. Every
// world-mutating action is enqueued for the next tick; only chat is relayed
// directly, since it never touches the sim.
func HandleWebsocket(b *game.Broadcaster, g *game.Game, store StatsSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WS upgrade error:", err)
			return
		}

		// Until Register completes, this goroutine is the connection's only
		// writer, so the welcome message goes out directly.
		if err := conn.WriteJSON(fetchInitStats(store)); err != nil {
			conn.Close()
			return
		}

		sessionID := uuid.NewString()
		b.Register(conn, sessionID)

		limiter := rate.NewLimiter(messagesPerSecond, messageBurst)

		// Chat identity, set when this session sends its join. Kept here in
		// the read loop because chat is relayed without touching sim state.
		var chatName, chatFaction string

		for {
			msgType, msg, err := conn.ReadMessage()
			if err != nil {
				g.Enqueue(game.Command{Type: game.CommandLeave, SessionID: sessionID})
				b.Unregister(conn)
				break
			}
			if msgType != websocket.TextMessage {
				continue
			}
			if !limiter.Allow() {
				log.Printf("Rate limit hit for session %s, dropping message", sessionID)
				continue
			}

			var base types.BaseAction
			if err := json.Unmarshal(msg, &base); err != nil {
				log.Println("JSON parse error:", err)
				continue
			}

			switch base.Action {
			case "join":
				var join types.JoinAction
				if err := json.Unmarshal(msg, &join); err != nil {
					log.Println("Join parse error:", err)
					continue
				}
				faction, ok := game.ParseFaction(join.Faction)
				if !ok {
					log.Printf("Join with unknown faction %q dropped", join.Faction)
					continue
				}
				role, ok := game.ParseRole(join.Role)
				if !ok {
					log.Printf("Join with unknown role %q dropped", join.Role)
					continue
				}
				if join.Name == "" {
					continue
				}
				chatName, chatFaction = join.Name, string(faction)
				g.Enqueue(game.Command{
					Type:      game.CommandJoin,
					SessionID: sessionID,
					Name:      join.Name,
					Faction:   faction,
					Role:      role,
				})

			case "chat":
				var chat types.ChatAction
				if err := json.Unmarshal(msg, &chat); err != nil || chat.Text == "" {
					continue
				}
				if chatName == "" {
					continue // no seat yet, nothing to attribute the line to
				}
				b.BroadcastChat(types.ChatMessage{
					Type:    "chat",
					Name:    chatName,
					Faction: chatFaction,
					Text:    chat.Text,
				})

			case "recruit":
				var recruit types.RecruitAction
				if err := json.Unmarshal(msg, &recruit); err != nil {
					continue
				}
				g.Enqueue(game.Command{
					Type:      game.CommandRecruit,
					SessionID: sessionID,
					UnitType:  recruit.UnitType,
				})

			case "order_move":
				var order types.MoveOrderAction
				if err := json.Unmarshal(msg, &order); err != nil || len(order.UnitIDs) == 0 {
					continue
				}
				g.Enqueue(game.Command{
					Type:      game.CommandMove,
					SessionID: sessionID,
					UnitIDs:   order.UnitIDs,
					TargetQ:   order.Target.Q,
					TargetR:   order.Target.R,
				})

			case "order_frontline":
				var order types.FrontlineOrderAction
				if err := json.Unmarshal(msg, &order); err != nil || len(order.UnitIDs) == 0 || len(order.CellIDs) == 0 {
					continue
				}
				g.Enqueue(game.Command{
					Type:      game.CommandFrontline,
					SessionID: sessionID,
					UnitIDs:   order.UnitIDs,
					CellIDs:   order.CellIDs,
				})

			case "reset":
				g.Enqueue(game.Command{Type: game.CommandReset, SessionID: sessionID})

			default:
				log.Printf("Unknown action %q dropped", base.Action)
			}
		}
	}
}

// fetchInitStats reads the win tallies, degrading to zeros when the store
// is absent or failing. Every connection gets an initStats message.
func fetchInitStats(store StatsSource) types.InitStats {
	msg := types.InitStats{Type: "initStats", Wins: map[string]int64{}}
	if store == nil {
		return msg
	}
	totals, err := store.Fetch()
	if err != nil {
		log.Printf("Stats fetch failed, serving zero totals: %v", err)
		return msg
	}
	if totals.Wins != nil {
		msg.Wins = totals.Wins
	}
	return msg
}
