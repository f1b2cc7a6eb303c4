package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/chessmate-server/internal/proto"
)

const afterE4 = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

type peer struct {
	name string
	conn *websocket.Conn
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3001/ws", "WebSocket address")
	room := flag.String("room", "", "room name (empty asks the server for one)")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	white, err := dial(ctx, *addr, "white")
	if err != nil {
		return err
	}
	defer white.conn.Close(websocket.StatusNormalClosure, "bye")

	black, err := dial(ctx, *addr, "black")
	if err != nil {
		return err
	}
	defer black.conn.Close(websocket.StatusNormalClosure, "bye")

	if err := white.send(ctx, proto.InboundTypeCreateRoom, proto.CreateRoomData{Room: *room, Color: "white"}); err != nil {
		return err
	}
	data, err := white.await(ctx, "room_created")
	if err != nil {
		return err
	}
	var created proto.EventRoomCreated
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("decode room_created: %w", err)
	}

	if err := black.send(ctx, proto.InboundTypeJoinRoom, proto.RoomData{Room: created.Room}); err != nil {
		return err
	}
	if _, err := black.await(ctx, "game_start"); err != nil {
		return err
	}

	if err := white.send(ctx, proto.InboundTypeSendMove, proto.SendMoveData{
		Room:     created.Room,
		Move:     json.RawMessage(`{"from":"e2","to":"e4"}`),
		Position: afterE4,
	}); err != nil {
		return err
	}
	if _, err := black.await(ctx, "receive_move"); err != nil {
		return err
	}

	fmt.Printf("ok: room %s relayed a move\n", created.Room)
	return nil
}

func dial(ctx context.Context, addr, name string) (*peer, error) {
	conn, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", name, err)
	}
	p := &peer{name: name, conn: conn}
	if _, err := p.await(ctx, "session"); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *peer) send(ctx context.Context, typ string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", typ, err)
	}
	if err := wsjson.Write(ctx, p.conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
		return fmt.Errorf("%s send %s: %w", p.name, typ, err)
	}
	return nil
}

// await prints every frame and returns the payload of the first one named event.
func (p *peer) await(ctx context.Context, event string) (json.RawMessage, error) {
	for {
		var outbound struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, p.conn, &outbound); err != nil {
			return nil, fmt.Errorf("%s read: %w", p.name, err)
		}

		fmt.Printf("%s <- type=%s event=%s", p.name, outbound.Type, outbound.Event)
		if outbound.Error != nil {
			fmt.Printf(" error=%s: %s\n", outbound.Error.Code, outbound.Error.Msg)
			return nil, fmt.Errorf("%s got error %s", p.name, outbound.Error.Code)
		}
		fmt.Println()

		if outbound.Event == event {
			return outbound.Data, nil
		}
	}
}
