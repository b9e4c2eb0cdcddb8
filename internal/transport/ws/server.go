package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	persistlog "terrasim.ai/internal/persistence/log"
	"terrasim.ai/internal/protocol"
	"terrasim.ai/internal/sim/encoding"
	"terrasim.ai/internal/sim/terrain"
)

// Server exposes one terrain world over WebSocket. Observers receive the
// full terrain on join and TERRAIN_CHANGED deltas afterwards; editors may
// additionally apply edits and run buildability queries. A mutex funnels
// all terrain access through one logical caller, which is the concurrency
// contract the terrain state expects.
type Server struct {
	worldID string
	seed    int64
	log     *log.Logger
	editLog *persistlog.EditLogger

	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	mu          sync.Mutex
	state       *terrain.State
	clients     map[uint64]chan []byte
	lastChanged []terrain.Coord
}

func NewServer(st *terrain.State, worldID string, seed int64, logger *log.Logger, editLog *persistlog.EditLogger) *Server {
	s := &Server{
		worldID: worldID,
		seed:    seed,
		log:     logger,
		editLog: editLog,
		state:   st,
		clients: map[uint64]chan []byte{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
	st.OnChange(s.onTerrainChanged)
	return s
}

// onTerrainChanged runs synchronously inside a mutation, with s.mu already
// held by the editing connection.
func (s *Server) onTerrainChanged(cells []terrain.Coord) {
	s.lastChanged = append(s.lastChanged[:0], cells...)

	msg := protocol.TerrainChangedMsg{Type: protocol.TypeTerrainChanged}
	for _, c := range cells {
		msg.Cells = append(msg.Cells, protocol.CellState{
			X:         c.X,
			Y:         c.Y,
			Elevation: s.state.Elevation(c),
			Water:     int(s.state.Water(c)),
			Feature:   int(s.state.Feature(c)),
		})
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for id, out := range s.clients {
		select {
		case out <- b:
		default:
			// Slow consumer; drop the delta rather than block the edit.
			s.log.Printf("client %d lagging, dropped delta", id)
		}
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		clientID, role, out := s.handshake(conn)
		if out == nil {
			return
		}
		defer s.dropClient(clientID)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				return
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil {
				continue
			}
			switch base.Type {
			case protocol.TypeEdit:
				if role != "editor" {
					s.sendError(out, protocol.ErrNoPermission, "observer role cannot edit")
					continue
				}
				var edit protocol.EditMsg
				if err := json.Unmarshal(msg, &edit); err != nil || edit.ProtocolVersion != protocol.Version {
					s.sendError(out, protocol.ErrProtoBadRequest, "bad EDIT")
					continue
				}
				s.applyEdit(clientID, edit)
			case protocol.TypeBuildQuery:
				var q protocol.BuildQueryMsg
				if err := json.Unmarshal(msg, &q); err != nil || q.ProtocolVersion != protocol.Version {
					s.sendError(out, protocol.ErrProtoBadRequest, "bad BUILD_QUERY")
					continue
				}
				s.answerBuildQuery(out, q)
			default:
				// Unknown types are ignored, same as unknown JSON fields.
			}
		}
	}
}

func (s *Server) handshake(conn *websocket.Conn) (clientID uint64, role string, out chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return 0, "", nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return 0, "", nil
	}
	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return 0, "", nil
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return 0, "", nil
	}
	role = hello.Role
	if role == "" {
		role = "observer"
	}

	clientID = s.nextID.Add(1)
	out = make(chan []byte, 64)

	s.mu.Lock()
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		ClientID:        fmt.Sprintf("C%d", clientID),
		WorldParams: protocol.WorldParams{
			Width:   s.state.Width(),
			Height:  s.state.Height(),
			Seed:    s.seed,
			BiomeID: s.state.BiomeID(),
		},
	}
	terrainMsg := s.buildTerrainMsgLocked()
	s.clients[clientID] = out
	s.mu.Unlock()

	if err := writeJSON(conn, welcome); err != nil {
		s.dropClient(clientID)
		return 0, "", nil
	}
	if err := writeJSON(conn, terrainMsg); err != nil {
		s.dropClient(clientID)
		return 0, "", nil
	}
	return clientID, role, out
}

func (s *Server) buildTerrainMsgLocked() protocol.TerrainMsg {
	blob := s.state.Export()
	return protocol.TerrainMsg{
		Type:      protocol.TypeTerrain,
		Width:     s.state.Width(),
		Height:    s.state.Height(),
		Encoding:  "RLE",
		Elevation: encoding.EncodeElevations(s.state.ElevationGrid()),
		Water:     blob.Water,
		Features:  blob.Features,
		BiomeID:   blob.BiomeID,
	}
}

func (s *Server) applyEdit(clientID uint64, edit protocol.EditMsg) {
	c := terrain.Coord{X: edit.X, Y: edit.Y}

	s.mu.Lock()
	s.lastChanged = s.lastChanged[:0]
	switch edit.Op {
	case protocol.OpRaise:
		s.state.Raise(c)
	case protocol.OpLower:
		s.state.Lower(c)
	case protocol.OpFlatten:
		s.state.Flatten(c)
	case protocol.OpSetElevation:
		s.state.SetElevation(c, edit.Elevation)
	case protocol.OpToggleWater:
		s.state.ToggleWater(c)
	case protocol.OpToggleFeature:
		s.state.ToggleFeature(c, terrain.FeatureType(edit.Feature))
	}
	affected := make([]string, 0, len(s.lastChanged))
	for _, cc := range s.lastChanged {
		affected = append(affected, cc.Key())
	}
	s.mu.Unlock()

	if s.editLog != nil && len(affected) > 0 {
		if err := s.editLog.WriteEdit(persistlog.EditEntry{
			Client:   fmt.Sprintf("C%d", clientID),
			Op:       edit.Op,
			X:        edit.X,
			Y:        edit.Y,
			Affected: affected,
		}); err != nil {
			s.log.Printf("edit log: %v", err)
		}
	}
}

func (s *Server) answerBuildQuery(out chan []byte, q protocol.BuildQueryMsg) {
	s.mu.Lock()
	res := s.state.IsBuildable(terrain.Coord{X: q.X, Y: q.Y}, q.Width, q.Height, q.BuildingType)
	s.mu.Unlock()

	b, err := json.Marshal(protocol.BuildResultMsg{
		Type:    protocol.TypeBuildResult,
		QueryID: q.QueryID,
		OK:      res.OK,
		Reason:  res.Reason,
	})
	if err != nil {
		return
	}
	select {
	case out <- b:
	default:
	}
}

func (s *Server) sendError(out chan []byte, code, message string) {
	if !protocol.IsKnownCode(code) {
		code = protocol.ErrInternal
	}
	b, err := json.Marshal(protocol.ErrorMsg{Type: protocol.TypeError, Code: code, Message: message})
	if err != nil {
		return
	}
	select {
	case out <- b:
	default:
	}
}

func (s *Server) dropClient(id uint64) {
	s.mu.Lock()
	delete(s.clients, id)
	s.mu.Unlock()
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
