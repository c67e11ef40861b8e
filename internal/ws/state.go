package ws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/xyshades/internal/diagnostics"
	"github.com/coreman2200/xyshades/internal/layout"
)

// Controller is what the control socket drives.
type Controller interface {
	// Select activates routine i; out-of-range indexes are an error.
	Select(i int) error
	Next()
	Brightness() uint8
	SetBrightness(b uint8)
	Autocycle() bool
	SetAutocycle(on bool)
	Routines() []string
	Active() (int, string)
}

type State struct {
	mu  sync.RWMutex
	wmu sync.Mutex // serializes diag writes

	Ctl Controller
	Dim layout.Dim
	FPS int
	// Driver names the output transport for the topology message.
	Driver string
	// OnChange runs after every applied control message, e.g. to persist
	// config.
	OnChange func()

	frameID     uint64
	startTime   time.Time
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool
}

func NewState(ctl Controller, dim layout.Dim, fps int) *State {
	return &State{
		Ctl:         ctl,
		Dim:         dim,
		FPS:         fps,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Mux serves every endpoint.
func (s *State) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/diag", s.HandleDiagWS)
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/routines", s.HandleRoutines)
	return mux
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	// topology goes out before the conn is visible to Publish
	s.sendTopology(conn)
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go s.drain(conn, s.clients)
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	go s.drain(conn, s.diagClients)
}

// drain reads until the peer goes away, then forgets conn.
func (s *State) drain(conn *websocket.Conn, set map[*websocket.Conn]bool) {
	defer func() {
		s.mu.Lock()
		delete(set, conn)
		s.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ControlMsg is one control command; unset fields are ignored.
type ControlMsg struct {
	Select     *int     `json:"select,omitempty"`
	Next       bool     `json:"next,omitempty"`
	Brightness *float64 `json:"brightness,omitempty"` // 0..1
	Autocycle  *bool    `json:"autocycle,omitempty"`
}

func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ControlMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			s.PushDiag(diag.Diagnostic{
				Severity: diag.Warn, Code: diag.ControlBadJSON, Summary: "Control message is not valid JSON",
				Detail: err.Error(),
			})
			continue
		}
		if err := s.Apply(msg); err != nil {
			s.PushDiag(diag.Diagnostic{
				Severity: diag.Warn, Code: diag.ControlRejected, Summary: "Control message rejected",
				Detail: err.Error(), Evidence: map[string]any{"msg": string(data)},
			})
		}
		s.sendTopology(conn)
	}
}

// Apply executes msg against the controller.
func (s *State) Apply(msg ControlMsg) error {
	if msg.Select != nil {
		if err := s.Ctl.Select(*msg.Select); err != nil {
			return err
		}
	}
	if msg.Next {
		s.Ctl.Next()
	}
	if msg.Brightness != nil {
		s.Ctl.SetBrightness(uint8(clamp(*msg.Brightness, 0, 1)*255 + 0.5))
	}
	if msg.Autocycle != nil {
		s.Ctl.SetAutocycle(*msg.Autocycle)
	}
	if s.OnChange != nil {
		s.OnChange()
	}
	return nil
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	idx, name := s.Ctl.Active()
	s.mu.RLock()
	resp := map[string]any{
		"frame_id":   s.frameID,
		"uptime_s":   time.Since(s.startTime).Seconds(),
		"count":      s.Dim.Count(),
		"fps":        s.FPS,
		"brightness": float64(s.Ctl.Brightness()) / 255,
		"autocycle":  s.Ctl.Autocycle(),
		"active":     idx,
		"routine":    name,
	}
	s.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *State) HandleRoutines(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Ctl.Routines())
}

func (s *State) sendTopology(conn *websocket.Conn) {
	idx, name := s.Ctl.Active()
	s.mu.RLock()
	top := map[string]any{
		"dim":      map[string]int{"w": s.Dim.W, "h": s.Dim.H},
		"driver":   s.Driver,
		"routines": s.Ctl.Routines(),
		"active":   idx,
		"routine":  name,
	}
	s.mu.RUnlock()
	b, _ := json.Marshal(top)
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

type frame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	Routine string `json:"routine"`
	RGB     []byte `json:"rgb"`
}

// Publish sends one presented frame to every frame client. Calls must not
// overlap.
func (s *State) Publish(routine string, rgb []byte) {
	s.mu.Lock()
	s.frameID++
	id := s.frameID
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.clients) == 0 {
		return
	}
	b, _ := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: id, Routine: routine, RGB: rgb})
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
}

// PushDiag sends d to every diagnostics client.
func (s *State) PushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	s.wmu.Lock()
	defer s.wmu.Unlock()
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.diagClients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}

// Switched reports a routine activation to diagnostics clients.
func (s *State) Switched(index int, name string) {
	s.PushDiag(diag.Diagnostic{
		Severity: diag.Info, Code: diag.RoutineActive, Summary: fmt.Sprintf("Routine %s active", name),
		Evidence: map[string]any{"index": index, "routine": name},
	})
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
