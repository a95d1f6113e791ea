package cubesolver

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/cubesolver/internal/ble"
	"github.com/SeamusWaldron/cubesolver/internal/protocol"
)

// Device is a GoCube found by Scan.
type Device struct {
	Name    string // e.g. "GoCube_XXXX"
	Address string
	RSSI    int16 // dBm, higher is stronger

	result ble.ScanResult
}

// SmartCube is a connected GoCube whose turns are tracked in software, so
// its state can be handed to a Solver at any time.
//
//	cube, err := cubesolver.ConnectFirst(ctx, zerolog.Nop())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cube.Close()
//	sol, err := solver.Solve(cube.Facelets())
type SmartCube struct {
	client *ble.Client
	log    zerolog.Logger

	mu        sync.RWMutex
	tracker   *Tracker
	onMove    func(Move)
	onSolved  func()
	onBattery func(int)
}

// Scan discovers nearby GoCubes.
//
// Note: on macOS, BLE scanning sometimes requires multiple attempts. Make
// sure the cube is not connected to a phone.
func Scan(ctx context.Context, timeout time.Duration, log zerolog.Logger) ([]Device, error) {
	client, err := ble.NewClient(log)
	if err != nil {
		return nil, err
	}
	defer client.Disconnect()

	results, err := client.Scan(ctx, timeout)
	if err != nil {
		return nil, err
	}

	devices := make([]Device, len(results))
	for i, r := range results {
		devices[i] = Device{Name: r.Name, Address: r.Address, RSSI: r.RSSI, result: r}
	}
	return devices, nil
}

// Connect connects to a device. The tracked state starts solved; call Reset
// with the physical cube solved to keep them in step.
func Connect(ctx context.Context, device Device, log zerolog.Logger) (*SmartCube, error) {
	client, err := ble.NewClient(log)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx, device.result); err != nil {
		return nil, err
	}

	s := newSmartCube(client, log)
	client.SetMessageCallback(s.handleMessage)
	return s, nil
}

// ConnectFirst scans for ten seconds and connects to the first cube found.
func ConnectFirst(ctx context.Context, log zerolog.Logger) (*SmartCube, error) {
	devices, err := Scan(ctx, 10*time.Second, log)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrDeviceNotFound
	}
	return Connect(ctx, devices[0], log)
}

func newSmartCube(client *ble.Client, log zerolog.Logger) *SmartCube {
	return &SmartCube{client: client, log: log, tracker: NewTracker(true)}
}

// Close disconnects from the cube.
func (s *SmartCube) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect()
}

// DeviceName returns the connected device name.
func (s *SmartCube) DeviceName() string {
	if s.client == nil {
		return ""
	}
	return s.client.DeviceName()
}

// Battery returns the last known battery level (0-100), or -1 if unknown.
func (s *SmartCube) Battery() int {
	if s.client == nil {
		return -1
	}
	return s.client.Battery()
}

// OnMove sets a callback that fires for each turn.
func (s *SmartCube) OnMove(cb func(Move)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMove = cb
}

// OnSolved sets a callback that fires when a turn leaves the cube solved.
func (s *SmartCube) OnSolved(cb func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSolved = cb
}

// OnBattery sets a callback for battery level updates.
func (s *SmartCube) OnBattery(cb func(int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onBattery = cb
}

// Facelets returns the tracked state as a facelet string.
func (s *SmartCube) Facelets() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracker.Facelets()
}

// Cube returns a copy of the tracked state.
func (s *SmartCube) Cube() *Cube {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracker.Cube()
}

// Moves returns the turns seen since connecting or the last Reset.
func (s *SmartCube) Moves() []Move {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracker.Moves()
}

// IsSolved returns true if the tracked state is solved.
func (s *SmartCube) IsSolved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracker.IsSolved()
}

// Reset marks the current physical state as solved, both in software and on
// the cube itself.
func (s *SmartCube) Reset() error {
	s.mu.Lock()
	s.tracker.Reset()
	s.mu.Unlock()

	if s.client == nil {
		return ErrNotConnected
	}
	return s.client.ResetSolved()
}

func (s *SmartCube) handleMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgTypeRotation:
		s.handleRotation(msg.Payload)
	case protocol.MsgTypeBattery:
		level, err := protocol.DecodeBattery(msg.Payload)
		if err != nil {
			return
		}
		s.mu.RLock()
		cb := s.onBattery
		s.mu.RUnlock()
		if cb != nil {
			cb(level)
		}
	}
}

func (s *SmartCube) handleRotation(payload []byte) {
	rotations, err := protocol.DecodeRotation(payload)
	if err != nil {
		s.log.Debug().Err(err).Msg("bad rotation payload")
		return
	}

	now := time.Now()
	for _, rot := range rotations {
		m := rotationToMove(rot, now)

		s.mu.Lock()
		solved := s.tracker.ApplyMove(m)
		moveCb, solvedCb := s.onMove, s.onSolved
		s.mu.Unlock()

		// Callbacks run outside the lock.
		if moveCb != nil {
			moveCb(m)
		}
		if solved && solvedCb != nil {
			solvedCb()
		}
	}
}

func rotationToMove(rot protocol.Rotation, t time.Time) Move {
	turn := CCW
	if rot.Clockwise {
		turn = CW
	}
	return Move{Face: Face(rot.Face()), Turn: turn, Time: t}
}
