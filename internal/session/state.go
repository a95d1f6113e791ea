// Package session remembers the smart cube used by the last live session.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// State is the persisted session state.
type State struct {
	LastDeviceAddress string    `json:"last_device_address,omitempty"`
	LastDeviceName    string    `json:"last_device_name,omitempty"`
	LastConnectedAt   time.Time `json:"last_connected_at,omitempty"`
}

// StateFile manages the state file.
type StateFile struct {
	path string

	mu    sync.Mutex
	state State
}

// Open loads the state file at path. A missing file gives an empty state.
func Open(path string) (*StateFile, error) {
	sf := &StateFile{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return sf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if err := json.Unmarshal(data, &sf.state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return sf, nil
}

// State returns the current state.
func (sf *StateFile) State() State {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.state
}

// SetLastDevice records a successful connection and saves.
func (sf *StateFile) SetLastDevice(address, name string) error {
	sf.mu.Lock()
	sf.state.LastDeviceAddress = address
	sf.state.LastDeviceName = name
	sf.state.LastConnectedAt = time.Now().UTC()
	st := sf.state
	sf.mu.Unlock()
	return sf.save(st)
}

func (sf *StateFile) save(st State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(sf.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(sf.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Pick returns the index of the last used device among addresses, or 0
// when it is absent.
func (sf *StateFile) Pick(addresses []string) int {
	last := sf.State().LastDeviceAddress
	if last == "" {
		return 0
	}
	for i, a := range addresses {
		if a == last {
			return i
		}
	}
	return 0
}
