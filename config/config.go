// Package config persists a controller address book: the mapping from a
// controller's serial number to the network address, transport and door
// labels a host application uses to reach it. It is entirely optional —
// nothing in the client facade requires a config file to exist.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/uhppoted/uhppote-go/uhppote"
)

// ConfigListenerID is a unique identifier for a config change listener.
type ConfigListenerID string

// Config holds the complete controller address book.
type Config struct {
	Controllers []ControllerConfig `yaml:"controllers"`

	// dataMu protects all fields against concurrent access. Callers that
	// modify config should Lock(), modify, then call UnlockAndSave().
	// Save() acquires the lock internally for callers that don't hold it.
	dataMu sync.Mutex `yaml:"-"`

	changeListeners map[ConfigListenerID]func() `yaml:"-"`
	listenersMu     sync.RWMutex                `yaml:"-"`
	listenerCounter uint64                      `yaml:"-"`
}

// ControllerConfig stores the address book entry for a single controller.
type ControllerConfig struct {
	Serial   uint32   `yaml:"serial"`
	Address  string   `yaml:"address,omitempty"`  // host:port, empty = discover by broadcast
	Protocol string   `yaml:"protocol,omitempty"` // "udp" (default) or "tcp"
	Doors    []string `yaml:"doors,omitempty"`    // labels for doors 1-4, in order
}

// GetProtocol returns the controller's transport, defaulting to udp.
func (c *ControllerConfig) GetProtocol() string {
	if c.Protocol == "" {
		return "udp"
	}
	return c.Protocol
}

// DoorLabel returns the label for the given door (1-4), or an empty
// string if none was configured.
func (c *ControllerConfig) DoorLabel(door int) string {
	if door < 1 || door > len(c.Doors) {
		return ""
	}
	return c.Doors[door-1]
}

// Controller converts the address book entry into the descriptor the
// client facade uses to route a call: an empty Address leaves discovery
// by broadcast, a set one targets it directly.
func (c *ControllerConfig) Controller() uhppote.Controller {
	return uhppote.C(c.Serial).At(c.Address).Via(c.GetProtocol())
}

// Controller looks up serial in the address book and returns its
// descriptor, or the zero-address descriptor (discover by broadcast)
// if the controller isn't in the book.
func (c *Config) Controller(serial uint32) uhppote.Controller {
	if entry := c.Find(serial); entry != nil {
		return entry.Controller()
	}
	return uhppote.C(serial)
}

// DefaultConfig returns an empty address book.
func DefaultConfig() *Config {
	return &Config{Controllers: []ControllerConfig{}}
}

// DefaultPath returns the default configuration file path
// (~/.uhppote/controllers.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "controllers.yaml"
	}
	return filepath.Join(home, ".uhppote", "controllers.yaml")
}

// Load reads a controller address book from a YAML file. A missing file
// is not an error; Load returns an empty address book instead.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// AddOnChangeListener registers a callback invoked after every successful
// save. It returns an ID that can later be passed to RemoveOnChangeListener.
func (c *Config) AddOnChangeListener(cb func()) ConfigListenerID {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	if c.changeListeners == nil {
		c.changeListeners = make(map[ConfigListenerID]func())
	}

	c.listenerCounter++
	id := ConfigListenerID(fmt.Sprintf("listener-%d", c.listenerCounter))
	c.changeListeners[id] = cb
	return id
}

// RemoveOnChangeListener removes a previously registered listener.
func (c *Config) RemoveOnChangeListener(id ConfigListenerID) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	delete(c.changeListeners, id)
}

func (c *Config) notifyChangeListeners() {
	c.listenersMu.RLock()
	listeners := make([]func(), 0, len(c.changeListeners))
	for _, cb := range c.changeListeners {
		listeners = append(listeners, cb)
	}
	c.listenersMu.RUnlock()

	for _, cb := range listeners {
		go cb()
	}
}

// Lock acquires the config mutex for exclusive access. Use before
// modifying fields directly, then call UnlockAndSave.
func (c *Config) Lock() { c.dataMu.Lock() }

// Unlock releases the config mutex without saving.
func (c *Config) Unlock() { c.dataMu.Unlock() }

// Save acquires the lock, marshals, writes and notifies listeners. Use
// when the caller does not already hold the lock.
func (c *Config) Save(path string) error {
	c.dataMu.Lock()
	return c.saveLocked(path)
}

// UnlockAndSave marshals, releases the lock, writes and notifies
// listeners. The caller must already hold the lock via Lock().
func (c *Config) UnlockAndSave(path string) error {
	return c.saveLocked(path)
}

func (c *Config) saveLocked(path string) error {
	data, err := yaml.Marshal(c)
	c.dataMu.Unlock()

	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	c.notifyChangeListeners()
	return nil
}

// Find returns the address book entry for the given serial, or nil if
// the controller is not in the book.
func (c *Config) Find(serial uint32) *ControllerConfig {
	for i := range c.Controllers {
		if c.Controllers[i].Serial == serial {
			return &c.Controllers[i]
		}
	}
	return nil
}

// Add appends a new controller entry.
func (c *Config) Add(entry ControllerConfig) {
	c.Controllers = append(c.Controllers, entry)
}

// Remove removes a controller entry by serial. It returns true if an
// entry was removed.
func (c *Config) Remove(serial uint32) bool {
	for i, entry := range c.Controllers {
		if entry.Serial == serial {
			c.Controllers = append(c.Controllers[:i], c.Controllers[i+1:]...)
			return true
		}
	}
	return false
}

// Update replaces an existing controller entry matching serial. It
// returns true if an entry was replaced.
func (c *Config) Update(serial uint32, updated ControllerConfig) bool {
	for i, entry := range c.Controllers {
		if entry.Serial == serial {
			c.Controllers[i] = updated
			return true
		}
	}
	return false
}
