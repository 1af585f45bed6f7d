package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// State represents the local Lectern state as a generic map of key-value
// pairs stored in .lectern/state.yml at the project root.
type State map[string]interface{}

// BuildRecord is the persisted summary of the last `lectern build`.
type BuildRecord struct {
	ID         string        `yaml:"id"`
	StartedAt  time.Time     `yaml:"started_at"`
	Duration   time.Duration `yaml:"duration"`
	Pages      int           `yaml:"pages"`
	Warnings   []string      `yaml:"warnings,omitempty"`
	OutputDir  string        `yaml:"output_dir"`
	Successful bool          `yaml:"successful"`
}

const lastBuildKey = "last_build"

// stateFilePath returns the path to the state file for a project root. The
// file lives in the tool-owned .lectern directory so each course checkout
// keeps its own independent state.
func stateFilePath(projectRoot string) (string, error) {
	if projectRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get current directory: %w", err)
		}
		projectRoot = cwd
	}
	return filepath.Join(projectRoot, ".lectern", "state.yml"), nil
}

// Load loads the state for the given project root.
// Returns an empty state if the file doesn't exist.
func Load(projectRoot string) (State, error) {
	path, err := stateFilePath(projectRoot)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty state if file doesn't exist
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	if state == nil {
		state = make(State)
	}

	return state, nil
}

// Save saves the state to the state file.
func Save(projectRoot string, state State) error {
	path, err := stateFilePath(projectRoot)
	if err != nil {
		return err
	}

	// Ensure the .lectern directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// Get retrieves a value from the state by key.
// Returns the value and true if found, nil and false otherwise.
func Get(projectRoot, key string) (interface{}, bool, error) {
	state, err := Load(projectRoot)
	if err != nil {
		return nil, false, err
	}

	val, ok := state[key]
	return val, ok, nil
}

// GetString is a convenience function to get a string value from state.
// Returns empty string if the key doesn't exist or the value is not a string.
func GetString(projectRoot, key string) (string, error) {
	val, ok, err := Get(projectRoot, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", nil
	}

	return str, nil
}

// Set sets a value in the state.
func Set(projectRoot, key string, value interface{}) error {
	state, err := Load(projectRoot)
	if err != nil {
		return err
	}

	state[key] = value
	return Save(projectRoot, state)
}

// Delete removes a key from the state.
func Delete(projectRoot, key string) error {
	state, err := Load(projectRoot)
	if err != nil {
		return err
	}

	delete(state, key)
	return Save(projectRoot, state)
}

// SaveBuildRecord persists the summary of a completed build.
func SaveBuildRecord(projectRoot string, record BuildRecord) error {
	return Set(projectRoot, lastBuildKey, record)
}

// LastBuild returns the last persisted build record, or nil when no build
// has been recorded yet.
func LastBuild(projectRoot string) (*BuildRecord, error) {
	val, ok, err := Get(projectRoot, lastBuildKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	// The generic store round-trips through yaml maps; re-decode into the
	// typed record.
	data, err := yaml.Marshal(val)
	if err != nil {
		return nil, fmt.Errorf("marshal build record: %w", err)
	}
	var record BuildRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse build record: %w", err)
	}
	return &record, nil
}
