// Package model implements model discovery, process supervision, and the
// registry that resolves node ids to the model process that owns them.
//
// The interface shape here — Backend abstracting process lifecycle, and a
// Registry tracking active handles behind a mutex — generalizes the
// teacher's internal/ghostpool (PoolBackend / PoolManager), rewritten
// against os/exec since a BLAST model is a host subprocess, not a
// container. See DESIGN.md for the full grounding.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config describes one model catalog entry, read from a model.json file.
// Field names and the "start a node implementation with an executable"
// contract are grounded on blast_model_manager.rs's ModelConfig and its
// parse_models discovery walk.
type Config struct {
	Name  string `json:"name"`
	RPC   string `json:"rpc"`
	Start string `json:"start"`

	// StopScript names an out-of-band executable, relative to the model's
	// directory, that the supervisor falls back to when the stop_model RPC
	// fails. Optional; a model with no stop script cannot be force-stopped
	// out of band.
	StopScript string `json:"stop_script,omitempty"`
}

// ConfigFileName is the sidecar file discovery looks for in each model
// directory, matching the original's "model.json".
const ConfigFileName = "model.json"

// maxDiscoveryDepth bounds the directory walk in Discover, matching
// check_for_model's "current_depth > 1" cutoff in blast_model_manager.rs:
// a model.json must live at the root of models_dir or one level below it.
const maxDiscoveryDepth = 1

// Discover walks modelsDir up to maxDiscoveryDepth looking for
// ConfigFileName files, returning one Config per model found.
func Discover(modelsDir string) ([]Config, error) {
	var configs []Config
	if err := discoverAt(modelsDir, 0, &configs); err != nil {
		return nil, fmt.Errorf("model: discover %s: %w", modelsDir, err)
	}
	return configs, nil
}

func discoverAt(dir string, depth int, out *[]Config) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if !e.IsDir() {
			if e.Name() == ConfigFileName {
				cfg, err := readConfig(path)
				if err != nil {
					return err
				}
				*out = append(*out, *cfg)
			}
			continue
		}
		if depth < maxDiscoveryDepth {
			if err := discoverAt(path, depth+1, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func readConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("model: parse %s: %w", path, err)
	}
	return &cfg, nil
}
