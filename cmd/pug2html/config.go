package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Project holds per-project defaults, read from pug2html.{yaml,yml}
// next to the input file or from the -config path.
type Project struct {
	OutDir string `yaml:"outDir,omitempty"`
	Color  string `yaml:"color,omitempty"`
}

func loadProject(cfg *MainConfig, input string) (*Project, error) {
	var candidates []string
	if cfg.Config != "" {
		candidates = []string{cfg.Config}
	} else {
		dir := filepath.Dir(input)
		candidates = []string{
			filepath.Join(dir, "pug2html.yaml"),
			filepath.Join(dir, "pug2html.yml"),
		}
	}
	for _, path := range candidates {
		d, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) && cfg.Config == "" {
				continue
			}
			return nil, fmt.Errorf("could not read %q: %w", path, err)
		}
		proj := &Project{}
		if err := yaml.Unmarshal(d, proj); err != nil {
			return nil, fmt.Errorf("could not decode %q: %w", path, err)
		}
		return proj, nil
	}
	return &Project{}, nil
}

// applyProject fills config defaults the command line left open.
func applyProject(cfg *MainConfig, proj *Project) {
	if cfg.Out == "" && proj.OutDir != "" {
		cfg.OutDir = proj.OutDir
	}
	if cfg.Color == "auto" && proj.Color != "" {
		cfg.Color = proj.Color
	}
}
