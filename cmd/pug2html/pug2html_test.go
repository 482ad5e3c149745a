package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHTMLPath(t *testing.T) {
	pts := []struct {
		cfg  MainConfig
		in   string
		want string
	}{
		{MainConfig{}, "site/index.pug", filepath.Join("site", "index.html")},
		{MainConfig{}, "noext", "noext.html"},
		{MainConfig{Out: "custom.html"}, "site/index.pug", "custom.html"},
		{MainConfig{OutDir: "out"}, "site/index.pug", filepath.Join("out", "index.html")},
	}
	for _, pt := range pts {
		if got := htmlPath(&pt.cfg, pt.in); got != pt.want {
			t.Errorf("htmlPath(%q) = %q, want %q", pt.in, got, pt.want)
		}
	}
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "pug2html.yaml")
	if err := os.WriteFile(yml, []byte("outDir: build\ncolor: never\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := &MainConfig{Color: "auto"}
	proj, err := loadProject(cfg, filepath.Join(dir, "index.pug"))
	if err != nil {
		t.Fatal(err)
	}
	if proj.OutDir != "build" || proj.Color != "never" {
		t.Errorf("got %+v", proj)
	}
	applyProject(cfg, proj)
	if cfg.OutDir != "build" || cfg.Color != "never" {
		t.Errorf("applied %+v", cfg)
	}
}

func TestLoadProjectAbsent(t *testing.T) {
	cfg := &MainConfig{Color: "auto"}
	proj, err := loadProject(cfg, filepath.Join(t.TempDir(), "index.pug"))
	if err != nil {
		t.Fatal(err)
	}
	if proj.OutDir != "" || proj.Color != "" {
		t.Errorf("got %+v", proj)
	}
}

func TestLoadProjectExplicitMissing(t *testing.T) {
	cfg := &MainConfig{Config: filepath.Join(t.TempDir(), "nope.yaml")}
	if _, err := loadProject(cfg, "index.pug"); err == nil {
		t.Error("missing explicit config did not fail")
	}
}

func TestCommandLineFlags(t *testing.T) {
	cfg := &MainConfig{Color: "auto"}
	applyProject(cfg, &Project{Color: "always"})
	if cfg.Color != "always" {
		t.Errorf("project color not applied: %q", cfg.Color)
	}
	// the command line wins over the project file
	cfg = &MainConfig{Color: "never"}
	applyProject(cfg, &Project{Color: "always"})
	if cfg.Color != "never" {
		t.Errorf("command line overridden: %q", cfg.Color)
	}
}
