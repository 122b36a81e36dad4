package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultScanConfig(t *testing.T) {
	cfg := DefaultScanConfig()

	if cfg.FollowSymlinks {
		t.Error("follow_symlinks should default to false")
	}
	if cfg.MinSize != 1 {
		t.Errorf("min_size default = %d, want 1", cfg.MinSize)
	}
	if cfg.PartialReadSize != 64*1024 {
		t.Errorf("partial_read_size default = %d, want %d", cfg.PartialReadSize, 64*1024)
	}
	if cfg.WorkerCount != runtime.NumCPU() {
		t.Errorf("worker_count default = %d, want %d", cfg.WorkerCount, runtime.NumCPU())
	}
	if cfg.Algorithm != "xxhash" {
		t.Errorf("algorithm default = %q, want xxhash", cfg.Algorithm)
	}
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg := DefaultScanConfig()
		if err := cfg.Validate(); err != nil {
			t.Errorf("default config failed validation: %v", err)
		}
	})

	t.Run("zero worker count is normalized", func(t *testing.T) {
		cfg := DefaultScanConfig()
		cfg.WorkerCount = 0
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.WorkerCount != runtime.NumCPU() {
			t.Errorf("worker_count = %d after validation, want %d", cfg.WorkerCount, runtime.NumCPU())
		}
	})

	t.Run("rejects bad partial read size", func(t *testing.T) {
		cfg := DefaultScanConfig()
		cfg.PartialReadSize = 0
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for partial_read_size = 0")
		}
	})

	t.Run("rejects negative min size", func(t *testing.T) {
		cfg := DefaultScanConfig()
		cfg.MinSize = -1
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for min_size = -1")
		}
	})

	t.Run("rejects unknown algorithm", func(t *testing.T) {
		cfg := DefaultScanConfig()
		cfg.Algorithm = "md5"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for unknown algorithm")
		}
	})
}

func TestLoadScanConfig(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadScanConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defaults := DefaultScanConfig()
		if *cfg != defaults {
			t.Errorf("missing file config = %+v, want defaults %+v", cfg, defaults)
		}
	})

	t.Run("file values overlay defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dupescan.yaml")
		content := "skip_hidden: true\npartial_read_size: 4096\nalgorithm: blake3\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadScanConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.SkipHidden {
			t.Error("skip_hidden not loaded from file")
		}
		if cfg.PartialReadSize != 4096 {
			t.Errorf("partial_read_size = %d, want 4096", cfg.PartialReadSize)
		}
		if cfg.Algorithm != "blake3" {
			t.Errorf("algorithm = %q, want blake3", cfg.Algorithm)
		}
		// Untouched keys keep their defaults.
		if cfg.MinSize != 1 {
			t.Errorf("min_size = %d, want default 1", cfg.MinSize)
		}
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("{{nope"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadScanConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestSaveAndReloadScanConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dupescan.yaml")

	cfg := DefaultScanConfig()
	cfg.SkipHidden = true
	cfg.WorkerCount = 3

	if err := SaveScanConfig(path, &cfg); err != nil {
		t.Fatalf("SaveScanConfig error: %v", err)
	}

	loaded, err := LoadScanConfig(path)
	if err != nil {
		t.Fatalf("LoadScanConfig error: %v", err)
	}
	if *loaded != cfg {
		t.Errorf("round-tripped config = %+v, want %+v", loaded, cfg)
	}
}
