package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lifeline/internal/owner"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "owner_id: g1\nentity_id: c1\nlazy_entity: true\nqueue_capacity: 8\ndrain_timeout_ms: 150\nlog_level: debug\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OwnerID != "g1" || cfg.EntityID != "c1" || !cfg.LazyEntity || cfg.QueueCapacity != 8 || cfg.DrainTimeoutMS != 150 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"owner_id":"g2","queue_name":"q2","queue_max_wait_ms":40,"log_format":"json"}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OwnerID != "g2" || cfg.QueueName != "q2" || cfg.QueueMaxWaitMS != 40 || cfg.LogFormat != "json" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "owner_id=\"g3\"\nentity_id=\"c3\"\nqueue_capacity=16\ndrain_timeout_ms=75\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OwnerID != "g3" || cfg.EntityID != "c3" || cfg.QueueCapacity != 16 || cfg.DrainTimeoutMS != 75 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestMergeKeepsDefaultsForZeroFields(t *testing.T) {
	got := Config{EntityID: "truck", DrainTimeoutMS: 10}.Merge(Default())
	def := Default()
	if got.EntityID != "truck" || got.DrainTimeoutMS != 10 {
		t.Fatalf("expected overrides applied: %+v", got)
	}
	if got.OwnerID != def.OwnerID || got.QueueCapacity != def.QueueCapacity || got.LogLevel != def.LogLevel {
		t.Fatalf("expected defaults kept: %+v", got)
	}
}

func TestOwnerConfigConversion(t *testing.T) {
	c := Default()
	c.LazyEntity = true
	oc := c.OwnerConfig()
	if oc.ID != "garage" || oc.EntityID != "car" || !oc.LazyEntity {
		t.Fatalf("unexpected owner config: %+v", oc)
	}
	if oc.DrainTimeout != 2*time.Second {
		t.Fatalf("expected 2s drain timeout, got %v", oc.DrainTimeout)
	}
	if oc.QueueConfig.Name != "" || oc.QueueConfig.Capacity != 256 || oc.QueueConfig.MaxWait != time.Second {
		t.Fatalf("unexpected queue config: %+v", oc.QueueConfig)
	}
	if oc.Queue != nil {
		t.Fatalf("expected the owner to build its own queue")
	}
}

func TestDefaultOwnerQueueNamedAfterOwner(t *testing.T) {
	o := owner.NewWithConfig(Default().OwnerConfig())
	defer o.Close()
	st := o.Status()
	if st.Queue == nil || st.Queue.Name != "garage" {
		t.Fatalf("expected private queue named after the owner, got %+v", st.Queue)
	}
}
