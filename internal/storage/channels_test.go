package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChannelStoreSetAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channel_config.json")
	store := NewChannelStore(path)

	if _, ok := store.Channel("guild-1"); ok {
		t.Error("fresh store should have no channels")
	}

	if err := store.SetChannel("guild-1", "channel-x"); err != nil {
		t.Fatalf("SetChannel: %v", err)
	}
	if err := store.SetChannel("guild-2", "channel-y"); err != nil {
		t.Fatalf("SetChannel: %v", err)
	}

	id, ok := store.Channel("guild-1")
	if !ok || id != "channel-x" {
		t.Errorf("Channel(guild-1) = %q, %v; want channel-x, true", id, ok)
	}

	// A second store on the same path sees the persisted mapping.
	if id, ok := NewChannelStore(path).Channel("guild-2"); !ok || id != "channel-y" {
		t.Errorf("reloaded Channel(guild-2) = %q, %v; want channel-y, true", id, ok)
	}
}

func TestChannelStoreOverwrite(t *testing.T) {
	store := NewChannelStore(filepath.Join(t.TempDir(), "channels.json"))

	if err := store.SetChannel("guild-1", "old"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetChannel("guild-1", "new"); err != nil {
		t.Fatal(err)
	}

	if id, _ := store.Channel("guild-1"); id != "new" {
		t.Errorf("Channel = %q, want new", id)
	}
}

func TestChannelStoreClear(t *testing.T) {
	store := NewChannelStore(filepath.Join(t.TempDir(), "channels.json"))

	if err := store.SetChannel("guild-1", "channel-x"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetChannel("guild-1", ""); err != nil {
		t.Fatal(err)
	}

	if _, ok := store.Channel("guild-1"); ok {
		t.Error("cleared guild still has a channel")
	}
}

func TestChannelStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channels.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewChannelStore(path)
	if _, ok := store.Channel("guild-1"); ok {
		t.Error("corrupt file should read as empty configuration")
	}

	// Writes recover the file.
	if err := store.SetChannel("guild-1", "channel-x"); err != nil {
		t.Fatalf("SetChannel over corrupt file: %v", err)
	}
	if id, ok := store.Channel("guild-1"); !ok || id != "channel-x" {
		t.Errorf("Channel = %q, %v; want channel-x, true", id, ok)
	}
}

func TestChannelStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "channels.json")
	store := NewChannelStore(path)

	if err := store.SetChannel("guild-1", "channel-x"); err != nil {
		t.Fatalf("SetChannel: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}
