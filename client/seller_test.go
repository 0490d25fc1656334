package client

import (
	"path/filepath"
	"testing"
)

func TestFileSellerStoreRoundTrip(t *testing.T) {
	store := NewFileSellerStore(filepath.Join(t.TempDir(), "cfg", "seller_name"))

	name, err := store.Load()
	if err != nil {
		t.Fatalf("load before save: %v", err)
	}
	if name != "" {
		t.Errorf("expected empty name before first save, got %q", name)
	}

	if err := store.Save("Ann"); err != nil {
		t.Fatalf("save: %v", err)
	}

	name, err = store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if name != "Ann" {
		t.Errorf("load = %q, want Ann", name)
	}
}

func TestFormRemembersSellerOnChange(t *testing.T) {
	store := NewFileSellerStore(filepath.Join(t.TempDir(), "seller_name"))

	f := &FormState{sellers: store}
	f.SetSeller("Olha")

	name, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if name != "Olha" {
		t.Errorf("store = %q, want Olha", name)
	}

	// blank input is not remembered
	f.SetSeller("")
	if name, _ := store.Load(); name != "Olha" {
		t.Errorf("blank name overwrote the stored one: %q", name)
	}
}
