package game

import (
	"testing"
)

func TestNewGameStateWithNil(t *testing.T) {
	gs := NewGameStateWith(nil)
	if gs.Persistent() {
		t.Error("nil manager should not be persistent")
	}
	if gs.Settings == nil || gs.StarConfigs == nil || gs.HTTPCache == nil {
		t.Fatal("managers not created in degraded mode")
	}
	if gs.GetGdataManager() != nil {
		t.Error("expected nil gdata manager")
	}
}

func TestNewGameState(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	gs := NewGameState("starlight_state_test")
	if gs.Settings == nil || gs.StarConfigs == nil || gs.HTTPCache == nil {
		t.Fatal("managers not created")
	}

	// 持久化可用时写入的设置可被新的状态读回
	if gs.Persistent() {
		gs.Settings.SetSection("contact")
		if err := gs.Settings.Save(); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
		again := NewGameState("starlight_state_test")
		if again.Settings.GetSettings().Section != "contact" {
			t.Error("settings not shared through gdata")
		}
	}
}
