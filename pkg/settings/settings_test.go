package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSettings_Defaults(t *testing.T) {
	s := &Settings{}

	// Test default environment fallback
	if got := s.GetEnv(); got != "dev1" {
		t.Errorf("GetEnv() default = %q, want %q", got, "dev1")
	}

	// Test empty defaults
	if s.DefaultEnv != "" {
		t.Errorf("DefaultEnv should be empty, got %q", s.DefaultEnv)
	}
	if s.ProfilePath != "" {
		t.Errorf("ProfilePath should be empty, got %q", s.ProfilePath)
	}
}

func TestSettings_SettersGetters(t *testing.T) {
	s := &Settings{}

	s.SetEnv("dev0")
	if s.GetEnv() != "dev0" {
		t.Errorf("SetEnv() failed, got %q", s.GetEnv())
	}

	s.SetProfilePath("/custom/profiles.yaml")
	if s.ProfilePath != "/custom/profiles.yaml" {
		t.Errorf("SetProfilePath() failed, got %q", s.ProfilePath)
	}
}

func TestSettings_Clear(t *testing.T) {
	s := &Settings{
		DefaultEnv:  "dev0",
		ProfilePath: "/path/profiles.yaml",
	}

	s.Clear()

	if s.DefaultEnv != "" || s.ProfilePath != "" {
		t.Error("Clear() should reset all fields to empty")
	}
}

func TestSettings_SaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "settings.json")

	original := &Settings{
		DefaultEnv:  "dev0",
		ProfilePath: "/etc/sensorctl/profiles.yaml",
	}

	if err := original.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if loaded.DefaultEnv != original.DefaultEnv {
		t.Errorf("DefaultEnv mismatch: got %q, want %q", loaded.DefaultEnv, original.DefaultEnv)
	}
	if loaded.ProfilePath != original.ProfilePath {
		t.Errorf("ProfilePath mismatch: got %q, want %q", loaded.ProfilePath, original.ProfilePath)
	}
}

func TestSettings_LoadNonExistent(t *testing.T) {
	// Load from non-existent path should return empty settings
	s, err := LoadFrom("/nonexistent/path/settings.json")
	if err != nil {
		t.Fatalf("LoadFrom() non-existent should not error: %v", err)
	}
	if s == nil {
		t.Fatal("LoadFrom() should return non-nil Settings")
	}
	if s.DefaultEnv != "" || s.ProfilePath != "" {
		t.Error("LoadFrom() non-existent should return empty settings")
	}
}

func TestSettings_LoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "settings.json")
	if err := os.WriteFile(path, []byte("invalid json {"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("LoadFrom() with invalid JSON should error")
	}
}

func TestSettings_SaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	// Path with non-existent directory
	path := filepath.Join(tmpDir, "subdir", "nested", "settings.json")

	s := &Settings{DefaultEnv: "dev1"}
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() should create directories: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("SaveTo() should have created the file")
	}
}

func TestDefaultSettingsPath(t *testing.T) {
	path := DefaultSettingsPath()
	if path == "" {
		t.Error("DefaultSettingsPath() should not be empty")
	}
	if !filepath.IsAbs(path) && path != "sensorctl_settings.json" {
		t.Errorf("DefaultSettingsPath() should be absolute or fallback, got %q", path)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	// Test Load() with non-existent settings (should return empty)
	s, err := Load()
	if err != nil {
		t.Fatalf("Load() with non-existent file should not error: %v", err)
	}
	if s == nil {
		t.Fatal("Load() should return non-nil Settings")
	}
	if s.DefaultEnv != "" {
		t.Error("Load() with non-existent file should return empty settings")
	}

	// Create .sensorctl directory and settings file
	cfgDir := filepath.Join(tmpDir, ".sensorctl")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatalf("Failed to create .sensorctl dir: %v", err)
	}

	settingsPath := filepath.Join(cfgDir, "settings.json")
	testSettings := `{"default_env":"dev0","profile_path":"/tmp/profiles.yaml"}`
	if err := os.WriteFile(settingsPath, []byte(testSettings), 0644); err != nil {
		t.Fatalf("Failed to write test settings: %v", err)
	}

	s, err = Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.DefaultEnv != "dev0" {
		t.Errorf("Load() DefaultEnv = %q, want %q", s.DefaultEnv, "dev0")
	}
	if s.ProfilePath != "/tmp/profiles.yaml" {
		t.Errorf("Load() ProfilePath = %q, want %q", s.ProfilePath, "/tmp/profiles.yaml")
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	s := &Settings{
		DefaultEnv:  "dev0",
		ProfilePath: "/saved/profiles.yaml",
	}

	if err := s.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	expectedPath := filepath.Join(tmpDir, ".sensorctl", "settings.json")
	if _, err := os.Stat(expectedPath); os.IsNotExist(err) {
		t.Fatalf("Save() did not create file at %s", expectedPath)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if loaded.DefaultEnv != "dev0" {
		t.Errorf("After Save(), DefaultEnv = %q, want %q", loaded.DefaultEnv, "dev0")
	}
	if loaded.ProfilePath != "/saved/profiles.yaml" {
		t.Errorf("After Save(), ProfilePath = %q, want %q", loaded.ProfilePath, "/saved/profiles.yaml")
	}
}

func TestDefaultSettingsPath_NoHome(t *testing.T) {
	// Save original HOME and restore after test
	originalHome := os.Getenv("HOME")
	defer os.Setenv("HOME", originalHome)

	// Unset HOME to trigger fallback path
	os.Unsetenv("HOME")

	path := DefaultSettingsPath()
	if path != "sensorctl_settings.json" {
		t.Errorf("DefaultSettingsPath() with no HOME = %q, want %q", path, "sensorctl_settings.json")
	}
}

func TestLoadFrom_ReadError(t *testing.T) {
	tmpDir := t.TempDir()

	// Create a directory where the file should be (causes "is a directory" error)
	dirAsFile := filepath.Join(tmpDir, "settings.json")
	if err := os.Mkdir(dirAsFile, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	_, err := LoadFrom(dirAsFile)
	if err == nil {
		t.Error("LoadFrom() should error when path is a directory")
	}
}

func TestSaveTo_MkdirError(t *testing.T) {
	tmpDir := t.TempDir()

	// Create a file where we want a directory to be (causes MkdirAll to fail)
	blockingFile := filepath.Join(tmpDir, "blocker")
	if err := os.WriteFile(blockingFile, []byte("blocking"), 0644); err != nil {
		t.Fatalf("Failed to create blocking file: %v", err)
	}

	path := filepath.Join(blockingFile, "subdir", "settings.json")
	s := &Settings{DefaultEnv: "dev1"}

	err := s.SaveTo(path)
	if err == nil {
		t.Error("SaveTo() should fail when directory creation fails")
	}
}
