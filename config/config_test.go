package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapbooth.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Database.Path != DefaultDatabasePath {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Photos.Dir != DefaultPhotoDir {
		t.Errorf("Photos.Dir = %q", cfg.Photos.Dir)
	}
	if cfg.Log.MaxSizeMB != 10 || cfg.Log.MaxBackups != 5 || cfg.Log.MaxAgeDays != 30 {
		t.Errorf("log defaults = %+v", cfg.Log)
	}
	if runtime.GOOS == "windows" && len(cfg.Gphoto.SearchDirs) != 1 {
		t.Errorf("windows should default to the msys2 bin dir, got %v", cfg.Gphoto.SearchDirs)
	}
	if runtime.GOOS != "windows" && len(cfg.Gphoto.SearchDirs) != 0 {
		t.Errorf("no search dirs expected, got %v", cfg.Gphoto.SearchDirs)
	}
}

func TestLoadYAML(t *testing.T) {
	tmp := t.TempDir()
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
  debug: true
database:
  path: /var/lib/snapbooth/db.sqlite
gphoto:
  executable: /opt/gphoto2/bin/gphoto2
  search_dirs: ["/opt/gphoto2/bin"]
  temp_dir: `+tmp+`
photos:
  dir: /srv/photos
log:
  max_size_mb: 50
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || !cfg.Server.Debug {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Gphoto.Executable != "/opt/gphoto2/bin/gphoto2" || cfg.Gphoto.TempDir != tmp {
		t.Errorf("gphoto = %+v", cfg.Gphoto)
	}
	if len(cfg.Gphoto.SearchDirs) != 1 || cfg.Gphoto.SearchDirs[0] != "/opt/gphoto2/bin" {
		t.Errorf("search dirs = %v", cfg.Gphoto.SearchDirs)
	}
	if cfg.Log.MaxSizeMB != 50 || cfg.Log.MaxBackups != 5 {
		t.Errorf("log = %+v", cfg.Log)
	}
	if !strings.HasSuffix(cfg.LogPath(), "snapbooth.log") {
		t.Errorf("LogPath = %q", cfg.LogPath())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":1234\"\n")
	t.Setenv("SNAPBOOTH_ADDR", ":5678")
	t.Setenv("SNAPBOOTH_GPHOTO2", "gphoto2-custom")
	t.Setenv("SNAPBOOTH_PHOTO_DIR", "/tmp/booth")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":5678" {
		t.Errorf("Addr = %q, env should win", cfg.Server.Addr)
	}
	if cfg.Gphoto.Executable != "gphoto2-custom" || cfg.Photos.Dir != "/tmp/booth" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":     "server: [unterminated",
		"bad temp dir": "gphoto:\n  temp_dir: /definitely/not/here/4f1c\n",
	}
	for name, content := range cases {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}
}
