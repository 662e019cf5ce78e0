package commands

import (
	"bytes"
	"runtime"
	"testing"

	fsrepo "CurrentCalc/internal/cli/repo/fs"
	"CurrentCalc/internal/config"
)

// withTempConfig переопределяет пользовательские каталоги на время теста,
// чтобы артефакты (токен/логин/база) создавались в temp.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}

// seedToken сохраняет токен в файловое хранилище, имитируя выполненный вход.
func seedToken(t *testing.T) {
	t.Helper()
	if err := (fsrepo.AuthFSStore{}).Save("jwt-test"); err != nil {
		t.Fatalf("seed token: %v", err)
	}
}

// captureOut подменяет writer вывода CLI и возвращает буфер.
func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}

// testConfig — конфиг, указывающий на данный сервер.
func testConfig(serverURL string) *config.Config {
	return &config.Config{ServerURL: serverURL}
}
