// Package runtimepath locates the per-user runtime files shared by the
// daemon and its clients.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SocketEnv overrides the socket location for both sides when set.
const SocketEnv = "TILEWM_SOCKET"

// Dir is $XDG_RUNTIME_DIR, else /run/user/<uid>, else a private directory
// under the temp dir that is created on demand.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}
	uid := strconv.Itoa(os.Getuid())
	if perUser := filepath.Join("/run/user", uid); isDir(perUser) {
		return perUser, nil
	}

	private := filepath.Join(os.TempDir(), "tilewm-"+uid)
	if err := os.MkdirAll(private, 0o700); err != nil {
		return "", fmt.Errorf("create runtime dir %s: %w", private, err)
	}
	return private, nil
}

// SocketPath returns the IPC socket of the daemon managing display. An empty
// display means $DISPLAY. Each display gets its own socket so a nested
// session does not take over the parent's.
func SocketPath(display string) (string, error) {
	if path := os.Getenv(SocketEnv); path != "" {
		return path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if display == "" {
		display = os.Getenv("DISPLAY")
	}
	return filepath.Join(dir, socketName(display)), nil
}

// socketName maps "host:1.0" to "tilewm-1.sock". The screen number is
// dropped because one daemon manages every screen of a display.
func socketName(display string) string {
	if i := strings.LastIndex(display, ":"); i >= 0 {
		display = display[i+1:]
	}
	if i := strings.Index(display, "."); i >= 0 {
		display = display[:i]
	}
	if display == "" {
		return "tilewm.sock"
	}
	clean := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return r
		}
		return '_'
	}, display)
	return "tilewm-" + clean + ".sock"
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
