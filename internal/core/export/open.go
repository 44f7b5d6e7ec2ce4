package export

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener shows a produced file to the user.
type Opener interface {
	Open(path string) error
}

// SystemOpener hands the file to the desktop's default application.
type SystemOpener struct{}

func (SystemOpener) Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	go cmd.Wait()
	return nil
}

// NoopOpener is used by headless surfaces such as the HTTP API.
type NoopOpener struct{}

func (NoopOpener) Open(string) error { return nil }
