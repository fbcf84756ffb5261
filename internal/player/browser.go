package player

import (
	"fmt"
	"os/exec"
	"runtime"

	"vphim/internal/httputil"
)

// OpenEmbed hands an embed URL to the system browser. Embed sources are
// third-party iframe players; there is nothing a local player can do
// with them, so the browser is the playback surface and no position is
// tracked.
func OpenEmbed(url string) error {
	if err := httputil.ValidateURL(url); err != nil {
		return fmt.Errorf("refusing to open embed URL: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	// The browser detaches immediately; reap it in the background.
	go cmd.Wait()
	return nil
}
