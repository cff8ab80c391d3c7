package preview

import (
	"os/exec"
	"runtime"

	"github.com/rotisserie/eris"
)

// OpenBrowser opens url in the default browser without waiting for it.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return eris.Wrapf(err, "preview: start %s", cmd.Path)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
