// Package open launches a URL in the system browser.
package open

import (
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/anisan-cli/anisync/constant"
	"github.com/pkg/errors"
)

// URL opens an http or https address with the default handler without waiting for it.
func URL(address string) error {
	u, err := url.Parse(address)
	if err != nil {
		return errors.Wrap(err, "parsing url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("refusing to open %q", address)
	}

	cmd, err := command(u.String())
	if err != nil {
		return err
	}
	return cmd.Start()
}

func command(address string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", address), nil
	case constant.Darwin:
		return exec.Command("open", address), nil
	case constant.Linux:
		return exec.Command("xdg-open", address), nil
	case constant.Android:
		return exec.Command("termux-open-url", address), nil
	default:
		return nil, errors.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}
