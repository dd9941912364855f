// Package pkgmgr decides which system package manager the generated
// script should target.
package pkgmgr

import (
	"os/exec"

	"github.com/scottidler/manifest/pkg/errors"
	"github.com/scottidler/manifest/pkg/logging"
)

// Recognized package manager identifiers.
const (
	Deb  = "deb"
	Rpm  = "rpm"
	Brew = "brew"
)

// probes maps a binary on PATH to the identifier it implies, in
// detection order.
var probes = []struct {
	binary string
	id     string
}{
	{"dpkg", Deb},
	{"rpm", Rpm},
	{"brew", Brew},
}

// Detect returns the package manager identifier to target. A non-empty
// override wins unconditionally; otherwise the host is probed and a
// failure to find any known manager is fatal.
func Detect(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	logger := logging.GetLogger("pkgmgr")
	for _, probe := range probes {
		if _, err := exec.LookPath(probe.binary); err == nil {
			logger.Debug().Str("binary", probe.binary).Str("pkgmgr", probe.id).Msg("detected package manager")
			return probe.id, nil
		}
	}

	return "", errors.New(errors.ErrPkgMgrDetect, "no known package manager found (tried dpkg, rpm, brew); use --pkgmgr to override")
}
