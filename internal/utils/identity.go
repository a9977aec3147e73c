package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var machineIDPaths = []string{"/etc/machine-id", "/var/lib/dbus/machine-id"}

// DeriveNodeID produces the stable six-hex-character node identifier: the
// tail of the xxhash of the machine id, falling back to the hostname. Stable
// per physical host across restarts.
func DeriveNodeID() string {
	sum := xxhash.Sum64String(machineSeed())
	hexID := fmt.Sprintf("%016x", sum)
	return hexID[len(hexID)-6:]
}

func machineSeed() string {
	for _, p := range machineIDPaths {
		if data, err := os.ReadFile(p); err == nil {
			if s := strings.TrimSpace(string(data)); s != "" {
				return s
			}
		}
	}
	host, err := os.Hostname()
	if err != nil {
		return "mesh-node"
	}
	return host
}
