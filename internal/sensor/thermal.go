package sensor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultThermalPath is the usual Linux CPU thermal zone.
const DefaultThermalPath = "/sys/class/thermal/thermal_zone0/temp"

// ThermalZone reads a Linux thermal zone file reporting millidegrees
// Celsius. Transient read failures return the last good value.
type ThermalZone struct {
	path string
	last float64
}

func NewThermalZone(path string) (*ThermalZone, error) {
	tz := &ThermalZone{path: path}
	v, err := tz.readOnce()
	if err != nil {
		return nil, fmt.Errorf("thermal zone %s unreadable: %w", path, err)
	}
	tz.last = v
	return tz, nil
}

func (t *ThermalZone) Read() float64 {
	v, err := t.readOnce()
	if err != nil {
		return t.last
	}
	t.last = v
	return v
}

func (t *ThermalZone) readOnce() (float64, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return 0, err
	}
	milli, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, err
	}
	return float64(milli) / 1000.0, nil
}
