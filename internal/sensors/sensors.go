package sensors

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Registry resolves ${name} template variables to current system values.
// Readings are taken per Snapshot call; the registry itself holds no state
// beyond the variable table.
type Registry struct {
	vars map[string]func() string
}

// NewRegistry builds the default variable table.
func NewRegistry() *Registry {
	r := &Registry{vars: make(map[string]func() string)}
	r.vars["hostname"] = hostname
	r.vars["kernel"] = kernel
	r.vars["uptime"] = uptime
	r.vars["loadavg"] = loadavg
	r.vars["memused"] = memUsed
	r.vars["memtotal"] = memTotal
	return r
}

// Snapshot reads every variable once and returns the value table used for
// template expansion. All variables always resolve; a failed read shows as
// "n/a" rather than breaking the layout.
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, len(r.vars))
	for name, read := range r.vars {
		out[name] = read()
	}
	return out
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "n/a"
	}
	return name
}

func kernel() string {
	return procField("/proc/sys/kernel/osrelease", 0)
}

func uptime() string {
	raw := procField("/proc/uptime", 0)
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "n/a"
	}
	return formatDuration(time.Duration(secs) * time.Second)
}

func loadavg() string {
	data, err := os.ReadFile("/proc/loadavg")
	if err != nil {
		return "n/a"
	}
	fields := strings.Fields(string(data))
	if len(fields) < 3 {
		return "n/a"
	}
	return strings.Join(fields[:3], " ")
}

func memTotal() string {
	kb, ok := meminfoValue("MemTotal")
	if !ok {
		return "n/a"
	}
	return formatKiB(kb)
}

func memUsed() string {
	total, ok1 := meminfoValue("MemTotal")
	avail, ok2 := meminfoValue("MemAvailable")
	if !ok1 || !ok2 || avail > total {
		return "n/a"
	}
	return formatKiB(total - avail)
}

func meminfoValue(key string) (uint64, bool) {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0, false
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, key+":") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, false
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, false
		}
		return kb, true
	}
	return 0, false
}

func procField(path string, idx int) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "n/a"
	}
	fields := strings.Fields(string(data))
	if idx >= len(fields) {
		return "n/a"
	}
	return fields[idx]
}

// formatDuration renders an uptime the way status bars usually do:
// "3d 4h 12m" with zero leading units dropped.
func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// formatKiB renders a kibibyte count with a binary unit, one decimal.
func formatKiB(kb uint64) string {
	switch {
	case kb >= 1<<20:
		return fmt.Sprintf("%.1fGiB", float64(kb)/(1<<20))
	case kb >= 1<<10:
		return fmt.Sprintf("%.1fMiB", float64(kb)/(1<<10))
	default:
		return fmt.Sprintf("%dKiB", kb)
	}
}
