package mounttab

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/skyforge/swiget/core"
)

// procMountsPath is where the kernel exposes the mount table.
const procMountsPath = "/proc/self/mounts"

// LiveMounts reads the kernel's current mount table. Queries reread the
// table so they always reflect mounts made by other processes.
type LiveMounts struct {
	path string
}

// NewLiveMounts reads the mount table from /proc.
func NewLiveMounts() *LiveMounts {
	return &LiveMounts{path: procMountsPath}
}

// NewLiveMountsFile reads a mount table in /proc/self/mounts format from
// an arbitrary file. Intended for tests.
func NewLiveMountsFile(path string) *LiveMounts {
	return &LiveMounts{path: path}
}

// All returns every (device, directory) pair currently mounted.
func (l *LiveMounts) All() ([]core.LiveMount, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var mounts []core.LiveMount
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		mounts = append(mounts, core.LiveMount{
			Device: unescapeMountField(fields[0]),
			Dir:    unescapeMountField(fields[1]),
		})
	}
	return mounts, sc.Err()
}

// DirOf returns the directory where device is mounted, if any. A device
// mounted more than once reports its first entry.
func (l *LiveMounts) DirOf(device string) (string, bool) {
	mounts, err := l.All()
	if err != nil {
		return "", false
	}
	for _, m := range mounts {
		if m.Device == device {
			return m.Dir, true
		}
	}
	return "", false
}

// IsMounted reports whether dir is a current mount point.
func (l *LiveMounts) IsMounted(dir string) bool {
	mounts, err := l.All()
	if err != nil {
		return false
	}
	for _, m := range mounts {
		if m.Dir == dir {
			return true
		}
	}
	return false
}

// unescapeMountField decodes the octal escapes (\040 and friends) the
// kernel uses for whitespace in mount table fields.
func unescapeMountField(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) {
			if n, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
