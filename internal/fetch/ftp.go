package fetch

import (
	"context"
	"fmt"
	"net"

	"github.com/jlaffaye/ftp"

	"github.com/skyforge/swiget/core"
	"github.com/skyforge/swiget/internal/progress"
)

// ftpPort is the default FTP control port.
const ftpPort = "21"

// ftpAddr returns the control connection address, defaulting the port
// to 21.
func ftpAddr(h core.HostInfo) string {
	if h.Port == 0 {
		return net.JoinHostPort(h.Host, ftpPort)
	}
	return h.Addr()
}

// FTP retrieves path from the endpoint described by h. Anonymous login
// is used when the specifier carries no credentials.
func FTP(ctx context.Context, h core.HostInfo, path, dst string, fn core.ProgressFunc) error {
	addr := ftpAddr(h)
	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: connect %s: %v", core.ErrTransport, addr, err)
	}
	defer conn.Quit()

	user, pass := h.User, h.Password
	if user == "" {
		user, pass = "anonymous", "anonymous"
	}
	if err := conn.Login(user, pass); err != nil {
		return fmt.Errorf("%w: login %s: %v", core.ErrTransport, addr, err)
	}

	// Size is best-effort, for progress reporting only.
	total := int64(-1)
	if size, err := conn.FileSize(path); err == nil {
		total = size
	}

	resp, err := conn.Retr(path)
	if err != nil {
		return fmt.Errorf("%w: retrieve %s from %s: %v", core.ErrTransport, path, addr, err)
	}
	defer resp.Close()

	return writeAll(dst, progress.NewReader(resp, total, fn))
}
