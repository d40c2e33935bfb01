package fetch

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/skyforge/swiget/core"
)

// EnvPassword is the environment variable carrying the remote shell
// password to the transport client. The password never appears on a
// command line.
const EnvPassword = "SSHPASS"

// SCP streams the remote file at path into dst by running a remote cat
// through the ssh client. When the specifier carries a password, the
// command is wrapped in sshpass and the password travels via SSHPASS.
func SCP(ctx context.Context, runner core.Runner, h core.HostInfo, path, dst string) error {
	target := h.Host
	if h.User != "" {
		target = h.User + "@" + h.Host
	}

	args := []string{"-o", "StrictHostKeyChecking=no", "-o", "BatchMode=no"}
	if h.Port != 0 {
		args = append(args, "-p", strconv.Itoa(h.Port))
	}
	args = append(args, target, "cat", path)

	name := "ssh"
	var env []string
	if h.Password != "" {
		name = "sshpass"
		args = append([]string{"-e", "ssh"}, args...)
		env = []string{EnvPassword + "=" + h.Password}
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	if err := runner.Stream(ctx, f, env, name, args...); err != nil {
		f.Close()
		return fmt.Errorf("%w: copy %s from %s: %v", core.ErrTransport, path, h.Host, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", core.ErrTransport, dst, err)
	}
	return nil
}
