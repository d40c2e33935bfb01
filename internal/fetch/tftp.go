package fetch

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/pin/tftp/v3"

	"github.com/skyforge/swiget/core"
)

// tftpPort is the default TFTP port when the specifier names none.
const tftpPort = 69

// tftpAddr returns the server address, defaulting the port to 69.
func tftpAddr(h core.HostInfo) string {
	port := h.Port
	if port == 0 {
		port = tftpPort
	}
	return net.JoinHostPort(h.Host, strconv.Itoa(port))
}

// TFTP fetches path from a TFTP server into dst using octet mode.
func TFTP(h core.HostInfo, path, dst string) error {
	addr := tftpAddr(h)

	client, err := tftp.NewClient(addr)
	if err != nil {
		return fmt.Errorf("%w: tftp %s: %v", core.ErrTransport, addr, err)
	}
	wt, err := client.Receive(path, "octet")
	if err != nil {
		return fmt.Errorf("%w: receive %s from %s: %v", core.ErrTransport, path, addr, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("%w: receive %s from %s: %v", core.ErrTransport, path, addr, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", core.ErrTransport, dst, err)
	}
	return nil
}
