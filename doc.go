// Package swiget resolves SWI location specifiers to local filesystem
// paths.
//
// A specifier names where a software image archive (SWI) lives: an HTTP
// or FTP server, a secure-shell host, a TFTP server, an NFS export, a
// block device or partition label, or a plain local path. Resolution
// produces the path of a local copy, or of the file in place for local
// paths and already-mounted devices:
//
//	r, err := swiget.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path, err := r.Resolve(ctx, "nfs://10.0.0.1/export/images/onl.swi")
//
// The symbolic selector :latest picks the most recently built archive in
// a directory, ranked by metadata embedded in the archives:
//
//	path, err := r.Resolve(ctx, "ONL-IMAGES:latest")
//
// # Specifier forms
//
//   - scheme://host[:port]/path for http, https, ftp, scp, ssh, tftp, nfs
//   - label:path or /dev/xxx:path for block devices and partitions
//   - /absolute/path or any bare path for local files
//
// Remote endpoints may embed credentials as user:password@host. The
// secure-shell password reaches the transport client only through an
// environment variable, never on a command line.
//
// A Resolver performs one resolution at a time and applies no timeouts:
// transport hangs block until the context is canceled by the caller.
package swiget
