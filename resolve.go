package swiget

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/skyforge/swiget/core"
)

// scheme enumerates the closed set of addressing schemes. Dispatch is an
// exhaustive switch over this set: a new scheme must be routed
// explicitly, it cannot fall through silently.
type scheme int

const (
	schemeInvalid scheme = iota
	schemeHTTP
	schemeFTP
	schemeSSH
	schemeTFTP
	schemeNFS
	schemeDevice
	schemeLocal
)

// parsedSpecifier is the decoded form of a location specifier.
type parsedSpecifier struct {
	raw    string
	scheme scheme
	url    string        // http/https: the specifier verbatim
	host   core.HostInfo // ftp, ssh, tftp, nfs
	path   string        // remote path, device-relative path, or local path
	device string        // device form: /dev node or partition label
}

// Resolve maps a location specifier to a local filesystem path. On
// failure no path is produced and the error wraps one of the package
// sentinel errors.
func (r *Resolver) Resolve(ctx context.Context, specifier string) (string, error) {
	spec, err := parseSpecifier(specifier)
	if err != nil {
		r.logger.Error("cannot parse specifier", "specifier", specifier, "err", err)
		return "", err
	}

	path, err := r.dispatch(ctx, spec)
	if err != nil {
		r.logger.Error("resolution failed", "specifier", specifier, "err", err)
		return "", err
	}
	r.logger.Debug("resolved", "specifier", specifier, "path", path)
	return path, nil
}

func (r *Resolver) dispatch(ctx context.Context, spec parsedSpecifier) (string, error) {
	switch spec.scheme {
	case schemeHTTP, schemeFTP, schemeSSH, schemeTFTP:
		return r.resolveRemote(ctx, spec)
	case schemeNFS:
		return r.resolveNFS(ctx, spec)
	case schemeDevice:
		return r.resolveDevice(ctx, spec)
	case schemeLocal:
		return r.resolveLocal(ctx, spec)
	case schemeInvalid:
		fallthrough
	default:
		return "", fmt.Errorf("%w: %q", core.ErrInvalidSpecifier, spec.raw)
	}
}

// parseSpecifier decodes the specifier's scheme and shape. The input is
// never mutated; all derived fields are copies.
func parseSpecifier(specifier string) (parsedSpecifier, error) {
	spec := parsedSpecifier{raw: specifier}
	if specifier == "" {
		return spec, fmt.Errorf("%w: empty specifier", core.ErrInvalidSpecifier)
	}

	if name, rest, ok := strings.Cut(specifier, "://"); ok {
		switch name {
		case "http", "https":
			if rest == "" {
				return spec, fmt.Errorf("%w: %q", core.ErrInvalidSpecifier, specifier)
			}
			spec.scheme = schemeHTTP
			spec.url = specifier
			return spec, nil
		case "ftp":
			spec.scheme = schemeFTP
		case "scp", "ssh":
			spec.scheme = schemeSSH
		case "tftp":
			spec.scheme = schemeTFTP
		case "nfs":
			spec.scheme = schemeNFS
		default:
			return parsedSpecifier{raw: specifier}, fmt.Errorf("%w: unsupported scheme %q", core.ErrInvalidSpecifier, name)
		}
		host, path, err := parseEndpoint(rest)
		if err != nil {
			return parsedSpecifier{raw: specifier}, err
		}
		spec.host = host
		spec.path = path
		return spec, nil
	}

	if device, rest, ok := strings.Cut(specifier, ":"); ok {
		if device == "" || rest == "" {
			return spec, fmt.Errorf("%w: %q", core.ErrInvalidSpecifier, specifier)
		}
		if strings.Contains(device, "/") && !strings.HasPrefix(device, "/dev/") {
			return spec, fmt.Errorf("%w: %q is neither a device node nor a label", core.ErrInvalidSpecifier, device)
		}
		spec.scheme = schemeDevice
		spec.device = device
		spec.path = rest
		return spec, nil
	}

	spec.scheme = schemeLocal
	spec.path = specifier
	return spec, nil
}

// parseEndpoint decodes [user[:password]@]host[:port]/path. The path
// separator is required. The port split takes the last colon of the
// endpoint; bracketed IPv6 literals are not handled and are rejected.
func parseEndpoint(rest string) (core.HostInfo, string, error) {
	var h core.HostInfo

	endpoint, path, ok := strings.Cut(rest, "/")
	if !ok || path == "" {
		return h, "", fmt.Errorf("%w: missing path in %q", core.ErrInvalidSpecifier, rest)
	}

	if at := strings.LastIndex(endpoint, "@"); at >= 0 {
		user, pass, hasPass := strings.Cut(endpoint[:at], ":")
		endpoint = endpoint[at+1:]
		h.User = user
		if hasPass {
			h.Password = pass
		}
	}

	if strings.HasPrefix(endpoint, "[") {
		return h, "", fmt.Errorf("%w: IPv6 endpoints are not supported: %q", core.ErrInvalidSpecifier, endpoint)
	}

	if i := strings.LastIndex(endpoint, ":"); i >= 0 {
		port, err := strconv.Atoi(endpoint[i+1:])
		if err != nil || port <= 0 || port > 65535 {
			return h, "", fmt.Errorf("%w: bad port in %q", core.ErrInvalidSpecifier, endpoint)
		}
		h.Host = endpoint[:i]
		h.Port = port
	} else {
		h.Host = endpoint
	}

	if h.Host == "" {
		return h, "", fmt.Errorf("%w: missing host in %q", core.ErrInvalidSpecifier, rest)
	}
	return h, path, nil
}
