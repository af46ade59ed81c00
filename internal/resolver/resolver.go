// Package resolver resolves hostnames into per-family address literal sets.
// The two address families are looked up independently: a family that fails
// to resolve reports an empty set, which is the expected steady state for
// single-stack hosts.
package resolver

import (
	"context"
	"errors"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ragujp/prometheus-sample-configs/internal/config"
)

// HostAddresses holds the resolved literals for one hostname. Each family's
// set is deduplicated and sorted lexicographically.
type HostAddresses struct {
	V4 []string
	V6 []string
}

// Empty reports whether no address of either family resolved.
func (ha HostAddresses) Empty() bool {
	return len(ha.V4) == 0 && len(ha.V6) == 0
}

// Resolver resolves a bare hostname into per-family address sets.
type Resolver interface {
	Resolve(ctx context.Context, host string) (HostAddresses, error)
}

// StripPort removes a trailing port suffix from a host field: the string is
// split on the last colon and the port discarded.
func StripPort(hostport string) string {
	if i := strings.LastIndex(hostport, ":"); i >= 0 {
		return hostport[:i]
	}
	return hostport
}

// Net resolves through the standard library resolver.
type Net struct {
	resolver *net.Resolver
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewNet creates a resolver backed by the system DNS configuration.
func NewNet(cfg config.ResolverConfig, logger zerolog.Logger) *Net {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultResolverTimeoutSecs) * time.Second
	}

	return &Net{
		resolver: net.DefaultResolver,
		timeout:  timeout,
		logger:   logger.With().Str("component", "Resolver").Logger(),
	}
}

// Resolve looks up both address families of host independently. A family
// whose lookup fails with a DNS error contributes an empty set; resolution is
// aborted with an error only when the surrounding context ends.
func (r *Net) Resolve(ctx context.Context, host string) (HostAddresses, error) {
	var addrs HostAddresses

	v4, err := r.lookupFamily(ctx, "ip4", host)
	if err != nil {
		return HostAddresses{}, err
	}
	addrs.V4 = v4

	v6, err := r.lookupFamily(ctx, "ip6", host)
	if err != nil {
		return HostAddresses{}, err
	}
	addrs.V6 = v6

	return addrs, nil
}

// lookupFamily resolves one address family, absorbing DNS-level failures.
func (r *Net) lookupFamily(ctx context.Context, network, host string) ([]string, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ips, err := r.resolver.LookupIP(lookupCtx, network, host)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			r.logger.Debug().Str("host", host).Str("network", network).Err(err).Msg("Address family did not resolve")
			return nil, nil
		}
		return nil, err
	}

	return normalizeAddrs(ips), nil
}

// normalizeAddrs formats, deduplicates and sorts resolved addresses.
func normalizeAddrs(ips []net.IP) []string {
	if len(ips) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(ips))
	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		literal := ip.String()
		if _, ok := seen[literal]; ok {
			continue
		}
		seen[literal] = struct{}{}
		addrs = append(addrs, literal)
	}

	sort.Strings(addrs)
	return addrs
}
