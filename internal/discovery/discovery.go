// Package discovery announces the snapshot server over multicast DNS so
// same-host tooling can find it without knowing the configured port.
// Advertising is opt-in and strictly best-effort.
package discovery

import (
	"github.com/grandcat/zeroconf"
)

// ServiceType identifies chanscope snapshot servers on the local network.
const ServiceType = "_chanscope._tcp"

// Advertiser represents an active mDNS advertisement.
type Advertiser struct {
	server *zeroconf.Server
}

// Advertise publishes the snapshot server under ServiceType. The TXT
// records carry the endpoint paths a consumer needs.
func Advertise(instance string, port int) (*Advertiser, error) {
	txt := []string{
		"export=/export",
		"channels=/channels",
		"streams=/streams",
	}

	srv, err := zeroconf.Register(instance, ServiceType, "local.", port, txt, nil)
	if err != nil {
		return nil, err
	}

	return &Advertiser{server: srv}, nil
}

// Close stops advertising.
func (a *Advertiser) Close() {
	if a != nil && a.server != nil {
		a.server.Shutdown()
	}
}
