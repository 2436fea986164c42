package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/hashicorp/mdns"
)

const (
	mdnsService = "_scriptgate._tcp"
	defaultPort = "8112"
)

// mdnsAdvertiser announces the page on the local network. The TXT record
// describes the catalog, so the announcement is rebuilt when it changes.
type mdnsAdvertiser struct {
	instance string
	port     int
	ips      []net.IP
	txt      func() []string

	mu     sync.Mutex
	server *mdns.Server
}

func newMDNSAdvertiser(listen, instance string, txt func() []string) (*mdnsAdvertiser, error) {
	port, err := strconv.Atoi(listenPortFromAddr(listen))
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("no advertisable port in listen address %q", listen)
	}
	instance = strings.TrimSpace(instance)
	if instance == "" {
		host, _ := os.Hostname()
		if host = strings.TrimSpace(host); host == "" {
			host = "local"
		}
		instance = "scriptgate-" + host
	}
	return &mdnsAdvertiser{
		instance: instance,
		port:     port,
		ips:      discoverAdvertiseIPs(),
		txt:      txt,
	}, nil
}

// announce replaces any running responder with one carrying fresh TXT data.
func (a *mdnsAdvertiser) announce() error {
	service, err := mdns.NewMDNSService(a.instance, mdnsService, "", "", a.port, a.ips, a.txt())
	if err != nil {
		return fmt.Errorf("build mdns service: %w", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shutdownLocked()
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("start mdns responder: %w", err)
	}
	a.server = server
	return nil
}

func (a *mdnsAdvertiser) stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shutdownLocked()
}

func (a *mdnsAdvertiser) shutdownLocked() {
	if a.server == nil {
		return
	}
	if err := a.server.Shutdown(); err != nil {
		slog.Debug("mdns shutdown", "error", err)
	}
	a.server = nil
}

func mdnsEnabled(enabled bool) bool {
	return enabled && strings.TrimSpace(envOrDefault("SCRIPTGATE_MDNS_ENABLE", "true")) != "false"
}

// mdnsText lets browsers on the network show what a peer holds before
// opening it.
func (s *stateStore) mdnsText() []string {
	return []string{
		"name=scriptgate",
		"api_version=1",
		"version=" + currentVersion(),
		"path=/",
		"scripts=" + strconv.Itoa(s.catalog.Len()),
		"origin=" + string(s.catalog.Origin()),
	}
}

// catalogChanged refreshes everything derived from the catalog outside the
// request path.
func (s *stateStore) catalogChanged() {
	if s.advertiser == nil {
		return
	}
	if err := s.advertiser.announce(); err != nil {
		slog.Warn("mdns re-announce failed", "error", err)
	}
}

func discoverAdvertiseIPs() []net.IP {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	return filterAdvertiseIPs(addrs)
}

// filterAdvertiseIPs keeps distinct global unicast addresses, IPv4 first.
func filterAdvertiseIPs(addrs []net.Addr) []net.IP {
	var found []netip.Addr
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet == nil {
			continue
		}
		ip, ok := netip.AddrFromSlice(ipNet.IP)
		if !ok {
			continue
		}
		if ip = ip.Unmap(); ip.IsGlobalUnicast() {
			found = append(found, ip)
		}
	}
	if len(found) == 0 {
		return nil
	}
	slices.SortFunc(found, netip.Addr.Compare)
	found = slices.Compact(found)
	out := make([]net.IP, len(found))
	for i, ip := range found {
		out[i] = net.IP(ip.AsSlice())
	}
	return out
}

func listenPortFromAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	switch {
	case addr == "":
		return defaultPort
	case !strings.Contains(addr, ":"):
		return addr
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	return port
}
