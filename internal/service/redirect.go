package service

import (
	"net"
	nethttp "net/http"
	"net/netip"
	"strings"

	"go-promoter/internal/biz"
	"go-promoter/internal/conf"
	"go-promoter/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
)

// RedirectService serves GET /r/{short_code}.
type RedirectService struct {
	resolver *biz.LinkResolver
	queue    *biz.ClickQueue
	proxies  trustedProxies
	log      *log.Helper
}

func NewRedirectService(c *conf.Server, resolver *biz.LinkResolver, queue *biz.ClickQueue, logger log.Logger) *RedirectService {
	helper := log.NewHelper(log.With(logger, "module", "service/redirect"))
	var entries []string
	if c != nil && c.Http != nil {
		entries = c.Http.TrustedProxies
	}
	return &RedirectService{
		resolver: resolver,
		queue:    queue,
		proxies:  parseTrustedProxies(entries, helper),
		log:      helper,
	}
}

// Redirect answers with a 302 to the destination and schedules click logging.
// The click is recorded after the response, never on the request path.
func (s *RedirectService) Redirect(ctx http.Context) error {
	code := ctx.Vars().Get("short_code")
	dest, err := s.resolver.Resolve(ctx, code)
	if err != nil {
		return toKratosError(err)
	}

	req := ctx.Request()
	nethttp.Redirect(ctx.Response(), req, dest, nethttp.StatusFound)
	s.queue.Enqueue(code, visitorFromRequest(req, s.proxies))
	return nil
}

// visitorFromRequest captures the caller as seen through the gateway.
func visitorFromRequest(r *nethttp.Request, proxies trustedProxies) domain.VisitorMetadata {
	return domain.VisitorMetadata{
		IP:        clientIP(r, proxies),
		UserAgent: r.UserAgent(),
		Referer:   r.Referer(),
	}
}

// trustedProxies holds the peers allowed to report the visitor address.
type trustedProxies []netip.Prefix

func parseTrustedProxies(entries []string, l *log.Helper) trustedProxies {
	var out trustedProxies
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			l.Warnf("ignoring invalid trusted proxy %q", entry)
			continue
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out
}

func (p trustedProxies) contains(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// clientIP returns the visitor address. Forwarding headers count only when
// the direct peer is a trusted proxy; X-Forwarded-For is walked from the
// right so a client cannot prepend a forged hop.
func clientIP(r *nethttp.Request, proxies trustedProxies) string {
	peer := remoteHost(r)
	if !proxies.contains(peer) {
		return peer
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if i == 0 || !proxies.contains(hop) {
				return hop
			}
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return peer
}

func remoteHost(r *nethttp.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
