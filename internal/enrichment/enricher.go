package enrichment

import (
	"go-promoter/internal/conf"
	"go-promoter/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is enrichment providers.
var ProviderSet = wire.NewSet(NewEnricher)

// CountryResolver maps an IP address to an ISO country code.
type CountryResolver interface {
	ResolveCountry(ip string) string
}

// DeviceClassifier maps a User-Agent to a device class.
type DeviceClassifier interface {
	DetectDevice(userAgent string) string
}

// RefererClassifier maps a Referer to a traffic source.
type RefererClassifier interface {
	ClassifySource(referer string) string
}

// Enricher fills the derived fields of visitor metadata.
type Enricher struct {
	geo     CountryResolver
	device  DeviceClassifier
	referer RefererClassifier
}

// New creates an Enricher from its classifiers.
func New(geo CountryResolver, device DeviceClassifier, referer RefererClassifier) *Enricher {
	if geo == nil {
		geo = unknownCountryResolver{}
	}
	return &Enricher{geo: geo, device: device, referer: referer}
}

// NewEnricher builds the Enricher from configuration. The GeoIP database is
// optional; without it every country resolves to UnknownCountry.
func NewEnricher(c *conf.Data, logger log.Logger) (*Enricher, func(), error) {
	helper := log.NewHelper(log.With(logger, "module", "enrichment"))
	cleanup := func() {}

	var geo CountryResolver
	if c != nil && c.GeoIP != nil && c.GeoIP.Path != "" {
		resolver, err := NewGeoIPResolver(c.GeoIP.Path)
		if err != nil {
			helper.Warnf("GeoIP database %s not available, country resolution disabled: %v", c.GeoIP.Path, err)
		} else {
			helper.Infof("GeoIP database loaded from %s", c.GeoIP.Path)
			geo = resolver
			cleanup = func() {
				if err := resolver.Close(); err != nil {
					helper.Error(err)
				}
			}
		}
	}

	return New(geo, NewDeviceDetector(), NewSourceClassifier()), cleanup, nil
}

// Enrich returns meta with device, source and country set. Fields already
// present are kept.
func (e *Enricher) Enrich(meta domain.VisitorMetadata) domain.VisitorMetadata {
	if meta.Device == "" {
		meta.Device = e.device.DetectDevice(meta.UserAgent)
	}
	if meta.Source == "" {
		meta.Source = e.referer.ClassifySource(meta.Referer)
	}
	if meta.Country == "" {
		meta.Country = e.geo.ResolveCountry(meta.IP)
	}
	return meta
}
