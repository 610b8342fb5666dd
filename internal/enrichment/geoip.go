package enrichment

import (
	"net"

	geoip2 "github.com/oschwald/geoip2-golang"
)

// UnknownCountry is reported when an address cannot be located.
const UnknownCountry = "Unknown"

// GeoIPResolver resolves IP addresses to country codes using a GeoIP2 database.
type GeoIPResolver struct {
	db *geoip2.Reader
}

// NewGeoIPResolver opens the database at dbPath.
// Returns error if the database file cannot be opened or is corrupt.
func NewGeoIPResolver(dbPath string) (*GeoIPResolver, error) {
	db, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &GeoIPResolver{db: db}, nil
}

// Close closes the GeoIP database reader.
func (g *GeoIPResolver) Close() error {
	return g.db.Close()
}

// ResolveCountry returns the ISO country code for ipStr, or UnknownCountry.
func (g *GeoIPResolver) ResolveCountry(ipStr string) string {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return UnknownCountry
	}

	record, err := g.db.Country(ip)
	if err != nil || record.Country.IsoCode == "" {
		return UnknownCountry
	}
	return record.Country.IsoCode
}

// unknownCountryResolver is used when no GeoIP database is configured.
type unknownCountryResolver struct{}

func (unknownCountryResolver) ResolveCountry(string) string {
	return UnknownCountry
}
