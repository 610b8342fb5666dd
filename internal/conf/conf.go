package conf

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bootstrap is the root of configs/config.yaml.
type Bootstrap struct {
	Server   *Server   `json:"server"`
	Data     *Data     `json:"data"`
	Promoter *Promoter `json:"promoter"`
}

// Server configures the transports.
type Server struct {
	Http *Server_HTTP `json:"http"`
}

// Server_HTTP configures the kratos HTTP server.
type Server_HTTP struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
	// TrustedProxies lists the peers (IPs or CIDRs) whose X-Forwarded-For
	// and X-Real-IP headers are believed. Empty means the peer address is
	// always the visitor.
	TrustedProxies []string `json:"trusted_proxies"`
}

// Data configures the durable store and the shared cache.
type Data struct {
	Database *Data_Database `json:"database"`
	Redis    *Data_Redis    `json:"redis"`
	GeoIP    *Data_GeoIP    `json:"geoip"`
}

// Data_Database selects the SQL driver ("sqlite3" or "postgres") and its DSN.
type Data_Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

// Data_Redis configures the redis client. An empty Addr disables redis.
type Data_Redis struct {
	Addr         string   `json:"addr"`
	Password     string   `json:"password"`
	Db           int      `json:"db"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
}

// Data_GeoIP points at an optional MaxMind country database.
type Data_GeoIP struct {
	Path string `json:"path"`
}

// Promoter tunes the redirect and attribution pipeline.
type Promoter struct {
	CacheTtl        Duration         `json:"cache_ttl"`
	DedupTtl        Duration         `json:"dedup_ttl"`
	Queue           *Promoter_Queue  `json:"queue"`
	Outbox          *Promoter_Outbox `json:"outbox"`
	JoinMaxAttempts int              `json:"join_max_attempts"`
	LeaderboardSize int              `json:"leaderboard_size"`
}

// Promoter_Queue sizes the background click queue.
type Promoter_Queue struct {
	Size       int      `json:"size"`
	Workers    int      `json:"workers"`
	JobTimeout Duration `json:"job_timeout"`
}

// Promoter_Outbox configures the outbox forwarder.
type Promoter_Outbox struct {
	Interval  Duration `json:"interval"`
	BatchSize int      `json:"batch_size"`
}

// Duration accepts "1.5s" style strings or integer nanoseconds.
type Duration struct {
	time.Duration
}

// AsDuration returns the wrapped time.Duration.
func (d Duration) AsDuration() time.Duration {
	return d.Duration
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
	case nil:
		d.Duration = 0
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Defaults returns a copy of p with unset pipeline settings filled in.
// p itself is left untouched.
func (p *Promoter) Defaults() *Promoter {
	out := &Promoter{}
	if p != nil {
		*out = *p
	}
	out.Queue = &Promoter_Queue{}
	if p != nil && p.Queue != nil {
		*out.Queue = *p.Queue
	}
	out.Outbox = &Promoter_Outbox{}
	if p != nil && p.Outbox != nil {
		*out.Outbox = *p.Outbox
	}

	if out.CacheTtl.Duration <= 0 {
		out.CacheTtl.Duration = 24 * time.Hour
	}
	if out.DedupTtl.Duration <= 0 {
		out.DedupTtl.Duration = 30 * 24 * time.Hour
	}
	if out.Queue.Size <= 0 {
		out.Queue.Size = 1024
	}
	if out.Queue.Workers <= 0 {
		out.Queue.Workers = 4
	}
	if out.Queue.JobTimeout.Duration <= 0 {
		out.Queue.JobTimeout.Duration = 10 * time.Second
	}
	if out.Outbox.Interval.Duration <= 0 {
		out.Outbox.Interval.Duration = time.Second
	}
	if out.Outbox.BatchSize <= 0 {
		out.Outbox.BatchSize = 100
	}
	if out.JoinMaxAttempts <= 0 {
		out.JoinMaxAttempts = 10
	}
	if out.LeaderboardSize <= 0 {
		out.LeaderboardSize = 20
	}
	return out
}
