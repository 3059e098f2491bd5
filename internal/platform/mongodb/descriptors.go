package mongodb

import (
	"net/url"
	"strconv"
	"strings"

	"projects_backend/internal/platform/config"
)

const (
	DescriptorURI    = "uri"
	DescriptorDirect = "direct"
	DescriptorSRV    = "srv"
)

// BuildDescriptors returns the connection strategies configured in cfg, in the order they are tried:
// an explicit URI, then the direct multi-host list, then the SRV discovery address.
// Credentials are escaped into the userinfo part of each URI.
func BuildDescriptors(cfg config.MongoConfig) []Descriptor {
	var out []Descriptor

	if cfg.URI != "" {
		out = append(out, Descriptor{Name: DescriptorURI, URI: cfg.URI})
	}

	if len(cfg.Hosts) > 0 {
		q := url.Values{}
		q.Set("tls", strconv.FormatBool(cfg.TLS))
		if cfg.ReplicaSet != "" {
			q.Set("replicaSet", cfg.ReplicaSet)
		}
		if cfg.AuthSource != "" && cfg.User != "" {
			q.Set("authSource", cfg.AuthSource)
		}
		q.Set("retryWrites", "true")
		q.Set("w", "majority")
		u := url.URL{
			Scheme:   "mongodb",
			User:     userInfo(cfg),
			Host:     strings.Join(cfg.Hosts, ","),
			Path:     "/" + cfg.Database,
			RawQuery: q.Encode(),
		}
		out = append(out, Descriptor{Name: DescriptorDirect, URI: u.String()})
	}

	if cfg.SRVHost != "" {
		q := url.Values{}
		q.Set("retryWrites", "true")
		q.Set("w", "majority")
		u := url.URL{
			Scheme:   "mongodb+srv",
			User:     userInfo(cfg),
			Host:     cfg.SRVHost,
			Path:     "/" + cfg.Database,
			RawQuery: q.Encode(),
		}
		out = append(out, Descriptor{Name: DescriptorSRV, URI: u.String()})
	}

	return out
}

func userInfo(cfg config.MongoConfig) *url.Userinfo {
	if cfg.User == "" {
		return nil
	}
	return url.UserPassword(cfg.User, cfg.Password)
}

// Redacted returns d.URI with any password replaced, for logging.
func (d Descriptor) Redacted() string {
	u, err := url.Parse(d.URI)
	if err != nil {
		return d.Name
	}
	return u.Redacted()
}
