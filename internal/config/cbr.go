package config

import "time"

type CbrConfig struct {
	FeedURL               string `yaml:"url"`
	CacheLifetimeSeconds  int64  `yaml:"cache-lifetime-seconds"`
	RequestTimeoutSeconds int64  `yaml:"request-timeout-seconds"`
}

func (c *CbrConfig) URL() string {
	return c.FeedURL
}

func (c *CbrConfig) CacheLifetime() time.Duration {
	return time.Duration(c.CacheLifetimeSeconds) * time.Second
}

func (c *CbrConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
