package config

import (
	"net"
	"strconv"
)

type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	MetricsAddr string `yaml:"metrics-addr"`
}

func (s *ServerConfig) BindAddr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Metrics returns the address of the prometheus endpoint. An empty
// address disables the endpoint.
func (s *ServerConfig) Metrics() string {
	return s.MetricsAddr
}
