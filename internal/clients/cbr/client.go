package cbr

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"github.com/rg-golubkov/currency-converter/internal/entity/currency"
	"github.com/rg-golubkov/currency-converter/internal/exchange"
)

const (
	serviceName = "CBR"

	// referenceCurrency is the currency all CBR rates are quoted in.
	referenceCurrency = "rub"

	defaultURL = "https://www.cbr.ru/scripts/XML_daily.asp"
)

type config interface {
	URL() string
	RequestTimeout() time.Duration
}

// Client pulls the daily exchange rate feed of the Central Bank of
// Russia. The feed is reached over a raw socket with a minimal
// HTTP/1.0 exchange: the response framing of the feed is stable enough
// that a full HTTP client is not needed, and the body always arrives
// as a single line.
type Client struct {
	host    string
	addr    string
	secure  bool
	request []byte
	timeout time.Duration
}

// New resolves the configured feed URL once and prepares the request
// blob sent on every fetch.
func New(cfg config) (*Client, error) {
	rawURL := cfg.URL()
	if rawURL == "" {
		rawURL = defaultURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing feed url")
	}

	secure := u.Scheme == "https"

	port := u.Port()
	if port == "" {
		if secure {
			port = "443"
		} else {
			port = "80"
		}
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	c := &Client{
		host:    u.Hostname(),
		addr:    net.JoinHostPort(u.Hostname(), port),
		secure:  secure,
		request: []byte(fmt.Sprintf("GET %s HTTP/1.0\r\nHost: %s\r\n\r\n", path, u.Hostname())),
		timeout: cfg.RequestTimeout(),
	}
	return c, nil
}

// Fetch requests the current rate feed and returns the extracted rate
// table keyed by the reference currency.
func (c *Client) Fetch(ctx context.Context) (currency.RateTable, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to rate feed")
	}
	defer conn.Close()

	if c.timeout > 0 {
		if err = conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
			return nil, errors.Wrap(err, "setting feed deadline")
		}
	}

	if _, err = conn.Write(c.request); err != nil {
		return nil, errors.Wrap(err, "writing feed request")
	}

	reader := bufio.NewReader(conn)

	line, err := readLine(reader)
	if err != nil {
		return nil, errors.Wrap(err, "reading feed status line")
	}

	// Status line looks like "HTTP/1.1 200 OK".
	status := strings.Fields(line)
	if len(status) < 2 {
		return nil, errors.Errorf("malformed feed status line: %q", line)
	}
	if status[1] != "200" {
		return nil, &exchange.UpstreamError{
			Service:     serviceName,
			Code:        status[1],
			Description: strings.Join(status[2:], " "),
		}
	}

	// Headers carry nothing we need, skip to the blank line.
	for {
		line, err = readLine(reader)
		if err != nil {
			return nil, errors.Wrap(err, "reading feed headers")
		}
		if line == "" {
			break
		}
	}

	// The feed emits its whole payload as one line.
	body, err := readLine(reader)
	if err != nil {
		return nil, errors.Wrap(err, "reading feed body")
	}

	body, err = charmap.Windows1251.NewDecoder().String(body)
	if err != nil {
		return nil, errors.Wrap(err, "decoding feed body")
	}

	rates, err := parseRates(body)
	if err != nil {
		return nil, err
	}

	return currency.RateTable{referenceCurrency: rates}, nil
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: c.timeout}
	if c.secure {
		tlsDialer := &tls.Dialer{NetDialer: dialer}
		return tlsDialer.DialContext(ctx, "tcp", c.addr)
	}
	return dialer.DialContext(ctx, "tcp", c.addr)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
