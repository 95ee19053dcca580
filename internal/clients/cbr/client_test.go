package cbr

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rg-golubkov/currency-converter/internal/exchange"
)

const feedBody = `<ValCurs Date="02.11.2022" name="Foreign Currency Market">` +
	`<Valute ID="R01235"><NumCode>840</NumCode><CharCode>USD</CharCode>` +
	`<Nominal>1</Nominal><Name>US Dollar</Name><Value>90,5500</Value></Valute>` +
	`<Valute ID="R01770"><NumCode>752</NumCode><CharCode>SEK</CharCode>` +
	`<Nominal>10</Nominal><Name>Swedish Krona</Name><Value>85,0000</Value></Valute>` +
	`</ValCurs>`

type testConfig struct {
	url string
}

func (c testConfig) URL() string {
	return c.url
}

func (c testConfig) RequestTimeout() time.Duration {
	return time.Second
}

// fakeFeed serves one connection with the given status line and body,
// returning the request line it received.
func fakeFeed(t *testing.T, ln net.Listener, statusLine, body string, requestLine chan<- string) {
	t.Helper()

	conn, err := ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	reader := bufio.NewReader(conn)
	first, err := reader.ReadString('\n')
	assert.NoError(t, err)
	requestLine <- first

	// Drain the rest of the request.
	for {
		line, err := reader.ReadString('\n')
		if err != nil || line == "\r\n" {
			break
		}
	}

	_, err = conn.Write([]byte(statusLine + "\r\n" +
		"Content-Type: application/xml; charset=windows-1251\r\n" +
		"\r\n" +
		body + "\n"))
	assert.NoError(t, err)
}

func Test_Fetch_ShouldExtractRatesFromFeed(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	requestLine := make(chan string, 1)
	go fakeFeed(t, ln, "HTTP/1.1 200 OK", feedBody, requestLine)

	client, err := New(testConfig{url: "http://" + ln.Addr().String() + "/scripts/XML_daily.asp"})
	require.NoError(t, err)

	table, err := client.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "GET /scripts/XML_daily.asp HTTP/1.0\r\n", <-requestLine)

	rates, ok := table["rub"]
	require.True(t, ok)
	assert.True(t, rates["usd"].Equal(decimal.RequireFromString("90.55")))
	assert.True(t, rates["sek"].Equal(decimal.RequireFromString("8.5")))
}

func Test_Fetch_ShouldFailOnErrorStatus(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	requestLine := make(chan string, 1)
	go fakeFeed(t, ln, "HTTP/1.1 503 Service Unavailable", "", requestLine)

	client, err := New(testConfig{url: "http://" + ln.Addr().String() + "/"})
	require.NoError(t, err)

	_, err = client.Fetch(context.Background())

	var upstream *exchange.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "CBR", upstream.Service)
	assert.Equal(t, "503", upstream.Code)
	assert.Equal(t, "Service Unavailable", upstream.Description)
}

func Test_New_ShouldResolveDefaultFeedURL(t *testing.T) {
	client, err := New(testConfig{})

	require.NoError(t, err)
	assert.Equal(t, "www.cbr.ru:443", client.addr)
	assert.True(t, client.secure)
	assert.Equal(t, "GET /scripts/XML_daily.asp HTTP/1.0\r\nHost: www.cbr.ru\r\n\r\n", string(client.request))
}

func Test_ParseRates_ShouldDivideValueByNominal(t *testing.T) {
	rates, err := parseRates(feedBody)

	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.True(t, rates["usd"].Equal(decimal.RequireFromString("90.55")))
	assert.True(t, rates["sek"].Equal(decimal.RequireFromString("8.5")))
}

func Test_ParseRates_ShouldReturnEmptyTableWithoutMatches(t *testing.T) {
	rates, err := parseRates("<ValCurs></ValCurs>")

	require.NoError(t, err)
	assert.Empty(t, rates)
}

func Test_ParseRates_ShouldFailOnMalformedValue(t *testing.T) {
	body := `<Valute><CharCode>USD</CharCode><Nominal>1</Nominal>` +
		`<Name>US Dollar</Name><Value>90,55,00</Value></Valute>`

	_, err := parseRates(body)

	assert.Error(t, err)
}
