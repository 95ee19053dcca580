package server

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLine(t *testing.T, line string) (Request, error) {
	t.Helper()
	return parseRequest(bufio.NewReader(strings.NewReader(line)))
}

func Test_ParseRequest_ShouldParseRequestLine(t *testing.T) {
	req, err := parseLine(t, "GET /cbr/rub/usd/100 HTTP/1.1\r\n")

	require.NoError(t, err)
	assert.Equal(t, Request{
		Method:  "GET",
		Path:    "/cbr/rub/usd/100",
		Version: "HTTP/1.1",
	}, req)
}

func Test_ParseRequest_ShouldDropQueryFromTarget(t *testing.T) {
	req, err := parseLine(t, "GET /cbr/rub/usd/100?precision=4 HTTP/1.1\r\n")

	require.NoError(t, err)
	assert.Equal(t, "/cbr/rub/usd/100", req.Path)
}

func Test_ParseRequest_ShouldRejectWrongTokenCount(t *testing.T) {
	_, err := parseLine(t, "GET /cbr/rub/usd/100\r\n")
	assert.ErrorIs(t, err, errBadRequest)

	_, err = parseLine(t, "GET /cbr/rub/usd/100 HTTP/1.1 extra\r\n")
	assert.ErrorIs(t, err, errBadRequest)
}

func Test_ParseRequest_ShouldRejectEmptyConnection(t *testing.T) {
	_, err := parseLine(t, "")

	assert.ErrorIs(t, err, errBadRequest)
}

func Test_ParseRequest_ShouldRejectUnsupportedVersion(t *testing.T) {
	_, err := parseLine(t, "GET /cbr/rub/usd/100 HTTP/1.0\r\n")

	assert.ErrorIs(t, err, errVersionNotSupported)
}

func Test_ParseRequest_ShouldRejectWriteMethods(t *testing.T) {
	for _, method := range []string{"POST", "PUT", "DELETE"} {
		_, err := parseLine(t, method+" /cbr/rub/usd/100 HTTP/1.1\r\n")
		assert.ErrorIs(t, err, errNotImplemented)
	}
}
