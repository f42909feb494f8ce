package smtp

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEmailTimesOutOnStalledServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	// Accepts the connection but never sends the SMTP greeting.
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		io.Copy(io.Discard, conn)
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	m := &mailer{
		host:    host,
		port:    port,
		from:    "noreply@example.com",
		timeout: 200 * time.Millisecond,
	}

	start := time.Now()
	err = m.SendEmail("user@example.com", "subject", "body")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSendEmailDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	ln.Close() // free the port so the dial is refused

	m := &mailer{
		host:    host,
		port:    port,
		from:    "noreply@example.com",
		timeout: 200 * time.Millisecond,
	}
	assert.Error(t, m.SendEmail("user@example.com", "subject", "body"))
}
