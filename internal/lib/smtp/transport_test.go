package smtp

import (
	"bufio"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/investment-dashboard/internal/config"
)

// fakeServer отвечает на EHLO без STARTTLS.
func fakeServer(t *testing.T) (host, port string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		_, _ = conn.Write([]byte("220 localhost ESMTP\r\n"))
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			switch {
			case len(line) >= 4 && (line[:4] == "EHLO" || line[:4] == "HELO"):
				_, _ = conn.Write([]byte("250-localhost\r\n250 AUTH PLAIN\r\n"))
			case len(line) >= 4 && line[:4] == "QUIT":
				_, _ = conn.Write([]byte("221 bye\r\n"))
				return
			default:
				_, _ = conn.Write([]byte("250 ok\r\n"))
			}
		}
	}()

	h, p, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	return h, p
}

func TestTransport_ConnectRequiresSTARTTLS(t *testing.T) {
	host, port := fakeServer(t)
	tr := NewTransport(config.SMTP{SMTPHost: host, SMTPPort: port, SMTPUser: "bot@example.com"}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	client, err := tr.Connect()
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrNoSTARTTLS)
}

func TestTransport_ConnectDialError(t *testing.T) {
	tr := NewTransport(config.SMTP{SMTPHost: "127.0.0.1", SMTPPort: "1"}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	client, err := tr.Connect()
	assert.Nil(t, client)
	assert.Error(t, err)
}

func TestTransport_GetSMTPUser(t *testing.T) {
	tr := NewTransport(config.SMTP{SMTPUser: "bot@example.com"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, "bot@example.com", tr.GetSMTPUser())
}
