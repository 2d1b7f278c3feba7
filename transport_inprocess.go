package jsonrpc2

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"sync"
)

// NewInProcessTransport returns a connected ServerTransport/ClientTransport
// pair over an in-memory net.Pipe, framed one JSON text per line. It is the
// one concrete transport this package ships — enough to exercise an engine
// end to end in tests or in a single process without reaching for a real
// socket.
func NewInProcessTransport() (ServerTransport, ClientTransport) {
	serverConn, clientConn := net.Pipe()
	return &inProcessServer{conn: serverConn, reader: bufio.NewReader(serverConn)},
		&inProcessClient{conn: clientConn, reader: bufio.NewReader(clientConn)}
}

type inProcessServer struct {
	conn   net.Conn
	reader *bufio.Reader
}

func (s *inProcessServer) Serve(ctx context.Context, handle func(ctx context.Context, request []byte) []byte) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.conn.Close()
		case <-done:
		}
	}()

	for {
		line, err := s.reader.ReadBytes('\n')
		if len(line) > 0 {
			request := trimNewline(line)
			resp := handle(ctx, request)
			if resp != nil {
				if _, werr := s.conn.Write(append(resp, '\n')); werr != nil {
					return werr
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (s *inProcessServer) Close() error { return s.conn.Close() }

type inProcessClient struct {
	conn   net.Conn
	reader *bufio.Reader
	mu     sync.Mutex
}

func (c *inProcessClient) Call(ctx context.Context, data []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.Send(ctx, data); err != nil {
		return nil, err
	}
	line, err := c.reader.ReadBytes('\n')
	if err != nil {
		return nil, Errorf(ClientConnector, "reading response: %s", err.Error())
	}
	return trimNewline(line), nil
}

func (c *inProcessClient) Send(ctx context.Context, data []byte) error {
	if _, err := c.conn.Write(append(data, '\n')); err != nil {
		return Errorf(ClientConnector, "writing request: %s", err.Error())
	}
	return nil
}

func (c *inProcessClient) Close() error { return c.conn.Close() }

func trimNewline(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}
