package infrastructure

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// StaticServer serves a built site directory on the loopback interface so a
// headless browser can load it over HTTP.
type StaticServer struct {
	app  *fiber.App
	addr string
	errc chan error
}

// StartStaticServer listens on 127.0.0.1:port (0 picks a free port) and
// returns once the listener is bound.
func StartStaticServer(dir string, port int) (*StaticServer, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Static("/", dir, fiber.Static{Index: "index.html"})

	s := &StaticServer{app: app, addr: ln.Addr().String(), errc: make(chan error, 1)}
	go func() {
		s.errc <- app.Listener(ln)
	}()
	return s, nil
}

// URL returns the absolute URL of path on this server.
func (s *StaticServer) URL(path string) string {
	return "http://" + s.addr + "/" + strings.TrimPrefix(path, "/")
}

func (s *StaticServer) Close(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return err
	}
	return <-s.errc
}
