package fuse

import (
	"github.com/google/uuid"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/Artem-Goldenberg/RamFS/internal/config"
	"github.com/Artem-Goldenberg/RamFS/internal/core"
	"github.com/Artem-Goldenberg/RamFS/internal/util"
)

// Server wraps the underlying fuse.Server.
type Server struct {
	server    *fuse.Server
	sessionID string
}

// Mount mounts fs at mountPoint according to cfg. Returns a Server you can
// Serve() and Unmount().
func Mount(fs *core.Filesystem, mountPoint string, cfg *config.Config) (*Server, error) {
	sessionID := uuid.New().String()

	fuseOpts := &fuse.MountOptions{
		FsName: cfg.FsName,
		Name:   cfg.Name,
		Debug:  cfg.Debug,
		Logger: util.NewLogLogger("fuse.server", cfg.LogLvl),
	}

	raw := NewRawFS(fs, sessionID)
	srv, err := fuse.NewServer(raw, mountPoint, fuseOpts)
	if err != nil {
		return nil, err
	}
	return &Server{server: srv, sessionID: sessionID}, nil
}

// Serve starts serving and waits until the filesystem is mounted.
func (s *Server) Serve() error {
	go s.server.Serve()
	return s.server.WaitMount()
}

// Unmount cleanly unmounts the filesystem.
func (s *Server) Unmount() error {
	return s.server.Unmount()
}

// SessionID returns the correlation ID attached to this mount's log lines.
func (s *Server) SessionID() string {
	return s.sessionID
}
