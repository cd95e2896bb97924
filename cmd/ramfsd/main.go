package main

import (
	"flag"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/Artem-Goldenberg/RamFS/internal/config"
	"github.com/Artem-Goldenberg/RamFS/internal/core"
	"github.com/Artem-Goldenberg/RamFS/internal/fuse"
	"github.com/Artem-Goldenberg/RamFS/internal/manifest"
	"github.com/Artem-Goldenberg/RamFS/internal/util"
)

func main() {
	var (
		verbose  int
		seedPath string
		umount   bool
		debug    bool
	)
	flag.StringVar(&seedPath, "seed", "", "Path to a seed manifest file (YAML or JSON)")
	flag.StringVar(&seedPath, "s", "", "--seed (shorthand)")
	flag.BoolVar(&umount, "umount", false,
		"Unmount the mountpoint first if needed before mounting again. Useful for debuggers that don't exit properly.")
	flag.BoolVar(&umount, "u", false, "--umount (shorthand)")
	flag.IntVar(&verbose, "verbose", 3, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", 3, "--verbose (shorthand)")
	flag.BoolVar(&debug, "debug", false, "Enable go-fuse wire protocol debug logging")
	flag.Parse()

	if verbose < 1 {
		verbose = 1
	}
	if verbose > 5 {
		verbose = 5
	}
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	logLvl := logLvls[verbose-1]
	util.InitializeLogger(logLvl)
	logger := util.GetLogger("main")

	mnt := flag.Arg(0)
	logger.Info().Int("verbose", verbose).Str("seed", seedPath).Str("mnt", mnt).Msg("ramfsd initializing")
	if mnt == "" {
		logger.Fatal().Msg("mountpoint not specified; it must be passed as the argument")
	}

	if umount {
		cmd := exec.Command("fusermount", "-u", mnt)
		cmd.Run() //nolint:errcheck
	}

	cfg := config.NewDefaultConfig()
	cfg.Merge(&config.ConfigOverride{
		Debug:  util.Pointer(debug),
		LogLvl: util.Pointer(logLvl),
	})

	fs := core.NewFilesystem(core.Options{
		DefaultFileMode: cfg.DefaultFileMode,
		DefaultDirMode:  cfg.DefaultDirMode,
		NameMax:         cfg.NameMax,
	})

	if seedPath != "" {
		if err := manifest.Load(seedPath, fs, cfg.DefaultFileMode, cfg.DefaultDirMode); err != nil {
			logger.Fatal().Err(err).Str("seed", seedPath).Msg("failed to load seed manifest")
		}
		logger.Info().Str("seed", seedPath).Msg("seed manifest applied")
	}

	srv, err := fuse.Mount(fs, mnt, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create fuse server")
	}
	if err := srv.Serve(); err != nil {
		logger.Fatal().Err(err).Msg("failed to mount filesystem")
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	logger.Info().Str("mountpoint", mnt).Str("session", srv.SessionID()).Msg("filesystem mounted successfully")

	sig := <-signalChan
	logger.Info().Str("signal", sig.String()).Msg("received signal, unmounting filesystem")

	if err := srv.Unmount(); err != nil {
		logger.Error().Err(err).Msg("failed to unmount filesystem")
	} else {
		logger.Info().Msg("filesystem unmounted successfully")
	}

	fs.Destroy(logger)
}
