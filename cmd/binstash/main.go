// Command binstash is a thin CLI over a disk-backed binary cache. Each
// invocation recovers the cache directory first, so entries persist
// across runs.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/binstash/binstash/cache"
	"github.com/binstash/binstash/compress"
	"github.com/binstash/binstash/strategy"
)

// settings carries the cache configuration. Environment variables supply
// defaults; flags override.
type settings struct {
	Dir        string `env:"BINSTASH_DIR" envDefault:"cache"`
	ByteLimit  int    `env:"BINSTASH_BYTE_LIMIT"`
	EntryLimit int    `env:"BINSTASH_ENTRY_LIMIT"`
	Codec      string `env:"BINSTASH_CODEC" envDefault:"none"`
	Level      int    `env:"BINSTASH_LEVEL" envDefault:"-1"`
	Verbose    bool   `env:"BINSTASH_VERBOSE"`
}

func newCompressor(s settings) (compress.Compressor, error) {
	level := compress.Level(s.Level)
	switch s.Codec {
	case "none", "":
		return compress.Noop{}, nil
	case "zstd":
		return compress.NewZstd(level)
	case "gzip":
		return compress.NewGzip(level), nil
	case "brotli":
		return compress.NewBrotli(level), nil
	default:
		return nil, fmt.Errorf("unknown codec %q (want none, zstd, gzip or brotli)", s.Codec)
	}
}

func newLogger(s settings) (*zap.Logger, error) {
	if s.Verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openCache builds a disk-backed cache over the configured directory and
// recovers whatever entries are already there.
func openCache(s settings) (*cache.Cache[string], *strategy.Disk, int, error) {
	log, err := newLogger(s)
	if err != nil {
		return nil, nil, 0, err
	}
	codec, err := newCompressor(s)
	if err != nil {
		return nil, nil, 0, err
	}
	disk := strategy.NewDisk(s.Dir, s.ByteLimit, s.EntryLimit, strategy.WithDiskLogger(log))
	c, err := cache.New[string](disk,
		cache.WithCompressor[string](codec),
		cache.WithLogger[string](log),
	)
	if err != nil {
		return nil, nil, 0, err
	}
	recovered, err := c.Recover(func(name string) (string, bool) { return name, true })
	if err != nil {
		return nil, nil, 0, err
	}
	return c, disk, recovered, nil
}

func main() {
	var cfg settings
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:           "binstash",
		Short:         "A disk-backed binary object cache",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.Dir, "dir", cfg.Dir, "cache directory")
	root.PersistentFlags().IntVar(&cfg.ByteLimit, "byte-limit", cfg.ByteLimit, "byte budget, 0 for unlimited")
	root.PersistentFlags().IntVar(&cfg.EntryLimit, "entry-limit", cfg.EntryLimit, "entry budget, 0 for unlimited")
	root.PersistentFlags().StringVar(&cfg.Codec, "codec", cfg.Codec, "compression codec: none, zstd, gzip or brotli")
	root.PersistentFlags().IntVar(&cfg.Level, "level", cfg.Level, "compression level, negative for the codec default")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "verbose logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "put <key> [file]",
			Short: "Store a payload from a file or stdin",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				var payload []byte
				var err error
				if len(args) == 2 {
					payload, err = os.ReadFile(args[1])
				} else {
					payload, err = io.ReadAll(cmd.InOrStdin())
				}
				if err != nil {
					return err
				}
				c, _, _, err := openCache(cfg)
				if err != nil {
					return err
				}
				return c.Put(args[0], payload)
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Write a stored payload to stdout",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, _, _, err := openCache(cfg)
				if err != nil {
					return err
				}
				data, err := c.Get(args[0])
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "rm <key>",
			Short: "Remove a stored payload",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, _, _, err := openCache(cfg)
				if err != nil {
					return err
				}
				return c.Delete(args[0])
			},
		},
		&cobra.Command{
			Use:   "recover",
			Short: "Rebuild the cache index from the directory and report the count",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, _, recovered, err := openCache(cfg)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "recovered %d entries\n", recovered)
				return nil
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show entry and byte counts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, disk, _, err := openCache(cfg)
				if err != nil {
					return err
				}
				limits := disk.Limits()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "dir:     %s\n", disk.Dir())
				fmt.Fprintf(out, "entries: %d\n", limits.EntryCount())
				fmt.Fprintf(out, "bytes:   %d\n", limits.ByteCount())
				if capacity, ok := disk.Capacity(); ok {
					fmt.Fprintf(out, "budget:  %d (%.1f%% used)\n", capacity.Total, capacity.UtilizationPercent())
				}
				return nil
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
