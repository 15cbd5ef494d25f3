package main

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/bodgit/deepzoom"
	"github.com/bodgit/deepzoom/config"
	"github.com/bodgit/deepzoom/raster"
	"github.com/bodgit/deepzoom/sink"
	"github.com/dustin/go-humanize"
	"github.com/natefinch/lumberjack"
	"github.com/urfave/cli/v2"
)

const defaultDB = "deepzoom.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// settings is the config file merged with any flags set on the command line.
type settings struct {
	cfg    *config.Config
	logger *log.Logger
}

func load(c *cli.Context) (*settings, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("db") || cfg.DB == "" {
		cfg.DB = c.String("db")
	}
	if c.Bool("verbose") {
		cfg.Log.Verbose = true
	}
	if c.IsSet("log-file") {
		cfg.Log.File = c.String("log-file")
	}

	var writers []io.Writer
	if cfg.Log.Verbose {
		writers = append(writers, os.Stderr)
	}
	if cfg.Log.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSize, // megabytes
			MaxBackups: cfg.Log.MaxBackups,
		})
	}

	logger := log.New(ioutil.Discard, "", 0)
	switch len(writers) {
	case 0:
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}
	if cfg.Log.File != "" {
		logger.SetFlags(log.LstdFlags)
	}

	return &settings{cfg: cfg, logger: logger}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func tile(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	file := c.Args().First()

	s, err := load(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	cfg := s.cfg

	for name, dst := range map[string]*int{
		"tile-size": &cfg.Tile.Size,
		"overlap":   &cfg.Tile.Overlap,
		"workers":   &cfg.Tile.Workers,
	} {
		if c.IsSet(name) {
			*dst = c.Int(name)
		}
	}
	for name, dst := range map[string]*string{
		"name":   &cfg.Tile.Name,
		"output": &cfg.Tile.Output,
		"filter": &cfg.Tile.Filter,
	} {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	if c.Bool("viewer") {
		cfg.Tile.Viewer = true
	}
	if cfg.Tile.Name == "" {
		cfg.Tile.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}

	filter, err := raster.ParseFilter(cfg.Tile.Filter)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	ctx, cancel := signalContext()
	defer cancel()

	out, err := sink.Open(ctx, cfg.Tile.Output)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer out.Close()

	t, err := deepzoom.New(out, s.logger, deepzoom.Options{
		Name:     cfg.Tile.Name,
		TileSize: cfg.Tile.Size,
		Overlap:  cfg.Tile.Overlap,
		Workers:  cfg.Tile.Workers,
		Filter:   filter,
	})
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	catalog, err := deepzoom.NewCatalog(cfg.DB)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer catalog.Close()

	previous, err := catalog.Find(cfg.Tile.Name)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	res, err := t.Generate(ctx, file)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if previous != nil && previous.SHA1 == res.SHA1 {
		s.logger.Printf("%q regenerated from unchanged source\n", cfg.Tile.Name)
	}

	if cfg.Tile.Viewer {
		if err := deepzoom.WriteViewer(ctx, out, cfg.Tile.Name, res.Background()); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	if err := catalog.Record(file, res); err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Printf("%s: %d levels, %d tiles, %s\n", cfg.Tile.Name, len(res.Levels), res.Tiles, humanize.Bytes(uint64(res.Bytes)))

	return nil
}

func fetch(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	s, err := load(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	ctx, cancel := signalContext()
	defer cancel()

	if _, err := deepzoom.Fetch(ctx, nil, s.logger, c.Args().Get(0), c.Args().Get(1)); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func serve(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	s, err := load(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	cfg := s.cfg

	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}
	if c.IsSet("origin") {
		cfg.Server.Origins = c.StringSlice("origin")
	}

	ctx, cancel := signalContext()
	defer cancel()

	h := deepzoom.NewHandler(c.Args().First(), cfg.Server.Origins)
	if err := deepzoom.Serve(ctx, s.logger, ":"+strconv.Itoa(cfg.Server.Port), h); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func list(c *cli.Context) error {
	s, err := load(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	catalog, err := deepzoom.NewCatalog(s.cfg.DB)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer catalog.Close()

	entries, err := catalog.List()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tTILE\tLEVELS\tTILES\tBYTES\tCREATED\tSOURCE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%dx%d\t%d+%d\t%d\t%d\t%s\t%s\t%s\n", e.Name, e.Width, e.Height, e.TileSize, e.Overlap, e.Levels, e.Tiles, humanize.Bytes(uint64(e.Bytes)), humanize.Time(e.Created), e.Source)
	}

	return w.Flush()
}

func main() {
	app := cli.NewApp()

	app.Name = "deepzoom"
	app.Usage = "Deep Zoom Image tile pyramid generator"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"DEEPZOOM_CONFIG"},
			Usage:   "path to TOML or YAML configuration file",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"DEEPZOOM_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.StringFlag{
			Name:    "log-file",
			EnvVars: []string{"DEEPZOOM_LOG_FILE"},
			Usage:   "write log to rotated `FILE`",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "tile",
			Usage:       "Generate a tile pyramid and descriptor",
			Description: "Tiles are written as NAME_files/LEVEL/COL_ROW.jpg with level 0 holding the 1x1 image, followed by NAME.dzi.",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "name",
					Usage: "base name of the pyramid, defaults to the source file name",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					EnvVars: []string{"DEEPZOOM_OUTPUT"},
					Value:   ".",
					Usage:   "output directory or bucket URL",
				},
				&cli.IntFlag{
					Name:  "tile-size",
					Value: 256,
					Usage: "tile edge length in pixels",
				},
				&cli.IntFlag{
					Name:  "overlap",
					Usage: "pixels shared between adjacent tiles",
				},
				&cli.IntFlag{
					Name:  "workers",
					Usage: "number of tiles to encode at once, defaults to the number of CPUs",
				},
				&cli.StringFlag{
					Name:  "filter",
					Value: raster.CatmullRom.String(),
					Usage: "resampling filter, catmullrom or bilinear",
				},
				&cli.BoolFlag{
					Name:  "viewer",
					Usage: "also write an OpenSeadragon viewer page",
				},
			},
			Action: tile,
		},
		{
			Name:      "fetch",
			Usage:     "Download a source image unless it already exists",
			ArgsUsage: "URL FILE",
			Action:    fetch,
		},
		{
			Name:      "serve",
			Usage:     "Serve a directory of pyramids over HTTP",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "port",
					Aliases: []string{"p"},
					EnvVars: []string{"PORT"},
					Value:   deepzoom.DefaultPort,
					Usage:   "port to listen on",
				},
				&cli.StringSliceFlag{
					Name:  "origin",
					Usage: "allow cross-origin requests from `ORIGIN`, may be repeated",
				},
			},
			Action: serve,
		},
		{
			Name:   "list",
			Usage:  "List generated pyramids",
			Action: list,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
