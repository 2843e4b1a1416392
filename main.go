package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/alecthomas/kong"

	"github.com/raff/compatsound/config"
	"github.com/raff/compatsound/logging"
	"github.com/raff/compatsound/platform"
	"github.com/raff/compatsound/player"
)

var Version = "dev"

type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`
	Debug   bool             `help:"Enable debug logging to file" short:"d"`
	LogFile string           `help:"Log to this file instead of the state directory"`
	Config  string           `help:"Sound configuration file" short:"c" default:"sounds.yaml" type:"path"`
	EnvFile []string         `help:"Environment files with COMPATSOUND_ overrides" default:".env"`

	Play  PlayCmd  `cmd:"" help:"Play sprites by name"`
	Board BoardCmd `cmd:"" help:"Interactive soundboard" default:"1"`
	Check CheckCmd `cmd:"" help:"Validate the configuration and show the selected backend"`

	logger *slog.Logger `kong:"-"`
}

// AfterApply initializes logging once flags are parsed.
func (c *CLI) AfterApply() error {
	logger, path, err := logging.Initialize(c.Debug, c.LogFile)
	if err != nil {
		return err
	}
	if path != "" && c.Debug {
		fmt.Fprintf(os.Stderr, "Debug mode enabled. Logs: %s\n", path)
	}

	c.logger = logger
	return nil
}

func (c *CLI) load() (*config.Config, player.Config, platform.Probe, error) {
	if err := config.LoadEnv(c.EnvFile...); err != nil {
		return nil, player.Config{}, platform.Probe{}, err
	}

	file, err := config.Load(c.Config)
	if err != nil {
		return nil, player.Config{}, platform.Probe{}, err
	}

	pc, err := file.Player()
	if err != nil {
		return nil, player.Config{}, platform.Probe{}, err
	}

	return file, pc, file.Probe(platform.Detect()), nil
}

type PlayCmd struct {
	Sprites []string      `arg:"" help:"Sprite names"`
	Gap     time.Duration `help:"Pause between sprites" default:"300ms"`
	Wait    time.Duration `help:"How long to wait for the last sprite" default:"1s"`
}

func (p *PlayCmd) Run(cli *CLI) error {
	_, pc, probe, err := cli.load()
	if err != nil {
		return err
	}

	sp, err := newPlayer(pc, probe, cli.logger)
	if err != nil {
		return err
	}
	defer sp.Destroy()

	for i, name := range p.Sprites {
		if i > 0 {
			time.Sleep(p.Gap)
		}

		if err := sp.PlaySprite(spriteName(name)); err != nil {
			return err
		}
	}

	time.Sleep(p.Wait)
	return nil
}

type BoardCmd struct {
	GUI bool `help:"Window UI instead of terminal UI"`
}

func (b *BoardCmd) Run(cli *CLI) error {
	file, pc, probe, err := cli.load()
	if err != nil {
		return err
	}

	sp, err := newPlayer(pc, probe, cli.logger)
	if err != nil {
		return err
	}
	defer sp.Destroy()

	board := &soundboard{
		player: sp,
		names:  file.SpriteNames(),
		log:    cli.logger,
	}

	if b.GUI || !platform.HasTerm(runtime.GOOS) {
		return gioBoard(board)
	}

	return termBoard(board)
}

type CheckCmd struct{}

func (c *CheckCmd) Run(cli *CLI) error {
	file, pc, probe, err := cli.load()
	if err != nil {
		return err
	}

	fmt.Printf("platform: %v (hybrid=%v media=%v)\n", probe.Name, probe.Hybrid, probe.Media)
	fmt.Printf("backend:  %v\n", player.Select(pc, probe, true))
	fmt.Printf("volume:   %v\n", pc.Volume)

	for _, name := range file.SpriteNames() {
		s, ok := pc.Sprites[name]
		switch {
		case ok && pc.NativeSprites[name] != "":
			fmt.Printf("  %-12s %8v %8v  %v\n", name, s.Start, s.Duration, pc.NativeSprites[name])
		case ok:
			fmt.Printf("  %-12s %8v %8v\n", name, s.Start, s.Duration)
		default:
			fmt.Printf("  %-12s %8s %8s  %v\n", name, "-", "-", pc.NativeSprites[name])
		}
	}

	return nil
}

func main() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("compatsound"),
		kong.Description("Play sound sprites with the best audio backend available"),
		kong.Vars{"version": "compatsound " + Version},
		kong.UsageOnError(),
		kong.Bind(&cli),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
