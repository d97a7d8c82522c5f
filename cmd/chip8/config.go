package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config defines program configuration.
type Config struct {
	ROM         string // Path to the program file to load.
	Frequency   int    // Instructions executed per second.
	ScaleFactor int    // Amount by which each pixel is scaled.
	Fullscreen  bool   // Run in fullscreen?
	Debug       bool   // Start paused with trace output enabled?
	PrintTrace  bool   // Print instruction trace data?
	Mute        bool   // Disable audio output?
	Seed        int64  // Random seed for RND. Zero picks one from the current time.
	Foreground  color  // Color of lit pixels.
	Background  color  // Color of unlit pixels.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Frequency = 600
	c.ScaleFactor = 10
	c.Foreground = 0xffffff
	c.Background = 0x000000

	flag.Usage = func() {
		fmt.Printf("%s [options] <rom file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.Frequency, "hz", c.Frequency, "Instructions executed per second.")
	flag.IntVar(&c.ScaleFactor, "scale", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.BoolVar(&c.Debug, "debug", c.Debug, "Start paused and print instruction traces.")
	flag.BoolVar(&c.Mute, "mute", c.Mute, "Disable sound.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Seed for the random number generator. 0 uses the current time.")
	flag.Var(&c.Foreground, "fg", "Foreground color as hex RGB.")
	flag.Var(&c.Background, "bg", "Background color as hex RGB.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if c.Frequency < 1 || c.ScaleFactor < 1 {
		fmt.Fprintln(os.Stderr, "-hz and -scale must be positive")
		os.Exit(1)
	}

	c.ROM = flag.Arg(0)
	c.PrintTrace = c.Debug
	return &c
}

// color is a 0xRRGGBB value settable from the command line.
type color uint32

func (c *color) String() string {
	return fmt.Sprintf("%06x", uint32(*c))
}

func (c *color) Set(v string) error {
	v = strings.TrimPrefix(strings.TrimPrefix(v, "#"), "0x")

	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil || len(v) != 6 {
		return errors.Errorf("invalid color %q; want RRGGBB", v)
	}

	*c = color(n)
	return nil
}
