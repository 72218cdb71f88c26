package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "rational"
	app.Usage = "Exact arithmetic on int64 fractions."
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "rational.toml",
			Usage:   "the TOML configuration file, defaults are used when it is missing",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "the output `FORMAT`, fraction or decimal",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored output",
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:   "demo",
			Usage:  "Evaluate a few sample expressions",
			Action: demoCmd,
		},
		{
			Name:      "eval",
			Aliases:   []string{"e"},
			Usage:     "Evaluate a binary expression, either operand may be an integer",
			ArgsUsage: "A OP B",
			Action:    evalCmd,
		},
		{
			Name:      "cmp",
			Usage:     "Compare two rationals",
			ArgsUsage: "A B",
			Action:    cmpCmd,
		},
		{
			Name:      "exif",
			Usage:     "List the rational tags of a TIFF or JPEG file",
			ArgsUsage: "FILE",
			Action:    exifCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "engine",
					Aliases: []string{"e"},
					Usage:   "the EXIF parser, native, goexif or dsoprea",
				},
			},
		},
	}
	return app
}
