// Command thethacore parses ThethaCore configuration files.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"

	thethacore "gopkg.in/thethacore.v1"
)

func main() {
	app := &cli.App{
		Name:  "thethacore",
		Usage: "parse and inspect ThethaCore configuration files",
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "parse a file and print the document tree",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "section",
						Usage: "print only the section at `PATH`",
					},
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "dump the document tree with internal structure",
					},
				},
				Action: parseAction,
			},
			{
				Name:      "check",
				Usage:     "parse files and report errors without printing the result",
				ArgsUsage: "FILE...",
				Action:    checkAction,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "thethacore:", err)
		os.Exit(1)
	}
}

func parseAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("parse: exactly one FILE argument required", 1)
	}
	path := c.Args().First()
	doc, err := thethacore.ParseFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if c.Bool("debug") {
		repr.Println(doc)
		return nil
	}
	if sect := c.String("section"); sect != "" {
		s, ok := doc.Section(sect)
		if !ok {
			return fmt.Errorf("%s: no section %q", path, sect)
		}
		printSection(s)
		return nil
	}
	for _, path := range doc.Sections() {
		s, _ := doc.Section(path)
		printSection(s)
	}
	return nil
}

func printSection(s *thethacore.Section) {
	fmt.Printf("<%s>\n", s.Path())
	for _, key := range s.Keys() {
		v, _ := s.Get(key)
		fmt.Printf("%s == %s\n", key, v)
	}
}

func checkAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("check: at least one FILE argument required", 1)
	}
	failed := false
	for _, path := range c.Args().Slice() {
		if _, err := thethacore.ParseFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}
	if failed {
		return cli.Exit("", 1)
	}
	return nil
}
