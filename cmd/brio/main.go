package main

import (
	"fmt"
	"io"
	"os"

	"github.com/midbel/brio"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "brio"
	app.Usage = "a small scripting language"
	app.ArgsUsage = "<file>"

	app.Commands = []cli.Command{
		{
			Name:      "scan",
			Usage:     "print the token stream of a source file",
			ArgsUsage: "<file>",
			Action: func(c *cli.Context) error {
				return withFile(c, scanFile)
			},
		},
		{
			Name:      "check",
			Usage:     "parse a source file and report syntax errors without running it",
			ArgsUsage: "<file>",
			Action: func(c *cli.Context) error {
				return withFile(c, checkFile)
			},
		},
	}
	app.Action = func(c *cli.Context) error {
		if !c.Args().Present() {
			cli.ShowAppHelp(c)
			return fmt.Errorf("missing source file")
		}
		return withFile(c, runFile)
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withFile(c *cli.Context, fn func(io.Reader) error) error {
	r, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(r)
}

func runFile(r io.Reader) error {
	return brio.Run(r)
}

func scanFile(r io.Reader) error {
	scan := brio.Scan(r)
	for {
		tok := scan.Scan()
		if tok.Type == brio.EOF {
			break
		}
		fmt.Println(tok)
	}
	return nil
}

func checkFile(r io.Reader) error {
	_, err := brio.Parse(r)
	return err
}
