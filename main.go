package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
)

var errUsage = errors.New("usage: animedit [-project dir] [-v] <command> [args]")

type cli struct {
	cfg    Config
	out    io.Writer
	errOut io.Writer
	logger *log.Logger
}

type command struct {
	usage string
	run   func(c *cli, args []string) error
}

var commands = map[string]command{
	"new":    {usage: "new <dir>", run: (*cli).newProject},
	"info":   {usage: "info <sheet>", run: (*cli).info},
	"image":  {usage: "image <sheet> <image>", run: (*cli).image},
	"tiles":  {usage: "tiles <sheet> <width> <height>", run: (*cli).tiles},
	"fps":    {usage: "fps <sheet> <rate>", run: (*cli).fps},
	"state":  {usage: "state add|rm|mv|rate <sheet> ...", run: (*cli).state},
	"frame":  {usage: "frame add|rm|move <sheet> <state> ...", run: (*cli).frame},
	"pack":   {usage: "pack [-manifest file] [-out file]", run: (*cli).pack},
	"export": {usage: "export [-out file]", run: (*cli).export},
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		os.Exit(1)
	}
}

func run(args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("animedit", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() { printUsage(errOut) }

	cfg, err := parseConfig(fs, args)

	if err != nil {
		return err
	}

	rest := fs.Args()

	if len(rest) == 0 {
		printUsage(errOut)
		return errUsage
	}

	cmd, ok := commands[rest[0]]

	if !ok {
		printUsage(errOut)
		return fmt.Errorf("unknown command '%s'", rest[0])
	}

	c := &cli{
		cfg:    cfg,
		out:    out,
		errOut: errOut,
		logger: cfg.logger(errOut),
	}

	if err := cmd.run(c, rest[1:]); err != nil {
		return fmt.Errorf("%s: %w", rest[0], err)
	}

	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, errUsage.Error())
	fmt.Fprintln(w, "\nCommands:")

	names := make([]string, 0, len(commands))

	for name := range commands {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}
