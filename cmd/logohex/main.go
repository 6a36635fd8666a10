package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bodgit/logohex"
	"github.com/bodgit/logohex/firmware"
	"github.com/bodgit/logohex/mono"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const defaultDB = "logohex.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func parseBase(s string) (uint16, error) {
	base, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid base address %q", s)
	}
	return uint16(base), nil
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newConverter(c *cli.Context) (*logohex.Converter, *logohex.HistoryDB, *firmware.Template, error) {
	base, err := parseBase(c.String("base"))
	if err != nil {
		return nil, nil, nil, err
	}

	mode, err := mono.ParseMode(c.String("mode"))
	if err != nil {
		return nil, nil, nil, err
	}

	tmpl, err := firmware.LoadTemplate(c.String("template"))
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "loading template %s", c.String("template"))
	}

	db, err := logohex.NewHistoryDB(c.String("db"))
	if err != nil {
		return nil, nil, nil, err
	}

	return logohex.New(
		logohex.WithBase(base),
		logohex.WithMode(mode),
		logohex.WithVerify(c.Bool("verify")),
		logohex.WithHistory(db),
		logohex.WithLogger(newLogger(c)),
	), db, tmpl, nil
}

func conversionFlags(cwd string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "template",
			Aliases:  []string{"t"},
			EnvVars:  []string{"LOGOHEX_TEMPLATE"},
			Usage:    "firmware template containing a " + firmware.Placeholder + " placeholder",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   cwd,
			Usage:   "directory to write firmware and previews to",
		},
		&cli.StringFlag{
			Name:    "base",
			EnvVars: []string{"LOGOHEX_BASE"},
			Value:   fmt.Sprintf("0x%04X", logohex.DefaultBase),
			Usage:   "address of the first logo record",
		},
		&cli.StringFlag{
			Name:  "mode",
			Value: mono.None.String(),
			Usage: "black and white reduction, one of " + strings.Join(mono.Modes(), ", "),
		},
		&cli.BoolFlag{
			Name:  "verify",
			Usage: "cross-check the records with an independent decoder",
		},
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "logohex"
	app.Usage = "Display controller boot logo firmware generator"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"LOGOHEX_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to history database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Generate firmware and preview for a logo",
			Description: "The logo must be a 128x64 GIF, JPEG or PNG image.",
			ArgsUsage:   "FILE",
			Flags:       conversionFlags(cwd),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, db, tmpl, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				o, err := conv.ConvertFile(c.Args().First(), tmpl, c.String("output"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Println(o.FirmwareFile)
				fmt.Println(o.PreviewFile)

				return nil
			},
		},
		{
			Name:        "batch",
			Usage:       "Generate firmware and previews for every logo in a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: append(conversionFlags(cwd), &cli.IntFlag{
				Name:  "workers",
				Value: logohex.DefaultWorkers,
				Usage: "number of logos converted concurrently",
			}),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, db, tmpl, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := conv.Batch(c.Args().First(), tmpl, c.String("output"), c.Int("workers")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "history",
			Usage:       "List previously generated firmware",
			Description: "",
			Action: func(c *cli.Context) error {
				db, err := logohex.NewHistoryDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				entries, err := db.Firmwares()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
				fmt.Fprintln(w, "CREATED\tBASE\tMODE\tRULE\tSHA1\tNAME")
				for _, e := range entries {
					fmt.Fprintf(w, "%s\t0x%04X\t%s\t%s\t%s\t%s\n", e.Created.Format(time.RFC3339), e.Base, e.Mode, e.Rule, e.SHA1, e.Name)
				}

				return w.Flush()
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
