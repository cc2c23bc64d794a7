// Package cli contains the pathdecider command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	generalFlagConfig = "config"
	generalFlagDebug  = "debug"

	decideFlagScenario = "scenario"
	decideFlagFormat   = "format"
	decideFlagRecord   = "record"
	decideFlagLogFile  = "log-file"
	decideFlagPlot     = "plot"

	historyFlagCycle = "cycle"
)

// NewApp returns the pathdecider CLI writing to out and errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "pathdecider",
		Usage:           "run the static obstacle path decider on recorded scenarios",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "decide",
				Usage:     "decide every static obstacle of a scenario",
				UsageText: "pathdecider decide --scenario <file> [other options]",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     decideFlagScenario,
						Aliases:  []string{"s"},
						Required: true,
						Usage:    "scenario json `FILE`",
					},
					&cli.PathFlag{
						Name:    generalFlagConfig,
						Aliases: []string{"c"},
						Usage:   "load configuration from `FILE`, defaults are used otherwise",
					},
					&cli.StringFlag{
						Name:  decideFlagFormat,
						Value: formatTable,
						Usage: "output format: table or json",
					},
					&cli.PathFlag{
						Name:  decideFlagRecord,
						Usage: "append the decisions to the sqlite decision log at `FILE`",
					},
					&cli.PathFlag{
						Name:  decideFlagLogFile,
						Usage: "also write logs to a rotated `FILE`",
					},
					&cli.PathFlag{
						Name:  decideFlagPlot,
						Usage: "draw the scenario and decisions to an image `FILE` (.png, .svg, .pdf)",
					},
				},
				Action: DecideAction,
			},
			{
				Name:  "validate",
				Usage: "check a configuration file",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     generalFlagConfig,
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "configuration `FILE`",
					},
				},
				Action: ValidateAction,
			},
			{
				Name:  "history",
				Usage: "show decisions stored in a decision log",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     decideFlagRecord,
						Required: true,
						Usage:    "sqlite decision log `FILE`",
					},
					&cli.StringFlag{
						Name:  historyFlagCycle,
						Usage: "only show this cycle id",
					},
					&cli.StringFlag{
						Name:  decideFlagFormat,
						Value: formatTable,
						Usage: "output format: table or json",
					},
				},
				Action: HistoryAction,
			},
		},
	}
}
