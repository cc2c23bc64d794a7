package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"

	"go.viam.com/pathdecider/config"
	"go.viam.com/pathdecider/decisionlog"
	"go.viam.com/pathdecider/logging"
	"go.viam.com/pathdecider/pathdecider"
)

// DecideAction is the corresponding action for 'decide'.
func DecideAction(c *cli.Context) error {
	cfg, err := loadConfig(c.Path(generalFlagConfig))
	if err != nil {
		return err
	}

	logger, closeLogs := newLogger(c, cfg)
	defer closeLogs()

	scenario, err := readScenario(c.Path(decideFlagScenario))
	if err != nil {
		return err
	}
	path, refLine, adc, ledger, err := scenario.build(cfg.Vehicle)
	if err != nil {
		return errors.Wrap(err, "invalid scenario")
	}

	decider, err := pathdecider.NewDecider(cfg.Decider, cfg.Vehicle, logger.Sublogger("path_decider"))
	if err != nil {
		return err
	}

	cycleID := decisionlog.NewCycleID()
	logger.Debugw("running path decider", "cycle_id", cycleID, "obstacles", len(scenario.Obstacles))
	if err := decider.Execute(&pathdecider.ReferenceLineInfo{
		Path:          path,
		ReferenceLine: refLine,
		AdcSLBoundary: adc,
		PathDecision:  ledger,
	}); err != nil {
		return err
	}

	if dbPath := c.Path(decideFlagRecord); dbPath != "" {
		recorder, err := decisionlog.NewRecorder(dbPath)
		if err != nil {
			return err
		}
		defer goutils.UncheckedErrorFunc(recorder.Close)
		if err := recorder.Record(cycleID, ledger); err != nil {
			return err
		}
		infof(c.App.ErrWriter, "recorded cycle %s to %s", cycleID, dbPath)
	}

	if plotFile := c.Path(decideFlagPlot); plotFile != "" {
		if err := plotDecisions(plotFile, path, adc, ledger.Entries()); err != nil {
			return err
		}
	}

	return writeDecisions(c.App.Writer, c.String(decideFlagFormat), cycleOutput{
		CycleID:   cycleID,
		Decisions: entryOutputs(ledger.Entries()),
	})
}

// ValidateAction is the corresponding action for 'validate'.
func ValidateAction(c *cli.Context) error {
	cfg, err := config.Read(c.Path(generalFlagConfig))
	if err != nil {
		return err
	}
	if cfg.Logging.File != "" {
		warningf(c.App.ErrWriter, "logging.file is only used by 'decide'")
	}
	printf(c.App.Writer, "%s is valid", cfg.ConfigFilePath)
	return nil
}

// HistoryAction is the corresponding action for 'history'.
func HistoryAction(c *cli.Context) error {
	recorder, err := decisionlog.NewRecorder(c.Path(decideFlagRecord))
	if err != nil {
		return err
	}
	defer goutils.UncheckedErrorFunc(recorder.Close)

	cycles := []string{c.String(historyFlagCycle)}
	if cycles[0] == "" {
		if cycles, err = recorder.Cycles(); err != nil {
			return err
		}
	}
	if len(cycles) == 0 {
		warningf(c.App.ErrWriter, "no cycles recorded")
		return nil
	}

	for _, cycleID := range cycles {
		rows, err := recorder.Decisions(cycleID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return errors.Errorf("no decisions recorded for cycle %q", cycleID)
		}
		if err := writeDecisions(c.App.Writer, c.String(decideFlagFormat), cycleOutput{
			CycleID:   cycleID,
			Decisions: rowOutputs(rows),
		}); err != nil {
			return err
		}
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Read(path)
}

// newLogger logs to the error writer and, when configured, to a rotated file. The returned
// function flushes and closes the file.
func newLogger(c *cli.Context, cfg *config.Config) (logging.Logger, func()) {
	logger := logging.NewBlankLogger("pathdecider")
	logger.SetLevel(cfg.Logging.Level)
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))

	config.InitLoggingSettings(logger, c.Bool(generalFlagDebug))
	config.UpdateFileConfigDebug(cfg.Logging.Level == logging.DEBUG)

	logFile := c.Path(decideFlagLogFile)
	if logFile == "" {
		logFile = cfg.Logging.File
	}
	if logFile == "" {
		return logger, func() {}
	}

	appender, closer := logging.NewFileAppender(logFile)
	logger.AddAppender(appender)
	return logger, func() {
		goutils.UncheckedError(logger.Sync())
		goutils.UncheckedError(closer.Close())
	}
}
