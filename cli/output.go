package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/pathdecider/decision"
	"go.viam.com/pathdecider/decisionlog"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// decisionOutput is the json form of one ledger entry.
type decisionOutput struct {
	ID               string   `json:"id"`
	Longitudinal     string   `json:"longitudinal,omitempty"`
	Lateral          string   `json:"lateral,omitempty"`
	LongitudinalTags []string `json:"longitudinal_tags,omitempty"`
	LateralTags      []string `json:"lateral_tags,omitempty"`
}

type cycleOutput struct {
	CycleID   string           `json:"cycle_id"`
	Decisions []decisionOutput `json:"decisions"`
}

func entryOutputs(entries []decision.Entry) []decisionOutput {
	return lo.Map(entries, func(e decision.Entry, _ int) decisionOutput {
		out := decisionOutput{
			ID:               e.Obstacle.ID,
			LongitudinalTags: e.LongitudinalTags,
			LateralTags:      e.LateralTags,
		}
		if e.Longitudinal != nil {
			out.Longitudinal = e.Longitudinal.String()
		}
		if e.Lateral != nil {
			out.Lateral = e.Lateral.String()
		}
		return out
	})
}

func rowOutputs(rows []decisionlog.Row) []decisionOutput {
	return lo.Map(rows, func(r decisionlog.Row, _ int) decisionOutput {
		return decisionOutput{
			ID:               r.ObstacleID,
			Longitudinal:     r.Longitudinal,
			Lateral:          r.Lateral,
			LongitudinalTags: r.LongitudinalTags,
			LateralTags:      r.LateralTags,
		}
	})
}

func writeDecisions(w io.Writer, format string, cycle cycleOutput) error {
	switch format {
	case formatJSON:
		encoded, err := json.MarshalIndent(cycle, "", "  ")
		if err != nil {
			return err
		}
		printf(w, "%s", encoded)
		return nil
	case formatTable, "":
		printf(w, "%s", decisionTable(cycle))
		return nil
	default:
		return errors.Errorf("unknown output format %q, expected %q or %q", format, formatTable, formatJSON)
	}
}

// decisionTable renders one row per obstacle. Undecided axes are shown as "-".
func decisionTable(cycle cycleOutput) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("cycle %s", cycle.CycleID))
	t.AppendHeader(table.Row{"#", "Obstacle", "Longitudinal", "Lateral", "Tags"})
	for i, d := range cycle.Decisions {
		t.AppendRow(table.Row{
			i + 1,
			d.ID,
			orDash(d.Longitudinal),
			orDash(d.Lateral),
			strings.Join(lo.Uniq(append(append([]string(nil), d.LongitudinalTags...), d.LateralTags...)), ","),
		})
	}
	return t.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
