package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// statPrecision is the number of decimals shown for float columns.
const statPrecision = 1

// WriteDatasetResult outputs a satisfied dataset request.
func WriteDatasetResult(result schema.DatasetResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDatasetCSV(w, result)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDatasetText(w, result, cfg)
		}, "Wrote summary")
	}
}

// datasetTable is the preview or export form of one kind's rows.
type datasetTable struct {
	header []string
	rows   [][]string
}

// tabulate converts the typed rows in result to strings. A positive limit
// caps the number of rows; descWidth truncates play descriptions when positive.
func tabulate(result schema.DatasetResult, limit, descWidth int) (datasetTable, error) {
	capped := func(n int) int {
		if limit > 0 && n > limit {
			return limit
		}
		return n
	}

	switch rows := result.Rows.(type) {
	case []schema.WeeklyStat:
		t := datasetTable{header: []string{"season", "week", "player_name", "position", "recent_team", "passing_yards", "rushing_yards", "receiving_yards", "fantasy_points"}}
		for _, r := range rows[:capped(len(rows))] {
			t.rows = append(t.rows, []string{
				formatInt(r.Season), formatInt(r.Week), r.PlayerName, r.Position, r.RecentTeam,
				formatStat(r.PassingYards), formatStat(r.RushingYards), formatStat(r.ReceivingYards), formatStat(r.FantasyPoints),
			})
		}
		return t, nil
	case []schema.Play:
		t := datasetTable{header: []string{"game_id", "posteam", "defteam", "down", "ydstogo", "play_type", "yards_gained", "epa", "desc"}}
		for _, r := range rows[:capped(len(rows))] {
			desc := r.Desc
			if descWidth > 0 {
				desc = contract.TruncateText(desc, descWidth)
			}
			t.rows = append(t.rows, []string{
				r.GameID, r.PosTeam, r.DefTeam, formatStat(r.Down), formatStat(r.YardsToGo), r.PlayType,
				formatStat(r.YardsGained), formatStat(r.EPA), desc,
			})
		}
		return t, nil
	case []schema.DraftPick:
		t := datasetTable{header: []string{"season", "round", "pick", "team", "pfr_player_name", "position", "college"}}
		for _, r := range rows[:capped(len(rows))] {
			t.rows = append(t.rows, []string{
				formatInt(r.Season), formatInt(r.Round), formatInt(r.Pick), r.Team, r.PlayerName, r.Position, r.College,
			})
		}
		return t, nil
	default:
		return datasetTable{}, fmt.Errorf("unsupported rows for %s: %T", result.Kind, result.Rows)
	}
}

func writeDatasetText(w io.Writer, result schema.DatasetResult, cfg *contract.Config) error {
	source := "downloaded"
	if result.Source == schema.CacheSource {
		source = "from cache"
	}
	if _, err := fmt.Fprintf(w, "%d %s rows %s (%s)\n",
		result.RowCount, result.Kind.DisplayName(), source, result.Key); err != nil {
		return err
	}
	if cfg.PreviewRows == 0 || result.RowCount == 0 {
		return nil
	}

	// The eight fixed play columns take roughly 90 columns with borders
	t, err := tabulate(result, cfg.PreviewRows, getMaxColumnWidth(cfg, 90))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header(t.header)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(t.rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if result.RowCount > len(t.rows) {
		_, err = fmt.Fprintf(w, "... %d more rows\n", result.RowCount-len(t.rows))
	}
	return err
}

func writeDatasetCSV(w io.Writer, result schema.DatasetResult) error {
	t, err := tabulate(result, 0, 0)
	if err != nil {
		return err
	}
	return writeCSVWithHeader(w, t.header, func(cw *csv.Writer) error {
		return cw.WriteAll(t.rows)
	})
}
