package nflverse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/internal/iocache"
	"github.com/huangsam/gridcache/internal/parquet"
	"github.com/huangsam/gridcache/schema"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidSeason is wrapped when a requested season is not published.
var ErrInvalidSeason = errors.New("invalid season")

// Release file locations relative to the base URL.
const (
	weeklyPathFormat = "/player_stats/player_stats_%d.parquet"
	pbpPathFormat    = "/pbp/play_by_play_%d.parquet"
	draftPath        = "/draft_picks/draft_picks.parquet"
)

// FetchWeekly downloads one player_stats file per season.
func (c *Client) FetchWeekly(ctx context.Context, seasons []int) ([]schema.WeeklyStat, error) {
	if err := c.validateSeasons(schema.WeeklyKind, seasons); err != nil {
		return nil, err
	}
	return fetchSeasons[schema.WeeklyStat](ctx, c, schema.WeeklyKind, seasons, weeklyPathFormat)
}

// FetchPlayByPlay downloads one play_by_play file per season.
func (c *Client) FetchPlayByPlay(ctx context.Context, seasons []int) ([]schema.Play, error) {
	if err := c.validateSeasons(schema.PlayByPlayKind, seasons); err != nil {
		return nil, err
	}
	return fetchSeasons[schema.Play](ctx, c, schema.PlayByPlayKind, seasons, pbpPathFormat)
}

// FetchDraft downloads the all-years draft file and keeps the requested seasons.
func (c *Client) FetchDraft(ctx context.Context, seasons []int) ([]schema.DraftPick, error) {
	if err := c.validateSeasons(schema.DraftKind, seasons); err != nil {
		return nil, err
	}
	picks, err := download[schema.DraftPick](ctx, c, draftPath)
	if err != nil {
		return nil, &iocache.FetchError{Kind: string(schema.DraftKind), Periods: slices.Clone(seasons), Err: err}
	}
	return slices.DeleteFunc(picks, func(p schema.DraftPick) bool {
		return !slices.Contains(seasons, int(p.Season))
	}), nil
}

// validateSeasons rejects empty requests and seasons outside the published range.
func (c *Client) validateSeasons(kind schema.DatasetKind, seasons []int) error {
	if len(seasons) == 0 {
		return &iocache.FetchError{Kind: string(kind), Err: iocache.ErrNoPeriods}
	}
	first, last := schema.EarliestSeason(kind), c.now().Year()
	for _, s := range seasons {
		if s < first || s > last {
			return &iocache.FetchError{
				Kind:    string(kind),
				Periods: slices.Clone(seasons),
				Err:     fmt.Errorf("%w %d: must be between %d and %d", ErrInvalidSeason, s, first, last),
			}
		}
	}
	return nil
}

// fetchSeasons downloads the per-season files concurrently and concatenates
// them in ascending season order.
func fetchSeasons[T any](ctx context.Context, c *Client, kind schema.DatasetKind, seasons []int, pathFormat string) ([]T, error) {
	ordered := slices.Sorted(slices.Values(seasons))
	ordered = slices.Compact(ordered)

	parts := make([][]T, len(ordered))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, season := range ordered {
		g.Go(func() error {
			rows, err := download[T](gctx, c, fmt.Sprintf(pathFormat, season))
			if err != nil {
				return fmt.Errorf("season %d: %w", season, err)
			}
			parts[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &iocache.FetchError{Kind: string(kind), Periods: slices.Clone(seasons), Err: err}
	}
	return slices.Concat(parts...), nil
}

// download fetches one release file and decodes it into T.
func download[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	contract.Logger.Debug().Str("path", path).Msg("Downloading release file")

	resp, err := c.resty.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to download %s: http %d", path, resp.StatusCode())
	}

	body := resp.Body()
	rows, err := parquet.ReadRows[T](bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	contract.Logger.Debug().Str("path", path).Int("rows", len(rows)).Dur("elapsed", resp.Time()).Msg("Downloaded release file")
	return rows, nil
}
