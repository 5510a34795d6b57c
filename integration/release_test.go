//go:build basic || database

package integration

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/huangsam/gridcache/internal/parquet"
	"github.com/huangsam/gridcache/schema"
	"github.com/stretchr/testify/require"
)

// newReleaseServer serves a small draft_picks release file in the nflverse layout.
func newReleaseServer(t *testing.T) *httptest.Server {
	t.Helper()
	blob, err := parquet.EncodeRows("release", []schema.DraftPick{
		{Season: 2020, Round: 1, Pick: 1, Team: "CIN", PlayerName: "Joe Burrow", Position: "QB", College: "LSU"},
		{Season: 2020, Round: 1, Pick: 2, Team: "WAS", PlayerName: "Chase Young", Position: "DE", College: "Ohio St."},
		{Season: 2021, Round: 1, Pick: 1, Team: "JAX", PlayerName: "Trevor Lawrence", Position: "QB", College: "Clemson"},
	})
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/draft_picks/draft_picks.parquet", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(blob)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}
