package schema

// WeeklyStat is one player's box score line for a single week.
// Column names follow the nflverse player_stats release files.
type WeeklyStat struct {
	PlayerID       string  `parquet:"player_id" json:"player_id"`
	PlayerName     string  `parquet:"player_name" json:"player_name"`
	Position       string  `parquet:"position" json:"position"`
	RecentTeam     string  `parquet:"recent_team" json:"recent_team"`
	Season         int32   `parquet:"season" json:"season"`
	Week           int32   `parquet:"week" json:"week"`
	Completions    int32   `parquet:"completions" json:"completions"`
	Attempts       int32   `parquet:"attempts" json:"attempts"`
	PassingYards   float64 `parquet:"passing_yards" json:"passing_yards"`
	PassingTDs     int32   `parquet:"passing_tds" json:"passing_tds"`
	Interceptions  float64 `parquet:"interceptions" json:"interceptions"`
	PassingEPA     float64 `parquet:"passing_epa" json:"passing_epa"`
	Carries        int32   `parquet:"carries" json:"carries"`
	RushingYards   float64 `parquet:"rushing_yards" json:"rushing_yards"`
	RushingTDs     int32   `parquet:"rushing_tds" json:"rushing_tds"`
	Receptions     int32   `parquet:"receptions" json:"receptions"`
	Targets        int32   `parquet:"targets" json:"targets"`
	ReceivingYards float64 `parquet:"receiving_yards" json:"receiving_yards"`
	ReceivingTDs   int32   `parquet:"receiving_tds" json:"receiving_tds"`
	FantasyPoints  float64 `parquet:"fantasy_points" json:"fantasy_points"`
}

// Play is a single play-by-play row.
type Play struct {
	PlayID      float64 `parquet:"play_id" json:"play_id"`
	GameID      string  `parquet:"game_id" json:"game_id"`
	Season      int32   `parquet:"season" json:"season"`
	Week        int32   `parquet:"week" json:"week"`
	PosTeam     string  `parquet:"posteam" json:"posteam"`
	DefTeam     string  `parquet:"defteam" json:"defteam"`
	Down        float64 `parquet:"down" json:"down"`
	YardsToGo   float64 `parquet:"ydstogo" json:"ydstogo"`
	Yardline100 float64 `parquet:"yardline_100" json:"yardline_100"`
	PlayType    string  `parquet:"play_type" json:"play_type"`
	YardsGained float64 `parquet:"yards_gained" json:"yards_gained"`
	EPA         float64 `parquet:"epa" json:"epa"`
	WP          float64 `parquet:"wp" json:"wp"`
	Desc        string  `parquet:"desc" json:"desc"`
}

// DraftPick is one selection in an NFL draft.
type DraftPick struct {
	Season     int32   `parquet:"season" json:"season"`
	Round      int32   `parquet:"round" json:"round"`
	Pick       int32   `parquet:"pick" json:"pick"`
	Team       string  `parquet:"team" json:"team"`
	PlayerName string  `parquet:"pfr_player_name" json:"pfr_player_name"`
	Position   string  `parquet:"position" json:"position"`
	College    string  `parquet:"college" json:"college"`
	Age        float64 `parquet:"age" json:"age"`
}
