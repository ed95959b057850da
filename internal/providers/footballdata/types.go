package footballdata

// Wire types mirror the upstream payload; field names stay provider-native.

type matchesResponse struct {
	Matches []matchResponse `json:"matches"`
}

type matchResponse struct {
	ID          int             `json:"id"`
	UTCDate     string          `json:"utcDate"`
	Status      string          `json:"status"`
	Competition competitionInfo `json:"competition"`
	HomeTeam    teamResponse    `json:"homeTeam"`
	AwayTeam    teamResponse    `json:"awayTeam"`
	Score       scoreResponse   `json:"score"`
}

type competitionInfo struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Emblem string `json:"emblem"`
}

type teamResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Crest     string `json:"crest"`
}

type scoreResponse struct {
	Winner   string    `json:"winner"`
	FullTime scorePair `json:"fullTime"`
	HalfTime scorePair `json:"halfTime"`
}

type scorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
