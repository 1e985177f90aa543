package web

type PaginationData struct {
	BasePath   string
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

type SessionItem struct {
	ID       string
	Game     string
	Gameplay string
	Rounds   int
	Players  int
	PlayedAt string
}

type GameItem struct {
	Name            string
	Emoji           string
	Gameplay        string
	CalculationMode string
	PointsPerRound  string
	BuiltIn         bool
}
