package http

// ConfigResponse describes the rules every round on this server is played with.
type ConfigResponse struct {
	BoardWidth       int  `json:"boardWidth"`
	BoardHeight      int  `json:"boardHeight"`
	MeeplesPerPlayer int  `json:"meeplesPerPlayer"`
	Shuffle          bool `json:"shuffle"`
	MinPlayers       int  `json:"minPlayers"`
	MaxPlayers       int  `json:"maxPlayers"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
