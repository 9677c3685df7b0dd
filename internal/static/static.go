package static

import "time"

// Phase is the client's gameflow phase.
type Phase string

const (
	PhaseNone            Phase = "None"
	PhaseLobby           Phase = "Lobby"
	PhaseMatchmaking     Phase = "Matchmaking"
	PhaseReadyCheck      Phase = "ReadyCheck"
	PhaseChampSelect     Phase = "ChampSelect"
	PhaseInProgress      Phase = "InProgress"
	PhaseReconnect       Phase = "Reconnect"
	PhasePreEndOfGame    Phase = "PreEndOfGame"
	PhaseEndOfGame       Phase = "EndOfGame"
	PhaseWaitingForStats Phase = "WaitingForStats"
)

const (
	// PollInterval is shared by every wait in the reconciliation loop.
	PollInterval = 500 * time.Millisecond

	// MinPatchMatchRatio is the share of the previous patch's matches the
	// current patch needs before its data is trusted.
	MinPatchMatchRatio = 0.3

	// FlashSpellID is the summoner spell id of Flash.
	FlashSpellID = 4

	// DefaultRegion is the aggregate region every backend is queried for.
	DefaultRegion = "world"

	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/75.0.3770.142 Safari/537.36"
)
