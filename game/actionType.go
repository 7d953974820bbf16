package game

// ActionType represents the type of action a player can perform on its turn.
type ActionType int

const (
	BuildStationAction ActionType = iota
	BuildMineAction
	StrikeAction
	PassAction
)

func (a ActionType) String() string {
	switch a {
	case BuildStationAction:
		return "station"
	case BuildMineAction:
		return "mine"
	case StrikeAction:
		return "strike"
	case PassAction:
		return "pass"
	}
	return "unknown"
}
