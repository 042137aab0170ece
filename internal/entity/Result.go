package entity

const UnknownUserName = "Unknown User"

type Voter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OptionResult struct {
	Option string  `json:"option"`
	Count  int     `json:"count"`
	Users  []Voter `json:"users"`
}

type PollResult struct {
	PollID     string         `json:"pollId"`
	Question   string         `json:"question"`
	Options    []OptionResult `json:"options"`
	TotalVotes int            `json:"totalVotes"`
}
