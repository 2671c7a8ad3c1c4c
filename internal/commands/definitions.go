package commands

import "github.com/bwmarrin/discordgo"

const (
	CommandStart  = "start"
	CommandCancel = "cancel"
)

func GetCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:         CommandStart,
			Description:  "Start a new shift (discards the current one)",
			DMPermission: boolPtr(true),
		},
		{
			Name:         CommandCancel,
			Description:  "Close the current shift",
			DMPermission: boolPtr(true),
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}
