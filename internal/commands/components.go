package commands

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/posbot/internal/shift"
)

const (
	choicePrefix = "pos:choice:"
	itemPrefix   = "pos:item:"

	// Discord limits
	maxButtonsPerRow = 5
	maxRows          = 5
	maxCustomIDLen   = 100
	maxLabelLen      = 80
)

// Components renders a response's options as rows of buttons.
func Components(r shift.Response) []discordgo.MessageComponent {
	if len(r.Options) == 0 {
		return nil
	}

	var buttons []discordgo.MessageComponent
	for _, opt := range r.Options {
		// Catalog items keep the item prefix even if named like a menu label.
		customID := itemPrefix + opt
		if r.Hint != shift.HintCatalog && shift.IsLabel(opt) {
			customID = choicePrefix + opt
		}
		// Options that don't fit can still be typed.
		if len(customID) > maxCustomIDLen || len(opt) > maxLabelLen {
			continue
		}
		buttons = append(buttons, discordgo.Button{
			Label:    opt,
			Style:    buttonStyle(r.Hint, opt),
			CustomID: customID,
		})
		if len(buttons) == maxButtonsPerRow*maxRows {
			break
		}
	}

	var rows []discordgo.MessageComponent
	for start := 0; start < len(buttons); start += maxButtonsPerRow {
		end := start + maxButtonsPerRow
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons[start:end]})
	}
	return rows
}

func buttonStyle(hint shift.Hint, label string) discordgo.ButtonStyle {
	switch {
	case hint == shift.HintCatalog:
		return discordgo.SecondaryButton
	case label == shift.LabelOpenShift:
		return discordgo.SuccessButton
	case label == shift.LabelCloseShift:
		return discordgo.DangerButton
	}
	return discordgo.PrimaryButton
}

// IntentFromCustomID decodes a button press produced by Components.
func IntentFromCustomID(customID string) (shift.Intent, bool) {
	switch {
	case strings.HasPrefix(customID, choicePrefix):
		label := strings.TrimPrefix(customID, choicePrefix)
		if !shift.IsLabel(label) {
			return shift.Intent{}, false
		}
		return shift.MenuChoice(label), true
	case strings.HasPrefix(customID, itemPrefix):
		return shift.FreeText(strings.TrimPrefix(customID, itemPrefix)), true
	}
	return shift.Intent{}, false
}

// IntentFromCommand maps a slash command name to an intent.
func IntentFromCommand(name string) (shift.Intent, bool) {
	switch name {
	case CommandStart:
		return shift.Start(), true
	case CommandCancel:
		return shift.Cancel(), true
	}
	return shift.Intent{}, false
}
