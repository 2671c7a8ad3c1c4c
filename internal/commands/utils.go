package commands

import (
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// MaxContentLen is Discord's message content limit.
const MaxContentLen = 2000

// InteractionUserID returns the acting user for guild and DM interactions.
func InteractionUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// SplitContent breaks text into chunks of at most limit bytes, preferring
// line boundaries.
func SplitContent(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var buffer strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			if buffer.Len() > 0 {
				chunks = append(chunks, buffer.String())
				buffer.Reset()
			}
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if buffer.Len()+len(line) > limit {
			chunks = append(chunks, buffer.String())
			buffer.Reset()
		}
		buffer.WriteString(line)
	}
	if buffer.Len() > 0 {
		chunks = append(chunks, buffer.String())
	}
	return chunks
}
