package chat

import (
	"fmt"
	"strings"

	"github.com/mwiater/promptlab/internal/appconfig"
	"github.com/mwiater/promptlab/internal/testcases"
)

const (
	textReadyToHelp  = "👋 Ready to help! What's on your mind? ✨"
	textReadyForChat = "👋 Ready for a chat! What's on your mind? ✨"
	textEnteringLab  = "🧪 Entering test lab..."
	textSwitchToChat = "💬 Switching to chat mode..."
	textChooseTest   = "🧪 Choose your experiment:"
)

func welcomeMessage(mode appconfig.Mode, model string) Message {
	content := fmt.Sprintf("```\n"+
		"✨ Welcome to the AI Lab! ✨\n\n"+
		"╭──────────────────────────────╮\n"+
		"│  🎯 Mode: %-19s│\n"+
		"│  🤖 %-25s│\n"+
		"│                              │\n"+
		"│  🔮 What's Possible:         │\n"+
		"│  • 🧪 Test Responses         │\n"+
		"│  • 📝 Try Templates          │\n"+
		"│  • 🎛️ Tune Parameters        │\n"+
		"╰──────────────────────────────╯\n\n"+
		"Let's experiment! 🚀\n"+
		"```", strings.ToUpper(mode.String()), model)
	return Message{Content: content}
}

func modeMessage(mode appconfig.Mode) Message {
	emoji, other := "💬", "test"
	if mode == appconfig.ModeTest {
		emoji, other = "🧪", "chat"
	}
	return Message{
		Content: fmt.Sprintf("%s Currently in %s mode", emoji, mode),
		Actions: []Button{{
			Name:        ActionSwitchMode,
			Value:       "switch",
			Label:       fmt.Sprintf("Switch to %s mode", other),
			Description: fmt.Sprintf("Try %s mode instead", other),
		}},
	}
}

func optionsMessage(cases []testcases.TestCase) Message {
	buttons := make([]Button, 0, len(cases))
	for _, tc := range cases {
		buttons = append(buttons, Button{
			Name:        SelectActionName(tc.Key),
			Value:       tc.Key,
			Label:       tc.Label,
			Description: tc.Description,
		})
	}
	return Message{Content: textChooseTest, Actions: buttons}
}

func errorMessage(err error) Message {
	return Message{Content: fmt.Sprintf("❌ Error: %v", err)}
}
