package formatting

import (
	"fmt"
	"time"
)

const (
	MsgAdminRequired = "You need Administrator permissions to use this command."
	MsgGuildOnly     = "This command can only be used in a server."
	MsgNotYourMenu   = "This menu belongs to someone else."
	MsgMenuExpired   = "This menu has expired. Run the command again."
	MsgNothingToShow = "Nothing to show."
	MsgInternalError = "Something went wrong. Try again later."
	MsgInvalidDice   = "Dice must look like `2d6`."
)

func MsgPong(latency time.Duration) string {
	return fmt.Sprintf("Pong! Gateway latency: %dms", latency.Milliseconds())
}

func MsgRoll(dice string, rolls []int, total int) string {
	return fmt.Sprintf("🎲 %s → %v = **%d**", dice, rolls, total)
}

func MsgUserPing(userID string) string {
	return fmt.Sprintf("Pong! <@%s>", userID)
}

// Bold wraps text in Discord bold markdown.
func Bold(text string) string {
	return "**" + text + "**"
}

// InlineCode wraps text in inline code markdown.
func InlineCode(text string) string {
	return "`" + text + "`"
}

// CodeBlock wraps text in a fenced code block with an optional language tag.
func CodeBlock(lang, text string) string {
	return "```" + lang + "\n" + text + "\n```"
}

// Timestamp renders a Discord timestamp mention with the given style
// ("R" relative, "F" full date-time).
func Timestamp(t time.Time, style string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), style)
}
