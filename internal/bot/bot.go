package bot

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"craigslist-hunter/internal/scraper"
	"craigslist-hunter/internal/utils"
)

// Telegram rejects longer messages.
const maxMessageLength = 4096

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot delivers run reports to a single Telegram chat.
type Bot struct {
	api    sender
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize bot: %w", err)
	}

	api.Debug = false

	log.Printf("Bot is authorized as: @%s", api.Self.UserName)

	return &Bot{api: api, chatID: chatID}, nil
}

// SendReport posts the report lines for listings, split across as many
// messages as needed.
func (b *Bot) SendReport(location string, listings []*scraper.ListedItem) error {
	if len(listings) == 0 {
		return b.sendMessage("😔 No listings found")
	}

	lines := make([]string, 0, len(listings))
	for _, listing := range listings {
		lines = append(lines, listing.Report(location))
	}

	header := fmt.Sprintf("📋 Found %d listings in %s:", len(listings), location)
	for _, text := range chunkLines(header, lines, maxMessageLength) {
		if err := b.sendMessage(text); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) sendMessage(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.DisableWebPagePreview = true

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// chunkLines joins header and lines into messages of at most limit
// characters. A single line longer than limit is trailed.
func chunkLines(header string, lines []string, limit int) []string {
	var chunks []string
	var current strings.Builder
	current.WriteString(header)
	size := utf8.RuneCountInString(header)

	for _, line := range lines {
		line = utils.Trail(line, limit)
		lineSize := utf8.RuneCountInString(line)

		if size > 0 && size+1+lineSize > limit {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
		if size > 0 {
			current.WriteByte('\n')
			size++
		}
		current.WriteString(line)
		size += lineSize
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
