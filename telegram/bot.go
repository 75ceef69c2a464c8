package telegram

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"oioi/internal"
	"oioi/models"
)

// TgBot implements EventHandler
type TgBot struct {
	api           *tgbotapi.BotAPI
	database      internal.Database
	subscriptions map[int]models.UserSubscription
	event         chan MessageContent
	send          chan MessageContent
}

type MessageContent struct {
	ChatID int64
	Text   string
}

func NewBot(apiKey string) (*TgBot, error) {
	tgBot := &TgBot{
		subscriptions: make(map[int]models.UserSubscription),
		event:         make(chan MessageContent, 100),
		send:          make(chan MessageContent, 100),
	}
	api, err := tgbotapi.NewBotAPI(apiKey)
	if err != nil {
		return nil, err
	}
	tgBot.api = api
	return tgBot, nil
}

// SetDatabase attach database service
func (b *TgBot) SetDatabase(database internal.Database) {
	b.database = database
}

func (b *TgBot) Start() {
	b.subscriptions = make(map[int]models.UserSubscription)
	if b.database != nil {
		subscriptions, err := b.database.GetSubscriptions()
		if err != nil {
			log.Printf("bot: error getting subscriptions: %v", err)
		} else {
			for _, subscription := range subscriptions {
				b.subscriptions[subscription.UserID] = subscription
			}
		}
	}
	go b.sendPump()
	go b.eventPump()
	go b.updatesPump()
}

// Start listening for updates
func (b *TgBot) updatesPump() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		log.Printf("bot: error getting updates: %v", err)
		return
	}
	for update := range updates {
		if update.Message == nil {
			continue
		}
		if !update.Message.IsCommand() {
			continue
		}
		switch update.Message.Command() {
		case "start":
			subscription := models.UserSubscription{
				UserID:           update.Message.From.ID,
				User:             update.Message.From.UserName,
				SubscriptionType: "status",
			}
			b.subscriptions[update.Message.From.ID] = subscription
			msg := fmt.Sprintf("Hello *%v*, you are now subscribed to updates", update.Message.From.UserName)
			if b.database != nil {
				err := b.database.AddSubscription(&subscription)
				if err != nil {
					log.Printf("bot: error adding subscription: %v", err)
					msg = fmt.Sprintf("Error adding subscription:\n `%v`", err)
				}
			}
			b.send <- MessageContent{ChatID: update.Message.Chat.ID, Text: msg}
		case "stop":
			delete(b.subscriptions, update.Message.From.ID)
			if b.database != nil {
				err := b.database.DeleteSubscription(&models.UserSubscription{UserID: update.Message.From.ID})
				if err != nil {
					log.Printf("bot: error deleting subscription: %v", err)
				}
			}
			b.send <- MessageContent{ChatID: update.Message.Chat.ID, Text: "Your subscription has been removed"}
		case "status":
			msg := b.composeStatusMessage()
			b.send <- MessageContent{ChatID: update.Message.Chat.ID, Text: msg}
		}
	}
}

// eventPump sending events to all subscribers
func (b *TgBot) eventPump() {
	for {
		if event, ok := <-b.event; ok {
			for _, subscription := range b.subscriptions {
				b.sendMessage(int64(subscription.UserID), event.Text)
			}
		}
	}
}

// sendPump sending messages to users
func (b *TgBot) sendPump() {
	for {
		if event, ok := <-b.send; ok {
			b.sendMessage(event.ChatID, event.Text)
		}
	}
}

// sendMessage common routine to send a message via bot API
func (b *TgBot) sendMessage(id int64, text string) {
	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = "MarkdownV2"
	_, err := b.api.Send(msg)
	if err != nil {
		// maybe error was while parsing, so we can send a message about this error
		msg = tgbotapi.NewMessage(id, fmt.Sprintf("Error: %v", err))
		_, err = b.api.Send(msg)
		if err != nil {
			log.Printf("bot: error sending message: %v", err)
		}
	}
}

func (b *TgBot) OnStationPost(event *internal.EventMessage) {
	msg := fmt.Sprintf("*%v*: station uploaded by `%v`\n", sanitize(event.StationId), sanitize(event.PartnerId))
	b.event <- MessageContent{Text: msg}
}

func (b *TgBot) OnConnectorStatus(event *internal.EventMessage) {
	msg := fmt.Sprintf("Connector *%v*: `%v`\n", sanitize(event.ConnectorId), event.Status)
	if event.Info != "" {
		msg += fmt.Sprintf("%v\n", sanitize(event.Info))
	}
	b.event <- MessageContent{Text: msg}
}

func (b *TgBot) OnSessionStart(event *internal.EventMessage) {
	msg := fmt.Sprintf("Connector *%v*: session START\n", sanitize(event.ConnectorId))
	msg += fmt.Sprintf("Session ID: %v\n", sanitize(event.SessionId))
	msg += fmt.Sprintf("User: %v\n", sanitize(event.Username))
	b.event <- MessageContent{Text: msg}
}

func (b *TgBot) OnSessionStop(event *internal.EventMessage) {
	msg := fmt.Sprintf("Connector *%v*: session STOP\n", sanitize(event.ConnectorId))
	msg += fmt.Sprintf("Session ID: %v\n", sanitize(event.SessionId))
	msg += fmt.Sprintf("User: %v\n", sanitize(event.Username))
	b.event <- MessageContent{Text: msg}
}

func (b *TgBot) OnSessionPost(event *internal.EventMessage) {
	msg := fmt.Sprintf("Session *%v*: reported by `%v`\n", sanitize(event.SessionId), sanitize(event.PartnerId))
	if event.Info != "" {
		msg += fmt.Sprintf("%v\n", sanitize(event.Info))
	}
	b.event <- MessageContent{Text: msg}
}

func (b *TgBot) OnRFIDVerify(event *internal.EventMessage) {
	msg := fmt.Sprintf("RFID check by `%v`: %v\n", sanitize(event.PartnerId), event.Status)
	b.event <- MessageContent{Text: msg}
}

// compose status message
func (b *TgBot) composeStatusMessage() string {
	msg := "Status info:\n"
	msg += "\n"
	if b.database != nil {
		stations, err := b.database.GetStations()
		if err != nil {
			log.Printf("bot: error getting stations: %v", err)
			msg += fmt.Sprintf("Error getting stations:\n `%v`", err)
		} else {
			msg += fmt.Sprintf("Known stations: %v\n", len(stations))
		}
	}
	msg += fmt.Sprintf("Active subscriptions: %v", len(b.subscriptions))
	return msg
}

func sanitize(input string) string {
	// Define a list of reserved characters that need to be escaped
	reservedChars := "\\`*_{}[]()#+-.!|"

	sanitized := ""
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			sanitized += "\\" + string(char)
		} else {
			sanitized += string(char)
		}
	}

	return sanitized
}
