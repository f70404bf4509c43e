package notifications

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram sink for operational events. Disabled silently when TG_BOT_TOKEN or
// TG_ADMIN_CHAT_ID is not configured; a failed send never blocks the caller.

var (
	once   sync.Once
	bot    *tgbotapi.BotAPI
	chatID int64
)

func setup() {
	token := os.Getenv("TG_BOT_TOKEN")
	chat := os.Getenv("TG_ADMIN_CHAT_ID")
	if token == "" || chat == "" {
		return
	}
	id, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		log.Printf("[notify] invalid TG_ADMIN_CHAT_ID: %v", err)
		return
	}
	b, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("[notify] telegram init failed: %v", err)
		return
	}
	bot = b
	chatID = id
}

func send(text string) {
	once.Do(setup)
	if bot == nil {
		return
	}
	go func() {
		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := bot.Send(msg); err != nil {
			log.Printf("[notify] telegram send failed: %v", err)
		}
	}()
}

// TaskSubmitted notifies the admin channel about a new proof submission.
func TaskSubmitted(userID uint, taskTitle string, price float64) {
	send(fmt.Sprintf("New submission\nUser: %d\nTask: %s\nReward: ₹%.2f", userID, taskTitle, price))
}

// WithdrawalRequested notifies the admin channel about a pending withdrawal.
func WithdrawalRequested(userID uint, amount float64, method string) {
	send(fmt.Sprintf("Withdrawal request\nUser: %d\nAmount: ₹%.2f\nMethod: %s", userID, amount, method))
}

// AdminAction records a review decision in the admin channel.
func AdminAction(action string, targetID uint) {
	send(fmt.Sprintf("Admin action: %s (#%d)", action, targetID))
}
