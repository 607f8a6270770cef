package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gymclub/internal/models"
	"gymclub/pkg/logger"
)

// Dialog steps for multi-message flows.
const (
	StateIdle             = ""
	StateLoginEmail       = "login_email"
	StateLoginPassword    = "login_password"
	StateRegisterName     = "register_name"
	StateRegisterEmail    = "register_email"
	StateRegisterPassword = "register_password"
	StateRegisterConfirm  = "register_confirm"
)

type chatState struct {
	member *Member
	step   string
	form   map[string]string
}

type TelegramBot struct {
	bot        *tgbotapi.BotAPI
	members    MemberFactory
	logger     *logger.Logger
	chats      map[int64]*chatState
	stateMutex sync.RWMutex
	ready      atomic.Bool
}

func NewTelegramBot(token string, members MemberFactory, logger *logger.Logger) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	logger = logger.Named("bot")
	logger.Infow("Authorized on Telegram", "username", bot.Self.UserName)

	return &TelegramBot{
		bot:     bot,
		members: members,
		logger:  logger,
		chats:   make(map[int64]*chatState),
	}, nil
}

// Start begins receiving updates from Telegram via polling
func (t *TelegramBot) Start(ctx context.Context) error {
	_, err := t.bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true})
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := t.bot.GetUpdatesChan(updateConfig)
	t.logger.Infow("Started receiving Telegram updates")

	go t.handleUpdates(ctx, updates)
	t.ready.Store(true)

	return nil
}

// Ready reports whether the bot is polling for updates.
func (t *TelegramBot) Ready() bool {
	return t.ready.Load()
}

func (t *TelegramBot) Stop(ctx context.Context) error {
	t.ready.Store(false)
	t.bot.StopReceivingUpdates()

	// Allow time for handlers to complete
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(500 * time.Millisecond):
		return nil
	}
}

func (t *TelegramBot) handleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		go func(update tgbotapi.Update) {
			defer func() {
				if r := recover(); r != nil {
					t.logger.Errorw("Recovered from panic while processing update", "error", r)
				}
			}()

			if update.Message == nil {
				if update.CallbackQuery != nil {
					t.bot.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, ""))
				}
				return
			}

			// Each request is bounded; a chat must not hang on a slow backend.
			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if update.Message.IsCommand() {
				t.handleCommand(ctx, update.Message)
			} else {
				t.handleMessage(ctx, update.Message)
			}
		}(update)
	}
}

func (t *TelegramBot) chat(chatID int64) (*chatState, error) {
	t.stateMutex.RLock()
	state, ok := t.chats[chatID]
	t.stateMutex.RUnlock()
	if ok {
		return state, nil
	}

	member, err := t.members(chatID)
	if err != nil {
		return nil, err
	}

	t.stateMutex.Lock()
	defer t.stateMutex.Unlock()
	if state, ok := t.chats[chatID]; ok {
		return state, nil
	}
	state = &chatState{member: member, form: make(map[string]string)}
	t.chats[chatID] = state
	return state, nil
}

func (t *TelegramBot) setStep(state *chatState, step string) {
	t.stateMutex.Lock()
	state.step = step
	if step == StateIdle || step == StateLoginEmail || step == StateRegisterName {
		state.form = make(map[string]string)
	}
	t.stateMutex.Unlock()
}

func (t *TelegramBot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	command := message.Command()

	t.logger.Infow("Handling command", "command", command, "chat_id", chatID)

	state, err := t.chat(chatID)
	if err != nil {
		t.logger.Errorw("Failed to prepare chat", "error", err, "chat_id", chatID)
		t.reply(chatID, msgUnavailable)
		return
	}

	switch command {
	case "login":
		t.setStep(state, StateLoginEmail)
		t.reply(chatID, "Please send your email address.")
		return
	case "register":
		t.setStep(state, StateRegisterName)
		t.reply(chatID, "Let's create your account. What is your name?")
		return
	}

	t.setStep(state, StateIdle)
	t.reply(chatID, runCommand(ctx, state.member, command, message.CommandArguments()))
}

// handleMessage advances the login and register dialogs.
func (t *TelegramBot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	state, err := t.chat(chatID)
	if err != nil {
		t.logger.Errorw("Failed to prepare chat", "error", err, "chat_id", chatID)
		t.reply(chatID, msgUnavailable)
		return
	}

	t.stateMutex.RLock()
	step := state.step
	t.stateMutex.RUnlock()

	switch step {
	case StateLoginEmail:
		if !models.ValidEmail(text) {
			t.reply(chatID, "Please enter a valid email address.")
			return
		}
		t.remember(state, "email", text)
		t.setStep(state, StateLoginPassword)
		t.reply(chatID, "Now send your password. The message will be deleted right away.")

	case StateLoginPassword:
		t.forget(chatID, message.MessageID)
		email := t.recall(state, "email")
		t.setStep(state, StateIdle)
		t.reply(chatID, login(ctx, state.member, models.Credentials{Email: email, Password: text}))

	case StateRegisterName:
		t.remember(state, "name", text)
		t.setStep(state, StateRegisterEmail)
		t.reply(chatID, "Your email address?")

	case StateRegisterEmail:
		if !models.ValidEmail(text) {
			t.reply(chatID, "Please enter a valid email address.")
			return
		}
		t.remember(state, "email", text)
		t.setStep(state, StateRegisterPassword)
		t.reply(chatID, "Choose a password: at least 8 characters with a number, an uppercase and a lowercase letter.")

	case StateRegisterPassword:
		t.forget(chatID, message.MessageID)
		t.remember(state, "password", text)
		t.setStep(state, StateRegisterConfirm)
		t.reply(chatID, "Please repeat the password.")

	case StateRegisterConfirm:
		t.forget(chatID, message.MessageID)
		reg := models.Registration{
			Name:                 t.recall(state, "name"),
			Email:                t.recall(state, "email"),
			Password:             t.recall(state, "password"),
			PasswordConfirmation: text,
		}
		t.setStep(state, StateIdle)
		t.reply(chatID, register(ctx, state.member, reg))

	default:
		t.reply(chatID, "Use /help to see what I can do.")
	}
}

func (t *TelegramBot) remember(state *chatState, key, value string) {
	t.stateMutex.Lock()
	state.form[key] = value
	t.stateMutex.Unlock()
}

func (t *TelegramBot) recall(state *chatState, key string) string {
	t.stateMutex.RLock()
	defer t.stateMutex.RUnlock()
	return state.form[key]
}

// forget deletes a message that carried a secret.
func (t *TelegramBot) forget(chatID int64, messageID int) {
	if _, err := t.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		t.logger.Warnw("Failed to delete secret message", "error", err, "chat_id", chatID)
	}
}

func (t *TelegramBot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Errorw("Failed to send message", "error", err, "chat_id", chatID)
	}
}
