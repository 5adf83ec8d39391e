package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	app "colorcode-receiver/internal/application"
	"colorcode-receiver/internal/container"
	"colorcode-receiver/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я управляю приёмником цветовых маркеров.

Приёмник читает маркеры с камеры и сверяет символы с переданной последовательностью.

📋 Команды:
/expect — задать переданную последовательность
/receive — запустить приём
/stop — остановить приём
/status — состояние приёмника
/result — принятые символы
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Задайте последовательность: /expect 1,2,space,no
2️⃣ Запустите приём: /receive
3️⃣ Покажите маркеры камере
4️⃣ Бот сообщит, когда последовательность будет принята

📸 Можно прислать фото уже вырезанного маркера, бот разберёт его сетку.

Символы: 1-8, no (белая ячейка), space (чёрная ячейка).`

	msgAwaitingSequence = "✏️ Отправьте последовательность символов через запятую или пробел."
	msgExpectInline     = "✏️ Во время приёма укажите последовательность в самой команде: /expect 1,2,space"
	msgSequenceSet      = "✅ Ожидаемая последовательность (%d симв.): %s"
	msgSequenceInvalid  = "⚠️ Не удалось разобрать последовательность: %v"
	msgNoSequence       = "ℹ️ Последовательность не задана, символы будут только накапливаться."
	msgReceiveStarted   = "▶️ Приём запущен, сессия %s"
	msgAlreadyRunning   = "ℹ️ Приём уже идёт. /stop — остановить."
	msgReceiveFailed    = "⚠️ Не удалось запустить приём: %v"
	msgReceiveStopped   = "⏹ Приём остановлен. Принято: %s"
	msgNotRunning       = "ℹ️ Приём не запущен."
	msgResult           = "📋 Принято (%d симв.): %s"
	msgDecoded          = "✅ Последовательность принята (%d симв.): %s"
	msgCaptureLost      = "⚠️ Камера недоступна, приём остановлен. Проверьте подключение и запустите /receive снова."
	msgCancelled        = "❌ Операция отменена."
	msgUnknownCommand   = "❓ Неизвестная команда. Используйте /help для справки."
	msgSendCommand      = "ℹ️ Используйте /help для списка команд."
	msgProcessing       = "⏳ Обрабатываю изображение..."
	msgProcessingError  = "⚠️ Не удалось обработать изображение: %v"
	msgPhotoMarker      = "🔎 Ключ %d, углы %s\nСимволы: %s"
	msgPhotoMatched     = "✅ Совпадает с ожидаемой последовательностью."
	msgPhotoMismatch    = "❌ Расхождение: %s"
)

// botAPI часть клиента Telegram, которой пользуется бот
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot представляет Telegram-бота
type Bot struct {
	api   botAPI
	token string
	app   *container.Container
	log   zerolog.Logger

	// ctx запуска бота: в нём живёт цикл приёма, запущенный командой
	ctx context.Context
}

// NewBot создаёт нового бота и подписывает его на события приёмника
func NewBot(token string, c *container.Container, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	log.Info().Str("account", api.Self.UserName).Msg("authorized on telegram")
	return newBot(api, token, c, log), nil
}

func newBot(api botAPI, token string, c *container.Container, log zerolog.Logger) *Bot {
	b := &Bot{
		api:   api,
		token: token,
		app:   c,
		log:   log.With().Str("component", "telegram").Logger(),
		ctx:   context.Background(),
	}
	c.ReceiverService.SetNotifier(b)
	return b
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			b.app.ReceiverService.Stop()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// Notify сообщает операторам, ожидающим приёма, о его завершении
func (b *Bot) Notify(ctx context.Context, event entity.ReceiveEvent) {
	// событие завершённого запуска не должно сбрасывать операторов нового
	if current := b.app.ReceiverService.Status().SessionID; event.SessionID != current {
		b.log.Debug().
			Str("session_id", event.SessionID).
			Str("current_session_id", current).
			Msg("stale receive event dropped")
		return
	}

	operators, err := b.app.OperatorService.FinishReceive(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("list receiving operators")
		return
	}

	var text string
	switch event.Kind {
	case entity.EventDecoded:
		text = fmt.Sprintf(msgDecoded, len(event.Decoded), entity.FormatSequence(event.Decoded))
	case entity.EventCaptureLost:
		text = msgCaptureLost
	default:
		return
	}

	for _, operator := range operators {
		b.sendMessage(operator.ChatID, text)
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}

	operator, err := b.app.OperatorService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", msg.From.ID).Msg("get operator")
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, operator)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(msg)
		return
	}

	if operator.State == entity.StateAwaitingSequence {
		b.setSequence(ctx, msg, operator, msg.Text)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendCommand)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, operator *entity.Operator) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.setState(ctx, msg, entity.StateMainMenu)
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "expect":
		if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
			b.setSequence(ctx, msg, operator, args)
			return
		}
		// оператор, ждущий результата приёма, остаётся в StateReceiving
		if operator.State == entity.StateReceiving {
			b.sendMessage(chatID, msgExpectInline)
			return
		}
		if _, err := b.app.OperatorService.AwaitSequence(ctx, msg.From.ID, chatID); err != nil {
			b.log.Error().Err(err).Msg("await sequence")
		}
		b.sendMessage(chatID, msgAwaitingSequence)

	case "receive":
		b.startReceive(ctx, msg)

	case "stop":
		if !b.app.ReceiverService.IsRunning() {
			b.sendMessage(chatID, msgNotRunning)
			return
		}
		b.app.ReceiverService.Stop()
		if _, err := b.app.OperatorService.FinishReceive(ctx); err != nil {
			b.log.Error().Err(err).Msg("finish receive")
		}
		b.sendMessage(chatID, fmt.Sprintf(msgReceiveStopped, formatSymbols(b.app.ReceiverService.Snapshot())))

	case "status":
		b.sendMessage(chatID, formatStatus(b.app.ReceiverService.Status()))

	case "result":
		decoded := b.app.ReceiverService.Snapshot()
		b.sendMessage(chatID, fmt.Sprintf(msgResult, len(decoded), formatSymbols(decoded)))

	case "cancel":
		if operator.State == entity.StateReceiving {
			b.app.ReceiverService.Stop()
		}
		if _, err := b.app.OperatorService.Cancel(ctx, msg.From.ID, chatID); err != nil {
			b.log.Error().Err(err).Msg("cancel")
		}
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

func (b *Bot) startReceive(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if b.app.ReceiverService.IsRunning() {
		b.sendMessage(chatID, msgAlreadyRunning)
		return
	}

	// оператор должен ждать результата до того, как цикл сможет завершиться
	if _, err := b.app.OperatorService.BeginReceive(ctx, msg.From.ID, chatID); err != nil {
		b.log.Error().Err(err).Msg("begin receive")
		b.sendMessage(chatID, fmt.Sprintf(msgReceiveFailed, err))
		return
	}

	sessionID, err := b.app.ReceiverService.Start(b.ctx)
	if err != nil {
		b.setState(ctx, msg, entity.StateMainMenu)
		if errors.Is(err, app.ErrAlreadyRunning) {
			b.sendMessage(chatID, msgAlreadyRunning)
			return
		}
		b.log.Error().Err(err).Msg("start receiver")
		b.sendMessage(chatID, fmt.Sprintf(msgReceiveFailed, err))
		return
	}

	b.sendMessage(chatID, fmt.Sprintf(msgReceiveStarted, sessionID))
	if len(b.app.Expected.ExpectedSymbols()) == 0 {
		b.sendMessage(chatID, msgNoSequence)
	}
}

func (b *Bot) setSequence(ctx context.Context, msg *tgbotapi.Message, operator *entity.Operator, text string) {
	symbols, err := entity.ParseSequence(text)
	if err != nil {
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgSequenceInvalid, err))
		return
	}

	b.app.Expected.Set(symbols)
	if operator.State != entity.StateReceiving {
		b.setState(ctx, msg, entity.StateMainMenu)
	}
	b.log.Info().Int("length", len(symbols)).Msg("expected sequence updated")
	b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgSequenceSet, len(symbols), formatSymbols(symbols)))
}

func (b *Bot) setState(ctx context.Context, msg *tgbotapi.Message, state entity.OperatorState) {
	if _, err := b.app.OperatorService.SetState(ctx, msg.From.ID, msg.Chat.ID, state); err != nil {
		b.log.Error().Err(err).Str("state", string(state)).Msg("set operator state")
	}
}

// handlePhoto разбирает фото уже вырезанного маркера
func (b *Bot) handlePhoto(msg *tgbotapi.Message) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		b.log.Error().Err(err).Msg("download photo")
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgProcessingError, err))
		return
	}

	b.sendMessage(msg.Chat.ID, b.describePhoto(imageData))
}

// describePhoto декодирует изображение и формирует ответ оператору
func (b *Bot) describePhoto(imageData []byte) string {
	result, err := decodePhoto(b.app.DecodeService, imageData)
	if err != nil {
		b.log.Warn().Err(err).Int("bytes", len(imageData)).Msg("photo decode failed")
		return fmt.Sprintf(msgProcessingError, err)
	}

	text := fmt.Sprintf(msgPhotoMarker, int(result.Key), result.Signature, formatSymbols(result.Symbols))
	switch {
	case result.Matched:
		text += "\n" + msgPhotoMatched
	case result.Mismatch != nil:
		text += "\n" + fmt.Sprintf(msgPhotoMismatch, result.Mismatch)
	}
	return text
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("send message")
	}
}
