package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// New создает новый Telegram бот
func New(token string) *Bot {
	return &Bot{
		token:   token,
		baseURL: fmt.Sprintf("https://api.telegram.org/bot%s", token),
		fileURL: fmt.Sprintf("https://api.telegram.org/file/bot%s", token),
	}
}

// GetUpdates получает обновления от Telegram
func (b *Bot) GetUpdates(offset int, timeout time.Duration) ([]Update, error) {
	url := fmt.Sprintf("%s/getUpdates?offset=%d&timeout=%d", b.baseURL, offset, int(timeout.Seconds()))

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса getUpdates: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	var response GetUpdatesResponse
	err = json.Unmarshal(body, &response)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга JSON: %w", err)
	}

	if !response.OK {
		return nil, fmt.Errorf("Telegram API вернул ошибку")
	}

	return response.Result, nil
}

// SendMessage отправляет текстовое сообщение пользователю
func (b *Bot) SendMessage(chatID int64, text string) error {
	return b.SendMessageWithMarkup(chatID, text, nil)
}

// SendMessageWithMarkup отправляет сообщение с клавиатурой
func (b *Bot) SendMessageWithMarkup(chatID int64, text string, markup interface{}) error {
	request := SendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	}
	return b.call("sendMessage", request)
}

// AnswerCallbackQuery отвечает на нажатие inline кнопки
func (b *Bot) AnswerCallbackQuery(callbackID, text string, showAlert bool) error {
	request := AnswerCallbackRequest{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	}
	return b.call("answerCallbackQuery", request)
}

// EditMessageReplyMarkup заменяет inline клавиатуру у сообщения.
// Передача nil убирает клавиатуру.
func (b *Bot) EditMessageReplyMarkup(chatID int64, messageID int, markup *InlineKeyboardMarkup) error {
	request := EditReplyMarkupRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		ReplyMarkup: markup,
	}
	return b.call("editMessageReplyMarkup", request)
}

// GetFileURL возвращает постоянную ссылку на загруженный файл
func (b *Bot) GetFileURL(fileID string) (string, error) {
	url := fmt.Sprintf("%s/getFile?file_id=%s", b.baseURL, fileID)

	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("ошибка запроса getFile: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	var response GetFileResponse
	err = json.Unmarshal(body, &response)
	if err != nil {
		return "", fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	if !response.OK || response.Result.FilePath == "" {
		return "", fmt.Errorf("Telegram API не вернул путь к файлу")
	}

	return fmt.Sprintf("%s/%s", b.fileURL, response.Result.FilePath), nil
}

// SendDocument отправляет файл как документ с подписью
func (b *Bot) SendDocument(chatID int64, filePath, caption string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("ошибка открытия файла %s: %w", filePath, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	err = writer.WriteField("chat_id", strconv.FormatInt(chatID, 10))
	if err != nil {
		return fmt.Errorf("ошибка записи chat_id: %w", err)
	}
	if caption != "" {
		err = writer.WriteField("caption", caption)
		if err != nil {
			return fmt.Errorf("ошибка записи caption: %w", err)
		}
	}

	part, err := writer.CreateFormFile("document", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("ошибка создания form file: %w", err)
	}
	if _, err = io.Copy(part, file); err != nil {
		return fmt.Errorf("ошибка копирования файла: %w", err)
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("ошибка завершения multipart: %w", err)
	}

	url := fmt.Sprintf("%s/sendDocument", b.baseURL)
	resp, err := http.Post(url, writer.FormDataContentType(), &buf)
	if err != nil {
		return fmt.Errorf("ошибка отправки документа: %w", err)
	}
	defer resp.Body.Close()

	return checkAPIResponse(resp)
}

// call выполняет JSON запрос к методу Telegram API
func (b *Bot) call(method string, request interface{}) error {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	url := fmt.Sprintf("%s/%s", b.baseURL, method)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("ошибка запроса %s: %w", method, err)
	}
	defer resp.Body.Close()

	return checkAPIResponse(resp)
}

func checkAPIResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	var response APIResponse
	err = json.Unmarshal(body, &response)
	if err != nil {
		return fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	if !response.OK {
		return fmt.Errorf("Telegram API вернул ошибку: %s", response.Description)
	}
	return nil
}

// StartPolling запускает long polling и передает обновления обработчику
func (b *Bot) StartPolling(timeout time.Duration, handler func(Update)) error {
	offset := 0

	for {
		updates, err := b.GetUpdates(offset, timeout)
		if err != nil {
			time.Sleep(5 * time.Second)
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			go handler(update)
		}

		if len(updates) == 0 {
			time.Sleep(1 * time.Second)
		}
	}
}
