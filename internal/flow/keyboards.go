package flow

import (
	"fmt"
	"strconv"

	"recruiting-bot/internal/storage"
	"recruiting-bot/internal/telegram"
)

const saveCallback = "save"

const (
	genderMale   = "Мужской"
	genderFemale = "Женский"
)

// phoneRequestBoard возвращает клавиатуру с кнопкой передачи контакта
func phoneRequestBoard() *telegram.ReplyKeyboardMarkup {
	return &telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: "Отправить номер📲", RequestContact: true}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// genderBoard возвращает клавиатуру выбора пола
func genderBoard() *telegram.ReplyKeyboardMarkup {
	return &telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: genderMale}, {Text: genderFemale}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// regionsBoard раскладывает регионы по две кнопки в ряд
func regionsBoard(regions []storage.Region) *telegram.InlineKeyboardMarkup {
	rows := [][]telegram.InlineKeyboardButton{{}}
	for _, r := range regions {
		button := telegram.InlineKeyboardButton{
			Text:         r.Name,
			CallbackData: strconv.FormatUint(uint64(r.ID), 10),
		}
		if len(rows[len(rows)-1]) < 2 {
			rows[len(rows)-1] = append(rows[len(rows)-1], button)
		} else {
			rows = append(rows, []telegram.InlineKeyboardButton{button})
		}
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// categoriesBoard раскладывает специальности по две кнопки в ряд,
// помечает выбранные галочкой и добавляет кнопку сохранения
func categoriesBoard(specs []storage.Specialization, selected []uint) *telegram.InlineKeyboardMarkup {
	rows := [][]telegram.InlineKeyboardButton{{}}
	for _, spec := range specs {
		name := spec.Name
		if containsID(selected, spec.ID) {
			name = fmt.Sprintf("✅%s", name)
		}
		button := telegram.InlineKeyboardButton{
			Text:         name,
			CallbackData: strconv.FormatUint(uint64(spec.ID), 10),
		}
		if len(rows[len(rows)-1]) < 2 {
			rows[len(rows)-1] = append(rows[len(rows)-1], button)
		} else {
			rows = append(rows, []telegram.InlineKeyboardButton{button})
		}
	}

	saveButton := telegram.InlineKeyboardButton{Text: "Сохранить", CallbackData: saveCallback}
	if len(rows[len(rows)-1]) < 2 {
		rows[len(rows)-1] = append(rows[len(rows)-1], saveButton)
	} else {
		rows = append(rows, []telegram.InlineKeyboardButton{saveButton})
	}

	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
