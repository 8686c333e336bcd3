package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Texts holds every user-facing reply. Defaults match the production copy;
// a YAML file may override individual entries for staging bots.
type Texts struct {
	GreetingWithCar    string `yaml:"greeting_with_car"`
	Greeting           string `yaml:"greeting"`
	MenuPrompt         string `yaml:"menu_prompt"`
	MenuPromptAgain    string `yaml:"menu_prompt_again"`
	AskName            string `yaml:"ask_name"`
	AskPhone           string `yaml:"ask_phone"`
	AskComment         string `yaml:"ask_comment"`
	AskQuestion        string `yaml:"ask_question"`
	ConfirmRequest     string `yaml:"confirm_request"`
	ConfirmRequestCar  string `yaml:"confirm_request_car"`
	ConfirmQuestion    string `yaml:"confirm_question"`
	RequestSendFailed  string `yaml:"request_send_failed"`
	QuestionSendFailed string `yaml:"question_send_failed"`
	TermsUnavailable   string `yaml:"terms_unavailable"`
	NotUnderstood      string `yaml:"not_understood"`
	InternalError      string `yaml:"internal_error"`
}

// DefaultTexts returns the built-in reply set.
func DefaultTexts() Texts {
	return Texts{
		GreetingWithCar:    "Здравствуйте! Вы выбрали автомобиль: %s.\nЧем могу помочь?",
		Greeting:           "Здравствуйте! Я бот для сбора заявок на покупку автомобилей.",
		MenuPrompt:         "Выберите действие:",
		MenuPromptAgain:    "Могу ли я еще чем-то помочь?",
		AskName:            "Пожалуйста, введите ваше имя:",
		AskPhone:           "Теперь введите ваш номер телефона или используйте кнопку \"Поделиться номером\":",
		AskComment:         "Хотите добавить комментарий к заявке? (Необязательно):",
		AskQuestion:        "Пожалуйста, введите ваш вопрос:",
		ConfirmRequest:     "Спасибо! Ваша заявка принята и уже направлена менеджеру. Он свяжется с вами в ближайшее время.",
		ConfirmRequestCar:  "Отлично! Ваша заявка по автомобилю %s принята. Ожидайте звонка от нашего менеджера!",
		ConfirmQuestion:    "Ваш вопрос получен! Менеджер рассмотрит его и ответит вам по электронной почте в ближайшее время.",
		RequestSendFailed:  "Произошла ошибка при отправке заявки. Пожалуйста, отправьте комментарий еще раз чуть позже или свяжитесь с нами напрямую.",
		QuestionSendFailed: "Произошла ошибка при отправке вашего вопроса. Пожалуйста, отправьте его еще раз чуть позже.",
		TermsUnavailable:   "Извините, не удалось загрузить информацию об условиях. Пожалуйста, попробуйте позже или свяжитесь с нами напрямую.",
		NotUnderstood:      "Извините, я вас не понял. Пожалуйста, используйте кнопки меню.",
		InternalError:      "Произошла внутренняя ошибка. Пожалуйста, попробуйте позже или обратитесь к администратору.",
	}
}

// LoadTexts merges overrides from a YAML file over the defaults.
// An empty path returns the defaults unchanged.
func LoadTexts(path string) (Texts, error) {
	texts := DefaultTexts()
	if path == "" {
		return texts, nil
	}
	log.Printf("Loading reply texts from %s...", path)
	raw, err := os.ReadFile(path)
	if err != nil {
		return texts, fmt.Errorf("failed to read texts file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &texts); err != nil {
		return texts, fmt.Errorf("failed to unmarshal YAML from '%s': %w", path, err)
	}
	return texts, nil
}
