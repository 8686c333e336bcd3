package fsm

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"text/template"

	"carleadbot/pkg/state"
)

type applicationPayload struct {
	CarName string
	Name    string
	Phone   string
	Comment string
	ChatID  int64
}

type questionPayload struct {
	ChatID    int64
	AskerName string
	Body      string
}

var applicationTpl = template.Must(template.New("application").Parse(`Новая заявка на автомобиль:
Автомобиль: {{.CarName}}
Имя: {{.Name}}
Телефон: {{.Phone}}
Комментарий: {{.Comment}}
ID Чата: {{.ChatID}}
`))

var questionTpl = template.Must(template.New("question").Parse(`Пользователь ID: {{.ChatID}}
Имя пользователя: {{.AskerName}}

Вопрос:
{{.Body}}
`))

// buildApplication assembles the operator notification for a completed
// request form. Optional fields render as explicit placeholders.
func buildApplication(sess state.Session) *Submission {
	payload := applicationPayload{
		CarName: orPlaceholder(sess.CarName, placeholderNotSpecified),
		Name:    orPlaceholder(sess.Name, placeholderNotSpecified),
		Phone:   orPlaceholder(sess.Phone, placeholderNotSpecified),
		Comment: orPlaceholder(sess.Comment, placeholderNoComment),
		ChatID:  sess.ChatID,
	}
	return &Submission{
		Subject: fmt.Sprintf("Новая заявка на авто: %s", payload.CarName),
		Body:    renderTemplate(applicationTpl, payload),
		LogFields: map[string]string{
			"car_name": sess.CarName,
			"name":     sess.Name,
			"phone":    sess.Phone,
			"comment":  sess.Comment,
			"chat_id":  strconv.FormatInt(sess.ChatID, 10),
		},
	}
}

// buildQuestion assembles the operator notification for a free-form question.
func buildQuestion(chatID int64, askerName, body string) *Submission {
	payload := questionPayload{
		ChatID:    chatID,
		AskerName: orPlaceholder(askerName, placeholderUnknownName),
		Body:      body,
	}
	return &Submission{
		Subject: fmt.Sprintf("Новый вопрос от пользователя Telegram (ID: %d)", chatID),
		Body:    renderTemplate(questionTpl, payload),
	}
}

func renderTemplate(tpl *template.Template, payload interface{}) string {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, payload); err != nil {
		// The templates only reference struct fields, so this cannot fire
		// outside of a programming error.
		log.Printf("[renderTemplate] %s: %v", tpl.Name(), err)
		return ""
	}
	return buf.String()
}

func orPlaceholder(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}
