package fsm

// Conversation events. Transition legality lives in newConversationFSM.
const (
	EventStart            = "start"
	EventBeginRequest     = "begin_request"
	EventShowTerms        = "show_terms"
	EventBeginQuestion    = "begin_question"
	EventNameProvided     = "name_provided"
	EventPhoneProvided    = "phone_provided"
	EventCommentProvided  = "comment_provided"
	EventQuestionProvided = "question_provided"
)

// Main menu reply-keyboard labels. An exact match on one of these always wins
// over state-based free-text handling.
const (
	ButtonSubmitRequest = "Отправить заявку"
	ButtonTerms         = "Условия покупки и доставки"
	ButtonAskQuestion   = "Задать вопрос"
	ButtonShareContact  = "Поделиться номером"
)

const (
	placeholderNotSpecified = "Не указано"
	placeholderNoComment    = "Нет"
	placeholderUnknownName  = "Неизвестно"
)

const chatActionTyping = "typing"
