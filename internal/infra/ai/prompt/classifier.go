package prompt

import (
	"strings"

	"github.com/bryanwahyu/earnings-analyst/internal/domain/queries"
)

// GetClassifierPrompt returns the fixed system instruction for intent
// routing. It enumerates every canonical command and the unknown reply.
func GetClassifierPrompt() string {
	names := make([]string, 0, len(queries.Commands()))
	for _, c := range queries.Commands() {
		names = append(names, c.String())
	}
	return "Ты ассистент, который помогает маршрутизировать запросы пользователей " +
		"по анализу данных о фрилансерах. Ответь названием функции, которую нужно вызвать, " +
		"выбрав одну из следующих: " + strings.Join(names, ", ") + ". " +
		"Не пиши ничего лишнего. Только имя команды. " +
		"Если запрос не подходит, верни '" + queries.UnknownReply + "'."
}
