// Package shell is the interactive question loop.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bryanwahyu/earnings-analyst/internal/application/routing"
)

const (
	Greeting     = "Система анализа доходов фрилансеров. Введите запрос или 'выход':"
	Prompt       = "> "
	ExitWord     = "выход"
	Goodbye      = "Выход из системы."
	AnswerHeader = "Ответ:"
)

// Router answers one query; *routing.Service satisfies it.
type Router interface {
	Route(ctx context.Context, query string) (routing.Answer, error)
}

type Shell struct {
	router Router
	in     *bufio.Reader
	out    io.Writer
}

func New(router Router, in io.Reader, out io.Writer) *Shell {
	return &Shell{router: router, in: bufio.NewReader(in), out: out}
}

// Run reads queries until the exit word, end of input or ctx is done.
// Queries are trimmed and lowercased before routing; blank lines are skipped.
// A routing error is printed and the loop goes on.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "\n%s\n", Greeting)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprintf(s.out, "\n%s", Prompt)

		line, err := s.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		query := strings.ToLower(strings.TrimSpace(line))

		switch {
		case query == ExitWord:
			fmt.Fprintln(s.out, Goodbye)
			return nil
		case query != "":
			ans, rerr := s.router.Route(ctx, query)
			if rerr != nil {
				fmt.Fprintf(s.out, "\nОшибка: %v\n", rerr)
			} else {
				fmt.Fprintf(s.out, "\n%s\n%s\n", AnswerHeader, ans.Text)
			}
		}

		if err == io.EOF {
			fmt.Fprintln(s.out)
			return nil
		}
	}
}
