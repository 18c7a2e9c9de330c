package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/earnings-analyst/internal/application/routing"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/queries"
)

type echoRouter struct {
	seen []string
	err  error
}

func (r *echoRouter) Route(_ context.Context, q string) (routing.Answer, error) {
	r.seen = append(r.seen, q)
	if r.err != nil {
		return routing.Answer{}, r.err
	}
	return routing.Answer{Text: queries.Report("отчёт: " + q)}, nil
}

func TestShell_Session(t *testing.T) {
	r := &echoRouter{}
	var out bytes.Buffer
	in := strings.NewReader("  Доход по РЕГИОНАМ \n\n  Выход \nне дойдёт\n")

	require.NoError(t, New(r, in, &out).Run(context.Background()))

	assert.Equal(t, []string{"доход по регионам"}, r.seen)
	want := "\n" + Greeting + "\n" +
		"\n> " + "\nОтвет:\nотчёт: доход по регионам\n" +
		"\n> " +
		"\n> " + "Выход из системы.\n"
	assert.Equal(t, want, out.String())
}

func TestShell_EOFWithoutNewline(t *testing.T) {
	r := &echoRouter{}
	var out bytes.Buffer

	require.NoError(t, New(r, strings.NewReader("crypto"), &out).Run(context.Background()))
	assert.Equal(t, []string{"crypto"}, r.seen)
	assert.Contains(t, out.String(), "Ответ:\nотчёт: crypto\n")
}

func TestShell_RouteErrorKeepsGoing(t *testing.T) {
	r := &echoRouter{err: fmt.Errorf("dispatch: %w", errors.New(`schema error: column "Platform" is missing`))}
	var out bytes.Buffer

	require.NoError(t, New(r, strings.NewReader("платформа\nрегион\nвыход\n"), &out).Run(context.Background()))
	assert.Len(t, r.seen, 2)
	assert.Contains(t, out.String(), "Ошибка: dispatch: schema error")
	assert.True(t, strings.HasSuffix(out.String(), Goodbye+"\n"))
}

func TestShell_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &echoRouter{}
	require.NoError(t, New(r, strings.NewReader("регион\n"), &bytes.Buffer{}).Run(ctx))
	assert.Empty(t, r.seen)
}
