package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"newsadmin/internal/apperr"
	"newsadmin/internal/logger"

	"go.uber.org/zap"
)

const helpText = `команды:
  n, next      следующая страница
  p, prev      предыдущая страница
  g N          перейти на страницу N
  d ID         удалить новость ID
  r            обновить
  h            помощь
  q            выход
`

// REPL управляет View командами со stdin. Таблица перерисовывается
// на каждый переход Store в Loaded или Error.
type REPL struct {
	view  *View
	store *Store
	in    io.Reader
	out   io.Writer
}

func NewREPL(view *View, store *Store, in io.Reader, out io.Writer) *REPL {
	return &REPL{view: view, store: store, in: in, out: out}
}

func (r *REPL) Run(ctx context.Context) error {
	unsubscribe := r.store.Subscribe(func(st State) {
		if st.Status != StatusLoading {
			Render(r.out, st)
		}
	})
	defer unsubscribe()

	if err := r.view.Mount(ctx); err != nil {
		logger.WithCtx(ctx).Warn("Первая страница не загружена", zap.Error(err))
	}
	defer r.view.Unmount()

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		quit, err := r.exec(ctx, strings.Fields(scanner.Text()))
		if err != nil && errors.Is(err, apperr.ErrValidation) {
			fmt.Fprintf(r.out, "%v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (r *REPL) exec(ctx context.Context, args []string) (quit bool, err error) {
	if len(args) == 0 {
		return false, nil
	}

	// n и p считают от страницы в подвале: после ошибки Page остаётся прежним,
	// а CurrentPage уже указывает на страницу, которую загрузить не удалось.
	st := r.store.Snapshot()
	pg := paginationFor(st)

	switch args[0] {
	case "q", "quit", "exit":
		return true, nil
	case "h", "help", "?":
		fmt.Fprint(r.out, helpText)
	case "r", "refresh":
		err = r.view.Refresh(ctx)
	case "n", "next":
		if !pg.HasNext() {
			fmt.Fprintln(r.out, "это последняя страница")
			return false, nil
		}
		err = r.view.MovePage(ctx, pg.Current+1)
	case "p", "prev":
		if !pg.HasPrev() {
			fmt.Fprintln(r.out, "это первая страница")
			return false, nil
		}
		err = r.view.MovePage(ctx, pg.Current-1)
	case "g", "go":
		n, perr := intArg(args)
		if perr != nil {
			return false, perr
		}
		err = r.view.MovePage(ctx, n)
	case "d", "del", "delete":
		id, perr := intArg(args)
		if perr != nil {
			return false, perr
		}
		err = r.view.Remove(ctx, id)
	default:
		fmt.Fprintf(r.out, "неизвестная команда %q, h — помощь\n", args[0])
	}
	return false, err
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s: нужен числовой аргумент: %w", args[0], apperr.ErrValidation)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s: %q не положительное число: %w", args[0], args[1], apperr.ErrValidation)
	}
	return n, nil
}
