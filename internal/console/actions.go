package console

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"newsadmin/internal/apperr"
	"newsadmin/internal/logger"
	"newsadmin/internal/models"

	"go.uber.org/zap"
)

// API — то, что действиям нужно от HTTP-клиента.
type API interface {
	ListNewsPosts(ctx context.Context, limit, offset int) (*models.Page, error)
	DeleteNewsPost(ctx context.Context, credential string, id int) (json.RawMessage, error)
}

type Actions struct {
	api     API
	store   *Store
	limit   int
	timeout time.Duration
}

// NewActions. timeout <= 0 — без ограничения сверх ctx вызывающего.
func NewActions(api API, store *Store, timeout time.Duration) *Actions {
	return &Actions{api: api, store: store, limit: PageLimit, timeout: timeout}
}

// Offset — индекс первой строки страницы page (страницы с единицы).
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// FetchPage загружает страницу page и кладёт результат в Store.
// Ошибка возвращается и вызывающему, но состояние уже переведено в Error.
func (a *Actions) FetchPage(ctx context.Context, page int) error {
	const op = "console.Actions.FetchPage"

	if page < 1 {
		return fmt.Errorf("%s: page %d: %w", op, page, apperr.ErrValidation)
	}

	log := logger.WithCtx(ctx).With(zap.Int("page", page))
	seq := a.store.BeginFetch()

	reqCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	offset := Offset(page, a.limit)
	p, err := a.api.ListNewsPosts(reqCtx, a.limit, offset)
	if err != nil {
		if !a.store.FailFetch(seq, err) {
			log.Debug("Устаревший ответ отброшен", zap.Uint64("seq", seq))
			return nil
		}
		log.Warn("Не удалось загрузить страницу", zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if !a.store.ResolveFetch(seq, p) {
		log.Debug("Устаревший ответ отброшен", zap.Uint64("seq", seq))
		return nil
	}
	log.Info("Страница загружена", zap.Int("rows", len(p.Rows)), zap.Int("count", p.Count))
	return nil
}

// DeleteRecord удаляет новость и вызывает ровно одно из продолжений.
// Список не перезагружает.
func (a *Actions) DeleteRecord(
	ctx context.Context,
	credential string,
	id int,
	onSuccess func(payload json.RawMessage),
	onFailure func(err error),
) {
	const op = "console.Actions.DeleteRecord"
	log := logger.WithCtx(ctx).With(zap.Int("news_id", id))

	if strings.TrimSpace(credential) == "" {
		log.Warn("Удаление без токена")
		onFailure(fmt.Errorf("%s: missing credential: %w", op, apperr.ErrAuth))
		return
	}

	reqCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	payload, err := a.api.DeleteNewsPost(reqCtx, credential, id)
	if err != nil {
		log.Warn("Не удалось удалить новость", zap.Error(err))
		onFailure(fmt.Errorf("%s: %w", op, err))
		return
	}

	log.Info("Новость удалена")
	onSuccess(payload)
}

func (a *Actions) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}
