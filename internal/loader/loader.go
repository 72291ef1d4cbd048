// loader склеивает точечные выборки новостей по id в групповые запросы.
// Экземпляр Loaders живёт ровно один HTTP-запрос: его создаёт middleware.Loaders.
package loader

import (
	"context"
	"fmt"
	"time"

	"newsadmin/internal/apperr"
	"newsadmin/internal/logger"
	"newsadmin/internal/metrics"
	"newsadmin/internal/models"

	"github.com/graph-gophers/dataloader/v7"
	"go.uber.org/zap"
)

// Source — групповая выборка, которую умеет репозиторий.
type Source interface {
	GetByIDs(ctx context.Context, ids []int) (map[int]*models.NewsPost, error)
}

type Options struct {
	// Wait — окно сбора ключей перед отправкой батча.
	Wait time.Duration
	// MaxBatch — верхняя граница ключей в одном запросе.
	MaxBatch int
}

type Loaders struct {
	NewsPosts *dataloader.Loader[int, *models.NewsPost]
}

func NewLoaders(src Source, opts Options) *Loaders {
	var lopts []dataloader.Option[int, *models.NewsPost]
	if opts.Wait > 0 {
		lopts = append(lopts, dataloader.WithWait[int, *models.NewsPost](opts.Wait))
	}
	if opts.MaxBatch > 0 {
		lopts = append(lopts, dataloader.WithBatchCapacity[int, *models.NewsPost](opts.MaxBatch))
	}

	return &Loaders{
		NewsPosts: dataloader.NewBatchedLoader(newsPostBatch(src), lopts...),
	}
}

// LoadByID ставит id в текущий батч и сразу возвращает отложенный результат.
func (l *Loaders) LoadByID(ctx context.Context, id int) dataloader.Thunk[*models.NewsPost] {
	return l.NewsPosts.Load(ctx, id)
}

// newsPostBatch выполняет один GetByIDs на весь батч и раскладывает ответ по id.
// Позиции результатов совпадают с ключами, но сопоставление идёт только через карту.
func newsPostBatch(src Source) dataloader.BatchFunc[int, *models.NewsPost] {
	return func(ctx context.Context, ids []int) []*dataloader.Result[*models.NewsPost] {
		const op = "loader.newsPostBatch"

		metrics.LoaderBatches.Inc()
		metrics.LoaderBatchSize.Observe(float64(len(ids)))
		logger.WithCtx(ctx).Debug("Загрузчик: групповой запрос", zap.Int("keys", len(ids)))

		results := make([]*dataloader.Result[*models.NewsPost], len(ids))

		found, err := src.GetByIDs(ctx, ids)
		if err != nil {
			logger.WithCtx(ctx).Error("Загрузчик: ошибка групповой выборки", zap.Error(err))
			for i := range results {
				results[i] = &dataloader.Result[*models.NewsPost]{Error: fmt.Errorf("%s: %w", op, err)}
			}
			return results
		}

		for i, id := range ids {
			p, ok := found[id]
			if !ok {
				results[i] = &dataloader.Result[*models.NewsPost]{
					Error: fmt.Errorf("%s: id %d: %w", op, id, apperr.ErrNotFound),
				}
				continue
			}
			results[i] = &dataloader.Result[*models.NewsPost]{Data: p}
		}
		return results
	}
}

type ctxKey struct{}

// Into кладёт загрузчики запроса в контекст.
func Into(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// For достаёт загрузчики текущего запроса. nil, если middleware не подключён.
func For(ctx context.Context) *Loaders {
	l, _ := ctx.Value(ctxKey{}).(*Loaders)
	return l
}
