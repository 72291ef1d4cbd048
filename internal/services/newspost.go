package services

import (
	"context"
	"fmt"
	"strings"

	"newsadmin/internal/apperr"
	"newsadmin/internal/logger"
	"newsadmin/internal/models"
	"newsadmin/internal/repository"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type NewsPostService interface {
	Create(ctx context.Context, req models.CreateNewsPostRequest) (*models.NewsPost, error)
	GetByID(ctx context.Context, id int) (*models.NewsPost, error)
	List(ctx context.Context, limit, offset int) (*models.Page, error)
	Update(ctx context.Context, id int, req models.UpdateNewsPostRequest) (*models.NewsPost, error)
	Delete(ctx context.Context, id int) error
}

type newsPostService struct {
	repo   repository.NewsPostRepo
	policy *bluemonday.Policy
}

func NewNewsPostService(repo repository.NewsPostRepo) NewsPostService {
	// В заголовке и описании HTML не нужен вовсе
	return &newsPostService{repo: repo, policy: bluemonday.StrictPolicy()}
}

func (s *newsPostService) Create(ctx context.Context, req models.CreateNewsPostRequest) (*models.NewsPost, error) {
	const op = "services.newsPost.Create"
	log := logger.WithCtx(ctx)

	title := s.clean(req.Title)
	description := s.clean(req.Description)
	log.Info("Сервис: создание новости", zap.String("title", title))

	if title == "" || description == "" {
		log.Warn("Сервис: валидация не пройдена",
			zap.Bool("title_empty", title == ""),
			zap.Bool("description_empty", description == ""),
		)
		return nil, fmt.Errorf("%s: title и description обязательны: %w", op, apperr.ErrValidation)
	}

	p, err := s.repo.Create(ctx, title, description)
	if err != nil {
		log.Error("Сервис: ошибка создания новости", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("Сервис: новость создана", zap.Int("news_id", p.ID))
	return p, nil
}

func (s *newsPostService) GetByID(ctx context.Context, id int) (*models.NewsPost, error) {
	const op = "services.newsPost.GetByID"
	log := logger.WithCtx(ctx)

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("Сервис: новость не найдена или ошибка выборки",
			zap.Int("news_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// List нормализует limit (<=0 → 10, >100 → 100). Отрицательный offset — ошибка валидации.
func (s *newsPostService) List(ctx context.Context, limit, offset int) (*models.Page, error) {
	const op = "services.newsPost.List"
	log := logger.WithCtx(ctx)

	if offset < 0 {
		return nil, fmt.Errorf("%s: offset < 0: %w", op, apperr.ErrValidation)
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	log.Debug("Сервис: список новостей (пагинация)",
		zap.Int("limit", limit),
		zap.Int("offset", offset),
	)

	rows, total, err := s.repo.ListPaginated(ctx, limit, offset)
	if err != nil {
		log.Error("Сервис: ошибка получения списка новостей", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if rows == nil {
		rows = []*models.NewsPost{}
	}

	log.Debug("Сервис: список новостей получен",
		zap.Int("count", len(rows)),
		zap.Int("total", total),
	)
	return &models.Page{Rows: rows, Count: total, Offset: offset, Limit: limit}, nil
}

func (s *newsPostService) Update(ctx context.Context, id int, req models.UpdateNewsPostRequest) (*models.NewsPost, error) {
	const op = "services.newsPost.Update"
	log := logger.WithCtx(ctx)
	log.Info("Сервис: обновление новости", zap.Int("news_id", id))

	if req.Title == nil && req.Description == nil {
		return nil, fmt.Errorf("%s: нечего обновлять: %w", op, apperr.ErrValidation)
	}

	var title, description *string
	if req.Title != nil {
		v := s.clean(*req.Title)
		if v == "" {
			return nil, fmt.Errorf("%s: пустой title: %w", op, apperr.ErrValidation)
		}
		title = &v
	}
	if req.Description != nil {
		v := s.clean(*req.Description)
		if v == "" {
			return nil, fmt.Errorf("%s: пустой description: %w", op, apperr.ErrValidation)
		}
		description = &v
	}

	p, err := s.repo.Update(ctx, id, title, description)
	if err != nil {
		log.Error("Сервис: ошибка обновления новости",
			zap.Int("news_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("Сервис: новость обновлена", zap.Int("news_id", id))
	return p, nil
}

func (s *newsPostService) Delete(ctx context.Context, id int) error {
	const op = "services.newsPost.Delete"
	log := logger.WithCtx(ctx)
	log.Info("Сервис: удаление новости", zap.Int("news_id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("Сервис: ошибка удаления новости",
			zap.Int("news_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("Сервис: новость удалена", zap.Int("news_id", id))
	return nil
}

func (s *newsPostService) clean(v string) string {
	return strings.TrimSpace(s.policy.Sanitize(v))
}
