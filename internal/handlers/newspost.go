package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"newsadmin/internal/apperr"
	"newsadmin/internal/logger"
	"newsadmin/internal/models"
	"newsadmin/internal/services"
	helpers "newsadmin/internal/utils/helpres"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type NewsPostHandler struct {
	svc services.NewsPostService
}

func NewNewsPostHandler(svc services.NewsPostService) *NewsPostHandler {
	return &NewsPostHandler{svc: svc}
}

// ListNewsPosts godoc
// @Summary Страница новостей
// @Tags newsposts
// @Produce json
// @Param limit query int false "Размер страницы (по умолч. 10, макс. 100)"
// @Param offset query int false "Смещение первой строки (с нуля)"
// @Success 200 {object} models.Page
// @Failure 400 {string} string "Неверные параметры пагинации"
// @Router /api/newsposts [get]
func (h *NewsPostHandler) ListNewsPosts(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	limit, errL := queryInt(r, "limit", services.DefaultPageLimit)
	offset, errO := queryInt(r, "offset", 0)
	if errL != nil || errO != nil {
		log.Warn("Неверные параметры пагинации",
			zap.String("limit", r.URL.Query().Get("limit")),
			zap.String("offset", r.URL.Query().Get("offset")),
		)
		helpers.Error(w, http.StatusBadRequest, "Неверные параметры пагинации")
		return
	}

	page, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("Ошибка получения новостей", zap.Error(err))
		helpers.Fail(w, err, "Неверные параметры пагинации")
		return
	}

	log.Info("Новости получены", zap.Int("count", len(page.Rows)), zap.Int("total", page.Count))
	helpers.JSON(w, http.StatusOK, page)
}

// GetNewsPost godoc
// @Summary Получить новость по ID
// @Tags newsposts
// @Produce json
// @Param id path int true "ID новости"
// @Success 200 {object} models.NewsPost
// @Failure 404 {string} string "Не найдено"
// @Router /api/newsposts/{id} [get]
func (h *NewsPostHandler) GetNewsPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Новость не найдена", zap.Int("news_id", id), zap.Error(err))
		helpers.Fail(w, err, "Новость не найдена")
		return
	}

	helpers.JSON(w, http.StatusOK, p)
}

// CreateNewsPost godoc
// @Summary Создать новость (только admin)
// @Tags admin-newsposts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.CreateNewsPostRequest true "Данные новости"
// @Success 201 {object} models.NewsPost
// @Failure 400 {string} string "Ошибка запроса"
// @Router /api/admin/newsposts [post]
func (h *NewsPostHandler) CreateNewsPost(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	log.Info("Запрос на создание новости")

	var req models.CreateNewsPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON при создании новости", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	p, err := h.svc.Create(r.Context(), req)
	if err != nil {
		log.Error("Ошибка создания новости", zap.Error(err))
		helpers.Fail(w, err, "Заголовок и описание обязательны")
		return
	}

	log.Info("Новость успешно создана", zap.Int("news_id", p.ID))
	helpers.JSON(w, http.StatusCreated, p)
}

// UpdateNewsPost godoc
// @Summary Обновить новость (только admin)
// @Tags admin-newsposts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID новости"
// @Param input body models.UpdateNewsPostRequest true "Новое содержимое"
// @Success 200 {object} models.NewsPost
// @Failure 400 {string} string "Ошибка запроса"
// @Failure 404 {string} string "Не найдено"
// @Router /api/admin/newsposts/{id} [patch]
func (h *NewsPostHandler) UpdateNewsPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	log := logger.WithCtx(r.Context()).With(zap.Int("news_id", id))
	log.Info("Запрос на обновление новости")

	var req models.UpdateNewsPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON при обновлении новости", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	p, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		log.Error("Ошибка обновления новости", zap.Error(err))
		msg := "Ошибка обновления"
		if errors.Is(err, apperr.ErrNotFound) {
			msg = "Новость не найдена"
		}
		helpers.Fail(w, err, msg)
		return
	}

	log.Info("Новость успешно обновлена")
	helpers.JSON(w, http.StatusOK, p)
}

// DeleteNewsPost godoc
// @Summary Удалить новость (только admin)
// @Tags admin-newsposts
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID новости"
// @Success 200 {object} models.DeleteResult
// @Failure 401 {string} string "Нет или неверный токен"
// @Failure 403 {string} string "Доступ запрещён"
// @Failure 404 {string} string "Не найдено"
// @Router /api/admin/newsposts/{id} [delete]
func (h *NewsPostHandler) DeleteNewsPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	log := logger.WithCtx(r.Context()).With(zap.Int("news_id", id))
	log.Info("Запрос на удаление новости")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		log.Error("Ошибка удаления новости", zap.Error(err))
		helpers.Fail(w, err, "Новость не найдена")
		return
	}

	log.Info("Новость успешно удалена")
	helpers.JSON(w, http.StatusOK, models.DeleteResult{ID: id, Deleted: true})
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		helpers.Error(w, http.StatusBadRequest, "Неверный ID")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
