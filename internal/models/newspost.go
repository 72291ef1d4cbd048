package models

import "time"

// NewsPostType — метка сущности, по которой клиент различает виды узлов.
const NewsPostType = "NewsPost"

// NewsPost — новость админки. Type не хранится в БД и заполняется только при чтении.
type NewsPost struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Type        string    `json:"type"`
}

// DeriveType вычисляет виртуальное поле type. Не зависит от содержимого записи.
func DeriveType(*NewsPost) string {
	return NewsPostType
}

// swagger:model CreateNewsPostRequest
type CreateNewsPostRequest struct {
	Title       string `json:"title"       example:"Релиз 2.0"`
	Description string `json:"description" example:"Что нового в релизе"`
}

// UpdateNewsPostRequest — частичное обновление: nil значит «не трогать».
type UpdateNewsPostRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Page — одна страница списка. Пересоздаётся при каждом запросе.
type Page struct {
	Rows   []*NewsPost `json:"rows"`
	Count  int         `json:"count"`
	Offset int         `json:"offset"`
	Limit  int         `json:"limit"`
}

// DeleteResult — ответ на удаление, уходит в onSuccess консоли как есть.
type DeleteResult struct {
	ID      int  `json:"id"`
	Deleted bool `json:"deleted"`
}

// NodesResult — ответ /api/nodes.
type NodesResult struct {
	Nodes   []*NewsPost `json:"nodes"`
	Missing []int       `json:"missing"`
}
