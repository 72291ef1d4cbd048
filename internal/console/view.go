package console

import (
	"context"
	"encoding/json"
	"fmt"

	"newsadmin/internal/apperr"
	"newsadmin/internal/logger"

	"go.uber.org/zap"
)

const (
	Title = "NewsPost Management"

	MsgDeleteSuccess = "delete newspost successfully!!!"
	MsgDeleteFailed  = "delete newspost failed!!!"

	NewRoute = "/admin/newsposts/new"
)

// EditRoute — маршрут формы редактирования, сама форма здесь не реализуется.
func EditRoute(id int) string {
	return fmt.Sprintf("/admin/newsposts/%d/edit", id)
}

// Capabilities — всё, что представлению разрешено делать. Собирается в точке сборки.
type Capabilities struct {
	FetchPage    func(ctx context.Context, page int) error
	DeleteRecord func(ctx context.Context, credential string, id int, onSuccess func(json.RawMessage), onFailure func(error))
	Notify       func(msg string)
	// SetTitle меняет заголовок окна и возвращает функцию возврата прежнего.
	SetTitle func(title string) (restore func())
}

// NewCapabilities связывает действия с уведомлениями и заголовком.
func NewCapabilities(a *Actions, notify func(string), setTitle func(string) func()) Capabilities {
	return Capabilities{
		FetchPage:    a.FetchPage,
		DeleteRecord: a.DeleteRecord,
		Notify:       notify,
		SetTitle:     setTitle,
	}
}

type View struct {
	caps       Capabilities
	store      *Store
	credential string
	restore    func()
}

func NewView(caps Capabilities, store *Store, credential string) *View {
	return &View{caps: caps, store: store, credential: credential}
}

// Mount выставляет заголовок и загружает первую страницу.
func (v *View) Mount(ctx context.Context) error {
	if v.caps.SetTitle != nil && v.restore == nil {
		v.restore = v.caps.SetTitle(Title)
	}
	v.store.SetCurrentPage(1)
	return v.caps.FetchPage(ctx, 1)
}

// Unmount возвращает заголовок окна.
func (v *View) Unmount() {
	if v.restore != nil {
		v.restore()
		v.restore = nil
	}
}

// MovePage переходит на страницу page.
func (v *View) MovePage(ctx context.Context, page int) error {
	if page < 1 {
		return fmt.Errorf("console.View.MovePage: page %d: %w", page, apperr.ErrValidation)
	}
	v.store.SetCurrentPage(page)
	return v.caps.FetchPage(ctx, page)
}

// Refresh перезагружает запомненную страницу.
func (v *View) Refresh(ctx context.Context) error {
	return v.caps.FetchPage(ctx, v.store.Snapshot().CurrentPage)
}

// Remove удаляет новость. После успеха перезагружается запомненная страница,
// даже если на ней больше не осталось строк.
func (v *View) Remove(ctx context.Context, id int) error {
	var (
		deleted  bool
		fetchErr error
	)

	v.caps.DeleteRecord(ctx, v.credential, id,
		func(json.RawMessage) {
			deleted = true
			v.notify(MsgDeleteSuccess)
			fetchErr = v.caps.FetchPage(ctx, v.store.Snapshot().CurrentPage)
		},
		func(err error) {
			logger.WithCtx(ctx).Warn("Удаление не выполнено", zap.Int("news_id", id), zap.Error(err))
			v.notify(MsgDeleteFailed)
		},
	)

	if !deleted {
		return nil
	}
	return fetchErr
}

// State — текущий снимок для рендера.
func (v *View) State() State {
	return v.store.Snapshot()
}

func (v *View) notify(msg string) {
	if v.caps.Notify != nil {
		v.caps.Notify(msg)
	}
}
