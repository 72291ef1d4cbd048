package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"newsadmin/internal/apperr"
	"newsadmin/internal/loader"
	"newsadmin/internal/logger"
	"newsadmin/internal/models"
	helpers "newsadmin/internal/utils/helpres"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxNodeIDs = 100

// NodeHandler отдаёт узлы по списку id. Каждый id резолвится отдельно,
// а загрузчик запроса склеивает их в один SELECT.
type NodeHandler struct {
	src  loader.Source
	opts loader.Options
}

func NewNodeHandler(src loader.Source, opts loader.Options) *NodeHandler {
	return &NodeHandler{src: src, opts: opts}
}

// Nodes godoc
// @Summary Узлы по списку ID
// @Description Повторяющиеся id отдаются один раз, отсутствующие перечисляются в missing.
// @Tags nodes
// @Produce json
// @Param ids query string true "ID через запятую"
// @Success 200 {object} models.NodesResult
// @Failure 400 {string} string "Неверный список ID"
// @Router /api/nodes [get]
func (h *NodeHandler) Nodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.WithCtx(ctx)

	ids, err := parseIDs(r.URL.Query().Get("ids"))
	if err != nil {
		log.Warn("nodes: неверный список id", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Неверный список ID")
		return
	}

	loaders := loader.For(ctx)
	if loaders == nil {
		loaders = loader.NewLoaders(h.src, h.opts)
	}

	found := make([]*models.NewsPost, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := loaders.LoadByID(gctx, id)()
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					return nil
				}
				return err
			}
			found[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("nodes: ошибка загрузки", zap.Error(err))
		helpers.Fail(w, err, "Ошибка загрузки")
		return
	}

	res := models.NodesResult{Nodes: []*models.NewsPost{}, Missing: []int{}}
	for i, p := range found {
		if p == nil {
			res.Missing = append(res.Missing, ids[i])
			continue
		}
		res.Nodes = append(res.Nodes, p)
	}

	log.Info("nodes: готово", zap.Int("requested", len(ids)), zap.Int("found", len(res.Nodes)))
	helpers.JSON(w, http.StatusOK, res)
}

// parseIDs разбирает "1,2,2,5" в уникальные id с сохранением порядка.
func parseIDs(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty ids")
	}

	seen := make(map[int]struct{})
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id <= 0 {
			return nil, errors.New("bad id " + strconv.Quote(part))
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) > maxNodeIDs {
		return nil, errors.New("too many ids")
	}
	return ids, nil
}
