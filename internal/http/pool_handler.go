package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/swap-router/internal/adapters/snapshot"
	"github.com/hxuan190/swap-router/internal/aggregator"
	"github.com/hxuan190/swap-router/internal/http/httputil"
	"github.com/hxuan190/swap-router/internal/pool"
)

const maxPageLimit = 500

type PoolHandler struct {
	aggregatorSvc Aggregator
}

func NewPoolHandler(aggregatorSvc Aggregator) *PoolHandler {
	return &PoolHandler{aggregatorSvc: aggregatorSvc}
}

func (h *PoolHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.listPools)
	pub.GET("/stats", h.getStats)
	pub.GET("/coins", h.listCoins)
	pub.GET("/:uid", h.getPool)

	admin.PUT("", h.replacePools)
	admin.POST("", h.upsertPools)
}

func (h *PoolHandler) Root() string {
	return "/pools"
}

// @Summary Snapshot stats
// @Tags pools
// @Produce json
// @Success 200 {object} httputil.Response{data=aggregator.Stats}
// @Router /api/v1/pools/stats [get]
func (h *PoolHandler) getStats(c *gin.Context) {
	httputil.Success(c, h.aggregatorSvc.Stats())
}

// @Summary List coins
// @Description Every coin of the live graph with the coins it trades into directly.
// @Tags pools
// @Produce json
// @Success 200 {object} httputil.Response{data=[]aggregator.CoinInfo}
// @Router /api/v1/pools/coins [get]
func (h *PoolHandler) listCoins(c *gin.Context) {
	coins := h.aggregatorSvc.Coins()
	if coins == nil {
		coins = []aggregator.CoinInfo{}
	}
	httputil.Success(c, coins)
}

// PoolListResponse is one page of pool specs ordered by UID.
type PoolListResponse struct {
	Pools []pool.Spec `json:"pools"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Pages int         `json:"pages"`
}

// @Summary List pools
// @Tags pools
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size, at most 500" default(100)
// @Success 200 {object} httputil.Response{data=PoolListResponse}
// @Router /api/v1/pools [get]
func (h *PoolHandler) listPools(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 100
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	all := h.aggregatorSvc.Pools()
	total := len(all)

	pages := (total + limit - 1) / limit
	offset := (page - 1) * limit
	end := offset + limit
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}

	httputil.Success(c, PoolListResponse{
		Pools: all[offset:end],
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	})
}

// @Summary Get pool
// @Tags pools
// @Produce json
// @Param uid path string true "Pool UID"
// @Success 200 {object} httputil.Response{data=pool.Spec}
// @Failure 404 {object} httputil.Response "Pool not found"
// @Router /api/v1/pools/{uid} [get]
func (h *PoolHandler) getPool(c *gin.Context) {
	spec, ok := h.aggregatorSvc.Pool(c.Param("uid"))
	if !ok {
		httputil.NotFound(c, "pool not found")
		return
	}
	httputil.Success(c, spec)
}

// @Summary Replace pool snapshot
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body snapshot.File true "Complete pool set"
// @Success 200 {object} httputil.Response{data=aggregator.Stats}
// @Failure 400 {object} httputil.Response "Empty or invalid pool set"
// @Failure 401 {object} httputil.Response "Bad admin token"
// @Router /api/v1/admin/pools [put]
func (h *PoolHandler) replacePools(c *gin.Context) {
	h.applyPools(c, h.aggregatorSvc.ReplacePools)
}

// @Summary Upsert pools
// @Description Merge pools into the live snapshot by UID.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body snapshot.File true "Pools to add or replace"
// @Success 200 {object} httputil.Response{data=aggregator.Stats}
// @Failure 400 {object} httputil.Response "Empty or invalid pool set"
// @Failure 401 {object} httputil.Response "Bad admin token"
// @Router /api/v1/admin/pools [post]
func (h *PoolHandler) upsertPools(c *gin.Context) {
	h.applyPools(c, h.aggregatorSvc.UpsertPools)
}

func (h *PoolHandler) applyPools(c *gin.Context, apply func([]pool.Spec) error) {
	var body snapshot.File
	if err := c.ShouldBindJSON(&body); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if len(body.Pools) == 0 {
		httputil.BadRequest(c, aggregator.ErrEmptyRequest.Error())
		return
	}
	if err := apply(body.Pools); err != nil {
		writeError(c, err)
		return
	}
	httputil.Success(c, h.aggregatorSvc.Stats())
}
