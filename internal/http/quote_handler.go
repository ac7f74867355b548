package http

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/swap-router/internal/aggregator"
	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/http/httputil"
	"github.com/hxuan190/swap-router/internal/services/router"
)

type QuoteHandler struct {
	aggregatorSvc Aggregator
}

func NewQuoteHandler(aggregatorSvc Aggregator) *QuoteHandler {
	return &QuoteHandler{aggregatorSvc: aggregatorSvc}
}

func (h *QuoteHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.getQuote)
}

func (h *QuoteHandler) Root() string {
	return "/quote"
}

// QuoteParams are the query parameters of GET /api/v1/quote. Amount is in
// the smallest unit of the given side: coinIn for ExactIn, coinOut for
// ExactOut.
type QuoteParams struct {
	CoinIn         string `form:"coinIn" binding:"required"`
	CoinOut        string `form:"coinOut" binding:"required"`
	Amount         string `form:"amount" binding:"required"`
	SwapMode       string `form:"swapMode"`
	Referrer       string `form:"referrer"`
	FeeRecipient   string `form:"feeRecipient"`
	FeePercentage  string `form:"feePercentage"`
	MaxRouteLength int    `form:"maxRouteLength"`
}

func (p QuoteParams) toRequest() (aggregator.QuoteRequest, error) {
	amount, ok := new(big.Int).SetString(p.Amount, 10)
	if !ok || amount.Sign() <= 0 {
		return aggregator.QuoteRequest{}, fmt.Errorf("invalid amount %q", p.Amount)
	}

	mode := domain.SwapModeExactIn
	if p.SwapMode != "" {
		var err error
		if mode, err = domain.ParseSwapMode(p.SwapMode); err != nil {
			return aggregator.QuoteRequest{}, err
		}
	}

	req := aggregator.QuoteRequest{
		CoinIn:         domain.CoinType(p.CoinIn),
		CoinOut:        domain.CoinType(p.CoinOut),
		Amount:         amount,
		SwapMode:       mode,
		Referrer:       domain.Address(p.Referrer),
		MaxRouteLength: p.MaxRouteLength,
	}

	switch {
	case p.FeeRecipient == "" && p.FeePercentage == "":
	case p.FeeRecipient == "" || p.FeePercentage == "":
		return aggregator.QuoteRequest{}, fmt.Errorf("feeRecipient and feePercentage must be set together")
	default:
		pct, err := strconv.ParseFloat(p.FeePercentage, 64)
		if err != nil {
			return aggregator.QuoteRequest{}, fmt.Errorf("invalid feePercentage %q", p.FeePercentage)
		}
		req.ExternalFee = &domain.ExternalFee{Recipient: domain.Address(p.FeeRecipient), FeePercentage: pct}
	}
	return req, nil
}

type CoinAmountResponse struct {
	Type     string  `json:"type"`
	Amount   string  `json:"amount"`
	TradeFee float64 `json:"tradeFee"`
}

type PathResponse struct {
	PoolUID   string             `json:"poolUid"`
	Protocol  string             `json:"protocol"`
	CoinIn    CoinAmountResponse `json:"coinIn"`
	CoinOut   CoinAmountResponse `json:"coinOut"`
	SpotPrice float64            `json:"spotPrice"`
	GasCost   int64              `json:"gasCost"`
}

type RouteResponse struct {
	Paths     []PathResponse     `json:"paths"`
	CoinIn    CoinAmountResponse `json:"coinIn"`
	CoinOut   CoinAmountResponse `json:"coinOut"`
	SpotPrice float64            `json:"spotPrice"`
	GasCost   int64              `json:"gasCost"`
}

type ExternalFeeResponse struct {
	Recipient     string  `json:"recipient"`
	FeePercentage float64 `json:"feePercentage"`
	Amount        string  `json:"amount"`
}

type QuoteResponse struct {
	SwapMode            string               `json:"swapMode"`
	CoinIn              CoinAmountResponse   `json:"coinIn"`
	CoinOut             CoinAmountResponse   `json:"coinOut"`
	Routes              []RouteResponse      `json:"routes"`
	SpotPrice           float64              `json:"spotPrice"`
	GasCost             int64                `json:"gasCost"`
	ExceedsMaxGasCost   bool                 `json:"exceedsMaxGasCost"`
	PriceImpactBps      uint16               `json:"priceImpactBps"`
	PriceImpactSeverity string               `json:"priceImpactSeverity"`
	PriceImpactWarning  string               `json:"priceImpactWarning,omitempty"`
	Referrer            string               `json:"referrer,omitempty"`
	ExternalFee         *ExternalFeeResponse `json:"externalFee,omitempty"`
}

// @Summary Get split quote
// @Description Find the best split of a trade across every route between two coins.
// @Description ExactIn fixes the amount paid and maximises the amount received.
// @Description ExactOut fixes the amount received and minimises the amount paid.
// @Description Amounts are integers in the smallest unit of the coin.
// @Tags quote
// @Produce json
// @Param coinIn query string true "Coin paid" example("0xdba::usdc::USDC")
// @Param coinOut query string true "Coin received" example("0xa1e::dai::DAI")
// @Param amount query string true "Amount of the given side in smallest units" example("1000000")
// @Param swapMode query string false "Swap mode" Enums(ExactIn, ExactOut) default(ExactIn)
// @Param referrer query string false "Referrer address"
// @Param feeRecipient query string false "External fee recipient, requires feePercentage"
// @Param feePercentage query number false "External fee as a fraction of coin out, e.g. 0.01"
// @Param maxRouteLength query int false "Maximum hops per route"
// @Success 200 {object} httputil.Response{data=QuoteResponse}
// @Failure 400 {object} httputil.Response "Invalid parameters or fee out of range"
// @Failure 404 {object} httputil.Response "No route between the coins"
// @Failure 503 {object} httputil.Response "No pool snapshot loaded"
// @Failure 504 {object} httputil.Response "Quote timed out"
// @Router /api/v1/quote [get]
func (h *QuoteHandler) getQuote(c *gin.Context) {
	var params QuoteParams
	if err := c.ShouldBindQuery(&params); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	req, err := params.toRequest()
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	complete, err := h.aggregatorSvc.Quote(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	httputil.Success(c, toQuoteResponse(req.SwapMode, complete))
}

func coinAmountResponse(a domain.CoinAmount) CoinAmountResponse {
	amount := "0"
	if a.Amount != nil {
		amount = a.Amount.String()
	}
	return CoinAmountResponse{Type: string(a.Type), Amount: amount, TradeFee: a.TradeFee}
}

func toQuoteResponse(mode domain.SwapMode, complete *domain.CompleteTradeRoute) QuoteResponse {
	routes := make([]RouteResponse, len(complete.Routes))
	for i, r := range complete.Routes {
		paths := make([]PathResponse, len(r.Paths))
		for j, p := range r.Paths {
			paths[j] = PathResponse{
				PoolUID:   string(p.PoolUID),
				Protocol:  p.Protocol,
				CoinIn:    coinAmountResponse(p.CoinIn),
				CoinOut:   coinAmountResponse(p.CoinOut),
				SpotPrice: p.SpotPrice,
				GasCost:   p.GasCost,
			}
		}
		routes[i] = RouteResponse{
			Paths:     paths,
			CoinIn:    coinAmountResponse(r.CoinIn),
			CoinOut:   coinAmountResponse(r.CoinOut),
			SpotPrice: r.SpotPrice,
			GasCost:   r.GasCost,
		}
	}

	resp := QuoteResponse{
		SwapMode:            mode.String(),
		CoinIn:              coinAmountResponse(complete.CoinIn),
		CoinOut:             coinAmountResponse(complete.CoinOut),
		Routes:              routes,
		SpotPrice:           complete.SpotPrice,
		GasCost:             complete.GasCost,
		ExceedsMaxGasCost:   complete.ExceedsMaxGasCost,
		PriceImpactBps:      complete.PriceImpactBps,
		PriceImpactSeverity: string(router.GetPriceImpactSeverity(complete.PriceImpactBps)),
		PriceImpactWarning:  router.GetPriceImpactWarning(complete.PriceImpactBps),
		Referrer:            string(complete.Referrer),
	}
	if complete.ExternalFee != nil {
		amount := "0"
		if complete.ExternalFeeAmount != nil {
			amount = complete.ExternalFeeAmount.String()
		}
		resp.ExternalFee = &ExternalFeeResponse{
			Recipient:     string(complete.ExternalFee.Recipient),
			FeePercentage: complete.ExternalFee.FeePercentage,
			Amount:        amount,
		}
	}
	return resp
}
