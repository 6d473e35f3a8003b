package routers

import (
	"net/http"

	"stockcast-api/internal/ctx"
	"stockcast-api/internal/handlers/forecast"
	"stockcast-api/internal/predictor"
	"stockcast-api/internal/shared"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ForecastRouter struct {
	fh *forecast.Handler
}

func NewForecastRouter(fh *forecast.Handler) *ForecastRouter {
	return &ForecastRouter{fh: fh}
}

// RegisterForecastRoutes registers the prediction routes
func RegisterForecastRoutes(e *echo.Group, p predictor.Predictor, log *zap.SugaredLogger, workers int) {
	fr := NewForecastRouter(forecast.NewHandler(p, log, workers))

	e.POST("/predict", fr.Predict)
	e.POST("/bulk_predict", fr.BulkPredict)
}

func (fr *ForecastRouter) Predict(cc echo.Context) error {
	c := cc.(*ctx.Context)

	body, err := readRequestBody(c)
	if err != nil {
		return respondError(c, shared.ErrInvalidRequest)
	}

	var req shared.PredictionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.LogValues.AddError(err)
		return respondError(c, shared.ErrInvalidRequest)
	}

	res, err := fr.fh.Predict(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	c.LogValues.Forecast = &ctx.ForecastInfo{
		Category:       shared.DerefString(req.Category),
		PredictedUnits: res.PredictedSales,
		Decision:       res.Recommendation,
	}
	return c.JSON(http.StatusOK, res)
}

func (fr *ForecastRouter) BulkPredict(cc echo.Context) error {
	c := cc.(*ctx.Context)

	body, err := readRequestBody(c)
	if err != nil {
		return respondError(c, shared.ErrInvalidRequest)
	}

	// The top level must be a JSON array. Anything else, including
	// null, gets the list error.
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		c.LogValues.AddError(err)
		return respondError(c, shared.ErrExpectedList)
	}
	if items == nil {
		return respondError(c, shared.ErrExpectedList)
	}

	slots, err := fr.fh.BulkPredict(c.Request().Context(), items)
	if err != nil {
		return respondError(c, err)
	}

	c.LogValues.BulkItems = len(slots)
	for i := range slots {
		if slots[i].Err != nil {
			c.LogValues.BulkFailed++
		}
	}
	return c.JSON(http.StatusOK, slots)
}
