// Package reportsvc exposes the statistics pipeline as a web service using
// the standard request/response envelope from wscutils. Handlers pull
// their dependencies from the service they are registered on; the
// generator is expected under the "generator" dependency key.
package reportsvc

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/remiges-tech/tally/report"
	"github.com/remiges-tech/tally/service"
	"github.com/remiges-tech/tally/wscutils"
)

// DepGenerator is the dependency key under which the report generator must
// be registered on the service.
const DepGenerator = "generator"

// GenerateStatisticRequest identifies the transaction log to aggregate and
// the destination object for the rendered report.
type GenerateStatisticRequest struct {
	Source string `json:"source" validate:"required"`
	Dest   string `json:"dest" validate:"required"`
}

// GenerateStatisticResponse carries the computed totals and the report
// lines exactly as written to the destination.
type GenerateStatisticResponse struct {
	Source string   `json:"source"`
	Dest   string   `json:"dest"`
	Supply int      `json:"supply"`
	Buy    int      `json:"buy"`
	Result int      `json:"result"`
	Report []string `json:"report"`
}

// RegisterReportHandlers registers the report routes on the service.
func RegisterReportHandlers(s *service.Service) {
	s.RegisterRoute(http.MethodPost, "/statistic", HandleGenerateStatisticRequest)
	s.RegisterRoute(http.MethodGet, "/health", handleHealthRequest)
}

// HandleGenerateStatisticRequest runs the pipeline for the source and
// destination named in the request and responds with the computed report.
func HandleGenerateStatisticRequest(c *gin.Context, s *service.Service) {
	s.Logger.Debug0().LogActivity("generate statistic called", nil)

	gen, ok := s.Dependencies[DepGenerator].(*report.Generator)
	if !ok {
		wscutils.SendErrorResponse(c, wscutils.NewErrorResponse(wscutils.ErrcodeUnknown))
		return
	}

	// step 1: bind request body to struct
	var req GenerateStatisticRequest
	if err := wscutils.BindJSON(c, &req); err != nil {
		return
	}

	// step 2: validate request body
	validationErrors := wscutils.WscValidate(req, func(err validator.FieldError) []string { return nil })
	if len(validationErrors) > 0 {
		s.Logger.Debug0().LogActivity("validation errors in statistic request", map[string]any{
			"count": len(validationErrors),
		})
		wscutils.SendErrorResponse(c, wscutils.NewResponse(wscutils.ErrorStatus, nil, validationErrors))
		return
	}

	// step 3: run the pipeline
	rep, err := gen.GetStatistic(c.Request.Context(), req.Source, req.Dest)
	if err != nil {
		var srcErr report.SourceReadError
		var sinkErr report.SinkWriteError
		switch {
		case errors.As(err, &srcErr):
			wscutils.SendErrorResponse(c, wscutils.NewErrorResponse(wscutils.ErrcodeSourceRead))
		case errors.As(err, &sinkErr):
			wscutils.SendErrorResponse(c, wscutils.NewErrorResponse(wscutils.ErrcodeSinkWrite))
		default:
			wscutils.SendErrorResponse(c, wscutils.NewErrorResponse(wscutils.ErrcodeUnknown))
		}
		return
	}

	// step 4: send success response
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(GenerateStatisticResponse{
		Source: req.Source,
		Dest:   req.Dest,
		Supply: rep.Supply,
		Buy:    rep.Buy,
		Result: rep.Result,
		Report: rep.Lines(),
	}))
}

func handleHealthRequest(c *gin.Context, s *service.Service) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
