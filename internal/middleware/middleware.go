package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/EsgAPI/internal/handlers"
	"github.com/akolanti/EsgAPI/internal/metrics"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
	id           string
}

var PostSessionHandler = Wrap(handlers.PostSessionHandler)
var GetSessionHandler = Wrap(handlers.GetSessionHandler)

var PostCrawlHandler = Wrap(handlers.PostCrawlHandler)
var PostReportHandler = Wrap(handlers.PostReportHandler)
var GetStatusHandler = Wrap(handlers.GetStatusHandler)

var PostParametersHandler = Wrap(handlers.PostParametersHandler)
var GetParametersTemplateHandler = Wrap(handlers.GetParametersTemplateHandler)

var PostProfileHandler = Wrap(handlers.PostProfileHandler)
var PostPoliciesHandler = Wrap(handlers.PostPoliciesHandler)
var PostAlignmentHandler = Wrap(handlers.PostAlignmentHandler)
var GetProfileHandler = Wrap(handlers.GetProfileHandler)
var GetPoliciesHandler = Wrap(handlers.GetPoliciesHandler)
var GetAlignmentHandler = Wrap(handlers.GetAlignmentHandler)

var GetIndexStatsHandler = Wrap(handlers.GetIndexStatsHandler)
var DeleteIndexHandler = Wrap(handlers.DeleteIndexHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}
func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re.logger.Info("New request received")
	re = injectTrace(re)
	re = authenticate(re)
	if re.badRequest.isBadRequest {
		return re //stop if auth fails, Wrap writes the response
	}
	re = rateLimiter(re)
	return re
}
