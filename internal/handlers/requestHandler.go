package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/EsgAPI/internal/adapter"
	"github.com/akolanti/EsgAPI/internal/adapter/utils"
	"github.com/akolanti/EsgAPI/internal/api"
	"github.com/akolanti/EsgAPI/internal/domain/jobModel"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// PostSessionHandler godoc
// @Summary      Create a pipeline session
// @Description  Creates a new session that crawls, profile, policies and alignment attach to.
// @Tags         Session
// @Produce      json
// @Success      201  {object}  api.SessionResponse  "Session created"
// @Failure      500  {object}  api.JobResponse      "Session store failure"
// @Router       /session [post]
func PostSessionHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		sessionId := utils.GetNewUUID()
		if err := handlerInstance.service.SessionStore.InitNewSession(r.Context(), sessionId); err != nil {
			logRH.Error("Error initiating new session", "sessionId", sessionId, "err", err)
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Could not create session")
			return
		}
		writeJsonResponse(w, http.StatusCreated, api.SessionResponse{
			SessionId: sessionId,
			CreatedAt: time.Now().UTC(),
		})
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetSessionHandler godoc
// @Summary      Get a session
// @Description  Returns everything the pipeline produced for the session so far, ingested reports included.
// @Tags         Session
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  api.SessionStatusResponse  "Current session state"
// @Failure      404  {object}  api.JobResponse            "Session not found"
// @Router       /session/{id} [get]
func GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		sessionId := utils.GetChiURLParam(r, "id")
		session, found := handlerInstance.service.SessionStore.GetSession(r.Context(), sessionId)
		if !found {
			WriteErrorResponse(w, http.StatusNotFound, sessionId, "Session not found")
			return
		}
		reports, err := handlerInstance.service.SessionStore.GetReports(r.Context(), sessionId)
		if err != nil {
			logRH.Warn("Could not load report history", "sessionId", sessionId, "err", err)
		}
		writeJsonResponse(w, http.StatusOK, api.SessionStatusResponse{Session: session, Reports: reports})
	}
}

// PostCrawlHandler godoc
// @Summary      Start a site crawl job
// @Description  Crawls the given URLs (or a sitemap), strips boilerplate, chunks and indexes the text. Returns a job ID to poll.
// @Tags         Crawl
// @Accept       json
// @Produce      json
// @Param        request  body      api.CrawlRequest     true  "Session ID plus URLs or sitemap URL"
// @Success      202      {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400      {object}  api.JobResponse      "Invalid request data or session ID"
// @Router       /crawl [post]
func PostCrawlHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {

		var requestData api.CrawlRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the crawl handler reader :", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil {
			logRH.Warn("Bad Crawl Request: ", "error:", err)
			WriteErrorResponse(w, http.StatusBadRequest, requestData.SessionID, "Bad Request")
			return
		}
		if len(requestData.URLs) == 0 && requestData.SitemapURL == "" {
			WriteErrorResponse(w, http.StatusBadRequest, requestData.SessionID, "urls or sitemap_url is required")
			return
		}
		if !ValidateSessionId(request.Context(), requestData.SessionID) {
			WriteErrorResponse(w, http.StatusBadRequest, requestData.SessionID, "Unknown session")
			return
		}

		newJob := newJobData{
			id:         utils.GetNewUUID(),
			sessionId:  requestData.SessionID,
			traceId:    traceFromRequest(request),
			jobType:    jobModel.JobTypeCrawl,
			urls:       requestData.URLs,
			sitemapURL: requestData.SitemapURL,
			maxPages:   requestData.MaxPages,
		}
		CreateNewJob(newJob)
		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
		return
	}
	logRH.Warn("Invalid Context by request ", request.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a specific job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID "
// @Success      200  {object}  api.JobResponse   "Successful retrieval of job status"
// @Failure      404  {object}  api.JobResponse   "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, traceFromRequest(r))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// PostReportHandler handles the uploading of sustainability reports for indexing.
// @Summary      Upload a report for ingestion
// @Description  Receives a PDF, DOCX, TXT or MD file via multipart/form-data, saves it to a temporary directory, and queues an ingestion job.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        session_id   formData  string  true  "Session the report belongs to"
// @Param        report_name  formData  string  true  "The display name of the report"
// @Param        report       formData  file    true  "The report file to upload"
// @Success      202  {object}  api.InitJobResponse "Accepted - returns job id"
// @Failure      400  {object}  api.JobResponse "Bad Request - Missing fields or file too large"
// @Failure      500  {object}  api.JobResponse "Internal Server Error - Storage or Write Error"
// @Router       /report [post]
func PostReportHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		targetDir, errString := getTargetDirectory()

		if errString != "" {
			logRH.Error("Couldn't get target directory :", "err", errString)
			WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
			return
		}

		const maxUploadSize = 32 << 20 //32mb
		err := r.ParseMultipartForm(maxUploadSize)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		sessionId := r.FormValue("session_id")
		if !ValidateSessionId(r.Context(), sessionId) {
			WriteErrorResponse(w, http.StatusBadRequest, sessionId, "Unknown session")
			return
		}

		reportName := r.FormValue("report_name")
		if reportName == "" {
			WriteErrorResponse(w, http.StatusBadRequest, "", "report_name is required")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("report")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, reportName, "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fileMetadata.Filename))
		tempFilePath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(tempFilePath)
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, reportName, "Storage error")
			return
		}
		defer destinationFileWriter.Close()

		if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, reportName, "Write error")
			return
		}

		newJob := newJobData{
			id:         utils.GetNewUUID(),
			sessionId:  sessionId,
			traceId:    traceFromRequest(r),
			jobType:    jobModel.JobTypeReport,
			reportName: reportName,
			reportPath: tempFilePath,
		}
		CreateNewJob(newJob)
		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

func sessionIdFromQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("sessionId"))
}
