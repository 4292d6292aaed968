package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/akolanti/EsgAPI/internal/adapter"
	"github.com/akolanti/EsgAPI/internal/adapter/utils"
	"github.com/akolanti/EsgAPI/internal/api"
	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/internal/domain/jobModel"
)

// decodeStageRequest reads the common {session_id} body and resolves the
// session, writing the error response itself when either fails.
func decodeStageRequest(w http.ResponseWriter, r *http.Request) (esg.Session, bool) {
	var requestData api.StageRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the stage handler reader :", err)
		}
	}(r.Body)

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.SessionID == "" {
		logRH.Warn("Bad stage request", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, requestData.SessionID, "Bad Request")
		return esg.Session{}, false
	}

	session, found := handlerInstance.service.SessionStore.GetSession(r.Context(), requestData.SessionID)
	if !found {
		WriteErrorResponse(w, http.StatusBadRequest, requestData.SessionID, "Unknown session")
		return esg.Session{}, false
	}
	return session, true
}

func queueStageJob(w http.ResponseWriter, r *http.Request, sessionId string, jobType jobModel.JobType) {
	newJob := newJobData{
		id:        utils.GetNewUUID(),
		sessionId: sessionId,
		traceId:   traceFromRequest(r),
		jobType:   jobType,
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// PostProfileHandler godoc
// @Summary      Start profile extraction
// @Description  Retrieves indexed company documentation and extracts a structured company profile. Returns a job ID to poll.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request  body      api.StageRequest     true  "Session ID"
// @Success      202      {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400      {object}  api.JobResponse      "Invalid request data or session ID"
// @Router       /profile [post]
func PostProfileHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		session, ok := decodeStageRequest(w, r)
		if !ok {
			return
		}
		queueStageJob(w, r, session.Id, jobModel.JobTypeProfile)
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// PostPoliciesHandler godoc
// @Summary      Start policy generation
// @Description  Generates one ESG policy per uploaded parameter, grounded in the extracted profile. Requires a profile and parameters.
// @Tags         Policies
// @Accept       json
// @Produce      json
// @Param        request  body      api.StageRequest     true  "Session ID"
// @Success      202      {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400      {object}  api.JobResponse      "Invalid request data or session ID"
// @Failure      409      {object}  api.JobResponse      "Profile or parameters missing"
// @Router       /policies [post]
func PostPoliciesHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		session, ok := decodeStageRequest(w, r)
		if !ok {
			return
		}
		if session.Profile == nil {
			WriteErrorResponse(w, http.StatusConflict, session.Id, "Extract a company profile first")
			return
		}
		if len(session.Parameters) == 0 {
			WriteErrorResponse(w, http.StatusConflict, session.Id, "Upload ESG parameters first")
			return
		}
		queueStageJob(w, r, session.Id, jobModel.JobTypePolicies)
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// PostAlignmentHandler godoc
// @Summary      Start alignment scoring
// @Description  Scores every generated policy against the company profile. Requires generated policies.
// @Tags         Alignment
// @Accept       json
// @Produce      json
// @Param        request  body      api.StageRequest     true  "Session ID"
// @Success      202      {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400      {object}  api.JobResponse      "Invalid request data or session ID"
// @Failure      409      {object}  api.JobResponse      "No generated policies yet"
// @Router       /alignment [post]
func PostAlignmentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		session, ok := decodeStageRequest(w, r)
		if !ok {
			return
		}
		if len(session.Policies) == 0 {
			WriteErrorResponse(w, http.StatusConflict, session.Id, "Generate policies first")
			return
		}
		queueStageJob(w, r, session.Id, jobModel.JobTypeAlignment)
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetProfileHandler godoc
// @Summary      Get the extracted profile
// @Tags         Profile
// @Produce      json
// @Param        sessionId  query     string  true  "Session ID"
// @Success      200  {object}  api.ProfileResponse  "The extracted company profile"
// @Failure      404  {object}  api.JobResponse      "Session unknown or no profile extracted yet"
// @Router       /profile [get]
func GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		sessionId := sessionIdFromQuery(r)
		session, found := handlerInstance.service.SessionStore.GetSession(r.Context(), sessionId)
		if !found || session.Profile == nil {
			WriteErrorResponse(w, http.StatusNotFound, sessionId, "No profile extracted for this session")
			return
		}
		writeJsonResponse(w, http.StatusOK, api.ProfileResponse{SessionId: sessionId, Profile: session.Profile})
	}
}

// GetPoliciesHandler godoc
// @Summary      Get generated policies
// @Tags         Policies
// @Produce      json
// @Param        sessionId  query     string  true  "Session ID"
// @Success      200  {object}  api.PoliciesResponse  "Generated policies in parameter order, with failure records"
// @Failure      404  {object}  api.JobResponse       "Session unknown or no policies generated yet"
// @Router       /policies [get]
func GetPoliciesHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		sessionId := sessionIdFromQuery(r)
		session, found := handlerInstance.service.SessionStore.GetSession(r.Context(), sessionId)
		if !found || (len(session.Policies) == 0 && len(session.Failures) == 0) {
			WriteErrorResponse(w, http.StatusNotFound, sessionId, "No policies generated for this session")
			return
		}
		writeJsonResponse(w, http.StatusOK, api.PoliciesResponse{
			SessionId: sessionId,
			Policies:  session.Policies,
			Failures:  session.Failures,
		})
	}
}

// GetAlignmentHandler godoc
// @Summary      Get alignment results
// @Tags         Alignment
// @Produce      json
// @Param        sessionId  query     string  true  "Session ID"
// @Success      200  {object}  api.AlignmentResponse  "Per-policy alignment scores and rationales"
// @Failure      404  {object}  api.JobResponse        "Session unknown or no alignment scored yet"
// @Router       /alignment [get]
func GetAlignmentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		sessionId := sessionIdFromQuery(r)
		session, found := handlerInstance.service.SessionStore.GetSession(r.Context(), sessionId)
		if !found || (len(session.Alignment) == 0 && len(session.AlignmentFailures) == 0) {
			WriteErrorResponse(w, http.StatusNotFound, sessionId, "No alignment scored for this session")
			return
		}
		writeJsonResponse(w, http.StatusOK, api.AlignmentResponse{
			SessionId: sessionId,
			Results:   session.Alignment,
			Failures:  session.AlignmentFailures,
		})
	}
}
