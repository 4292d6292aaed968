package handlers

import (
	"net/http"

	"github.com/akolanti/EsgAPI/internal/api"
	"github.com/akolanti/EsgAPI/internal/params"
)

// PostParametersHandler godoc
// @Summary      Upload ESG parameters
// @Description  Parses an Invest Europe Table 7 workbook and attaches the parameters to the session. Parsing is synchronous; row errors and category coverage gaps are reported in the response.
// @Tags         Parameters
// @Accept       multipart/form-data
// @Produce      json
// @Param        session_id  formData  string  true  "Session the parameters belong to"
// @Param        parameters  formData  file    true  "The .xlsx workbook"
// @Success      200  {object}  api.ParametersResponse  "Parsed parameters in workbook row order"
// @Failure      400  {object}  api.JobResponse         "Bad upload or unknown session"
// @Failure      422  {object}  api.JobResponse         "Workbook could not be parsed"
// @Router       /parameters [post]
func PostParametersHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		const maxUploadSize = 16 << 20 //16mb
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		sessionId := r.FormValue("session_id")
		session, found := handlerInstance.service.SessionStore.GetSession(r.Context(), sessionId)
		if !found {
			WriteErrorResponse(w, http.StatusBadRequest, sessionId, "Unknown session")
			return
		}

		fileReader, _, err := r.FormFile("parameters")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, sessionId, "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		parsed, err := params.ParseWorkbook(fileReader)
		if err != nil {
			logRH.Warn("Parameter workbook rejected", "sessionId", sessionId, "err", err)
			WriteErrorResponse(w, http.StatusUnprocessableEntity, sessionId, err.Error())
			return
		}

		// policies generated from older parameters are stale now
		session.Parameters = parsed.Parameters
		session.Policies = nil
		session.Failures = nil
		session.Alignment = nil
		session.AlignmentFailures = nil
		if err = handlerInstance.service.SessionStore.SaveSession(r.Context(), session); err != nil {
			logRH.Error("Error saving session parameters", "sessionId", sessionId, "err", err)
			WriteErrorResponse(w, http.StatusInternalServerError, sessionId, "Could not save parameters")
			return
		}

		response := api.ParametersResponse{
			SessionId:  sessionId,
			Parameters: parsed.Parameters,
			RowErrors:  parsed.RowErrors,
		}
		if err = params.ValidateCoverage(parsed.Parameters); err != nil {
			response.Coverage = err.Error()
		}
		writeJsonResponse(w, http.StatusOK, response)
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetParametersTemplateHandler godoc
// @Summary      Download the parameters template
// @Description  Returns a blank Invest Europe Table 7 workbook the parameters endpoint accepts as-is.
// @Tags         Parameters
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file            "The template workbook"
// @Failure      500  {object}  api.JobResponse "Template rendering failure"
// @Router       /parameters/template [get]
func GetParametersTemplateHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="esg-parameters-template.xlsx"`)
		if err := params.WriteTemplate(w); err != nil {
			logRH.Error("Error writing parameters template", "err", err)
		}
	}
}
