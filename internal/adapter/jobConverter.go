package adapter

import (
	"fmt"
	"time"

	"github.com/akolanti/EsgAPI/internal/api"
	"github.com/akolanti/EsgAPI/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:          string(job.Status),
		PipelineOutcome: ToPipelineOutcome(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		SessionId: job.SessionId,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToPipelineOutcome(payload jobModel.JobPayload) *api.PipelineOutcome {
	if payload.PagesCrawled == 0 && payload.ChunksIndexed == 0 &&
		payload.PoliciesWritten == 0 && payload.PoliciesFailed == 0 && len(payload.FailedURLs) == 0 {
		return nil
	}

	return &api.PipelineOutcome{
		PagesCrawled:    payload.PagesCrawled,
		ChunksIndexed:   payload.ChunksIndexed,
		FailedURLs:      payload.FailedURLs,
		PoliciesWritten: payload.PoliciesWritten,
		PoliciesFailed:  payload.PoliciesFailed,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		SessionId: "",
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
