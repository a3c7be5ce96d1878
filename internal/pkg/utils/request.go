package utils

import (
	"net/http"
	"strconv"

	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/dto/requests"
	"mindscreen-service/internal/pkg/exceptions"
)

func BuildPaginationRequest(r *http.Request) requests.Pagination {
	page, err := strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamPage))
	if err != nil || page <= 0 {
		page = constvars.AppDefaultPage
	}

	pageSize, err := strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamPageSize))
	if err != nil || pageSize <= 0 {
		pageSize = constvars.AppDefaultPageSize
	}
	if pageSize > constvars.AppMaxPageSize {
		pageSize = constvars.AppMaxPageSize
	}

	return requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

func BuildFindAllQuestionnairesRequest(r *http.Request) *requests.FindAllQuestionnaires {
	return &requests.FindAllQuestionnaires{
		Type:           r.URL.Query().Get(constvars.URLQueryParamType),
		OrganizationID: r.URL.Query().Get(constvars.URLQueryParamOrganizationID),
		Pagination:     BuildPaginationRequest(r),
	}
}

func BuildFindAllResponsesRequest(r *http.Request) (*requests.FindAllResponses, error) {
	request := &requests.FindAllResponses{
		QuestionnaireID: r.URL.Query().Get(constvars.URLQueryParamQuestionnaire),
		State:           r.URL.Query().Get(constvars.URLQueryParamState),
		Pagination:      BuildPaginationRequest(r),
	}

	if raw := r.URL.Query().Get(constvars.URLQueryParamFlagged); raw != "" {
		flagged, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, exceptions.ErrQueryParamValidation(err, constvars.URLQueryParamFlagged)
		}
		request.Flagged = &flagged
	}
	return request, nil
}
