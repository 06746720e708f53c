package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

func TestHandleCreateTeam(t *testing.T) {
	svc := &MockRegistryService{}
	svc.On("CreateTeam", mock.Anything, "red", "Red Team").Return(&domain.Team{ID: "red", Name: "Red Team"}, nil)
	svc.On("CreateTeam", mock.Anything, "blue", "").Return(nil, domain.ErrTeamExists)

	w := serve(t, http.MethodPost, "/teams", "/teams", CreateTeamRequest{TeamID: "red", Name: "Red Team"}, HandleCreateTeam(svc))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Red Team", decodeBody[domain.Team](t, w).Name)

	w = serve(t, http.MethodPost, "/teams", "/teams", CreateTeamRequest{TeamID: "blue"}, HandleCreateTeam(svc))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = serve(t, http.MethodPost, "/teams", "/teams", CreateTeamRequest{Name: "No ID"}, HandleCreateTeam(svc))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleListTeams(t *testing.T) {
	svc := &MockRegistryService{}
	svc.On("ListTeams", mock.Anything).Return([]domain.Team{{ID: "blue"}, {ID: "red"}}, nil)

	w := serve(t, http.MethodGet, "/teams", "/teams", nil, HandleListTeams(svc))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[TeamsResponse](t, w).Teams, 2)
}
