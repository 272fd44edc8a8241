package accounts

import (
	"time"

	dashboarddomain "livestock-invest-go/internal/domain/dashboard"
	usersdomain "livestock-invest-go/internal/domain/users"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"
	"livestock-invest-go/pkg/logger"
)

type TokenIssuer interface {
	Issue(user usersdomain.User) (string, time.Time, error)
}

type Handlers struct {
	Users      *usersdomain.Service
	Dashboards *dashboarddomain.Service
	tokens     TokenIssuer
	recorder   commonhandler.Recorder
	log        logger.Logger
}

func New(users *usersdomain.Service, dashboards *dashboarddomain.Service, tokens TokenIssuer, recorder commonhandler.Recorder, log logger.Logger) *Handlers {
	if recorder == nil {
		recorder = commonhandler.NopRecorder{}
	}
	return &Handlers{
		Users:      users,
		Dashboards: dashboards,
		tokens:     tokens,
		recorder:   recorder,
		log:        log,
	}
}
