package investments

import (
	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	investmentsdomain "livestock-invest-go/internal/domain/investments"
	usersdomain "livestock-invest-go/internal/domain/users"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"
	"livestock-invest-go/pkg/logger"
)

type Handlers struct {
	Investments *investmentsdomain.Service
	Cycles      *cyclesdomain.Service
	Users       *usersdomain.Service
	recorder    commonhandler.Recorder
	log         logger.Logger
}

func New(investments *investmentsdomain.Service, cycles *cyclesdomain.Service, users *usersdomain.Service, recorder commonhandler.Recorder, log logger.Logger) *Handlers {
	if recorder == nil {
		recorder = commonhandler.NopRecorder{}
	}
	return &Handlers{
		Investments: investments,
		Cycles:      cycles,
		Users:       users,
		recorder:    recorder,
		log:         log,
	}
}
