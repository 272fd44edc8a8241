package cycles

import (
	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	riskdomain "livestock-invest-go/internal/domain/risk"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"
	"livestock-invest-go/pkg/logger"
)

type Handlers struct {
	Cycles   *cyclesdomain.Service
	Risk     *riskdomain.Service
	recorder commonhandler.Recorder
	log      logger.Logger
}

func New(cycles *cyclesdomain.Service, risk *riskdomain.Service, recorder commonhandler.Recorder, log logger.Logger) *Handlers {
	if recorder == nil {
		recorder = commonhandler.NopRecorder{}
	}
	return &Handlers{
		Cycles:   cycles,
		Risk:     risk,
		recorder: recorder,
		log:      log,
	}
}
