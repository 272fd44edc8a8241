package handler

import (
	accountshandler "livestock-invest-go/internal/transport/httpserver/handler/accounts"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"
	cycleshandler "livestock-invest-go/internal/transport/httpserver/handler/cycles"
	investmentshandler "livestock-invest-go/internal/transport/httpserver/handler/investments"
)

type Handlers struct {
	Common      *commonhandler.Handlers
	Accounts    *accountshandler.Handlers
	Cycles      *cycleshandler.Handlers
	Investments *investmentshandler.Handlers
}

func New(common *commonhandler.Handlers, accounts *accountshandler.Handlers, cycles *cycleshandler.Handlers, investments *investmentshandler.Handlers) *Handlers {
	return &Handlers{
		Common:      common,
		Accounts:    accounts,
		Cycles:      cycles,
		Investments: investments,
	}
}
