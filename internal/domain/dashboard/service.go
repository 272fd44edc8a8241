package dashboard

import (
	"context"
	"errors"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	investmentsdomain "livestock-invest-go/internal/domain/investments"
	usersdomain "livestock-invest-go/internal/domain/users"

	"github.com/shopspring/decimal"
)

var ErrUnsupportedRole = errors.New("unsupported role")

type UserLister interface {
	List(ctx context.Context, filter usersdomain.ListFilter) ([]usersdomain.User, error)
}

type CycleReader interface {
	List(ctx context.Context, filter cyclesdomain.ListFilter) ([]cyclesdomain.Cycle, error)
	ListLogs(ctx context.Context, cycleID string) ([]cyclesdomain.Log, error)
}

type InvestmentReader interface {
	Portfolio(ctx context.Context, investorID string) (*investmentsdomain.Portfolio, error)
	Settlement(ctx context.Context, cycleID string) (*investmentsdomain.SettlementReport, error)
}

type Service struct {
	users       UserLister
	cycles      CycleReader
	investments InvestmentReader
}

func NewService(users UserLister, cycles CycleReader, investments InvestmentReader) *Service {
	return &Service{
		users:       users,
		cycles:      cycles,
		investments: investments,
	}
}

func (s *Service) Build(ctx context.Context, user usersdomain.User) (Dashboard, error) {
	switch user.Role {
	case usersdomain.RoleAdmin:
		return s.admin(ctx)
	case usersdomain.RoleBreeder:
		return s.breeder(ctx, user.ID)
	case usersdomain.RoleInvestor:
		return s.investor(ctx, user.ID)
	default:
		return nil, ErrUnsupportedRole
	}
}

func (s *Service) admin(ctx context.Context) (AdminDashboard, error) {
	result := AdminDashboard{TotalFunded: decimal.Zero, RealizedProfit: decimal.Zero}

	pendingUsers, err := s.users.List(ctx, usersdomain.ListFilter{Status: usersdomain.StatusPending})
	if err != nil {
		return AdminDashboard{}, err
	}
	result.PendingUsers = len(pendingUsers)

	all, err := s.cycles.List(ctx, cyclesdomain.ListFilter{})
	if err != nil {
		return AdminDashboard{}, err
	}

	for _, cycle := range all {
		switch cycle.Status {
		case cyclesdomain.StatusPending:
			result.PendingCycles++
		case cyclesdomain.StatusActive:
			result.ActiveCycles++
			result.TotalFunded = result.TotalFunded.Add(cycle.CurrentFunding)
		case cyclesdomain.StatusCompleted:
			result.CompletedCycles++
			result.TotalFunded = result.TotalFunded.Add(cycle.CurrentFunding)

			report, err := s.investments.Settlement(ctx, cycle.ID)
			if err != nil {
				return AdminDashboard{}, err
			}
			result.RealizedProfit = result.RealizedProfit.Add(report.TotalProfit)
		}
	}

	return result, nil
}

func (s *Service) breeder(ctx context.Context, breederID string) (BreederDashboard, error) {
	owned, err := s.cycles.List(ctx, cyclesdomain.ListFilter{BreederID: breederID})
	if err != nil {
		return BreederDashboard{}, err
	}

	result := BreederDashboard{
		Cycles:      make([]BreederCycle, 0, len(owned)),
		TotalFunded: decimal.Zero,
	}
	for _, cycle := range owned {
		logs, err := s.cycles.ListLogs(ctx, cycle.ID)
		if err != nil {
			return BreederDashboard{}, err
		}
		if cycle.Status == cyclesdomain.StatusActive {
			result.ActiveCycles++
		}
		result.TotalFunded = result.TotalFunded.Add(cycle.CurrentFunding)
		result.Cycles = append(result.Cycles, BreederCycle{
			Cycle:           cycle,
			CurrentWeight:   cyclesdomain.CurrentWeight(cycle, logs),
			FundingProgress: cycle.FundingProgress(),
		})
	}

	return result, nil
}

func (s *Service) investor(ctx context.Context, investorID string) (InvestorDashboard, error) {
	opportunities, err := s.cycles.List(ctx, cyclesdomain.ListFilter{Status: cyclesdomain.StatusActive})
	if err != nil {
		return InvestorDashboard{}, err
	}

	portfolio, err := s.investments.Portfolio(ctx, investorID)
	if err != nil {
		return InvestorDashboard{}, err
	}

	return InvestorDashboard{
		Opportunities:  opportunities,
		Holdings:       len(portfolio.Holdings),
		TotalInvested:  portfolio.TotalInvested,
		ActiveInvested: portfolio.ActiveInvested,
		RealizedValue:  portfolio.RealizedValue,
		RealizedProfit: portfolio.RealizedProfit,
	}, nil
}
