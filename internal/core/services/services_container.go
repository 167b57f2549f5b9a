package services

import (
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account: NewAccountService(
			repos.AccountRepo,
			WithDefaultCurrency(cfg.DefaultCurrency),
		),
		Category: NewCategoryService(repos.CategoryRepo),
		Transaction: NewTransactionService(
			repos.TransactionRepo,
			repos.AccountRepo,
			repos.CategoryRepo,
		),
		Reporting: NewReportingService(repos.ReportingRepo),
	}
}
