package services

import (
	portsrepo "github.com/campbellchri/clara-backend/internal/core/ports/repositories"
	portssvc "github.com/campbellchri/clara-backend/internal/core/ports/services"
	"github.com/campbellchri/clara-backend/internal/core/validation"
	"github.com/campbellchri/clara-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	policy portssvc.PolicyEvaluator,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Authorizer first since the claim service depends on it
	container.Authorizer = NewPracticeAuthorizer(repos.MembershipRepo, policy)

	chain := validation.NewDefaultChain(validation.Config{
		ExtraCPTCodes: cfg.ExtraCPTCodes,
		Parallel:      cfg.ParallelValidation,
	})

	container.Claims = NewClaimService(
		repos.ClaimRepo,
		NewEntityResolver(repos.EntityRepo),
		chain,
		WithPracticeAuthorizer(container.Authorizer),
		WithAuditRecorder(NewAuditRecorder(repos.AuditRepo, cfg.CollaboratorTimeout)),
		WithCallTimeout(cfg.CollaboratorTimeout),
	)

	return container
}
