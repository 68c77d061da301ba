package ports

import (
	"context"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
)

type EndpointRepository interface {
	List(ctx context.Context) ([]domain.Endpoint, error)
	Remember(ctx context.Context, address string) error
}
