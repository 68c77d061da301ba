package ports

import (
	"context"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
)

type NetworkFacility interface {
	Fetch(ctx context.Context) (domain.NetworkAttachment, error)
	AddListener(fn func(domain.NetworkAttachment)) (remove func())
}
